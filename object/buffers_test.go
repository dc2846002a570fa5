package object_test

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"true-clone/object"
)

func ExampleTypedArray() {
	buf := object.NewArrayBuffer(nil, 8)
	view, _ := object.NewTypedArray(nil, object.Int16, buf, 2, 3)

	_ = view.SetAt(0, -2)
	_ = view.SetAt(1, 70000)
	_ = view.SetAt(2, 3.9)

	for i := range view.Len() {
		v, _ := view.At(i)
		fmt.Println(v)
	}
	fmt.Println(buf.Bytes())
	// Output:
	// -2
	// 4464
	// 3
	// [0 0 254 255 112 17 3 0]
}

func TestTypedArray_Window(t *testing.T) {
	buf := object.NewArrayBuffer(nil, 8)

	_, err := object.NewTypedArray(nil, object.Int32, buf, 2, 1)
	assert.ErrorIs(t, err, object.ErrMisaligned)

	_, err = object.NewTypedArray(nil, object.Int32, buf, 4, 2)
	assert.ErrorIs(t, err, object.ErrOutOfBounds)

	_, err = object.NewTypedArray(nil, object.Float64, object.NewArrayBuffer(nil, 16), 0, math.MaxInt>>3+1)
	assert.ErrorIs(t, err, object.ErrOutOfBounds)

	_, err = object.NewTypedArray(nil, object.Uint8, buf, 9, 0)
	assert.ErrorIs(t, err, object.ErrOutOfBounds)

	_, err = object.NewTypedArray(nil, object.Int16, buf, 2, -1)
	assert.ErrorIs(t, err, object.ErrOutOfBounds)

	_, err = object.NewTypedArray(nil, object.ElementKind(0), buf, 0, 1)
	assert.ErrorIs(t, err, object.ErrElementKind)

	_, err = object.NewTypedArray(nil, object.Uint8, nil, 0, 1)
	assert.ErrorIs(t, err, object.ErrNoBuffer)

	view, err := object.NewTypedArray(nil, object.Float64, buf, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, view.ByteLength())

	_, err = view.At(1)
	assert.ErrorIs(t, err, object.ErrOutOfBounds)

	buf.Detach()
	assert.True(t, buf.Detached())
	assert.ErrorIs(t, view.Validate(), object.ErrDetached)
	_, err = view.At(0)
	assert.ErrorIs(t, err, object.ErrDetached)
}

func TestTypedArray_Elements(t *testing.T) {
	buf := object.NewArrayBuffer(nil, 16)

	clamped, err := object.NewTypedArray(nil, object.Uint8Clamped, buf, 0, 2)
	require.NoError(t, err)
	require.NoError(t, clamped.SetAt(0, 300))
	require.NoError(t, clamped.SetAt(1, -5))
	assert.Equal(t, []byte{255, 0}, buf.Bytes()[:2])

	big64, err := object.NewTypedArray(nil, object.BigInt64, buf, 8, 1)
	require.NoError(t, err)
	require.NoError(t, big64.SetAt(0, big.NewInt(-1)))

	v, err := big64.At(0)
	require.NoError(t, err)
	assert.Equal(t, 0, v.(*big.Int).Cmp(big.NewInt(-1)))

	u64, err := object.NewTypedArray(nil, object.BigUint64, buf, 8, 1)
	require.NoError(t, err)
	v, err = u64.At(0)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", v.(*big.Int).String())

	assert.Error(t, big64.SetAt(0, 1.0))
	assert.Error(t, clamped.SetAt(0, "1"))

	f32, err := object.NewTypedArray(nil, object.Float32, buf, 4, 1)
	require.NoError(t, err)
	require.NoError(t, f32.SetAt(0, 1.5))
	v, _ = f32.At(0)
	assert.Equal(t, 1.5, v)
}

func TestDataView(t *testing.T) {
	buf := object.ArrayBufferFrom(nil, []byte{1, 2, 3, 4})

	view, err := object.NewDataView(nil, buf, 1, 2)
	require.NoError(t, err)

	b, err := view.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 3}, b)

	b[0] = 9
	assert.Equal(t, []byte{1, 9, 3, 4}, buf.Bytes())

	_, err = object.NewDataView(nil, buf, 3, 2)
	assert.ErrorIs(t, err, object.ErrOutOfBounds)

	_, err = object.NewDataView(nil, buf, 4, 0)
	assert.NoError(t, err)
}

func TestElementKind_String(t *testing.T) {
	assert.Equal(t, "Uint8ClampedArray", object.Uint8Clamped.String())
	assert.Equal(t, "ElementKind(0)", object.ElementKind(0).String())
	assert.Equal(t, 8, object.BigUint64.Size())
}
