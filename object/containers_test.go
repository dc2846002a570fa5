package object_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"true-clone/object"
)

func TestArray_Holes(t *testing.T) {
	a := object.NewArray(nil, 3)
	require.NoError(t, a.SetAt(1, "x"))

	assert.Equal(t, 3, a.Len())
	assert.False(t, a.Has(0))
	assert.True(t, a.Has(1))

	v, err := a.At(0)
	require.NoError(t, err)
	assert.Equal(t, object.Undefined, v)

	require.NoError(t, a.SetAt(5, "y"))
	assert.Equal(t, 6, a.Len())

	a.SetLen(2)
	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Has(1))
	assert.False(t, a.Has(5))
	assert.Len(t, a.OwnKeys(), 1)
}

func TestArray_NamedPropertiesDoNotGrow(t *testing.T) {
	a := object.ArrayOf(nil, 1.0, 2.0)
	a.Put("extra", true)

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"0", "1", "extra"}, keyNames(a.OwnKeys()))
}

func TestMap_SameValueZero(t *testing.T) {
	m := object.NewMap(nil)
	k := object.New(nil)

	m.Set(math.NaN(), "nan")
	m.Set(math.Copysign(0, -1), "zero")
	m.Set(k, "object")
	m.Set(big.NewInt(5), "big")
	m.Set(1, "int")

	v, ok := m.Get(math.NaN())
	assert.True(t, ok)
	assert.Equal(t, "nan", v)

	v, _ = m.Get(0.0)
	assert.Equal(t, "zero", v)
	assert.False(t, math.Signbit(m.Entries()[1].Key.(float64)))

	v, _ = m.Get(big.NewInt(5))
	assert.Equal(t, "big", v)

	v, _ = m.Get(1.0)
	assert.Equal(t, "int", v)

	assert.True(t, m.Has(k))
	assert.False(t, m.Has(object.New(nil)))

	m.Set(math.NaN(), "again")
	assert.Equal(t, 5, m.Len())
	assert.Equal(t, "again", m.Entries()[0].Value)

	assert.True(t, m.Delete(0.0))
	assert.False(t, m.Delete(0.0))
	v, _ = m.Get(k)
	assert.Equal(t, "object", v)
	assert.Equal(t, k, m.Entries()[1].Key)

	assert.Panics(t, func() { m.Set([]int{1}, 1) })
}

func TestCheckKey(t *testing.T) {
	type pair struct{ a, b any }

	for _, v := range []any{nil, object.Undefined, 1.0, "s", big.NewInt(3), object.New(nil), pair{a: 1, b: "x"}} {
		assert.NoError(t, object.CheckKey(v), "%#v", v)
	}

	assert.ErrorIs(t, object.CheckKey([]int{1}), object.ErrUnhashable)
	assert.ErrorIs(t, object.CheckKey(map[string]int{}), object.ErrUnhashable)
	assert.ErrorIs(t, object.CheckKey(pair{a: []int{1}}), object.ErrUnhashable)
}

func TestSet_Order(t *testing.T) {
	s := object.NewSet(nil)
	for _, v := range []any{"b", "a", "b", math.NaN(), math.NaN(), "c"} {
		s.Add(v)
	}

	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Delete("a"))
	assert.True(t, s.Has("c"))

	values := s.Values()
	require.Len(t, values, 3)
	assert.Equal(t, "b", values[0])
	assert.True(t, math.IsNaN(values[1].(float64)))
	assert.Equal(t, "c", values[2])
}

func TestMap_PropertiesAreSeparate(t *testing.T) {
	m := object.NewMap(nil)
	m.Set("k", 1.0)
	m.Put("k", 2.0)

	v, _ := m.Get("k")
	assert.Equal(t, 1.0, v)

	p, err := m.Base().Get(object.Key("k"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, p)
}
