package object_test

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"true-clone/object"
)

func keyNames(keys []object.PropertyKey) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.String())
	}

	return out
}

func ExampleObject_OwnKeys() {
	sym := object.NewSymbol("tag")

	o := object.New(nil)
	o.Put("b", 1)
	_ = o.DefineProperty(object.SymbolKey(sym), object.Data(true))
	o.Put("10", 1)
	o.Put("a", 1)
	o.Put("2", 1)
	o.Put("02", 1)

	for _, k := range o.OwnKeys() {
		fmt.Println(k)
	}
	// Output:
	// 2
	// 10
	// b
	// a
	// 02
	// [Symbol(tag)]
}

func TestPropertyKey_ArrayIndex(t *testing.T) {
	cases := map[string]bool{
		"0":          true,
		"42":         true,
		"4294967294": true,
		"4294967295": false,
		"007":        false,
		"-1":         false,
		"1.5":        false,
		"":           false,
		"length":     false,
	}

	for name, want := range cases {
		_, ok := object.Key(name).ArrayIndex()
		assert.Equal(t, want, ok, "key %q", name)
	}

	_, ok := object.SymbolKey(object.NewSymbol("0")).ArrayIndex()
	assert.False(t, ok)
}

func TestAttrs_String(t *testing.T) {
	assert.Equal(t, "wec", object.DefaultAttrs.String())
	assert.Equal(t, "---", object.NoAttrs.String())
	assert.Equal(t, "w-c", (object.Writable | object.Configurable).String())
	assert.Equal(t, "-e-", object.AccessorDescriptor{Attrs: object.DefaultAttrs &^ object.Configurable}.Attributes().String())
}

func TestSameValue(t *testing.T) {
	sym := object.NewSymbol("x")

	assert.True(t, object.SameValue(math.NaN(), math.NaN()))
	assert.False(t, object.SameValue(0.0, math.Copysign(0, -1)))
	assert.True(t, object.SameValueZero(0.0, math.Copysign(0, -1)))
	assert.True(t, object.SameValue(1, 1.0))
	assert.True(t, object.SameValue(big.NewInt(7), big.NewInt(7)))
	assert.False(t, object.SameValue(big.NewInt(7), 7.0))
	assert.True(t, object.SameValue(sym, sym))
	assert.False(t, object.SameValue(sym, object.NewSymbol("x")))
	assert.True(t, object.SameValue(nil, object.Undefined))
	assert.False(t, object.SameValue(object.Null, object.Undefined))
	assert.False(t, object.SameValue([]int{1}, []int{1}))
}

func TestObject_GetSetThroughTemplate(t *testing.T) {
	proto := object.New(nil)
	proto.Put("greeting", "hello")
	require.NoError(t, proto.DefineProperty(object.Key("fixed"), object.DataDescriptor{Value: 1.0}))

	var seen any
	err := proto.DefineProperty(object.Key("name"), object.AccessorDescriptor{
		Get: object.NewFunction("get", func(this any, _ ...any) (any, error) { return this, nil }),
		Set: object.NewFunction("set", func(this any, args ...any) (any, error) {
			seen = args[0]
			return object.Undefined, nil
		}),
		Attrs: object.Configurable,
	})
	require.NoError(t, err)

	o := object.New(proto)

	v, err := o.Get(object.Key("greeting"))
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	v, err = o.Get(object.Key("name"))
	require.NoError(t, err)
	assert.Same(t, o, v)

	require.NoError(t, o.Set(object.Key("name"), "x"))
	assert.Equal(t, "x", seen)
	assert.False(t, o.HasOwn(object.Key("name")))

	require.NoError(t, o.Set(object.Key("greeting"), "hi"))
	assert.True(t, o.HasOwn(object.Key("greeting")))
	v, _ = proto.Get(object.Key("greeting"))
	assert.Equal(t, "hello", v)

	assert.ErrorIs(t, o.Set(object.Key("fixed"), 2.0), object.ErrNotWritable)

	v, err = o.Get(object.Key("missing"))
	require.NoError(t, err)
	assert.Equal(t, object.Undefined, v)
}

func TestObject_DefineProperty(t *testing.T) {
	o := object.New(nil)
	key := object.Key("k")

	require.NoError(t, o.DefineProperty(key, object.DataDescriptor{Value: 1.0, Attrs: object.Enumerable}))

	// same value, same flags
	assert.NoError(t, o.DefineProperty(key, object.DataDescriptor{Value: 1.0, Attrs: object.Enumerable}))
	assert.ErrorIs(t, o.DefineProperty(key, object.DataDescriptor{Value: 2.0, Attrs: object.Enumerable}), object.ErrNotWritable)
	assert.ErrorIs(t, o.DefineProperty(key, object.DataDescriptor{Value: 1.0}), object.ErrNotConfigurable)
	assert.ErrorIs(t, o.DefineProperty(key, object.AccessorDescriptor{Attrs: object.Enumerable}), object.ErrNotConfigurable)
	assert.ErrorIs(t, o.Delete(key), object.ErrNotConfigurable)
	assert.Error(t, o.DefineProperty(object.Key("nil"), nil))

	w := object.Key("w")
	require.NoError(t, o.DefineProperty(w, object.DataDescriptor{Value: 1.0, Attrs: object.Writable}))
	assert.NoError(t, o.DefineProperty(w, object.DataDescriptor{Value: 2.0}))
	assert.ErrorIs(t, o.DefineProperty(w, object.DataDescriptor{Value: 3.0}), object.ErrNotWritable)
}

func TestObject_Extensibility(t *testing.T) {
	o := object.New(nil)
	o.Put("a", 1.0)

	o.PreventExtensions()
	assert.False(t, o.Extensible())
	assert.False(t, o.IsFrozen())
	assert.ErrorIs(t, o.Set(object.Key("b"), 1.0), object.ErrNotExtensible)
	assert.NoError(t, o.Set(object.Key("a"), 2.0))

	o.Freeze()
	assert.True(t, o.IsFrozen())
	assert.ErrorIs(t, o.Set(object.Key("a"), 3.0), object.ErrNotWritable)
	assert.ErrorIs(t, o.SetProto(object.New(nil)), object.ErrNotExtensible)

	d, ok := o.GetOwnProperty(object.Key("a"))
	require.True(t, ok)
	assert.Equal(t, object.Enumerable, d.Attributes())
}

func TestObject_SetProtoCycle(t *testing.T) {
	a := object.New(nil)
	b := object.New(a)

	assert.ErrorIs(t, a.SetProto(b), object.ErrProtoCycle)
	assert.ErrorIs(t, a.SetProto(a), object.ErrProtoCycle)
	assert.NoError(t, b.SetProto(nil))
}

func TestObject_Delete(t *testing.T) {
	o := object.New(nil).Put("a", 1).Put("b", 2).Put("c", 3)

	require.NoError(t, o.Delete(object.Key("b")))
	require.NoError(t, o.Delete(object.Key("missing")))

	if diff := cmp.Diff([]string{"a", "c"}, keyNames(o.OwnKeys())); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestPut_Panics(t *testing.T) {
	o := object.New(nil)
	o.PreventExtensions()

	assert.Panics(t, func() { o.Put("a", 1) })
}

func TestFunction_Call(t *testing.T) {
	var nilFn *object.Function

	v, err := nilFn.Call(nil)
	require.NoError(t, err)
	assert.Equal(t, object.Undefined, v)

	v, err = object.NewFunction("empty", nil).Call(nil)
	require.NoError(t, err)
	assert.Equal(t, object.Undefined, v)
}
