package object_test

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"true-clone/object"
)

func TestRegExp(t *testing.T) {
	realm := object.NewRealm()

	re, err := realm.RegExp(`^a.c$`, "smi")
	require.NoError(t, err)
	assert.Equal(t, "ims", re.Flags())
	assert.Equal(t, "/^a.c$/ims", re.String())
	assert.Same(t, realm.RegExpPrototype, re.Proto())

	ok, err := re.MatchString("A\nC")
	require.NoError(t, err)
	assert.True(t, ok)

	d, found := re.GetOwnProperty(object.LastIndex)
	require.True(t, found)
	assert.Equal(t, object.DataDescriptor{Value: 0.0, Attrs: object.Writable}, d)

	for _, flags := range []string{"gg", "x", "uv"} {
		_, err := realm.RegExp("a", flags)
		assert.ErrorIs(t, err, object.ErrRegExpFlags, "flags %q", flags)
	}

	_, err = realm.RegExp("(", "")
	assert.Error(t, err)

	var zero object.RegExp
	_, err = zero.MatchString("a")
	assert.ErrorIs(t, err, object.ErrUncompiled)
}

func TestBoxed(t *testing.T) {
	realm := object.NewRealm()

	for _, v := range []any{true, 1.5, "s", big.NewInt(3), object.NewSymbol("s")} {
		b, err := realm.Box(v)
		require.NoError(t, err)
		assert.Equal(t, v, b.Value())
	}

	b, _ := realm.Box(7)
	assert.Same(t, realm.NumberPrototype, b.Proto())

	_, err := realm.Box(object.Null)
	assert.ErrorIs(t, err, object.ErrNotBoxable)

	_, err = object.NewBoxed(nil, object.New(nil))
	assert.ErrorIs(t, err, object.ErrNotBoxable)
}

func TestDate(t *testing.T) {
	realm := object.NewRealm()
	instant := time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)

	d := object.DateOf(realm.DatePrototype, instant)
	got, ok := d.Time()
	require.True(t, ok)
	assert.True(t, instant.Equal(got))

	d.SetValue(math.NaN())
	_, ok = d.Time()
	assert.False(t, ok)
}

func TestError(t *testing.T) {
	realm := object.NewRealm()

	e := realm.Error(object.RangeError, "too far")
	assert.Equal(t, "RangeError: too far", e.Error())
	assert.Same(t, realm.ErrorPrototypes[object.RangeError], e.Proto())
	assert.Same(t, realm.ErrorPrototypes[object.PlainError], e.Proto().Proto())

	name, err := e.Get(object.Key("name"))
	require.NoError(t, err)
	assert.Equal(t, "RangeError", name)

	d, ok := e.GetOwnProperty(object.MessageKey)
	require.True(t, ok)
	assert.False(t, d.Attributes().Has(object.Enumerable))

	_, ok = e.Stack()
	assert.False(t, ok)
	e.SetStack("at somewhere")
	stack, ok := e.Stack()
	assert.True(t, ok)
	assert.Equal(t, "at somewhere", stack)

	bare := realm.Error(object.PlainError, "")
	assert.Empty(t, bare.OwnKeys())
	assert.Equal(t, "Error", bare.Error())

	kind, err := object.ParseErrorKind("URIError")
	require.NoError(t, err)
	assert.Equal(t, object.URIError, kind)

	_, err = object.ParseErrorKind("Oops")
	assert.ErrorIs(t, err, object.ErrUnknownError)
	assert.False(t, object.ErrorKind(42).Valid())
}

func TestWeak(t *testing.T) {
	realm := object.NewRealm()
	target := realm.Object()

	wm := realm.WeakMap()
	wm.Set(target, 1.0)
	v, ok := wm.Get(target)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	ws := realm.WeakSet()
	ws.Add(target)
	assert.True(t, ws.Has(target))

	assert.Same(t, target, realm.WeakRef(target).Deref())
}
