package classify_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"true-clone/classify"
	"true-clone/object"
)

func Example() {
	realm := object.NewRealm()
	buf := realm.ArrayBuffer(make([]byte, 4))
	view, _ := realm.TypedArray(object.Uint8, buf, 0, 4)
	re, _ := realm.RegExp("a+", "g")
	boxed, _ := realm.Box("s")

	fmt.Println(classify.Of(nil))
	fmt.Println(classify.Of(object.Null))
	fmt.Println(classify.Of(3))
	fmt.Println(classify.Of(big.NewInt(3)))
	fmt.Println(classify.Of(object.NewSymbol("s")))
	fmt.Println(classify.Of(object.NewFunction("f", nil)))
	fmt.Println(classify.Of(realm.Object()))
	fmt.Println(classify.Of(realm.Array()))
	fmt.Println(classify.Of(boxed))
	fmt.Println(classify.Of(view))
	fmt.Println(classify.Of(re))
	fmt.Println(classify.Of(realm.WeakRef(buf)))
	fmt.Println(classify.Of(struct{}{}))
	fmt.Println(classify.KindEnum(99))
	// Output:
	// KindUndefined
	// KindNull
	// KindNumber
	// KindBigInt
	// KindSymbol
	// KindFunction
	// KindObject
	// KindArray
	// KindBoxed
	// KindTypedArray
	// KindRegExp
	// KindWeak
	// KindHost
	// KindEnum(99)
}

// record embeds Object, so it is a keyed object whatever it carries.
type record struct {
	object.Object
	payload []byte
}

func TestOf_ByTypeNotShape(t *testing.T) {
	realm := object.NewRealm()

	// A plain object dressed up as a date stays a plain object.
	fake := realm.Object()
	fake.Put("getTime", object.NewFunction("getTime", nil))
	assert.Equal(t, classify.KindObject, classify.Of(fake))

	// A real map relinked to the array template stays a map.
	m := realm.Map()
	assert.NoError(t, m.SetProto(realm.ArrayPrototype))
	assert.Equal(t, classify.KindMap, classify.Of(m))

	r := &record{payload: []byte{1}}
	r.Init(realm.ObjectPrototype, r)
	assert.Equal(t, classify.KindObject, classify.Of(r))

	var nilArray *object.Array
	assert.Equal(t, classify.KindUndefined, classify.Of(nilArray))
}

func TestKindEnum_Groups(t *testing.T) {
	for k := classify.KindUndefined; int(k) < classify.KindTotal; k++ {
		groups := 0
		for _, in := range []bool{k.IsPrimitive(), k.IsOpaque(), k.IsComposite()} {
			if in {
				groups++
			}
		}
		assert.Equal(t, 1, groups, "%s belongs to %d groups", k, groups)
	}

	assert.True(t, classify.KindSymbol.IsPrimitive())
	assert.True(t, classify.KindFunction.IsOpaque())
	assert.True(t, classify.KindDataView.IsComposite())
}
