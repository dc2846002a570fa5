package object

import (
	"fmt"
	"math/big"
)

// Realm owns one template per built-in category. Values built through the
// same realm share those templates.
type Realm struct {
	ObjectPrototype      *Object
	ArrayPrototype       *Object
	MapPrototype         *Object
	SetPrototype         *Object
	BooleanPrototype     *Object
	NumberPrototype      *Object
	StringPrototype      *Object
	BigIntPrototype      *Object
	SymbolPrototype      *Object
	ArrayBufferPrototype *Object
	TypedArrayPrototype  *Object
	DataViewPrototype    *Object
	RegExpPrototype      *Object
	DatePrototype        *Object
	WeakMapPrototype     *Object
	WeakSetPrototype     *Object
	WeakRefPrototype     *Object

	ElementPrototypes map[ElementKind]*Object
	ErrorPrototypes   map[ErrorKind]*Object
}

// NewRealm allocates a fresh set of templates, each linked to ObjectPrototype.
func NewRealm() *Realm {
	root := New(nil)
	derive := func() *Object { return New(root) }

	r := &Realm{
		ObjectPrototype:      root,
		ArrayPrototype:       derive(),
		MapPrototype:         derive(),
		SetPrototype:         derive(),
		BooleanPrototype:     derive(),
		NumberPrototype:      derive(),
		StringPrototype:      derive(),
		BigIntPrototype:      derive(),
		SymbolPrototype:      derive(),
		ArrayBufferPrototype: derive(),
		TypedArrayPrototype:  derive(),
		DataViewPrototype:    derive(),
		RegExpPrototype:      derive(),
		DatePrototype:        derive(),
		WeakMapPrototype:     derive(),
		WeakSetPrototype:     derive(),
		WeakRefPrototype:     derive(),
		ElementPrototypes:    make(map[ElementKind]*Object),
		ErrorPrototypes:      make(map[ErrorKind]*Object),
	}

	for k := Int8; k <= BigUint64; k++ {
		r.ElementPrototypes[k] = New(r.TypedArrayPrototype)
	}

	base := derive()
	base.define(Key("name"), DataDescriptor{Value: PlainError.String(), Attrs: Writable | Configurable})
	r.ErrorPrototypes[PlainError] = base
	for k := TypeError; k <= AggregateError; k++ {
		p := New(base)
		p.define(Key("name"), DataDescriptor{Value: k.String(), Attrs: Writable | Configurable})
		r.ErrorPrototypes[k] = p
	}

	return r
}

func (r *Realm) Object() *Object { return New(r.ObjectPrototype) }

func (r *Realm) Array(elems ...any) *Array { return ArrayOf(r.ArrayPrototype, elems...) }

// SparseArray returns an array of length holes.
func (r *Realm) SparseArray(length int) *Array { return NewArray(r.ArrayPrototype, length) }

func (r *Realm) Map() *Map { return NewMap(r.MapPrototype) }

func (r *Realm) Set(elems ...any) *Set {
	s := NewSet(r.SetPrototype)
	for _, v := range elems {
		s.Add(v)
	}

	return s
}

// Box wraps a primitive using the template matching its type.
func (r *Realm) Box(v any) (*Boxed, error) {
	var proto *Object
	switch v.(type) {
	case bool:
		proto = r.BooleanPrototype
	case string:
		proto = r.StringPrototype
	case *big.Int:
		proto = r.BigIntPrototype
	case *Symbol:
		proto = r.SymbolPrototype
	default:
		if !IsNumber(v) {
			return nil, fmt.Errorf("%w: %T", ErrNotBoxable, v)
		}
		proto = r.NumberPrototype
	}

	return NewBoxed(proto, v)
}

func (r *Realm) ArrayBuffer(data []byte) *ArrayBuffer {
	return ArrayBufferFrom(r.ArrayBufferPrototype, data)
}

func (r *Realm) TypedArray(kind ElementKind, buf *ArrayBuffer, offset, length int) (*TypedArray, error) {
	return NewTypedArray(r.ElementPrototypes[kind], kind, buf, offset, length)
}

func (r *Realm) DataView(buf *ArrayBuffer, offset, length int) (*DataView, error) {
	return NewDataView(r.DataViewPrototype, buf, offset, length)
}

func (r *Realm) RegExp(source, flags string) (*RegExp, error) {
	return NewRegExp(r.RegExpPrototype, source, flags)
}

func (r *Realm) Date(ms float64) *Date { return NewDate(r.DatePrototype, ms) }

func (r *Realm) Error(kind ErrorKind, message string) *Error {
	return NewError(r.ErrorPrototypes[kind], kind, message)
}

func (r *Realm) WeakMap() *WeakMap { return NewWeakMap(r.WeakMapPrototype) }

func (r *Realm) WeakSet() *WeakSet { return NewWeakSet(r.WeakSetPrototype) }

func (r *Realm) WeakRef(target Composite) *WeakRef { return NewWeakRef(r.WeakRefPrototype, target) }
