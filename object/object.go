package object

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNotWritable     = errors.New("property is not writable")
	ErrNotConfigurable = errors.New("property is not configurable")
	ErrNotExtensible   = errors.New("object is not extensible")
	ErrNoSetter        = errors.New("accessor property has no setter")
	ErrProtoCycle      = errors.New("template chain would become cyclic")
)

// Composite is implemented by every value with identity and own properties.
// Host types may embed Object to become composites; they must call Init.
type Composite interface {
	Base() *Object
}

// Object is a keyed object: an ordered set of own properties plus a link to
// a shared template. The zero value is an extensible object with no template,
// but it reports itself, not its embedder, as the receiver of accessors until
// Init is called.
type Object struct {
	proto         *Object
	self          Composite
	props         map[PropertyKey]Descriptor
	keys          []PropertyKey // insertion order
	notExtensible bool
}

// New returns an empty keyed object linked to proto.
func New(proto *Object) *Object {
	o := &Object{}
	o.Init(proto, o)

	return o
}

// Init prepares an embedded Object. self is the outer value that accessors
// and hooks receive as their receiver.
func (o *Object) Init(proto *Object, self Composite) {
	o.proto = proto
	o.self = self
	o.props = make(map[PropertyKey]Descriptor)
}

func (o *Object) Base() *Object { return o }

// Self returns the composite that embeds o, or o itself.
func (o *Object) Self() Composite {
	if o.self == nil {
		return o
	}

	return o.self
}

func (o *Object) Proto() *Object { return o.proto }

// SetProto relinks o to a new template. Links that would make the chain cyclic are refused.
func (o *Object) SetProto(proto *Object) error {
	for p := proto; p != nil; p = p.proto {
		if p == o {
			return ErrProtoCycle
		}
	}
	if o.notExtensible && proto != o.proto {
		return ErrNotExtensible
	}

	o.proto = proto
	return nil
}

func (o *Object) Extensible() bool { return !o.notExtensible }

// PreventExtensions forbids new own properties. It cannot be undone.
func (o *Object) PreventExtensions() { o.notExtensible = true }

// Seal prevents extensions and makes every own property non-configurable.
func (o *Object) Seal() {
	o.PreventExtensions()
	for k, d := range o.props {
		o.props[k] = withAttrs(d, d.Attributes()&^Configurable)
	}
}

// Freeze seals o and makes every own data property read-only.
func (o *Object) Freeze() {
	o.Seal()
	for k, d := range o.props {
		if dd, ok := d.(DataDescriptor); ok {
			dd.Attrs &^= Writable
			o.props[k] = dd
		}
	}
}

// IsFrozen reports whether o is non-extensible with only read-only, non-configurable properties.
func (o *Object) IsFrozen() bool {
	if o.Extensible() {
		return false
	}
	for _, d := range o.props {
		if d.Attributes().Has(Configurable) {
			return false
		}
		if dd, ok := d.(DataDescriptor); ok && dd.Attrs.Has(Writable) {
			return false
		}
	}

	return true
}

func withAttrs(d Descriptor, attrs Attrs) Descriptor {
	switch d := d.(type) {
	case DataDescriptor:
		d.Attrs = attrs
		return d
	case AccessorDescriptor:
		d.Attrs = attrs
		return d
	default:
		return d
	}
}

// GetOwnProperty returns the descriptor of an own property.
func (o *Object) GetOwnProperty(key PropertyKey) (Descriptor, bool) {
	d, ok := o.props[key]
	return d, ok
}

// HasOwn reports whether key is an own property.
func (o *Object) HasOwn(key PropertyKey) bool {
	_, ok := o.props[key]
	return ok
}

// OwnKeys lists own keys: array indices ascending, then the remaining string
// keys in insertion order, then symbol keys in insertion order.
func (o *Object) OwnKeys() []PropertyKey {
	type indexed struct {
		key PropertyKey
		idx int
	}

	var (
		indices []indexed
		names   []PropertyKey
		symbols []PropertyKey
	)

	for _, k := range o.keys {
		if k.IsSymbol() {
			symbols = append(symbols, k)
			continue
		}
		if idx, ok := k.ArrayIndex(); ok {
			indices = append(indices, indexed{key: k, idx: idx})
			continue
		}
		names = append(names, k)
	}

	slices.SortFunc(indices, func(a, b indexed) int { return a.idx - b.idx })

	out := make([]PropertyKey, 0, len(o.keys))
	for _, i := range indices {
		out = append(out, i.key)
	}
	out = append(out, names...)

	return append(out, symbols...)
}

// DefineProperty creates or replaces an own property. Replacing a
// non-configurable property is only allowed when it keeps its kind and
// enumerability and, for data, either stays writable or keeps its value.
func (o *Object) DefineProperty(key PropertyKey, d Descriptor) error {
	if d == nil {
		return fmt.Errorf("define %s: nil descriptor", key)
	}

	current, exists := o.props[key]
	if !exists {
		if o.notExtensible {
			return fmt.Errorf("define %s: %w", key, ErrNotExtensible)
		}
	} else if err := checkRedefine(current, d); err != nil {
		return fmt.Errorf("define %s: %w", key, err)
	}

	o.define(key, d)
	return nil
}

func checkRedefine(current, next Descriptor) error {
	ca := current.Attributes()
	if ca.Has(Configurable) {
		return nil
	}

	na := next.Attributes()
	if na.Has(Configurable) || na.Has(Enumerable) != ca.Has(Enumerable) {
		return ErrNotConfigurable
	}

	switch cur := current.(type) {
	case DataDescriptor:
		nd, ok := next.(DataDescriptor)
		if !ok {
			return ErrNotConfigurable
		}
		if cur.Attrs.Has(Writable) {
			return nil
		}
		if nd.Attrs.Has(Writable) || !SameValue(cur.Value, nd.Value) {
			return ErrNotWritable
		}
	case AccessorDescriptor:
		nacc, ok := next.(AccessorDescriptor)
		if !ok || nacc.Get != cur.Get || nacc.Set != cur.Set {
			return ErrNotConfigurable
		}
	}

	return nil
}

// define stores d without any checks.
func (o *Object) define(key PropertyKey, d Descriptor) {
	if o.props == nil {
		o.props = make(map[PropertyKey]Descriptor)
	}
	if _, exists := o.props[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.props[key] = d

	if arr, ok := o.self.(*Array); ok {
		arr.grow(key)
	}
}

// Delete removes an own property. Non-configurable properties stay.
func (o *Object) Delete(key PropertyKey) error {
	d, ok := o.props[key]
	if !ok {
		return nil
	}
	if !d.Attributes().Has(Configurable) {
		return fmt.Errorf("delete %s: %w", key, ErrNotConfigurable)
	}

	o.remove(key)
	return nil
}

func (o *Object) remove(key PropertyKey) {
	delete(o.props, key)
	o.keys = slices.DeleteFunc(o.keys, func(k PropertyKey) bool { return k == key })
}

// Lookup finds key on o or along its template chain and reports which
// object owns it.
func (o *Object) Lookup(key PropertyKey) (d Descriptor, owner *Object, ok bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if d, ok := cur.props[key]; ok {
			return d, cur, true
		}
	}

	return nil, nil, false
}

// Get reads key through the template chain. Getters run with the value
// embedding o as their receiver.
func (o *Object) Get(key PropertyKey) (any, error) {
	d, _, ok := o.Lookup(key)
	if !ok {
		return Undefined, nil
	}

	switch d := d.(type) {
	case DataDescriptor:
		return d.Value, nil
	case AccessorDescriptor:
		return d.Get.Call(o.Self())
	default:
		return Undefined, nil
	}
}

// Set assigns key. Inherited setters run against o, read-only properties
// (own or inherited) refuse the write, anything else becomes or updates an
// own data property.
func (o *Object) Set(key PropertyKey, v any) error {
	d, owner, ok := o.Lookup(key)
	if ok {
		switch d := d.(type) {
		case AccessorDescriptor:
			if d.Set == nil {
				return fmt.Errorf("set %s: %w", key, ErrNoSetter)
			}
			_, err := d.Set.Call(o.Self(), v)
			return err
		case DataDescriptor:
			if !d.Attrs.Has(Writable) {
				return fmt.Errorf("set %s: %w", key, ErrNotWritable)
			}
			if owner == o {
				d.Value = v
				o.props[key] = d
				return nil
			}
		}
	}

	if o.notExtensible {
		return fmt.Errorf("set %s: %w", key, ErrNotExtensible)
	}

	o.define(key, Data(v))
	return nil
}

// Put defines an ordinary data property by name and returns o for chaining.
// It panics if o refuses the property.
func (o *Object) Put(name string, v any) *Object {
	if err := o.DefineProperty(Key(name), Data(v)); err != nil {
		panic(err)
	}

	return o
}
