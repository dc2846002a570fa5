package object

import (
	"strconv"
	"strings"
)

// PropertyKey names a property: either a string or a symbol.
type PropertyKey struct {
	name   string
	symbol *Symbol
}

// Key returns the string key name.
func Key(name string) PropertyKey {
	return PropertyKey{name: name}
}

// SymbolKey returns the key for an atom. The same *Symbol always yields the same key.
func SymbolKey(s *Symbol) PropertyKey {
	return PropertyKey{symbol: s}
}

// IndexKey returns the string key of an array index.
func IndexKey(i int) PropertyKey {
	return PropertyKey{name: strconv.Itoa(i)}
}

func (k PropertyKey) IsSymbol() bool { return k.symbol != nil }

func (k PropertyKey) Name() string { return k.name }

func (k PropertyKey) Symbol() *Symbol { return k.symbol }

func (k PropertyKey) String() string {
	if k.symbol != nil {
		return "[" + k.symbol.String() + "]"
	}

	return k.name
}

// maxArrayIndex is the largest valid array index (2^32 - 2).
const maxArrayIndex = 1<<32 - 2

// ArrayIndex reports whether k is the canonical string form of an array index.
func (k PropertyKey) ArrayIndex() (int, bool) {
	if k.symbol != nil || k.name == "" || len(k.name) > 10 {
		return 0, false
	}
	if len(k.name) > 1 && k.name[0] == '0' {
		return 0, false
	}

	n, err := strconv.ParseUint(k.name, 10, 64)
	if err != nil || n > maxArrayIndex {
		return 0, false
	}

	return int(n), true
}

// Attrs is the set of boolean attributes carried by a property.
type Attrs uint8

const (
	Writable Attrs = 1 << iota // data properties only
	Enumerable
	Configurable

	DefaultAttrs = Writable | Enumerable | Configurable
	NoAttrs      = Attrs(0)
)

func (a Attrs) Has(flag Attrs) bool { return a&flag == flag }

// String renders the attributes as "wec" with a dash for every missing one.
func (a Attrs) String() string {
	var sb strings.Builder
	for _, f := range []struct {
		flag Attrs
		ch   byte
	}{{Writable, 'w'}, {Enumerable, 'e'}, {Configurable, 'c'}} {
		if a.Has(f.flag) {
			sb.WriteByte(f.ch)
		} else {
			sb.WriteByte('-')
		}
	}

	return sb.String()
}

// Descriptor describes one own property. It is either a DataDescriptor or an
// AccessorDescriptor.
type Descriptor interface {
	Attributes() Attrs
	isDescriptor()
}

// DataDescriptor is a property holding a value.
type DataDescriptor struct {
	Value any
	Attrs Attrs
}

func (d DataDescriptor) Attributes() Attrs { return d.Attrs }

func (DataDescriptor) isDescriptor() {}

// AccessorDescriptor is a property computed by functions. Either side may be nil.
type AccessorDescriptor struct {
	Get   *Function
	Set   *Function
	Attrs Attrs
}

// Attributes never reports Writable for accessors.
func (d AccessorDescriptor) Attributes() Attrs { return d.Attrs &^ Writable }

func (AccessorDescriptor) isDescriptor() {}

// Data returns a writable, enumerable, configurable data descriptor.
func Data(v any) DataDescriptor {
	return DataDescriptor{Value: v, Attrs: DefaultAttrs}
}
