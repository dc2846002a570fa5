package object

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
)

// Array is an ordered, length-bearing container. Elements are own properties
// under index keys, so an index without a property is a hole.
type Array struct {
	Object
	length int
}

// NewArray returns an array of the given length made only of holes.
func NewArray(proto *Object, length int) *Array {
	a := &Array{length: length}
	a.Init(proto, a)

	return a
}

// ArrayOf returns a dense array holding elems.
func ArrayOf(proto *Object, elems ...any) *Array {
	a := NewArray(proto, 0)
	a.Push(elems...)

	return a
}

func (a *Array) Len() int { return a.length }

// SetLen truncates or extends the array. Truncation drops the elements past the new end.
func (a *Array) SetLen(n int) {
	if n < a.length {
		for _, k := range a.OwnKeys() {
			if idx, ok := k.ArrayIndex(); ok && idx >= n {
				a.remove(k)
			}
		}
	}

	a.length = n
}

// Has reports whether index i holds an element rather than a hole.
func (a *Array) Has(i int) bool {
	return a.HasOwn(IndexKey(i))
}

// At reads element i. Holes read as Undefined.
func (a *Array) At(i int) (any, error) {
	return a.Get(IndexKey(i))
}

// SetAt writes element i, growing the array when needed.
func (a *Array) SetAt(i int, v any) error {
	return a.Set(IndexKey(i), v)
}

// Push appends elements as ordinary data properties.
func (a *Array) Push(elems ...any) {
	for _, v := range elems {
		a.define(IndexKey(a.length), Data(v))
	}
}

func (a *Array) grow(key PropertyKey) {
	if idx, ok := key.ArrayIndex(); ok && idx >= a.length {
		a.length = idx + 1
	}
}

// ErrUnhashable is returned by CheckKey for host values Go cannot compare.
var ErrUnhashable = errors.New("value cannot be used as a collection key")

// CheckKey reports whether v can be a Map key or a Set element.
func CheckKey(v any) error {
	if IsAbsent(v) || IsNumber(v) {
		return nil
	}
	if _, ok := v.(*big.Int); ok {
		return nil
	}
	if !reflect.ValueOf(v).Comparable() {
		return fmt.Errorf("%w: %T", ErrUnhashable, v)
	}

	return nil
}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   any
	Value any
}

// Map is an associative container remembering insertion order. Keys compare
// with SameValueZero, so NaN finds NaN and -0 finds +0. Composite keys
// compare by identity.
type Map struct {
	Object
	entries []Entry
	index   map[any]int
}

func NewMap(proto *Object) *Map {
	m := &Map{index: make(map[any]int)}
	m.Init(proto, m)

	return m
}

func (m *Map) Len() int { return len(m.entries) }

// Set inserts or replaces the value under k. Replacing keeps the original position.
// It panics if k fails CheckKey.
func (m *Map) Set(k, v any) {
	hk := hashKey(k)
	if i, ok := m.index[hk]; ok {
		m.entries[i].Value = v
		return
	}

	if m.index == nil {
		m.index = make(map[any]int)
	}
	m.index[hk] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: normalizeZero(k), Value: v})
}

func (m *Map) Get(k any) (any, bool) {
	i, ok := m.index[hashKey(k)]
	if !ok {
		return Undefined, false
	}

	return m.entries[i].Value, true
}

func (m *Map) Has(k any) bool {
	_, ok := m.index[hashKey(k)]
	return ok
}

func (m *Map) Delete(k any) bool {
	hk := hashKey(k)
	i, ok := m.index[hk]
	if !ok {
		return false
	}

	delete(m.index, hk)
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	for j := i; j < len(m.entries); j++ {
		m.index[hashKey(m.entries[j].Key)] = j
	}

	return true
}

// Entries returns a snapshot of the entries in insertion order.
func (m *Map) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)

	return out
}

// Set is a collection of unique elements in insertion order, compared with SameValueZero.
type Set struct {
	Object
	elems []any
	index map[any]int
}

func NewSet(proto *Object) *Set {
	s := &Set{index: make(map[any]int)}
	s.Init(proto, s)

	return s
}

func (s *Set) Len() int { return len(s.elems) }

// Add inserts v unless an equal element is already present.
// It panics if v fails CheckKey.
func (s *Set) Add(v any) {
	hk := hashKey(v)
	if _, ok := s.index[hk]; ok {
		return
	}

	if s.index == nil {
		s.index = make(map[any]int)
	}
	s.index[hk] = len(s.elems)
	s.elems = append(s.elems, normalizeZero(v))
}

func (s *Set) Has(v any) bool {
	_, ok := s.index[hashKey(v)]
	return ok
}

func (s *Set) Delete(v any) bool {
	hk := hashKey(v)
	i, ok := s.index[hk]
	if !ok {
		return false
	}

	delete(s.index, hk)
	s.elems = append(s.elems[:i], s.elems[i+1:]...)
	for j := i; j < len(s.elems); j++ {
		s.index[hashKey(s.elems[j])] = j
	}

	return true
}

// Values returns a snapshot of the elements in insertion order.
func (s *Set) Values() []any {
	out := make([]any, len(s.elems))
	copy(out, s.elems)

	return out
}

type (
	nanKey struct{}
	bigKey string
)

// hashKey maps a value to a Go map key that realizes SameValueZero.
func hashKey(v any) any {
	if IsAbsent(v) {
		return absentOf(v)
	}
	if f, ok := toNumber(v); ok {
		if math.IsNaN(f) {
			return nanKey{}
		}
		if f == 0 {
			return float64(0)
		}

		return f
	}
	if b, ok := v.(*big.Int); ok && b != nil {
		return bigKey(b.String())
	}
	if !reflect.ValueOf(v).Comparable() {
		panic(fmt.Sprintf("object: %T cannot be used as a collection key", v))
	}

	return v
}

// normalizeZero stores -0 keys as +0, like the collections of dynamic runtimes do.
func normalizeZero(v any) any {
	if f, ok := v.(float64); ok && f == 0 {
		return float64(0)
	}

	return v
}
