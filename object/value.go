package object

import (
	"math"
	"math/big"
	"reflect"
)

// Absent is the type of the two absence markers.
type Absent uint8

const (
	// Undefined marks a missing value. The zero Absent and Go nil read as Undefined too.
	Undefined Absent = iota
	// Null marks an intentionally empty value.
	Null
)

func (a Absent) String() string {
	if a == Null {
		return "null"
	}

	return "undefined"
}

// Symbol is an atom: two symbols are equal only when they are the same pointer,
// whatever their descriptions say.
type Symbol struct {
	description string
}

// NewSymbol returns a fresh atom.
func NewSymbol(description string) *Symbol {
	return &Symbol{description: description}
}

func (s *Symbol) Description() string { return s.description }

func (s *Symbol) String() string { return "Symbol(" + s.description + ")" }

// NativeFunc is the Go body of a Function. this is the receiver the function
// was invoked on.
type NativeFunc func(this any, args ...any) (any, error)

// Function is an executable value. Functions are atoms for the purposes of
// copying: they are shared, never duplicated and never inspected.
type Function struct {
	name string
	fn   NativeFunc
}

// NewFunction wraps fn as a Function value.
func NewFunction(name string, fn NativeFunc) *Function {
	return &Function{name: name, fn: fn}
}

func (f *Function) Name() string { return f.name }

// Call invokes the function with the given receiver. A function without a
// body returns Undefined.
func (f *Function) Call(this any, args ...any) (any, error) {
	if f == nil || f.fn == nil {
		return Undefined, nil
	}

	return f.fn(this, args...)
}

// IsAbsent reports whether v is Undefined, Null or Go nil.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}

	_, ok := v.(Absent)
	return ok
}

// SameValue compares two values the way identity-sensitive code must:
// NaN equals NaN, +0 and -0 differ, big integers compare by value and
// everything else compares by Go equality (pointer identity for references).
func SameValue(a, b any) bool {
	return sameValue(a, b, false)
}

// SameValueZero is SameValue except that +0 and -0 are equal.
func SameValueZero(a, b any) bool {
	return sameValue(a, b, true)
}

func sameValue(a, b any, zeroEqual bool) bool {
	if IsAbsent(a) || IsAbsent(b) {
		return IsAbsent(a) && IsAbsent(b) && absentOf(a) == absentOf(b)
	}

	if fa, ok := toNumber(a); ok {
		fb, ok := toNumber(b)
		if !ok {
			return false
		}

		switch {
		case math.IsNaN(fa) || math.IsNaN(fb):
			return math.IsNaN(fa) && math.IsNaN(fb)
		case fa == 0 && fb == 0 && !zeroEqual:
			return math.Signbit(fa) == math.Signbit(fb)
		default:
			return fa == fb
		}
	}

	if ba, ok := a.(*big.Int); ok {
		bb, ok := b.(*big.Int)
		if !ok {
			return false
		}
		if ba == nil || bb == nil {
			return ba == bb
		}

		return ba.Cmp(bb) == 0
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}

	return a == b
}

func absentOf(v any) Absent {
	if a, ok := v.(Absent); ok {
		return a
	}

	return Undefined
}

// toNumber widens every Go numeric kind to float64.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// IsNumber reports whether v is one of the Go numeric kinds.
func IsNumber(v any) bool {
	_, ok := toNumber(v)
	return ok
}
