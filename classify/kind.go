package classify

import (
	"math/big"
	"reflect"

	"true-clone/object"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindUndefined
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindBigInt
	KindSymbol
	KindFunction
	KindWeak
	KindHost
	KindObject
	KindArray
	KindMap
	KindSet
	KindBoxed
	KindArrayBuffer
	KindTypedArray
	KindDataView
	KindRegExp
	KindDate
	KindError

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsPrimitive reports kinds that are returned as they are, compared by same-value identity.
func (k KindEnum) IsPrimitive() bool {
	switch k {
	default:
		return false
	case KindUndefined, KindNull, KindBoolean, KindNumber, KindString, KindBigInt, KindSymbol:
		return true
	}
}

// IsOpaque reports kinds that are shared by reference and never traversed.
func (k KindEnum) IsOpaque() bool {
	switch k {
	default:
		return false
	case KindFunction, KindWeak, KindHost:
		return true
	}
}

// IsComposite reports kinds that get a fresh destination shell.
func (k KindEnum) IsComposite() bool {
	switch k {
	default:
		return false
	case KindObject, KindArray, KindMap, KindSet, KindBoxed, KindArrayBuffer,
		KindTypedArray, KindDataView, KindRegExp, KindDate, KindError:
		return true
	}
}

// Of classifies v by its dynamic Go type, never by the properties it
// happens to carry. Typed nil pointers read as Undefined. Composites of
// unrecognized types classify as KindObject, any other Go value as KindHost.
func Of(v any) KindEnum {
	if v == nil || isNilPointer(v) {
		return KindUndefined
	}

	switch x := v.(type) {
	case object.Absent:
		if x == object.Null {
			return KindNull
		}
		return KindUndefined
	case bool:
		return KindBoolean
	case string:
		return KindString
	case *big.Int:
		return KindBigInt
	case *object.Symbol:
		return KindSymbol
	case *object.Function:
		return KindFunction
	case *object.WeakMap, *object.WeakSet, *object.WeakRef:
		return KindWeak
	case *object.Array:
		return KindArray
	case *object.Map:
		return KindMap
	case *object.Set:
		return KindSet
	case *object.Boxed:
		return KindBoxed
	case *object.ArrayBuffer:
		return KindArrayBuffer
	case *object.TypedArray:
		return KindTypedArray
	case *object.DataView:
		return KindDataView
	case *object.RegExp:
		return KindRegExp
	case *object.Date:
		return KindDate
	case *object.Error:
		return KindError
	case object.Composite:
		return KindObject
	}

	if object.IsNumber(v) {
		return KindNumber
	}

	return KindHost
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
