package object

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"

	"true-clone/utils"
)

var (
	ErrDetached    = errors.New("buffer is detached")
	ErrNoBuffer    = errors.New("view has no backing buffer")
	ErrOutOfBounds = errors.New("view exceeds its backing buffer")
	ErrMisaligned  = errors.New("view offset is not a multiple of its element size")
	ErrElementKind = errors.New("unknown typed array element kind")
)

// ArrayBuffer is a fixed-size block of bytes.
type ArrayBuffer struct {
	Object
	data     []byte
	detached bool
}

// NewArrayBuffer returns a zero-filled buffer of size bytes.
func NewArrayBuffer(proto *Object, size int) *ArrayBuffer {
	return ArrayBufferFrom(proto, make([]byte, size))
}

// ArrayBufferFrom wraps data without copying it.
func ArrayBufferFrom(proto *Object, data []byte) *ArrayBuffer {
	b := &ArrayBuffer{data: data}
	b.Init(proto, b)

	return b
}

// Bytes returns the live backing bytes. Writes through it are visible to every view.
func (b *ArrayBuffer) Bytes() []byte { return b.data }

func (b *ArrayBuffer) ByteLength() int { return len(b.data) }

// Detach releases the bytes. Views over a detached buffer become unusable.
func (b *ArrayBuffer) Detach() {
	b.data = nil
	b.detached = true
}

func (b *ArrayBuffer) Detached() bool { return b.detached }

// ElementKind is the element type of a TypedArray.
type ElementKind int

const (
	_ ElementKind = iota
	Int8
	Uint8
	Uint8Clamped
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64
	BigInt64
	BigUint64
)

// Size returns the element width in bytes, or 0 for an unknown kind.
func (k ElementKind) Size() int {
	switch k {
	case Int8, Uint8, Uint8Clamped:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Float64, BigInt64, BigUint64:
		return 8
	default:
		return 0
	}
}

func (k ElementKind) String() string {
	switch k {
	case Int8:
		return "Int8Array"
	case Uint8:
		return "Uint8Array"
	case Uint8Clamped:
		return "Uint8ClampedArray"
	case Int16:
		return "Int16Array"
	case Uint16:
		return "Uint16Array"
	case Int32:
		return "Int32Array"
	case Uint32:
		return "Uint32Array"
	case Float32:
		return "Float32Array"
	case Float64:
		return "Float64Array"
	case BigInt64:
		return "BigInt64Array"
	case BigUint64:
		return "BigUint64Array"
	default:
		return fmt.Sprintf("ElementKind(%d)", int(k))
	}
}

// checkWindow validates a window of count elements of size bytes starting
// offset bytes into buf. The offset must be a multiple of size.
func checkWindow(buf *ArrayBuffer, offset, count, size int) error {
	switch {
	case buf == nil:
		return ErrNoBuffer
	case buf.detached:
		return ErrDetached
	case size > 1 && offset%size != 0:
		return ErrMisaligned
	case !utils.IsInRange(0, offset, len(buf.data)):
		return fmt.Errorf("%w: offset %d over %d bytes", ErrOutOfBounds, offset, len(buf.data))
	case !utils.IsInRange(0, count, (len(buf.data)-offset)/size):
		return fmt.Errorf("%w: %d elements of %d bytes at offset %d over %d bytes",
			ErrOutOfBounds, count, size, offset, len(buf.data))
	default:
		return nil
	}
}

// TypedArray is a view of Len elements of one ElementKind starting
// ByteOffset bytes into a buffer. Elements are little-endian.
type TypedArray struct {
	Object
	kind   ElementKind
	buffer *ArrayBuffer
	offset int
	length int
}

// NewTypedArray returns a view over buf. The window must fit inside buf and be aligned.
func NewTypedArray(proto *Object, kind ElementKind, buf *ArrayBuffer, offset, length int) (*TypedArray, error) {
	t := &TypedArray{kind: kind, buffer: buf, offset: offset, length: length}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	t.Init(proto, t)
	return t, nil
}

func (t *TypedArray) Kind() ElementKind { return t.kind }

func (t *TypedArray) Buffer() *ArrayBuffer { return t.buffer }

func (t *TypedArray) ByteOffset() int { return t.offset }

func (t *TypedArray) Len() int { return t.length }

func (t *TypedArray) ByteLength() int { return t.length * t.kind.Size() }

// Validate reports whether the view is still consistent with its buffer.
func (t *TypedArray) Validate() error {
	size := t.kind.Size()
	if size == 0 {
		return ErrElementKind
	}

	return checkWindow(t.buffer, t.offset, t.length, size)
}

// At decodes element i as a float64, or as a *big.Int for the 64-bit integer kinds.
func (t *TypedArray) At(i int) (any, error) {
	b, err := t.element(i)
	if err != nil {
		return nil, err
	}

	switch t.kind {
	case Int8:
		return float64(int8(b[0])), nil
	case Uint8, Uint8Clamped:
		return float64(b[0]), nil
	case Int16:
		return float64(int16(binary.LittleEndian.Uint16(b))), nil
	case Uint16:
		return float64(binary.LittleEndian.Uint16(b)), nil
	case Int32:
		return float64(int32(binary.LittleEndian.Uint32(b))), nil
	case Uint32:
		return float64(binary.LittleEndian.Uint32(b)), nil
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil
	case Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	case BigInt64:
		return big.NewInt(int64(binary.LittleEndian.Uint64(b))), nil
	default:
		return new(big.Int).SetUint64(binary.LittleEndian.Uint64(b)), nil
	}
}

// SetAt encodes v into element i. Numbers are truncated the way integer
// element kinds wrap; Uint8Clamped clamps instead.
func (t *TypedArray) SetAt(i int, v any) error {
	b, err := t.element(i)
	if err != nil {
		return err
	}

	if t.kind == BigInt64 || t.kind == BigUint64 {
		n, ok := v.(*big.Int)
		if !ok || n == nil {
			return fmt.Errorf("%s element needs a big integer, got %T", t.kind, v)
		}
		binary.LittleEndian.PutUint64(b, new(big.Int).And(n, maxUint64).Uint64())
		return nil
	}

	f, ok := toNumber(v)
	if !ok {
		return fmt.Errorf("%s element needs a number, got %T", t.kind, v)
	}

	switch t.kind {
	case Int8, Uint8:
		b[0] = byte(wrapInt(f))
	case Uint8Clamped:
		b[0] = byte(math.RoundToEven(math.Max(0, math.Min(255, nanToZero(f)))))
	case Int16, Uint16:
		binary.LittleEndian.PutUint16(b, uint16(wrapInt(f)))
	case Int32, Uint32:
		binary.LittleEndian.PutUint32(b, uint32(wrapInt(f)))
	case Float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(f)))
	case Float64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(f))
	}

	return nil
}

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

func (t *TypedArray) element(i int) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if i < 0 || i >= t.length {
		return nil, fmt.Errorf("%w: index %d of %d", ErrOutOfBounds, i, t.length)
	}

	size := t.kind.Size()
	start := t.offset + i*size

	return t.buffer.data[start : start+size], nil
}

func nanToZero(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}

	return f
}

// wrapInt truncates f toward zero and wraps it modulo 2^64.
func wrapInt(f float64) uint64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	t := math.Mod(math.Trunc(f), 1<<64)
	switch {
	case t >= 0:
		return uint64(t)
	case t >= -(1 << 63):
		return uint64(int64(t))
	default:
		return uint64(t + (1 << 64))
	}
}

// DataView is an untyped window of ByteLength bytes into a buffer.
type DataView struct {
	Object
	buffer *ArrayBuffer
	offset int
	length int
}

func NewDataView(proto *Object, buf *ArrayBuffer, offset, length int) (*DataView, error) {
	v := &DataView{buffer: buf, offset: offset, length: length}
	if err := v.Validate(); err != nil {
		return nil, err
	}

	v.Init(proto, v)
	return v, nil
}

func (v *DataView) Buffer() *ArrayBuffer { return v.buffer }

func (v *DataView) ByteOffset() int { return v.offset }

func (v *DataView) ByteLength() int { return v.length }

func (v *DataView) Validate() error {
	return checkWindow(v.buffer, v.offset, v.length, 1)
}

// Bytes returns the live window.
func (v *DataView) Bytes() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	return v.buffer.data[v.offset : v.offset+v.length], nil
}
