package object

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

var (
	ErrNotBoxable   = errors.New("only primitives can be boxed")
	ErrRegExpFlags  = errors.New("invalid regular expression flags")
	ErrUncompiled   = errors.New("regular expression is not compiled")
	ErrUnknownError = errors.New("unknown error kind")
)

// Boxed wraps a single primitive in an object.
type Boxed struct {
	Object
	value any
}

// NewBoxed wraps v. Only booleans, numbers, strings, big integers and symbols can be wrapped.
func NewBoxed(proto *Object, v any) (*Boxed, error) {
	if !IsBoxable(v) {
		return nil, fmt.Errorf("%w: %T", ErrNotBoxable, v)
	}

	b := &Boxed{value: v}
	b.Init(proto, b)

	return b, nil
}

// IsBoxable reports whether v is a primitive that has a wrapper form.
func IsBoxable(v any) bool {
	switch x := v.(type) {
	case bool, string:
		return true
	case *big.Int:
		return x != nil
	case *Symbol:
		return x != nil
	default:
		return IsNumber(v)
	}
}

func (b *Boxed) Value() any { return b.value }

// RegExp is a compiled matching rule. Its cursor lives in the ordinary
// lastIndex property.
type RegExp struct {
	Object
	source string
	flags  string
	re     *regexp2.Regexp
}

// LastIndex is the key of the cursor property every RegExp owns.
var LastIndex = Key("lastIndex")

const regexpFlagOrder = "dgimsuvy"

// NewRegExp compiles source with ECMAScript semantics. flags may contain each
// of d, g, i, m, s, u, v and y at most once, and not both u and v.
func NewRegExp(proto *Object, source, flags string) (*RegExp, error) {
	canonical, opts, err := parseRegExpFlags(flags)
	if err != nil {
		return nil, err
	}

	re, err := regexp2.Compile(source, opts)
	if err != nil {
		return nil, fmt.Errorf("compile /%s/%s: %w", source, flags, err)
	}

	r := &RegExp{source: source, flags: canonical, re: re}
	r.Init(proto, r)
	r.define(LastIndex, DataDescriptor{Value: float64(0), Attrs: Writable})

	return r, nil
}

func parseRegExpFlags(flags string) (string, regexp2.RegexOptions, error) {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	seen := make(map[rune]bool, len(flags))

	for _, ch := range flags {
		if !strings.ContainsRune(regexpFlagOrder, ch) || seen[ch] {
			return "", 0, fmt.Errorf("%w: %q", ErrRegExpFlags, flags)
		}
		seen[ch] = true

		switch ch {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'u', 'v':
			opts |= regexp2.Unicode
		}
	}
	if seen['u'] && seen['v'] {
		return "", 0, fmt.Errorf("%w: %q", ErrRegExpFlags, flags)
	}

	out := []rune(flags)
	sort.Slice(out, func(i, j int) bool {
		return strings.IndexRune(regexpFlagOrder, out[i]) < strings.IndexRune(regexpFlagOrder, out[j])
	})

	return string(out), opts, nil
}

func (r *RegExp) Source() string { return r.source }

// Flags returns the flags in canonical order.
func (r *RegExp) Flags() string { return r.flags }

func (r *RegExp) String() string { return "/" + r.source + "/" + r.flags }

// MatchString reports whether s contains a match.
func (r *RegExp) MatchString(s string) (bool, error) {
	if r.re == nil {
		return false, ErrUncompiled
	}

	return r.re.MatchString(s)
}

// Date holds one instant as milliseconds since the Unix epoch. NaN is an invalid date.
type Date struct {
	Object
	ms float64
}

func NewDate(proto *Object, ms float64) *Date {
	d := &Date{ms: ms}
	d.Init(proto, d)

	return d
}

// DateOf converts t to millisecond precision.
func DateOf(proto *Object, t time.Time) *Date {
	return NewDate(proto, float64(t.UnixMilli()))
}

func (d *Date) Value() float64 { return d.ms }

func (d *Date) SetValue(ms float64) { d.ms = ms }

// Time converts the instant back to a time.Time; ok is false for invalid dates.
func (d *Date) Time() (t time.Time, ok bool) {
	if math.IsNaN(d.ms) || math.IsInf(d.ms, 0) {
		return time.Time{}, false
	}

	return time.UnixMilli(int64(d.ms)).UTC(), true
}

// ErrorKind classifies an Error.
type ErrorKind int

const (
	PlainError ErrorKind = iota
	TypeError
	RangeError
	SyntaxError
	ReferenceError
	EvalError
	URIError
	AggregateError
)

var errorKindNames = [...]string{
	PlainError:     "Error",
	TypeError:      "TypeError",
	RangeError:     "RangeError",
	SyntaxError:    "SyntaxError",
	ReferenceError: "ReferenceError",
	EvalError:      "EvalError",
	URIError:       "URIError",
	AggregateError: "AggregateError",
}

func (k ErrorKind) Valid() bool { return k >= 0 && int(k) < len(errorKindNames) }

func (k ErrorKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}

	return errorKindNames[k]
}

// ParseErrorKind maps a name such as "TypeError" back to its kind.
func ParseErrorKind(name string) (ErrorKind, error) {
	for i, n := range errorKindNames {
		if n == name {
			return ErrorKind(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownError, name)
}

var (
	MessageKey = Key("message")
	StackKey   = Key("stack")
	CauseKey   = Key("cause")
)

// Error is a diagnostic value. Its message, stack trace and cause are
// ordinary non-enumerable own properties.
type Error struct {
	Object
	kind ErrorKind
}

// NewError returns an error of the given kind. An empty message defines no message property.
func NewError(proto *Object, kind ErrorKind, message string) *Error {
	e := &Error{kind: kind}
	e.Init(proto, e)
	if message != "" {
		e.define(MessageKey, DataDescriptor{Value: message, Attrs: Writable | Configurable})
	}

	return e
}

func (e *Error) Kind() ErrorKind { return e.kind }

// Message returns the message property when it is a string.
func (e *Error) Message() string {
	v, err := e.Get(MessageKey)
	if err != nil {
		return ""
	}

	s, _ := v.(string)
	return s
}

// SetStack records a trace annotation.
func (e *Error) SetStack(trace string) {
	e.define(StackKey, DataDescriptor{Value: trace, Attrs: Writable | Configurable})
}

// Stack returns the trace annotation, if any.
func (e *Error) Stack() (string, bool) {
	d, ok := e.GetOwnProperty(StackKey)
	if !ok {
		return "", false
	}

	dd, ok := d.(DataDescriptor)
	if !ok {
		return "", false
	}

	s, ok := dd.Value.(string)
	return s, ok
}

func (e *Error) Error() string {
	if msg := e.Message(); msg != "" {
		return e.kind.String() + ": " + msg
	}

	return e.kind.String()
}

// WeakMap holds entries keyed by composites without owning them. Its entries
// are not part of the value graph.
type WeakMap struct {
	Object
	entries map[Composite]any
}

func NewWeakMap(proto *Object) *WeakMap {
	w := &WeakMap{entries: make(map[Composite]any)}
	w.Init(proto, w)

	return w
}

func (w *WeakMap) Set(k Composite, v any) { w.entries[k] = v }

func (w *WeakMap) Get(k Composite) (any, bool) {
	v, ok := w.entries[k]
	return v, ok
}

// WeakSet holds composites without owning them.
type WeakSet struct {
	Object
	members map[Composite]struct{}
}

func NewWeakSet(proto *Object) *WeakSet {
	w := &WeakSet{members: make(map[Composite]struct{})}
	w.Init(proto, w)

	return w
}

func (w *WeakSet) Add(v Composite) { w.members[v] = struct{}{} }

func (w *WeakSet) Has(v Composite) bool {
	_, ok := w.members[v]
	return ok
}

// WeakRef refers to a composite without owning it.
type WeakRef struct {
	Object
	target Composite
}

func NewWeakRef(proto *Object, target Composite) *WeakRef {
	w := &WeakRef{target: target}
	w.Init(proto, w)

	return w
}

func (w *WeakRef) Deref() Composite { return w.target }
