// Package verify checks a cloned value graph against its source.
//
// The check walks both graphs in lockstep and reports, as diagnostics:
//   - kind, value, length, byte and descriptor differences
//   - broken sharing: a source composite reached twice must map to one clone
//     composite, and two source composites must never share one clone
//   - aliasing: a clone composite or buffer that is the source one
//   - template links that differ
//
// A source composite that binds a custom clone hook is compared by identity
// only and reported as a warning, since its clone is whatever the hook made.
package verify

import (
	"bytes"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"true-clone/classify"
	"true-clone/clone"
	"true-clone/internal/diagnostic"
	"true-clone/object"
)

// Diagnostic codes.
const (
	CodeKindMismatch        = "kind-mismatch"
	CodeValueMismatch       = "value-mismatch"
	CodeIdentityBroken      = "identity-broken"
	CodeIdentityMerged      = "identity-merged"
	CodeSharedReference     = "shared-reference"
	CodeBufferAliased       = "buffer-aliased"
	CodeTemplateMismatch    = "template-mismatch"
	CodeExtensibility       = "extensibility-mismatch"
	CodeKeysMismatch        = "keys-mismatch"
	CodeDescriptorMismatch  = "descriptor-mismatch"
	CodeAttributesMismatch  = "attributes-mismatch"
	CodeAccessorMismatch    = "accessor-mismatch"
	CodeLengthMismatch      = "length-mismatch"
	CodeContentMismatch     = "content-mismatch"
	CodeHostValue           = "host-value"
	CodeWeakPassThrough     = "weak-pass-through"
	CodeDetachedPassThrough = "detached-buffer"
	CodeHookResult          = "hook-result"
)

// Report is the outcome of one comparison.
type Report struct {
	diagnostic.Diagnostics

	// Composites counts distinct source composites visited.
	Composites int
	// Revisits counts arrivals at a composite that was already visited,
	// that is, shared references and cycle back-edges.
	Revisits int
}

// Summary renders the counters on one line.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d composites, %d shared references, %d errors, %d warnings",
		r.Composites, r.Revisits, len(r.Errors), len(r.Warnings))
}

// Compare checks that dst is a detached, faithful clone of src.
func Compare(src, dst any) *Report {
	w := newWalker(true)
	w.walk(src, dst, "$")

	return w.report
}

// Equivalent reports whether a and b are deep-equal graphs with the same
// sharing structure. Unlike Compare it accepts composites shared between them.
func Equivalent(a, b any) bool {
	w := newWalker(false)
	w.walk(a, b, "$")

	return !w.report.HasErrors()
}

type walker struct {
	report   *Report
	detached bool
	forward  map[object.Composite]object.Composite
	backward map[object.Composite]object.Composite
	hooked   map[object.Composite]any
}

func newWalker(detached bool) *walker {
	return &walker{
		report:   &Report{},
		detached: detached,
		forward:  make(map[object.Composite]object.Composite),
		backward: make(map[object.Composite]object.Composite),
		hooked:   make(map[object.Composite]any),
	}
}

func (w *walker) errorf(code string, kind classify.KindEnum, path, format string, args ...any) {
	w.report.AddError(code, fmt.Sprintf(format, args...), kind.String(), path)
}

func (w *walker) warnf(code string, kind classify.KindEnum, path, format string, args ...any) {
	w.report.AddWarning(code, fmt.Sprintf(format, args...), kind.String(), path)
}

func (w *walker) walk(src, dst any, path string) {
	ks, kd := classify.Of(src), classify.Of(dst)
	if s, ok := src.(object.Composite); ok && ks.IsComposite() && hasHook(s) {
		w.walkHooked(s, dst, ks, kd, path)
		return
	}
	if ks != kd {
		w.errorf(CodeKindMismatch, ks, path, "source is %s, clone is %s", ks, kd)
		return
	}

	switch {
	case ks == classify.KindHost:
		w.report.AddInfo(CodeHostValue, fmt.Sprintf("host value %T shared by reference", src), ks.String(), path)
		if t := reflect.TypeOf(src); t.Comparable() && reflect.TypeOf(dst) == t && src != dst {
			w.errorf(CodeValueMismatch, ks, path, "host value was replaced")
		}
		return
	case ks == classify.KindWeak:
		w.report.AddInfo(CodeWeakPassThrough, "weak container shared by reference", ks.String(), path)
		if src != dst {
			w.errorf(CodeValueMismatch, ks, path, "weak container was replaced")
		}
		return
	case !ks.IsComposite():
		if !object.SameValue(src, dst) {
			w.errorf(CodeValueMismatch, ks, path, "source %v, clone %v", src, dst)
		}
		return
	}

	s, d := src.(object.Composite), dst.(object.Composite)

	if prev, seen := w.forward[s]; seen {
		w.report.Revisits++
		if prev != d {
			w.errorf(CodeIdentityBroken, ks, path, "composite reached again maps to a different clone")
		}
		return
	}
	if prev, seen := w.backward[d]; seen && prev != s {
		w.errorf(CodeIdentityMerged, ks, path, "two source composites share one clone")
		return
	}

	w.forward[s] = d
	w.backward[d] = s
	w.report.Composites++

	if w.detached && s == d {
		w.errorf(CodeSharedReference, ks, path, "clone is the source composite itself")
		return
	}

	w.compareBase(s.Base(), d.Base(), ks, path)
	w.compareInternal(s, d, ks, path)
}

// walkHooked records the clone a hook produced for s. Reaching s again must
// yield the same result.
func (w *walker) walkHooked(s object.Composite, dst any, ks, kd classify.KindEnum, path string) {
	if prev, seen := w.hooked[s]; seen {
		w.report.Revisits++
		if !object.SameValue(prev, dst) {
			w.errorf(CodeIdentityBroken, ks, path, "composite reached again maps to a different hook result")
		}
		return
	}

	w.hooked[s] = dst
	w.report.Composites++

	if ks != kd {
		w.warnf(CodeHookResult, ks, path, "custom clone hook turned %s into %s", ks, kd)
		return
	}
	w.warnf(CodeHookResult, ks, path, "custom clone hook bound, structure not compared")
}

// hasHook reports whether s or its template chain binds a callable clone hook.
func hasHook(s object.Composite) bool {
	key := object.SymbolKey(clone.Custom)
	if _, _, ok := s.Base().Lookup(key); !ok {
		return false
	}

	bound, err := s.Base().Get(key)
	if err != nil {
		return false
	}
	fn, ok := bound.(*object.Function)

	return ok && fn != nil
}

func (w *walker) compareBase(s, d *object.Object, kind classify.KindEnum, path string) {
	if s.Proto() != d.Proto() {
		w.errorf(CodeTemplateMismatch, kind, path, "clone is linked to a different template")
	}
	if s.Extensible() != d.Extensible() {
		w.errorf(CodeExtensibility, kind, path, "source extensible=%t, clone extensible=%t", s.Extensible(), d.Extensible())
	}

	sk, dk := s.OwnKeys(), d.OwnKeys()
	if !slices.Equal(sk, dk) {
		w.errorf(CodeKeysMismatch, kind, path, "source keys %s, clone keys %s", renderKeys(sk), renderKeys(dk))
	}

	for _, key := range sk {
		sd, _ := s.GetOwnProperty(key)
		dd, ok := d.GetOwnProperty(key)
		if !ok {
			continue
		}

		at := path + segment(key)
		if sd.Attributes() != dd.Attributes() {
			w.errorf(CodeAttributesMismatch, kind, at, "source %s, clone %s", sd.Attributes(), dd.Attributes())
		}

		switch sv := sd.(type) {
		case object.DataDescriptor:
			dv, ok := dd.(object.DataDescriptor)
			if !ok {
				w.errorf(CodeDescriptorMismatch, kind, at, "data property became an accessor")
				continue
			}
			w.walk(sv.Value, dv.Value, at)
		case object.AccessorDescriptor:
			dv, ok := dd.(object.AccessorDescriptor)
			if !ok {
				w.errorf(CodeDescriptorMismatch, kind, at, "accessor property became data")
				continue
			}
			if sv.Get != dv.Get || sv.Set != dv.Set {
				w.errorf(CodeAccessorMismatch, kind, at, "accessor functions were replaced")
			}
		}
	}
}

func (w *walker) compareInternal(s, d object.Composite, kind classify.KindEnum, path string) {
	switch s := s.(type) {
	case *object.Array:
		if n := d.(*object.Array).Len(); s.Len() != n {
			w.errorf(CodeLengthMismatch, kind, path, "source length %d, clone length %d", s.Len(), n)
		}

	case *object.Map:
		se, de := s.Entries(), d.(*object.Map).Entries()
		if len(se) != len(de) {
			w.errorf(CodeLengthMismatch, kind, path, "source has %d entries, clone %d", len(se), len(de))
			return
		}
		for i := range se {
			w.walk(se[i].Key, de[i].Key, fmt.Sprintf("%s{%d}.key", path, i))
			w.walk(se[i].Value, de[i].Value, fmt.Sprintf("%s{%d}.value", path, i))
		}

	case *object.Set:
		sv, dv := s.Values(), d.(*object.Set).Values()
		if len(sv) != len(dv) {
			w.errorf(CodeLengthMismatch, kind, path, "source has %d elements, clone %d", len(sv), len(dv))
			return
		}
		for i := range sv {
			w.walk(sv[i], dv[i], fmt.Sprintf("%s{%d}", path, i))
		}

	case *object.Boxed:
		w.walk(s.Value(), d.(*object.Boxed).Value(), path+".[[value]]")

	case *object.ArrayBuffer:
		db := d.(*object.ArrayBuffer)
		if s.Detached() != db.Detached() {
			w.errorf(CodeContentMismatch, kind, path, "source detached=%t, clone detached=%t", s.Detached(), db.Detached())
		}
		if s.Detached() {
			w.report.AddInfo(CodeDetachedPassThrough, "detached buffer", kind.String(), path)
		}
		if !bytes.Equal(s.Bytes(), db.Bytes()) {
			w.errorf(CodeContentMismatch, kind, path, "buffer bytes differ")
		}
		if w.detached && len(s.Bytes()) > 0 && len(db.Bytes()) > 0 && &s.Bytes()[0] == &db.Bytes()[0] {
			w.errorf(CodeBufferAliased, kind, path, "clone shares the source bytes")
		}

	case *object.TypedArray:
		dt := d.(*object.TypedArray)
		if s.Kind() != dt.Kind() || s.ByteOffset() != dt.ByteOffset() || s.Len() != dt.Len() {
			w.errorf(CodeContentMismatch, kind, path, "source %s@%d×%d, clone %s@%d×%d",
				s.Kind(), s.ByteOffset(), s.Len(), dt.Kind(), dt.ByteOffset(), dt.Len())
		}
		w.walk(s.Buffer(), dt.Buffer(), path+".buffer")

	case *object.DataView:
		dv := d.(*object.DataView)
		if s.ByteOffset() != dv.ByteOffset() || s.ByteLength() != dv.ByteLength() {
			w.errorf(CodeContentMismatch, kind, path, "source window %d+%d, clone %d+%d",
				s.ByteOffset(), s.ByteLength(), dv.ByteOffset(), dv.ByteLength())
		}
		w.walk(s.Buffer(), dv.Buffer(), path+".buffer")

	case *object.RegExp:
		if dr := d.(*object.RegExp); s.String() != dr.String() {
			w.errorf(CodeContentMismatch, kind, path, "source %s, clone %s", s, dr)
		}

	case *object.Date:
		if dd := d.(*object.Date); !object.SameValue(s.Value(), dd.Value()) {
			w.errorf(CodeContentMismatch, kind, path, "source instant %v, clone %v", s.Value(), dd.Value())
		}

	case *object.Error:
		if de := d.(*object.Error); s.Kind() != de.Kind() {
			w.errorf(CodeContentMismatch, kind, path, "source %s, clone %s", s.Kind(), de.Kind())
		}
	}
}

func segment(key object.PropertyKey) string {
	if key.IsSymbol() {
		return "." + key.String()
	}
	if idx, ok := key.ArrayIndex(); ok {
		return fmt.Sprintf("[%d]", idx)
	}

	return "." + key.Name()
}

func renderKeys(keys []object.PropertyKey) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k.String())
	}

	return "[" + strings.Join(parts, " ") + "]"
}
