package clone

import (
	"bytes"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"true-clone/classify"
	"true-clone/object"
)

var errUnsupported = errors.New("no reconstruction for this kind")

// shell allocates the empty, correctly typed destination for src, linked to
// the same template. Only state that cannot be expressed as properties or
// entries is carried over here.
func (s *state) shell(src object.Composite, kind classify.KindEnum) (object.Composite, error) {
	dst, err := s.reconstruct(src, kind)
	if err != nil {
		var rerr *ReconstructError
		if errors.As(err, &rerr) {
			if ce := s.cloner.log.Check(zap.DebugLevel, "reconstruction failed"); ce != nil {
				ce.Write(zap.Stringer("kind", kind), zap.Error(rerr.Reason))
			}
		}
		return nil, err
	}

	return dst, nil
}

func (s *state) reconstruct(src object.Composite, kind classify.KindEnum) (object.Composite, error) {
	proto := src.Base().Proto()

	switch kind {
	case classify.KindObject:
		return object.New(proto), nil

	case classify.KindArray:
		return object.NewArray(proto, src.(*object.Array).Len()), nil

	case classify.KindMap:
		return object.NewMap(proto), nil

	case classify.KindSet:
		return object.NewSet(proto), nil

	case classify.KindBoxed:
		inner, err := s.value(src.(*object.Boxed).Value())
		if err != nil {
			return nil, err
		}
		b, err := object.NewBoxed(proto, inner)
		if err != nil {
			return nil, reconstructErr(kind, err)
		}
		return b, nil

	case classify.KindArrayBuffer:
		buf := src.(*object.ArrayBuffer)
		out := object.ArrayBufferFrom(proto, bytes.Clone(buf.Bytes()))
		if buf.Detached() {
			out.Detach()
		}
		return out, nil

	case classify.KindTypedArray:
		view := src.(*object.TypedArray)
		if err := view.Validate(); err != nil {
			return nil, reconstructErr(kind, err)
		}
		buf, err := s.buffer(view.Buffer(), kind)
		if err != nil {
			return nil, err
		}
		out, err := object.NewTypedArray(proto, view.Kind(), buf, view.ByteOffset(), view.Len())
		if err != nil {
			return nil, reconstructErr(kind, err)
		}
		return out, nil

	case classify.KindDataView:
		view := src.(*object.DataView)
		if err := view.Validate(); err != nil {
			return nil, reconstructErr(kind, err)
		}
		buf, err := s.buffer(view.Buffer(), kind)
		if err != nil {
			return nil, err
		}
		out, err := object.NewDataView(proto, buf, view.ByteOffset(), view.ByteLength())
		if err != nil {
			return nil, reconstructErr(kind, err)
		}
		return out, nil

	case classify.KindRegExp:
		re := src.(*object.RegExp)
		out, err := object.NewRegExp(proto, re.Source(), re.Flags())
		if err != nil {
			return nil, reconstructErr(kind, err)
		}
		return out, nil

	case classify.KindDate:
		return object.NewDate(proto, src.(*object.Date).Value()), nil

	case classify.KindError:
		e := src.(*object.Error)
		if !e.Kind().Valid() {
			return nil, reconstructErr(kind, fmt.Errorf("%w: %s", object.ErrUnknownError, e.Kind()))
		}
		return object.NewError(proto, e.Kind(), ""), nil

	default:
		return nil, reconstructErr(kind, errUnsupported)
	}
}

// buffer clones the backing buffer of a view through the memo, so views
// sharing one source buffer end up sharing one fresh buffer.
func (s *state) buffer(src *object.ArrayBuffer, kind classify.KindEnum) (*object.ArrayBuffer, error) {
	cloned, err := s.value(src)
	if err != nil {
		return nil, err
	}

	buf, ok := cloned.(*object.ArrayBuffer)
	if !ok {
		return nil, reconstructErr(kind, fmt.Errorf("backing buffer cloned to %T", cloned))
	}

	return buf, nil
}
