package clone

import (
	"fmt"

	"true-clone/classify"
	"true-clone/object"
	"true-clone/options"
)

type DispatcherEnum int

const (
	DispatcherUnknown DispatcherEnum = iota
	DispatcherPrimitive
	DispatcherOpaque
	DispatcherComposite

	// DispatcherTotal is a constant that represents the total number of routes defined
	DispatcherTotal = int(iota)
)

// Dispatch picks the route a value of kind k takes through the copier.
func Dispatch(k classify.KindEnum) DispatcherEnum {
	switch {
	case k.IsPrimitive():
		return DispatcherPrimitive
	case k.IsOpaque():
		return DispatcherOpaque
	case k.IsComposite():
		return DispatcherComposite
	default:
		return DispatcherUnknown
	}
}

// state is the per-call context threaded through the recursion.
type state struct {
	cloner *Cloner
	memo   memo
	depth  int
}

// value clones one value. Composites go memo, then hook, then shell,
// register, and contents, in that order.
func (s *state) value(v any) (any, error) {
	kind := classify.Of(v)

	if Dispatch(kind) != DispatcherComposite {
		return v, nil
	}

	src := v.(object.Composite)
	if dst, ok := s.memo.lookup(src); ok {
		return dst, nil
	}

	s.depth++
	defer func() { s.depth-- }()

	if limit := s.cloner.maxDepth; limit > 0 && s.depth > limit {
		return nil, fmt.Errorf("%w: limit %d", ErrTooDeep, limit)
	}

	if s.cloner.flags.Has(options.FlagHooks) {
		out, hooked, err := s.dispatchHook(src)
		if err != nil {
			return nil, err
		}
		if hooked {
			s.memo.register(src, out)
			return out, nil
		}
	}

	return s.composite(src, kind)
}

func (s *state) composite(src object.Composite, kind classify.KindEnum) (any, error) {
	dst, err := s.shell(src, kind)
	if err != nil {
		return nil, err
	}

	// A view reaches itself through the properties of its backing buffer
	// before its own shell exists; that inner copy is the one to keep.
	if existing, ok := s.memo.lookup(src); ok {
		return existing, nil
	}
	s.memo.register(src, dst)

	if err := s.copyProperties(src.Base(), dst.Base(), kind); err != nil {
		return nil, err
	}
	if err := s.copyEntries(src, dst); err != nil {
		return nil, err
	}

	if s.cloner.flags.Has(options.FlagExtensibility) && !src.Base().Extensible() {
		dst.Base().PreventExtensions()
	}

	return dst, nil
}
