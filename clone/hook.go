package clone

import (
	"go.uber.org/zap"

	"true-clone/object"
)

// Bind installs fn as the custom clone hook of target. Binding it on a
// template makes it the hook of every composite inheriting from it.
func Bind(target object.Composite, fn object.NativeFunc) error {
	return target.Base().Set(object.SymbolKey(Custom), object.NewFunction("clone", fn))
}

// dispatchHook looks up Custom on src and its template chain. A bound
// function is called with src as receiver and its result is the clone. A
// bound value that is not a function is ignored. Hook errors are returned
// as they are.
func (s *state) dispatchHook(src object.Composite) (out any, hooked bool, err error) {
	key := object.SymbolKey(Custom)

	if _, _, ok := src.Base().Lookup(key); !ok {
		return nil, false, nil
	}

	bound, err := src.Base().Get(key)
	if err != nil {
		return nil, false, err
	}

	hook, ok := bound.(*object.Function)
	if !ok || hook == nil {
		return nil, false, nil
	}

	out, err = hook.Call(src)
	if err != nil {
		if ce := s.cloner.log.Check(zap.DebugLevel, "custom clone hook failed"); ce != nil {
			ce.Write(zap.String("hook", hook.Name()), zap.Error(err))
		}
		return nil, false, err
	}

	if ce := s.cloner.log.Check(zap.DebugLevel, "custom clone hook dispatched"); ce != nil {
		ce.Write(zap.String("hook", hook.Name()), zap.Int("depth", s.depth))
	}

	return out, true, nil
}
