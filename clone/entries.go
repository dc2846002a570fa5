package clone

import (
	"true-clone/classify"
	"true-clone/object"
)

// copyEntries fills associative containers and collections in source order.
// Keys go through the memo like any other reference, so a composite key
// shared with a value or another entry stays shared. A key a hook turned
// into an unhashable host value fails the container.
func (s *state) copyEntries(src, dst object.Composite) error {
	switch src := src.(type) {
	case *object.Map:
		out := dst.(*object.Map)
		for _, e := range src.Entries() {
			k, err := s.value(e.Key)
			if err != nil {
				return err
			}
			if err := object.CheckKey(k); err != nil {
				return reconstructErr(classify.KindMap, err)
			}
			v, err := s.value(e.Value)
			if err != nil {
				return err
			}
			out.Set(k, v)
		}

	case *object.Set:
		out := dst.(*object.Set)
		for _, e := range src.Values() {
			v, err := s.value(e)
			if err != nil {
				return err
			}
			if err := object.CheckKey(v); err != nil {
				return reconstructErr(classify.KindSet, err)
			}
			out.Add(v)
		}
	}

	return nil
}
