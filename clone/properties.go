package clone

import (
	"true-clone/classify"
	"true-clone/object"
)

// copyProperties reproduces every own property of src on dst, in own-key
// order. Data values are cloned recursively; accessors keep the very same
// getter and setter, so they stay lazy on the clone.
func (s *state) copyProperties(src, dst *object.Object, kind classify.KindEnum) error {
	for _, key := range src.OwnKeys() {
		d, ok := src.GetOwnProperty(key)
		if !ok {
			continue
		}

		if data, isData := d.(object.DataDescriptor); isData {
			v, err := s.value(data.Value)
			if err != nil {
				return err
			}
			data.Value = v
			d = data
		}

		if err := dst.DefineProperty(key, d); err != nil {
			return reconstructErr(kind, err)
		}
	}

	return nil
}
