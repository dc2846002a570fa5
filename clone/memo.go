package clone

import "true-clone/object"

// memo maps source composites to their clones for one top-level call. An
// entry is registered as soon as a shell exists, before its contents are
// copied, so a cycle reaching the source again receives the shell.
type memo struct {
	done map[object.Composite]any
}

func (m *memo) lookup(src object.Composite) (any, bool) {
	dst, ok := m.done[src]
	return dst, ok
}

// register records dst as the clone of src. The first registration wins.
func (m *memo) register(src object.Composite, dst any) {
	if m.done == nil {
		m.done = make(map[object.Composite]any)
	}

	if _, exists := m.done[src]; !exists {
		m.done[src] = dst
	}
}

func (m *memo) len() int { return len(m.done) }
