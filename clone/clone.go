package clone

import (
	"go.uber.org/zap"

	"true-clone/object"
	"true-clone/options"
)

// Custom is the capability token for custom clone hooks. Binding a function
// under SymbolKey(Custom), on a composite or anywhere on its template chain,
// makes that function's result the composite's clone.
var Custom = object.NewSymbol("true-clone.custom")

// Cloner copies value graphs. It holds no per-call state and is safe for
// concurrent use, provided no source graph is mutated while it is copied.
type Cloner struct {
	log      *zap.Logger
	flags    options.FlagEnum
	maxDepth int
}

type Option func(*Cloner)

// WithLogger routes debug traces of hook dispatch and reconstruction failures to l.
func WithLogger(l *zap.Logger) Option {
	return func(c *Cloner) {
		if l != nil {
			c.log = l
		}
	}
}

// WithFlags replaces the behavior flags (default options.FlagAll).
func WithFlags(flags options.FlagEnum) Option {
	return func(c *Cloner) { c.flags = flags }
}

// WithMaxDepth fails a call with ErrTooDeep once more than n composites are
// nested. Zero means no limit.
func WithMaxDepth(n int) Option {
	return func(c *Cloner) { c.maxDepth = n }
}

func New(opts ...Option) *Cloner {
	c := &Cloner{
		log:   zap.NewNop(),
		flags: options.FlagAll,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

var defaultCloner = New()

// Clone deep-copies v with default settings. Primitives, functions and weak
// containers come back as they are. On failure nothing is returned: a hook
// error comes back unchanged and inconsistent composites yield a
// *ReconstructError.
func Clone(v any) (any, error) {
	return defaultCloner.Clone(v)
}

// Clone deep-copies v. Each call uses its own identity memo.
func (c *Cloner) Clone(v any) (any, error) {
	s := &state{cloner: c}

	out, err := s.value(v)
	if err != nil {
		return nil, err
	}

	if ce := c.log.Check(zap.DebugLevel, "value graph cloned"); ce != nil {
		ce.Write(zap.Int("composites", s.memo.len()))
	}

	return out, nil
}
