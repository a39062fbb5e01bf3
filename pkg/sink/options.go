package sink

// Option configures the SVG and text renderers.
type Option func(*renderer)

type renderer struct {
	labels  bool
	scale   float64
	columns int
}

// DefaultColumns is the text grid width used when none is given.
const DefaultColumns = 80

// WithLabels draws item labels (or IDs) inside their blocks.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithScale multiplies the SVG output size. Values <= 0 are ignored.
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithColumns sets the width of the text grid in characters.
func WithColumns(n int) Option {
	return func(r *renderer) {
		if n > 0 {
			r.columns = n
		}
	}
}

func newRenderer(opts ...Option) renderer {
	r := renderer{scale: 1, columns: DefaultColumns}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
