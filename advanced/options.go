package advanced

import (
	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

type options struct {
	region          r2.Rect
	vertexHitRadius float64
	edgeHitRadius   float64
	selfCheck       bool
	logger          *zap.Logger
}

func defaultOptions() options {
	return options{
		region: r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}),
		logger: zap.NewNop(),
	}
}

type Option func(*options)

// The editable region. Vertices can only be placed inside it, and its corners
// are the synthetic vertices of the bounding figure. Defaults to the unit
// square.
func WithRegion(region r2.Rect) Option {
	return func(o *options) {
		o.region = region
	}
}

// Tolerances used when locating points. With both at zero, only exact
// coincidence counts as hitting a vertex or an edge.
func WithHitTestRadii(vertexRadius, edgeRadius float64) Option {
	return func(o *options) {
		o.vertexHitRadius = vertexRadius
		o.edgeHitRadius = edgeRadius
	}
}

// Run SelfCheck after every mutation and log what it finds.
func WithSelfCheck(enabled bool) Option {
	return func(o *options) {
		o.selfCheck = enabled
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
