package action

import "math"

// Filter shapes an analog action value before it is stored and published.
// prev is the previously stored value for the same action name (0 when the
// action has never fired).
type Filter interface {
	Apply(value, prev float64) float64
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc func(value, prev float64) float64

// Apply calls f.
func (f FilterFunc) Apply(value, prev float64) float64 {
	return f(value, prev)
}

// DeadZone clamps values whose magnitude is below the threshold to zero.
// Values above the threshold pass through unchanged.
func DeadZone(threshold float64) Filter {
	return FilterFunc(func(value, _ float64) float64 {
		if math.Abs(value) < threshold {
			return 0
		}
		return value
	})
}

// Smoothing pulls each new value toward the previously stored value by the
// given factor. Factor 0 passes values through; factor 1 freezes them.
func Smoothing(factor float64) Filter {
	return FilterFunc(func(value, prev float64) float64 {
		return value + factor*(prev-value)
	})
}

// CurveFunc is a response curve over a single value.
type CurveFunc func(float64) float64

// Curve applies a response curve to the value, preserving sign. The curve
// receives the magnitude so easing functions defined on [0,1] behave
// symmetrically for negative deflections.
func Curve(fn CurveFunc) Filter {
	return FilterFunc(func(value, _ float64) float64 {
		if fn == nil {
			return value
		}
		mag := fn(math.Abs(value))
		if value < 0 {
			return -mag
		}
		return mag
	})
}

// TweenFunc matches the shape of gween/ease easing functions:
// f(t, b, c, d) where t is elapsed time, b the beginning value, c the total
// change, and d the duration.
type TweenFunc func(t, b, c, d float32) float32

// EaseCurve adapts a gween/ease easing function into a response curve over
// [0,1]: the input magnitude plays the role of elapsed time over a unit
// duration.
func EaseCurve(fn TweenFunc) CurveFunc {
	return func(v float64) float64 {
		if fn == nil {
			return v
		}
		return float64(fn(float32(v), 0, 1, 1))
	}
}

// Chain applies filters in order, feeding each one's output into the next.
type Chain []Filter

// Apply runs the chain.
func (c Chain) Apply(value, prev float64) float64 {
	for _, f := range c {
		if f == nil {
			continue
		}
		value = f.Apply(value, prev)
	}
	return value
}

// Pipeline is the per-manager filter configuration: a default chain plus
// per-action overrides keyed by action name.
type Pipeline struct {
	defaults  Chain
	overrides map[string]Chain
}

// NewPipeline creates a pipeline with the given default chain.
func NewPipeline(defaults ...Filter) *Pipeline {
	return &Pipeline{
		defaults:  Chain(defaults),
		overrides: make(map[string]Chain),
	}
}

// Override replaces the chain used for one action name.
func (p *Pipeline) Override(name string, filters ...Filter) {
	p.overrides[name] = Chain(filters)
}

// Apply shapes a value for the named action.
func (p *Pipeline) Apply(name string, value, prev float64) float64 {
	if p == nil {
		return value
	}
	if chain, ok := p.overrides[name]; ok {
		return chain.Apply(value, prev)
	}
	return p.defaults.Apply(value, prev)
}
