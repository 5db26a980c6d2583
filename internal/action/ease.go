package action

import "github.com/tanema/gween/ease"

// curvesByName maps configuration-friendly curve names to easing functions.
var curvesByName = map[string]TweenFunc{
	"linear":      ease.Linear,
	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,
	"in-cubic":    ease.InCubic,
	"out-cubic":   ease.OutCubic,
	"in-sine":     ease.InSine,
	"out-sine":    ease.OutSine,
	"in-out-sine": ease.InOutSine,
	"in-expo":     ease.InExpo,
	"out-expo":    ease.OutExpo,
}

// CurveByName returns the response curve registered under a configuration
// name ("linear", "out-quad", ...). Unknown names return false.
func CurveByName(name string) (CurveFunc, bool) {
	fn, ok := curvesByName[name]
	if !ok {
		return nil, false
	}
	return EaseCurve(fn), true
}

// CurveNames returns the names accepted by CurveByName.
func CurveNames() []string {
	names := make([]string, 0, len(curvesByName))
	for name := range curvesByName {
		names = append(names, name)
	}
	return names
}
