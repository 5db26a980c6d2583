package source

import (
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
)

// TouchName is the canonical touch source name.
const TouchName = "touch"

// Touch classification defaults.
const (
	DefaultTapMaxDuration       = 200 * time.Millisecond
	DefaultTapMaxDistancePx     = 10.0
	DefaultLongPressMinDuration = 500 * time.Millisecond
	DefaultSwipeMaxDuration     = 300 * time.Millisecond
	DefaultSwipeMinDistancePx   = 50.0
)

// TouchConfig configures the touch adapter.
type TouchConfig struct {
	// Logger receives adapter diagnostics.
	Logger zerolog.Logger

	// TapMaxDuration is the longest press still classifying as a tap.
	TapMaxDuration time.Duration

	// TapMaxDistancePx is the largest travel still classifying as a tap
	// or long-press.
	TapMaxDistancePx float64

	// LongPressMinDuration is the shortest press classifying as a
	// long-press.
	LongPressMinDuration time.Duration

	// SwipeMaxDuration is the longest press still classifying as a swipe.
	SwipeMaxDuration time.Duration

	// SwipeMinDistancePx is the smallest travel classifying as a swipe.
	SwipeMinDistancePx float64

	// Clock supplies event timestamps. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultTouchConfig returns a configuration with the documented defaults.
func DefaultTouchConfig() TouchConfig {
	return TouchConfig{
		Logger:               zerolog.Nop(),
		TapMaxDuration:       DefaultTapMaxDuration,
		TapMaxDistancePx:     DefaultTapMaxDistancePx,
		LongPressMinDuration: DefaultLongPressMinDuration,
		SwipeMaxDuration:     DefaultSwipeMaxDuration,
		SwipeMinDistancePx:   DefaultSwipeMinDistancePx,
		Clock:                time.Now,
	}
}

// touchState tracks one finger from begin to end.
type touchState struct {
	start     raw.Point
	current   raw.Point
	startTime time.Time
	// consumed marks the cycle claimed by a two-finger gesture; its end
	// classification is suppressed.
	consumed bool
}

// pinchState tracks an active two-finger gesture.
type pinchState struct {
	active      bool
	id0, id1    int64
	initialDist float64
	prevDist    float64
	prevAngle   float64
}

// Touch tracks per-touch-id state and classifies each cycle at touch end
// as tap, long-press, or swipe by elapsed duration and travelled distance.
// Two concurrent touches drive pinch and rotate streams instead and
// suppress the per-touch classification for those cycles.
type Touch struct {
	mu       sync.Mutex
	config   TouchConfig
	dispatch raw.Dispatcher
	touches  map[int64]*touchState
	pinch    pinchState
	closed   bool
}

// NewTouch creates a touch adapter.
func NewTouch(config TouchConfig) *Touch {
	if config.TapMaxDuration <= 0 {
		config.TapMaxDuration = DefaultTapMaxDuration
	}
	if config.TapMaxDistancePx <= 0 {
		config.TapMaxDistancePx = DefaultTapMaxDistancePx
	}
	if config.LongPressMinDuration <= 0 {
		config.LongPressMinDuration = DefaultLongPressMinDuration
	}
	if config.SwipeMaxDuration <= 0 {
		config.SwipeMaxDuration = DefaultSwipeMaxDuration
	}
	if config.SwipeMinDistancePx <= 0 {
		config.SwipeMinDistancePx = DefaultSwipeMinDistancePx
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &Touch{
		config:  config,
		touches: make(map[int64]*touchState),
	}
}

// Name returns the source name.
func (t *Touch) Name() string {
	return TouchName
}

// Attach wires the adapter to the dispatcher.
func (t *Touch) Attach(dispatch raw.Dispatcher) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dispatch = dispatch
	return nil
}

// Available always reports true; hosts without touch simply never call in.
func (t *Touch) Available() bool {
	return true
}

// TouchBegin starts tracking a finger. A second concurrent finger starts
// the pinch/rotate streams and consumes both cycles.
func (t *Touch) TouchBegin(id int64, pos raw.Point) {
	t.mu.Lock()
	if t.closed || t.dispatch == nil {
		t.mu.Unlock()
		return
	}

	now := t.config.Clock()
	t.touches[id] = &touchState{
		start:     pos,
		current:   pos,
		startTime: now,
	}

	var emissions []raw.Event
	if !t.pinch.active && len(t.touches) == 2 {
		ids := make([]int64, 0, 2)
		for tid := range t.touches {
			ids = append(ids, tid)
		}
		p0 := t.touches[ids[0]]
		p1 := t.touches[ids[1]]
		p0.consumed = true
		p1.consumed = true

		span := p1.current.Sub(p0.current)
		t.pinch = pinchState{
			active:      true,
			id0:         ids[0],
			id1:         ids[1],
			initialDist: span.Magnitude(),
			prevDist:    span.Magnitude(),
			prevAngle:   span.Angle(),
		}

		emissions = append(emissions,
			raw.Event{Input: raw.InputPinch, Phase: raw.PhasePressed, Kind: raw.KindStream, Value: 1, Time: now},
			raw.Event{Input: raw.InputRotate, Phase: raw.PhasePressed, Kind: raw.KindStream, Value: 1, Time: now},
		)
	}
	dispatch := t.dispatch
	t.mu.Unlock()

	for _, ev := range emissions {
		dispatch(ev)
	}
}

// TouchMove advances a finger. While a two-finger gesture is active the
// move drives the pinch (distance ratio) and rotate (angle delta) streams.
func (t *Touch) TouchMove(id int64, pos raw.Point) {
	t.mu.Lock()
	if t.closed || t.dispatch == nil {
		t.mu.Unlock()
		return
	}

	state, ok := t.touches[id]
	if !ok {
		t.mu.Unlock()
		return
	}
	state.current = pos

	var emissions []raw.Event
	now := t.config.Clock()

	if t.pinch.active && (id == t.pinch.id0 || id == t.pinch.id1) {
		p0, ok0 := t.touches[t.pinch.id0]
		p1, ok1 := t.touches[t.pinch.id1]
		if ok0 && ok1 {
			span := p1.current.Sub(p0.current)
			dist := span.Magnitude()
			angle := span.Angle()

			if t.pinch.initialDist > 0 {
				ratio := dist / t.pinch.initialDist
				scaleDelta := 0.0
				if t.pinch.prevDist > 0 {
					scaleDelta = (dist - t.pinch.prevDist) / t.pinch.initialDist
				}
				pinchEv := raw.Event{
					Input: raw.InputPinch,
					Phase: raw.PhaseMoved,
					Kind:  raw.KindStream,
					Value: ratio,
					Time:  now,
				}
				pinchEv.Delta = &raw.Point{X: scaleDelta}
				emissions = append(emissions, pinchEv)
			}

			angleDelta := normalizeAngle(angle - t.pinch.prevAngle)
			rotateEv := raw.Event{
				Input: raw.InputRotate,
				Phase: raw.PhaseMoved,
				Kind:  raw.KindStream,
				Value: angleDelta,
				Time:  now,
			}
			emissions = append(emissions, rotateEv)

			t.pinch.prevDist = dist
			t.pinch.prevAngle = angle
		}
	}
	dispatch := t.dispatch
	t.mu.Unlock()

	for _, ev := range emissions {
		dispatch(ev)
	}
}

// TouchEnd stops tracking a finger and classifies the cycle, unless a
// two-finger gesture consumed it.
func (t *Touch) TouchEnd(id int64, pos raw.Point) {
	t.mu.Lock()
	if t.closed || t.dispatch == nil {
		t.mu.Unlock()
		return
	}

	state, ok := t.touches[id]
	if !ok {
		t.mu.Unlock()
		return
	}
	state.current = pos
	delete(t.touches, id)

	now := t.config.Clock()
	var emissions []raw.Event

	if t.pinch.active && (id == t.pinch.id0 || id == t.pinch.id1) {
		t.pinch = pinchState{}
		// The surviving finger stays consumed; its own end emits nothing.
		emissions = append(emissions,
			raw.Event{Input: raw.InputPinch, Phase: raw.PhaseReleased, Kind: raw.KindStream, Time: now},
			raw.Event{Input: raw.InputRotate, Phase: raw.PhaseReleased, Kind: raw.KindStream, Time: now},
		)
	} else if !state.consumed {
		if ev, ok := t.classify(state, pos, now); ok {
			emissions = append(emissions, ev)
		}
	}
	dispatch := t.dispatch
	t.mu.Unlock()

	for _, ev := range emissions {
		dispatch(ev)
	}
}

// classify decides tap, long-press, or swipe from elapsed duration and
// travelled distance. Cycles matching nothing emit nothing.
func (t *Touch) classify(state *touchState, pos raw.Point, now time.Time) (raw.Event, bool) {
	elapsed := now.Sub(state.startTime)
	distance := pos.Distance(state.start)

	ev := raw.Event{
		Phase: raw.PhasePressed,
		Kind:  raw.KindDiscrete,
		Value: 1,
		Time:  now,
	}
	ev.Position = &pos

	switch {
	case elapsed < t.config.TapMaxDuration && distance < t.config.TapMaxDistancePx:
		ev.Input = raw.InputTap
	case elapsed > t.config.LongPressMinDuration && distance < t.config.TapMaxDistancePx:
		ev.Input = raw.InputLongPress
	case elapsed < t.config.SwipeMaxDuration && distance > t.config.SwipeMinDistancePx:
		ev.Input = swipeInput(pos.Sub(state.start))
		ev.Value = distance
	default:
		return raw.Event{}, false
	}
	return ev, true
}

// swipeInput quantizes a swipe displacement to the four cardinal
// directions by dominant axis. Screen Y grows downward.
func swipeInput(delta raw.Point) string {
	if math.Abs(delta.X) >= math.Abs(delta.Y) {
		if delta.X >= 0 {
			return raw.InputSwipeRight
		}
		return raw.InputSwipeLeft
	}
	if delta.Y >= 0 {
		return raw.InputSwipeDown
	}
	return raw.InputSwipeUp
}

// normalizeAngle wraps an angle delta into (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// ActiveTouches returns the number of fingers currently tracked.
func (t *Touch) ActiveTouches() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.touches)
}

// Pinching reports whether a two-finger gesture is in progress.
func (t *Touch) Pinching() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pinch.active
}

// Close detaches the adapter and drops all tracking state. Idempotent.
func (t *Touch) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	t.dispatch = nil
	t.touches = make(map[int64]*touchState)
	t.pinch = pinchState{}
	return nil
}
