// Package source contains the device adapters: keyboard, pointer, touch,
// gamepad, and VR controller. Each adapter normalizes raw hardware
// callbacks into raw.Events, performs its device-specific disambiguation
// (click-vs-drag, tap-vs-long-press, axis dead zones live downstream), and
// forwards the result to the dispatcher it was attached with.
//
// Adapters own their tracking state exclusively and are mutated only on
// the dispatch thread; host drivers supply the hardware callbacks and the
// once-per-frame poll tick.
package source
