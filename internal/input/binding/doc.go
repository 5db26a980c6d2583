// Package binding maps normalized input events to action names.
//
// A Binding pairs an input identifier with an action name, optionally
// constrained by modifier flags, a lifecycle phase, and a named condition.
// A Context is an ordered binding table representing one interaction mode
// (view, edit, browse); exactly one context is active at a time and
// resolution is strict first-match-wins over the authored order.
//
// Conditions are named predicates held in a Registry and combined with the
// expression operators !, && and ||. Binding tables can be loaded from and
// saved to JSON or YAML profile documents, patched in place for runtime
// rebinding, and persisted to the per-application data location.
package binding
