// Package input implements the central input manager: the coordinator that
// owns source adapters, binding contexts, the priority layer stack, gesture
// recognizers, and the action state store, and routes every normalized
// event from hardware callback to published action.
//
// Dispatch is single-threaded and synchronous: HandleInput runs on the
// host's main update loop, applies the blocking gate (text-entry focus,
// then active blocking layers by descending priority), resolves the event
// against the active context's binding table, shapes analog values through
// the filter pipeline, stores the resulting action instance, and publishes
// it on the event bus. Every method on the dispatch hot path fails soft —
// it logs and returns a safe default rather than panicking, because a
// thrown error here would corrupt the host render loop.
package input
