// Package raw defines the normalized input event vocabulary shared by
// sources, binding resolution, and the input manager.
//
// Every hardware callback is converted by a source adapter into a raw.Event:
// a source name, a stable input identifier ("KeyG", "MouseLeft", "Tap"), a
// phase, an event kind, optional position/delta/value payloads, modifier
// flags, a timestamp, and an optional scene hit-test result. Events are
// ephemeral; they are created and consumed synchronously within a single
// dispatch and are never persisted.
package raw
