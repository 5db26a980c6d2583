// Package gesture contains stateful recognizers that watch the raw event
// stream and synthesize higher-level events from temporal patterns, such
// as double-taps and hold-to-repeat. Recognizers plug into the manager,
// which feeds them every event and re-dispatches whatever they emit.
package gesture
