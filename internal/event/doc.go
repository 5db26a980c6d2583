// Package event provides the synchronous publish/subscribe bus the input
// manager uses to deliver actions and lifecycle notifications.
//
// Topics are plain strings. Each triggered action is published twice: once
// on its name-scoped topic ("action:<name>") and once on the wildcard topic
// ("action"); context switches publish on "context:changed". Delivery is
// synchronous on the publishing goroutine — there is no queuing or deferred
// delivery — and a panicking handler is recovered per-subscriber so one
// faulty handler cannot starve the others or the next event.
package event
