// Package action defines the semantic output of the input subsystem:
// named, device-independent action instances, the store holding the
// last-known instance per action name, and the analog filter pipeline
// (dead zone, smoothing, response curves) applied before storage.
package action
