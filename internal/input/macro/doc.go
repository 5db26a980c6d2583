// Package macro records and replays action sequences. A Recorder captures
// the actions the manager triggers into named registers; a Player feeds a
// register back through the manager's trigger path, optionally multiple
// times. Registers persist to disk as JSON.
package macro
