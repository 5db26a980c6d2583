// Package config defines the tunable parameters of the input subsystem:
// disambiguation thresholds, analog filter defaults, and polling rates.
// Values load from a TOML file, can be overridden per-key from the
// environment, and hot-reload through a file watcher.
package config
