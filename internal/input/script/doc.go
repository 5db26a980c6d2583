// Package script evaluates binding condition predicates written in Lua.
// Applications register small scripts that define an evaluate(env)
// function; the engine compiles each one once and installs it into the
// condition registry under its name, so binding tables can reference
// scripted predicates exactly like the built-in ones.
package script
