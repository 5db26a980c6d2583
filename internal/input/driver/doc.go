// Package driver bridges host frameworks to the device adapters. The
// ebiten driver polls the graphical host once per frame and feeds
// keyboard, pointer, touch, and gamepad adapters; the tcell driver
// translates terminal events for headless and probe use. Drivers own no
// dispatch logic; they only translate platform callbacks.
package driver
