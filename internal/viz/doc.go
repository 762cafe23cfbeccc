// Package viz provides a live terminal view of an elementary automaton.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: scrolling space-time view of a running world
//   - [RunInteractive]: preset picker and rule editor in front of [Model]
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Reset to the seeded generation
//	W     - Toggle wrap, keeping the current cells
//	T     - Cycle color themes
//	+/-   - Speed up / slow down
//	?     - Show full help
package viz
