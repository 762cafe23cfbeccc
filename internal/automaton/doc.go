// Package automaton implements an elementary one-dimensional binary cellular
// automaton.
//
// A [World] is a fixed-length row of cells, each live or dead, and a rule
// byte in Wolfram's encoding. The neighborhood of a cell is read as the
// three bits (left, center, right) and encoded as
//
//	k = left*4 + center*2 + right
//
// so bit k of the rule is the cell's next state.
//
// # Example
//
//	w, _ := automaton.New(90, 80, false)
//	_ = w.Set(40, true)
//	for i := 0; i < 24; i++ {
//	    w.Step()
//	}
//	cells := w.State()
//
// # Thread Safety
//
// World instances are NOT thread-safe. [World.SetWorkers] only parallelizes
// the inside of a single [World.Step]; callers still serialize their own
// calls.
package automaton
