// Package analysis provides tools for characterizing elementary rules and
// the runs they produce.
//
//   - [Mirror], [Complement], [Equivalents]: rule symmetries
//   - [Table]: the 8-row neighborhood lookup of a rule
//   - [DetectCycle]: transient length and period of a recorded run
//   - [PowerSpectrum], [DominantPeriod]: frequency analysis of a series
//
// # Cycle Detection
//
// A finite world must eventually revisit a generation:
//
//	c := analysis.DetectCycle(result.History)
//	if c.Period > 0 {
//	    // generation c.Start repeats every c.Period steps
//	}
package analysis
