package analysis

import (
	"fmt"
	"sort"

	"github.com/san-kum/eca/internal/automaton"
)

// Mirror returns the rule obtained by swapping left and right neighbors.
func Mirror(rule uint8) uint8 {
	var out uint8
	for k := uint8(0); k < 8; k++ {
		if automaton.Apply(rule, k) {
			l, c, r := k>>2&1, k>>1&1, k&1
			out |= 1 << (r<<2 | c<<1 | l)
		}
	}
	return out
}

// Complement returns the rule obtained by exchanging live and dead cells.
func Complement(rule uint8) uint8 {
	var out uint8
	for k := uint8(0); k < 8; k++ {
		if !automaton.Apply(rule, 7-k) {
			out |= 1 << k
		}
	}
	return out
}

// MirrorComplement applies both symmetries.
func MirrorComplement(rule uint8) uint8 {
	return Mirror(Complement(rule))
}

// Equivalents returns the distinct rules equivalent to rule under mirror and
// complement, sorted ascending. The first entry is Wolfram's representative.
func Equivalents(rule uint8) []uint8 {
	set := map[uint8]struct{}{
		rule:                   {},
		Mirror(rule):           {},
		Complement(rule):       {},
		MirrorComplement(rule): {},
	}
	out := make([]uint8, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TableRow is one neighborhood of a rule and the state it produces.
type TableRow struct {
	Neighborhood uint8
	Next         bool
}

// Pattern renders the neighborhood with the given characters, left first.
func (r TableRow) Pattern(live, dead rune) string {
	out := make([]rune, 3)
	for i := 0; i < 3; i++ {
		if r.Neighborhood>>(2-i)&1 == 1 {
			out[i] = live
		} else {
			out[i] = dead
		}
	}
	return string(out)
}

// Table lists the neighborhoods from 7 (all live) down to 0, the order used
// in Wolfram's rule icons.
func Table(rule uint8) []TableRow {
	rows := make([]TableRow, 8)
	for i := range rows {
		k := uint8(7 - i)
		rows[i] = TableRow{Neighborhood: k, Next: automaton.Apply(rule, k)}
	}
	return rows
}

// Binary formats a rule as its eight bits, most significant first.
func Binary(rule uint8) string {
	return fmt.Sprintf("%08b", rule)
}
