package analysis

import (
	"math"
	"math/cmplx"
	"reflect"
	"testing"
)

func TestSymmetries(t *testing.T) {
	tests := []struct {
		rule       uint8
		mirror     uint8
		complement uint8
		both       uint8
	}{
		{30, 86, 135, 149},
		{110, 124, 137, 193},
		{90, 90, 165, 165},
		{184, 226, 226, 184},
		{0, 0, 255, 255},
	}

	for _, tt := range tests {
		if got := Mirror(tt.rule); got != tt.mirror {
			t.Errorf("Mirror(%d) = %d, want %d", tt.rule, got, tt.mirror)
		}
		if got := Complement(tt.rule); got != tt.complement {
			t.Errorf("Complement(%d) = %d, want %d", tt.rule, got, tt.complement)
		}
		if got := MirrorComplement(tt.rule); got != tt.both {
			t.Errorf("MirrorComplement(%d) = %d, want %d", tt.rule, got, tt.both)
		}
	}
}

func TestSymmetries_AreInvolutions(t *testing.T) {
	for r := 0; r < 256; r++ {
		rule := uint8(r)
		if Mirror(Mirror(rule)) != rule {
			t.Fatalf("mirror not an involution for %d", rule)
		}
		if Complement(Complement(rule)) != rule {
			t.Fatalf("complement not an involution for %d", rule)
		}
	}
}

func TestEquivalents(t *testing.T) {
	if got := Equivalents(110); !reflect.DeepEqual(got, []uint8{110, 124, 137, 193}) {
		t.Errorf("Equivalents(110) = %v", got)
	}
	if got := Equivalents(90); !reflect.DeepEqual(got, []uint8{90, 165}) {
		t.Errorf("Equivalents(90) = %v", got)
	}
}

func TestTable(t *testing.T) {
	rows := Table(90)
	if len(rows) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(rows))
	}
	if rows[0].Neighborhood != 7 || rows[7].Neighborhood != 0 {
		t.Errorf("rows not ordered 7..0: %v", rows)
	}

	var bits []byte
	for _, r := range rows {
		if r.Next {
			bits = append(bits, '1')
		} else {
			bits = append(bits, '0')
		}
	}
	if string(bits) != Binary(90) {
		t.Errorf("table bits %s, want %s", bits, Binary(90))
	}

	if p := rows[1].Pattern('#', '.'); p != "##." {
		t.Errorf("row 1 pattern %q, want %q", p, "##.")
	}
}

func TestDetectCycle(t *testing.T) {
	a := []bool{true, false}
	b := []bool{false, true}
	c := []bool{true, true}

	tests := []struct {
		name    string
		history [][]bool
		want    Cycle
	}{
		{"empty", nil, Cycle{}},
		{"no repeat", [][]bool{a, b, c}, Cycle{}},
		{"fixed point", [][]bool{c, a, a}, Cycle{Start: 1, Period: 1}},
		{"period two", [][]bool{c, a, b, a}, Cycle{Start: 1, Period: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCycle(tt.history); got != tt.want {
				t.Errorf("DetectCycle = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPopulationSeries(t *testing.T) {
	got := PopulationSeries([][]bool{{true, false}, {true, true}, {false, false}})
	if !reflect.DeepEqual(got, []float64{1, 2, 0}) {
		t.Errorf("PopulationSeries = %v", got)
	}
}

func TestDominantPeriod(t *testing.T) {
	series := make([]float64, 64)
	for i := range series {
		series[i] = math.Sin(2 * math.Pi * float64(i) / 8)
	}
	if p := DominantPeriod(series); math.Abs(p-8) > 1e-9 {
		t.Errorf("expected period 8, got %f", p)
	}

	flat := []float64{3, 3, 3, 3}
	if p := DominantPeriod(flat); p != 0 {
		t.Errorf("flat series period %f, want 0", p)
	}
}

func TestFFTPadsOddLength(t *testing.T) {
	got := FFT([]float64{1, 2, 3})
	want := []complex128{6, complex(-2, -2), 2, complex(-2, 2)}
	if len(got) != len(want) {
		t.Fatalf("FFT length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if cmplx.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("FFT[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPadPow2(t *testing.T) {
	if got := len(PadPow2(make([]float64, 5))); got != 8 {
		t.Errorf("PadPow2(5) length %d, want 8", got)
	}
	if got := len(PadPow2(make([]float64, 16))); got != 16 {
		t.Errorf("PadPow2(16) length %d, want 16", got)
	}
}
