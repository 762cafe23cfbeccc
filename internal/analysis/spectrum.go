package analysis

import (
	"math"
	"math/cmplx"
)

// FFT is a radix-2 transform of data zero-padded to the next power of two.
// The result has the padded length.
func FFT(data []float64) []complex128 {
	return fft(PadPow2(data))
}

// fft requires len(data) to be a power of two.
func fft(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PadPow2 zero-pads data to the next power of two.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum returns the magnitudes of the first half of the FFT of the
// mean-removed, padded series.
func PowerSpectrum(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	spectrum := FFT(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period, in generations, of the strongest
// non-constant frequency of series, or 0 if the series is flat.
func DominantPeriod(series []float64) float64 {
	ps := PowerSpectrum(series)
	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 || maxPower < 1e-9 {
		return 0
	}
	return float64(2*len(ps)) / float64(maxIdx)
}
