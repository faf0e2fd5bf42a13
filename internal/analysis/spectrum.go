package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a power-of-2 length
// series by radix-2 decimation.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns the magnitude of the first half of the spectrum.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// DominantPeriod locates the strongest oscillation in a uniformly sampled
// series, in the same time unit as dt. It works on the most recent
// power-of-2 window with the mean removed, so startup transients and the
// constant offset do not drown out a genuine cycle. Returns zeros when
// the series is too short or spectrally flat.
func DominantPeriod(series []float64, dt float64) (period, power float64) {
	if dt <= 0 || len(series) < 4 {
		return 0, 0
	}

	n := 1
	for n*2 <= len(series) {
		n *= 2
	}
	window := make([]float64, n)
	copy(window, series[len(series)-n:])

	mean := 0.0
	for _, v := range window {
		mean += v
	}
	mean /= float64(n)
	for i := range window {
		window[i] -= mean
	}

	ps := PowerSpectrum(window)

	best := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > power {
			best, power = k, ps[k]
		}
	}
	if best == 0 || power == 0 {
		return 0, 0
	}
	return float64(n) * dt / float64(best), power
}
