// Package analysis extracts periodicities from recorded temperature
// series. The diurnal wave and the annual seasonal wave show up as the two
// dominant peaks of the surface layer's spectrum.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform by radix-2 decimation. The
// input length must be a power of two; use Pad.
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

// Pad removes the series mean and zero-pads to the next power of two, so
// the constant offset of an absolute temperature series does not swamp the
// spectrum.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}

	var mean float64
	for _, v := range data {
		mean += v
	}
	if len(data) > 0 {
		mean /= float64(len(data))
	}

	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}
	return padded
}

// PowerSpectrum returns the magnitude of each frequency bin up to the
// Nyquist frequency, after Pad.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(Pad(data))
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantPeriod finds the strongest periodicity of a series sampled every
// sampleInterval days, returning the period in days. Bin zero holds the
// residual mean and is skipped.
func DominantPeriod(data []float64, sampleInterval float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}

	n := len(ps) * 2
	frequency := float64(maxIdx) / (float64(n) * sampleInterval)
	return 1 / frequency
}
