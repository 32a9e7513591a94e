// Package physics collects the physical constants and small closed-form
// relations shared by the planetary and thermal packages.
package physics

import "math"

// Unit conversion factors between CGS and SI, plus astronomical distances.
const (
	CmPerMetre    = 100.0
	GramsPerKg    = 1000.0
	Cm3PerMetre3  = CmPerMetre * CmPerMetre * CmPerMetre
	MetresPerAU   = 149597870700.0
	SecondsPerDay = 24 * 60 * 60
)

// StefanBoltzmann is the Stefan-Boltzmann constant in W/m^2/K^4.
const StefanBoltzmann = 5.670374e-8

// AUToMetres converts a distance in astronomical units to metres.
func AUToMetres(au float64) float64 { return au * MetresPerAU }

// MetresToAU converts a distance in metres to astronomical units.
func MetresToAU(m float64) float64 { return m / MetresPerAU }

// BlackBodyRadiation returns the radiated power in W/m^2 of a black body at
// temperature t Kelvin. Called once per layer per step, so it avoids math.Pow.
func BlackBodyRadiation(t float64) float64 {
	t2 := t * t
	return StefanBoltzmann * t2 * t2
}

// EquilibriumTemperature inverts the Stefan-Boltzmann law, returning the
// temperature in Kelvin at which a black body radiates the given power.
// Non-positive radiation maps to 0 K.
func EquilibriumTemperature(radiation float64) float64 {
	if radiation <= 0 {
		return 0
	}
	return math.Sqrt(math.Sqrt(radiation / StefanBoltzmann))
}

// GuardedSqrt returns sqrt(x) for positive x and 0 otherwise, so that
// rounding noise just below zero cannot produce a NaN.
func GuardedSqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Sqrt(x)
}
