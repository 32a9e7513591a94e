// Package kepler provides the two-body orbital relations needed to map
// elapsed time onto orbital phase: Kepler's equation, anomaly conversions,
// and the conic-section distance from the focus.
package kepler

import "math"

const (
	convergence   = 1e-10
	maxIterations = 50
)

// MeanAnomaly maps a fraction of an orbital period (0..1) onto the mean
// anomaly in radians, taking the epoch at perihelion.
func MeanAnomaly(orbitFraction float64) float64 {
	return 2 * math.Pi * orbitFraction
}

// EccentricAnomaly solves Kepler's equation E - e*sin(E) = M by
// Newton-Raphson. The iteration starts at M, which converges for every
// eccentricity below 1.
func EccentricAnomaly(meanAnomaly, eccentricity float64) float64 {
	e0 := meanAnomaly
	for i := 0; i < maxIterations; i++ {
		e1 := e0 - (e0-eccentricity*math.Sin(e0)-meanAnomaly)/(1-eccentricity*math.Cos(e0))
		if math.Abs(e1-e0) < convergence {
			return e1
		}
		e0 = e1
	}
	return e0
}

// TrueAnomaly converts an eccentric anomaly to the true anomaly via the
// half-angle relation, which is well behaved at both apsides.
func TrueAnomaly(eccentricAnomaly, eccentricity float64) float64 {
	s := math.Sqrt(1+eccentricity) * math.Sin(eccentricAnomaly/2)
	c := math.Sqrt(1-eccentricity) * math.Cos(eccentricAnomaly/2)
	return 2 * math.Atan2(s, c)
}

// DistanceFromFocus returns the heliocentric distance for a true anomaly,
// in the same units as the semimajor axis.
func DistanceFromFocus(trueAnomaly, semimajorAxis, eccentricity float64) float64 {
	return semimajorAxis * (1 - eccentricity*eccentricity) / (1 + eccentricity*math.Cos(trueAnomaly))
}

// TrueLongitude measures orbital phase from the reference direction by
// offsetting the true anomaly with the longitude of perihelion.
func TrueLongitude(trueAnomaly, longitudeOfPerihelion float64) float64 {
	return ClipAngle(trueAnomaly + longitudeOfPerihelion)
}

// TrueAnomalyFromTrueLongitude is the inverse of TrueLongitude.
func TrueAnomalyFromTrueLongitude(trueLongitude, longitudeOfPerihelion float64) float64 {
	return ClipAngle(trueLongitude - longitudeOfPerihelion)
}

// ClipAngle normalizes an angle into [0, 2*pi).
func ClipAngle(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
