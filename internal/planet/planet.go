// Package planet holds the orbital elements and surface thermal coefficients
// of the bodies the simulation can model.
package planet

import (
	"errors"
	"fmt"
	"math"

	"github.com/regolith-sim/regolith/internal/kepler"
)

// ErrConfiguration marks an invalid body description. It is only ever
// returned at construction time, never mid-run.
var ErrConfiguration = errors.New("planet: invalid configuration")

// Body is an immutable description of a planet: the orbital elements that
// drive insolation plus the surface coefficients that drive conduction.
// Angles are radians, distances AU, thermal coefficients SI.
type Body struct {
	Name                  string
	SemimajorAxis         float64 // AU
	Eccentricity          float64
	Obliquity             float64 // radians
	LongitudeOfPerihelion float64 // radians
	HoursInDay            float64 // length of the local day in Earth hours

	Absorption   float64 // bare-soil absorbed fraction of incident sunlight
	Emissivity   float64
	Conductivity float64 // W/m/K
	SpecificHeat float64 // J/kg/K
	Density      float64 // kg/m^3

	AverageTemperature float64 // K, informational only
}

// Reference anchors Kepler's third law to a known body; the simulation uses
// Earth's year and day so that other bodies' periods come out in familiar
// units. It is passed explicitly wherever needed rather than held globally.
type Reference struct {
	DaysInYear float64
	HoursInDay float64
}

// EarthYear is the standard reference: the sidereal year in Earth days.
var EarthYear = Reference{DaysInYear: 365.256363004, HoursInDay: 24}

// Validate rejects malformed orbital elements. Surface coefficients are
// checked separately by ValidateSurface since catalog entries for bodies we
// never conduct heat through leave them zero.
func (b *Body) Validate() error {
	if b.SemimajorAxis <= 0 {
		return fmt.Errorf("%w: %s: semimajor axis %f must be positive", ErrConfiguration, b.Name, b.SemimajorAxis)
	}
	if b.Eccentricity < 0 || b.Eccentricity >= 1 {
		return fmt.Errorf("%w: %s: eccentricity %f outside [0,1)", ErrConfiguration, b.Name, b.Eccentricity)
	}
	for _, angle := range []struct {
		name  string
		value float64
	}{
		{"obliquity", b.Obliquity},
		{"longitude of perihelion", b.LongitudeOfPerihelion},
	} {
		if math.IsNaN(angle.value) || angle.value < -2*math.Pi || angle.value > 2*math.Pi {
			return fmt.Errorf("%w: %s: %s %f outside [-2pi, 2pi]", ErrConfiguration, b.Name, angle.name, angle.value)
		}
	}
	if b.HoursInDay <= 0 {
		return fmt.Errorf("%w: %s: hours in day %f must be positive", ErrConfiguration, b.Name, b.HoursInDay)
	}
	return nil
}

// ValidateSurface rejects thermal coefficients the conduction scheme cannot
// run with.
func (b *Body) ValidateSurface() error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.Absorption < 0 || b.Absorption > 1 {
		return fmt.Errorf("%w: %s: absorption %f outside [0,1]", ErrConfiguration, b.Name, b.Absorption)
	}
	if b.Emissivity < 0 || b.Emissivity > 1 {
		return fmt.Errorf("%w: %s: emissivity %f outside [0,1]", ErrConfiguration, b.Name, b.Emissivity)
	}
	if b.Conductivity <= 0 {
		return fmt.Errorf("%w: %s: conductivity %f must be positive", ErrConfiguration, b.Name, b.Conductivity)
	}
	if b.SpecificHeat <= 0 {
		return fmt.Errorf("%w: %s: specific heat %f must be positive", ErrConfiguration, b.Name, b.SpecificHeat)
	}
	if b.Density <= 0 {
		return fmt.Errorf("%w: %s: density %f must be positive", ErrConfiguration, b.Name, b.Density)
	}
	return nil
}

// InstantaneousDistance returns the heliocentric distance in AU at an
// orbital phase, per Appelbaum & Flood equations (2) and (3).
func (b *Body) InstantaneousDistance(trueLongitude float64) float64 {
	nu := kepler.TrueAnomalyFromTrueLongitude(trueLongitude, b.LongitudeOfPerihelion)
	return kepler.DistanceFromFocus(nu, b.SemimajorAxis, b.Eccentricity)
}

// SinDeclination is Appelbaum & Flood equation (7).
func (b *Body) SinDeclination(trueLongitude float64) float64 {
	return math.Sin(b.Obliquity) * math.Sin(trueLongitude)
}

// HourAngle converts local solar time in hours to the hour angle in radians,
// Appelbaum & Flood equation (8). Noon maps to zero.
func (b *Body) HourAngle(localTime float64) float64 {
	return (15*localTime - 180) * math.Pi / 180
}

// CosZenithAngle combines declination and hour angle for a latitude,
// Appelbaum & Flood equation (6).
func (b *Body) CosZenithAngle(trueLongitude, latitude, localTime float64) float64 {
	sinDecl := b.SinDeclination(trueLongitude)
	cosDecl := math.Sqrt(1 - sinDecl*sinDecl)
	return math.Sin(latitude)*sinDecl +
		math.Cos(latitude)*cosDecl*math.Cos(b.HourAngle(localTime))
}

// EarthDaysInYear returns the body's orbital period in reference days via
// Kepler's third law.
func (b *Body) EarthDaysInYear(ref Reference) float64 {
	a := b.SemimajorAxis
	return ref.DaysInYear * math.Sqrt(a*a*a)
}

// DaysPerLocalYear returns the orbital period in the body's own days, used
// to map elapsed simulated time onto orbital phase.
func (b *Body) DaysPerLocalYear(ref Reference) float64 {
	return b.EarthDaysInYear(ref) * ref.HoursInDay / b.HoursInDay
}
