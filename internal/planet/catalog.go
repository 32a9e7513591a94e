package planet

import (
	"fmt"
	"math"
	"strings"

	"github.com/regolith-sim/regolith/internal/physics"
)

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Mars carries the Leighton & Murray surface coefficients alongside its
// orbital elements (Appelbaum & Flood; NSSDC fact sheet for the day length).
func Mars() *Body {
	return &Body{
		Name:                  "Mars",
		SemimajorAxis:         1.523679,
		Eccentricity:          0.093377,
		Obliquity:             radians(24.936),
		LongitudeOfPerihelion: radians(336.04084),
		HoursInDay:            24.6597,
		Absorption:            0.85,
		Emissivity:            0.85,
		Conductivity:          6e-5 * physics.CmPerMetre,
		SpecificHeat:          3.3 * physics.GramsPerKg,
		Density:               1.6 * physics.Cm3PerMetre3 / physics.GramsPerKg,
		AverageTemperature:    210,
	}
}

// Earth's thermal coefficients are not modelled; it exists in the catalog as
// the Kepler reference body and for comparison runs of the orbital math.
func Earth() *Body {
	return &Body{
		Name:                  "Earth",
		SemimajorAxis:         1.0,
		Eccentricity:          0.017,
		Obliquity:             radians(23.4),
		LongitudeOfPerihelion: radians(102.94719),
		HoursInDay:            24,
		AverageTemperature:    300,
	}
}

func Mercury() *Body {
	return &Body{
		Name:                  "Mercury",
		SemimajorAxis:         0.387098,
		Eccentricity:          0.205630,
		Obliquity:             0,
		LongitudeOfPerihelion: radians(77.45645),
		HoursInDay:            1407.5,
	}
}

func Venus() *Body {
	return &Body{
		Name:                  "Venus",
		SemimajorAxis:         0.723327,
		Eccentricity:          0.0067,
		Obliquity:             radians(177.36),
		LongitudeOfPerihelion: radians(131.53298),
		HoursInDay:            5832.6,
	}
}

func Jupiter() *Body {
	return &Body{
		Name:                  "Jupiter",
		SemimajorAxis:         5.204267,
		Eccentricity:          0.048775,
		Obliquity:             radians(3.13),
		LongitudeOfPerihelion: radians(14.75385),
		HoursInDay:            9.925,
	}
}

func Saturn() *Body {
	return &Body{
		Name:                  "Saturn",
		SemimajorAxis:         9.5820172,
		Eccentricity:          0.055723219,
		Obliquity:             radians(26.73),
		LongitudeOfPerihelion: radians(92.43194),
		HoursInDay:            10.656,
	}
}

func Uranus() *Body {
	return &Body{
		Name:                  "Uranus",
		SemimajorAxis:         19.189253,
		Eccentricity:          0.047220087,
		Obliquity:             radians(97.77),
		LongitudeOfPerihelion: radians(170.96424),
		HoursInDay:            17.24,
	}
}

func Neptune() *Body {
	return &Body{
		Name:                  "Neptune",
		SemimajorAxis:         30.070900,
		Eccentricity:          0.00867797,
		Obliquity:             radians(28.32),
		LongitudeOfPerihelion: radians(44.97135),
		HoursInDay:            16.11,
	}
}

var catalog = map[string]func() *Body{
	"mercury": Mercury,
	"venus":   Venus,
	"earth":   Earth,
	"mars":    Mars,
	"jupiter": Jupiter,
	"saturn":  Saturn,
	"uranus":  Uranus,
	"neptune": Neptune,
}

// ByName looks a body up case-insensitively.
func ByName(name string) (*Body, error) {
	fn, ok := catalog[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown body %q", ErrConfiguration, name)
	}
	return fn(), nil
}

// Names lists the catalog in no particular order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	return names
}
