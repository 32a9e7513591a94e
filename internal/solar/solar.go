// Package solar computes top-of-atmosphere solar forcing for a body, after
// the Mars irradiance model of Appelbaum & Flood (NASA Lewis Research
// Center). Atmospheric attenuation is out of scope: the thermal model
// absorbs a fixed fraction of the beam.
package solar

import (
	"github.com/regolith-sim/regolith/internal/planet"
)

// Constant is the solar constant at 1 AU in W/m^2.
const Constant = 1371.0

// Model evaluates irradiance for one body. It is stateless beyond the body
// reference and safe to share across runs.
type Model struct {
	body *planet.Body
}

func New(body *planet.Body) *Model {
	return &Model{body: body}
}

// BeamIrradiance returns the direct-beam irradiance in W/m^2 at a
// heliocentric distance in AU.
func (m *Model) BeamIrradiance(distanceAU float64) float64 {
	return Constant / (distanceAU * distanceAU)
}

// MeanBeamIrradiance is the beam irradiance at the body's semimajor axis,
// used for equilibrium temperature estimates.
func (m *Model) MeanBeamIrradiance() float64 {
	return m.BeamIrradiance(m.body.SemimajorAxis)
}

// SurfaceIrradiance returns the instantaneous irradiance in W/m^2 on a
// horizontal surface at a latitude (radians) and local solar time (hours),
// for the orbital phase given by trueLongitude. Below the horizon it is zero.
func (m *Model) SurfaceIrradiance(trueLongitude, latitude, localTime float64) float64 {
	cosZenith := m.body.CosZenithAngle(trueLongitude, latitude, localTime)
	if cosZenith <= 0 {
		return 0
	}
	return m.BeamIrradiance(m.body.InstantaneousDistance(trueLongitude)) * cosZenith
}
