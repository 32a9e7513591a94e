// Package thermal implements the layered heat-diffusion engine: a fixed
// stack of soil layers advanced in lock-step by a two-pass
// accumulate-then-commit update that conserves energy, with a CO2
// frost branch buffering the surface at the condensation point.
package thermal

import (
	"github.com/regolith-sim/regolith/internal/physics"
)

// Role tags a layer's position in the stack. The surface exchanges heat
// with space by radiation and with the layer below by conduction; medial
// layers conduct both ways; the bottom conducts upward only.
type Role uint8

const (
	Surface Role = iota
	Medial
	Bottom
)

func (r Role) String() string {
	switch r {
	case Surface:
		return "Surface"
	case Medial:
		return "Medial"
	case Bottom:
		return "Bottom"
	}
	return "Unknown"
}

// Layer is one discretized depth slab. Temperature is the committed value
// for the current step; pending accumulates the next value during the
// accumulation pass and must never be read by a neighbour.
type Layer struct {
	Role        Role
	Thickness   float64 // metres
	Temperature float64 // K

	pending float64

	// Condensate is the frozen-volatile burden in mass-equivalent units of
	// latent heat. Only the surface layer ever owns a non-zero amount.
	Condensate float64
}

// Band describes one run of equally thick layers in a Spec.
type Band struct {
	Count     int     `yaml:"count"`
	Thickness float64 `yaml:"thickness"`
}

// Spec lists layer bands from the surface down, e.g. nine 1.5 cm layers
// over ten 30 cm layers.
type Spec []Band

// Forcing supplies instantaneous solar irradiance at the surface for an
// orbital phase, latitude (radians) and local solar time (hours).
type Forcing interface {
	SurfaceIrradiance(trueLongitude, latitude, localTime float64) float64
}

// Recorder receives each layer's pre-step temperature, top to bottom, as
// the accumulation pass visits it.
type Recorder interface {
	Add(temperature float64)
}

// heatFlow returns the conductive flow in W/m^2 into layer i from a
// neighbour, positive when the neighbour is hotter. Interior exchanges use
// the mean of the two thicknesses as the conduction distance.
func (s *Stack) heatFlow(i, neighbour int) float64 {
	from := &s.layers[neighbour]
	to := &s.layers[i]
	distance := 0.5 * (to.Thickness + from.Thickness)
	return s.body.Conductivity * (from.Temperature - to.Temperature) / distance
}

// applyHeat converts a net flow held over stepSeconds into a temperature
// delta on the layer's pending value. Committed temperatures are untouched.
func (s *Stack) applyHeat(i int, flow, stepSeconds float64) {
	layer := &s.layers[i]
	heatGain := flow * stepSeconds
	layer.pending += heatGain / (s.body.SpecificHeat * s.body.Density * layer.Thickness)
}

// absorption is the fraction of incident sunlight the surface absorbs. A
// frost cap overrides the bare-soil value with the cap's albedo.
func (s *Stack) absorption() float64 {
	if s.layers[0].Condensate > 0 {
		return 1 - s.species.Albedo
	}
	return s.body.Absorption
}

// boundaryTemperature is the Leighton & Murray closed-form estimate of the
// true surface temperature: a one-sided second-order extrapolation from the
// first two subsurface layers. It damps the oscillation a naive forward
// difference would introduce at the radiating boundary.
func (s *Stack) boundaryTemperature() float64 {
	return 1.5*s.layers[1].Temperature - 0.5*s.layers[2].Temperature
}

// radiationLoss is the outgoing thermal radiation in W/m^2 at the
// extrapolated boundary temperature.
func (s *Stack) radiationLoss() float64 {
	return s.body.Emissivity * physics.BlackBodyRadiation(s.boundaryTemperature())
}

// surfaceConduction follows the Leighton & Murray surface heat-flow
// convention: the gap is the full thickness of the layer below, not the
// usual mean of two thicknesses, because the surface slab itself is treated
// as negligibly thin for conduction.
func (s *Stack) surfaceConduction() float64 {
	t1 := s.layers[1].Temperature
	gradient := (t1 - s.boundaryTemperature()) / s.layers[1].Thickness
	return s.body.Conductivity * gradient
}

// adjustForPhaseChange routes the surface's net inflow through the frost
// branch and returns the energy that reaches the ordinary temperature
// update. The four branches are asymmetric on purpose: sublimation needs
// both frost on the ground and net heating, while freezing needs only net
// cooling (the vapour reservoir is treated as unlimited).
func (s *Stack) adjustForPhaseChange(inflow float64) float64 {
	surface := &s.layers[0]
	if surface.Temperature > s.species.CondensationTemperature {
		if surface.Condensate > 0 && inflow > 0 {
			return s.sublimate(inflow)
		}
		return inflow
	}
	if inflow < 0 {
		s.freeze(inflow)
		return 0
	}
	return inflow
}

// sublimate consumes frost to absorb a positive inflow. If the frost runs
// out mid-step the leftover energy is passed back to the temperature
// update rather than discarded.
func (s *Stack) sublimate(inflow float64) float64 {
	surface := &s.layers[0]
	surface.Condensate -= inflow / s.species.LatentHeat
	if surface.Condensate > 0 {
		return 0
	}
	balance := -surface.Condensate * s.species.LatentHeat
	surface.Condensate = 0
	return balance
}

// freeze deposits frost, absorbing all of a negative inflow isothermally.
func (s *Stack) freeze(inflow float64) {
	s.layers[0].Condensate += -inflow / s.species.LatentHeat
}
