package thermal

import (
	"fmt"
	"math"

	"github.com/regolith-sim/regolith/internal/physics"
	"github.com/regolith-sim/regolith/internal/planet"
)

// condensateTolerance is how far below zero the frost burden may drift
// through floating-point noise before the run is declared divergent.
const condensateTolerance = 1e-9

// Stack owns the ordered layer sequence for one run. Layers are held in a
// single slice with neighbours addressed by index, so topology is fixed at
// construction and nothing aliases a layer from outside.
type Stack struct {
	layers   []Layer
	latitude float64
	body     *planet.Body
	species  physics.Species
	frost    bool
	forcing  Forcing
	steps    int
}

// NewStack builds the layer sequence from a spec, top to bottom: a surface
// layer with the first band's thickness, then every band's worth of medial
// layers, with the deepest converted to the bottom layer. Every layer
// starts at the given temperature.
func NewStack(body *planet.Body, spec Spec, latitude, temperature float64, forcing Forcing, species physics.Species, frost bool) (*Stack, error) {
	if err := body.ValidateSurface(); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if forcing == nil {
		return nil, fmt.Errorf("%w: forcing provider is required", ErrConfiguration)
	}

	layers := make([]Layer, 0, spec.TotalLayers())
	layers = append(layers, Layer{Role: Surface, Thickness: spec[0].Thickness, Temperature: temperature, pending: temperature})
	for _, band := range spec {
		for i := 0; i < band.Count; i++ {
			layers = append(layers, Layer{Role: Medial, Thickness: band.Thickness, Temperature: temperature, pending: temperature})
		}
	}
	layers[len(layers)-1].Role = Bottom

	return &Stack{
		layers:   layers,
		latitude: latitude,
		body:     body,
		species:  species,
		frost:    frost,
		forcing:  forcing,
	}, nil
}

// Validate rejects empty specs, non-positive counts or thicknesses, and
// stacks too shallow for the surface boundary extrapolation, which reads
// the first two subsurface layers.
func (s Spec) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: layer spec is empty", ErrConfiguration)
	}
	for i, band := range s {
		if band.Count < 1 {
			return fmt.Errorf("%w: band %d: count %d must be at least 1", ErrConfiguration, i, band.Count)
		}
		if band.Thickness <= 0 {
			return fmt.Errorf("%w: band %d: thickness %f must be positive", ErrConfiguration, i, band.Thickness)
		}
	}
	if s.TotalLayers() < 3 {
		return fmt.Errorf("%w: stack needs at least 3 layers, spec yields %d", ErrConfiguration, s.TotalLayers())
	}
	return nil
}

// TotalLayers is the stack depth a spec produces, including the surface.
func (s Spec) TotalLayers() int {
	n := 1
	for _, band := range s {
		n += band.Count
	}
	return n
}

// NumLayers returns the stack depth.
func (s *Stack) NumLayers() int { return len(s.layers) }

// Latitude returns the latitude in radians the stack was built for.
func (s *Stack) Latitude() float64 { return s.latitude }

// Temperature returns one layer's committed temperature.
func (s *Stack) Temperature(i int) float64 { return s.layers[i].Temperature }

// Temperatures copies all committed temperatures, top to bottom.
func (s *Stack) Temperatures() []float64 {
	out := make([]float64, len(s.layers))
	for i := range s.layers {
		out[i] = s.layers[i].Temperature
	}
	return out
}

// Condensate returns the surface frost burden.
func (s *Stack) Condensate() float64 { return s.layers[0].Condensate }

// TotalHeat is the stack's heat content relative to 0 K in J/m^2, the
// conserved quantity under pure internal conduction.
func (s *Stack) TotalHeat() float64 {
	var total float64
	for i := range s.layers {
		total += s.layers[i].Temperature * s.body.SpecificHeat * s.body.Density * s.layers[i].Thickness
	}
	return total
}

// AdvanceOneStep advances the whole stack by stepSeconds at the given
// orbital phase and local solar time. It runs the accumulation pass over
// every layer against the committed pre-step temperatures, then commits all
// pending temperatures at once. Returns the summed internal conductive
// inflow, a conservation diagnostic that is near zero for a uniform
// interior.
//
// rec, when non-nil, receives each layer's pre-step temperature in order.
func (s *Stack) AdvanceOneStep(trueLongitude, localTime, stepSeconds float64, rec Recorder) (float64, error) {
	for i := range s.layers {
		s.layers[i].pending = s.layers[i].Temperature
	}

	var totalInternalInflow float64
	for i := range s.layers {
		totalInternalInflow += s.accumulate(i, trueLongitude, localTime, stepSeconds, rec)
	}

	for i := range s.layers {
		s.layers[i].Temperature = s.layers[i].pending
	}
	s.steps++

	if err := s.checkFinite(); err != nil {
		return totalInternalInflow, err
	}
	return totalInternalInflow, nil
}

// accumulate computes layer i's share of the step from pre-step
// temperatures only, staging the result on its pending value. It reads no
// pending state, so the visiting order is immaterial.
func (s *Stack) accumulate(i int, trueLongitude, localTime, stepSeconds float64, rec Recorder) float64 {
	layer := &s.layers[i]

	var internalInflow float64
	switch layer.Role {
	case Surface:
		internalInflow = s.surfaceConduction()
		irradiance := s.absorption() * s.forcing.SurfaceIrradiance(trueLongitude, s.latitude, localTime)
		totalInflow := irradiance - s.radiationLoss() + internalInflow
		if s.frost {
			totalInflow = s.adjustForPhaseChange(totalInflow)
		}
		s.applyHeat(i, totalInflow, stepSeconds)
	case Medial:
		internalInflow = s.heatFlow(i, i-1) + s.heatFlow(i, i+1)
		s.applyHeat(i, internalInflow, stepSeconds)
	case Bottom:
		internalInflow = s.heatFlow(i, i-1)
		s.applyHeat(i, internalInflow, stepSeconds)
	}

	if rec != nil {
		rec.Add(layer.Temperature)
	}
	return internalInflow
}

// checkFinite runs after commit: any non-finite temperature or a frost
// burden below -condensateTolerance aborts the run. Noise-level negative
// frost is clamped back to zero.
func (s *Stack) checkFinite() error {
	for i := range s.layers {
		layer := &s.layers[i]
		if math.IsNaN(layer.Temperature) || math.IsInf(layer.Temperature, 0) {
			return &DivergenceError{Step: s.steps, Layer: i, Temperature: layer.Temperature, Condensate: layer.Condensate}
		}
		if layer.Condensate < 0 {
			if layer.Condensate < -condensateTolerance {
				return &DivergenceError{Step: s.steps, Layer: i, Temperature: layer.Temperature, Condensate: layer.Condensate}
			}
			layer.Condensate = 0
		}
	}
	return nil
}
