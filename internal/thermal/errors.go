package thermal

import (
	"errors"
	"fmt"
)

// Domain errors for the layer stack.
var (
	// ErrConfiguration indicates an invalid layer specification. Raised at
	// construction, never mid-run.
	ErrConfiguration = errors.New("thermal: invalid configuration")

	// ErrDiverged indicates the integration produced a non-finite
	// temperature or an impossible condensate amount. Fatal for the run.
	ErrDiverged = errors.New("thermal: numeric divergence")
)

// DivergenceError carries the step and layer where divergence was detected.
type DivergenceError struct {
	Step        int
	Layer       int
	Temperature float64
	Condensate  float64
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("%v: step %d layer %d: temperature=%g condensate=%g",
		ErrDiverged, e.Step, e.Layer, e.Temperature, e.Condensate)
}

func (e *DivergenceError) Unwrap() error { return ErrDiverged }
