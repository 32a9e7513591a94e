package solar

import (
	"math"
	"testing"

	"github.com/regolith-sim/regolith/internal/planet"
)

func TestMeanBeamIrradiance(t *testing.T) {
	m := New(planet.Mars())
	want := Constant / (1.523679 * 1.523679)
	if got := m.MeanBeamIrradiance(); math.Abs(got-want) > 0.1 {
		t.Errorf("mean beam irradiance = %f, want %f", got, want)
	}
}

func TestBeamIrradianceAtApsides(t *testing.T) {
	mars := planet.Mars()
	m := New(mars)

	// Appelbaum & Flood quote roughly 718 W/m^2 at perihelion and 493 at
	// aphelion for Mars.
	perihelion := m.BeamIrradiance(mars.InstantaneousDistance(mars.LongitudeOfPerihelion))
	if math.Abs(perihelion-718) > 1.5 {
		t.Errorf("perihelion irradiance = %f, want ~718", perihelion)
	}
	aphelion := m.BeamIrradiance(mars.InstantaneousDistance(mars.LongitudeOfPerihelion + math.Pi))
	if math.Abs(aphelion-493) > 1.5 {
		t.Errorf("aphelion irradiance = %f, want ~493", aphelion)
	}
}

func TestSurfaceIrradianceNightIsZero(t *testing.T) {
	m := New(planet.Mars())
	for _, hour := range []float64{0, 2, 22} {
		if got := m.SurfaceIrradiance(0, 0, hour); got != 0 {
			t.Errorf("hour %f: irradiance %f, want 0", hour, got)
		}
	}
}

func TestSurfaceIrradianceNoonBounds(t *testing.T) {
	mars := planet.Mars()
	m := New(mars)

	// Noon at the subsolar latitude equals the full beam.
	tl := mars.LongitudeOfPerihelion
	sinDecl := mars.SinDeclination(tl)
	latitude := math.Asin(sinDecl)
	beam := m.BeamIrradiance(mars.InstantaneousDistance(tl))
	got := m.SurfaceIrradiance(tl, latitude, 12)
	if math.Abs(got-beam) > 1e-9 {
		t.Errorf("subsolar noon irradiance %f, want %f", got, beam)
	}

	// Any other time of day must not exceed the beam.
	for hour := 0.0; hour < 24; hour += 0.5 {
		if v := m.SurfaceIrradiance(tl, latitude, hour); v < 0 || v > beam+1e-9 {
			t.Errorf("hour %f: irradiance %f outside [0, %f]", hour, v, beam)
		}
	}
}

func TestSurfaceIrradianceDailyIntegral(t *testing.T) {
	// Appelbaum & Flood table II: at Ls near aphelion and the Viking lander
	// latitude the noon-hour insolation is just under the full beam.
	mars := planet.Mars()
	m := New(mars)
	tl := mars.LongitudeOfPerihelion + math.Pi
	latitude := 22.3 * math.Pi / 180

	var integral float64
	const n = 60
	for i := 0; i < n; i++ {
		hour := 12 + (float64(i)+0.5)/n
		integral += m.SurfaceIrradiance(tl, latitude, hour) / n
	}
	beam := m.BeamIrradiance(mars.InstantaneousDistance(tl))
	if integral <= 0.9*beam || integral >= beam {
		t.Errorf("noon-hour integral %f not in (%f, %f)", integral, 0.9*beam, beam)
	}
}
