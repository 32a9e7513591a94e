package physics

import (
	"math"
	"testing"
)

func TestBlackBodyRoundTrip(t *testing.T) {
	for _, temp := range []float64{145, 210, 225.9, 300} {
		r := BlackBodyRadiation(temp)
		back := EquilibriumTemperature(r)
		if math.Abs(back-temp) > 1e-9 {
			t.Errorf("round trip %f K -> %f W/m2 -> %f K", temp, r, back)
		}
	}
}

func TestEquilibriumTemperature(t *testing.T) {
	tests := []struct {
		name      string
		radiation float64
		want      float64
		tol       float64
	}{
		// Earth: solar constant 1350, bond albedo 0.3, sphere factor 1/4.
		{"earth gray body", 1350 * (1 - 0.3) / 4, 254.0, 0.5},
		// Mars-equivalent beam 589.2 W/m2 with albedo 0.25 and sphere factor.
		{"mars gray body", 589.2 * (1 - 0.25) / 4, 210.1, 0.5},
		{"zero radiation", 0, 0, 0},
		{"negative radiation", -10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EquilibriumTemperature(tt.radiation)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("EquilibriumTemperature(%f) = %f, want %f", tt.radiation, got, tt.want)
			}
		})
	}
}

func TestConversions(t *testing.T) {
	au := 1.523679
	if got := MetresToAU(AUToMetres(au)); math.Abs(got-au) > 1e-12 {
		t.Errorf("AU round trip: %f", got)
	}
}

func TestCO2Table(t *testing.T) {
	if CO2.CondensationTemperature != 145 {
		t.Errorf("condensation temperature = %f", CO2.CondensationTemperature)
	}
	if CO2.Albedo <= 0 || CO2.Albedo >= 1 {
		t.Errorf("albedo out of range: %f", CO2.Albedo)
	}
}
