package physics

// Species describes a condensable volatile that can buffer a surface at its
// condensation point by freezing and subliming. The thermal engine is
// parameterized on a Species value, so substituting another volatile is a
// matter of supplying a different table.
type Species struct {
	Name                    string
	CondensationTemperature float64 // K
	LatentHeat              float64 // J/kg
	Albedo                  float64 // of the frost cap
}

// CO2 is the carbon dioxide frost model used for Mars, with the Leighton &
// Murray condensation point and a bright snowcap albedo.
var CO2 = Species{
	Name:                    "CO2",
	CondensationTemperature: 145,
	LatentHeat:              574,
	Albedo:                  0.6,
}
