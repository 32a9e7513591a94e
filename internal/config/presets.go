package config

import "github.com/regolith-sim/regolith/internal/thermal"

var defaultLayers = thermal.Spec{
	{Count: 9, Thickness: 0.015},
	{Count: 10, Thickness: 0.3},
}

// Presets are named Mars run setups. Latitudes follow the sites the
// original studies reported: the Viking 1 landing site, the equator and
// both polar caps.
var Presets = map[string]*Config{
	"equator": {
		Planet: "mars", LatitudeDegrees: 0, Layers: defaultLayers,
		CO2: true, Days: 720, StepsPerHour: 10, StartTemperature: -1,
	},
	"viking": {
		Planet: "mars", LatitudeDegrees: 22.3, Layers: defaultLayers,
		CO2: true, Days: 720, StepsPerHour: 10, StartTemperature: -1,
	},
	"north-polar": {
		Planet: "mars", LatitudeDegrees: 70, Layers: defaultLayers,
		CO2: true, Days: 1340, StepsPerHour: 10, StartTemperature: -1,
	},
	"south-polar": {
		Planet: "mars", LatitudeDegrees: -70, Layers: defaultLayers,
		CO2: true, Days: 1340, StepsPerHour: 10, StartTemperature: -1,
	},
	"bare-rock": {
		Planet: "mars", LatitudeDegrees: 0, Layers: defaultLayers,
		CO2: false, Days: 720, StepsPerHour: 10, StartTemperature: -1,
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not
// exist.
func GetPreset(name string) *Config {
	preset, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *preset
	cfg.Layers = append(thermal.Spec(nil), preset.Layers...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
