package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/regolith-sim/regolith/internal/storage"
)

// PlotChannel charts one layer's full temperature history.
func PlotChannel(log *storage.MemoryLog, channel int) (string, error) {
	_, temps, err := log.Extract(channel)
	if err != nil {
		return "", err
	}
	if len(temps) < 2 {
		return "", fmt.Errorf("viz: need at least 2 snapshots to plot, have %d", len(temps))
	}
	return asciigraph.Plot(temps,
		asciigraph.Height(15),
		asciigraph.Width(graphWidth),
		asciigraph.Caption(fmt.Sprintf("layer %d temperature (K)", channel)),
	), nil
}

// PlotDailyExtremes charts one layer's per-day minimum and maximum
// temperatures as two series, the seasonal envelope of the diurnal wave.
func PlotDailyExtremes(log *storage.MemoryLog, channel int) (string, error) {
	_, mins, maxs, err := log.DailyExtremes(channel)
	if err != nil {
		return "", err
	}
	if len(mins) < 2 {
		return "", fmt.Errorf("viz: need at least 2 days to plot, have %d", len(mins))
	}
	return asciigraph.PlotMany([][]float64{mins, maxs},
		asciigraph.Height(15),
		asciigraph.Width(graphWidth),
		asciigraph.Caption(fmt.Sprintf("layer %d daily min/max (K)", channel)),
	), nil
}
