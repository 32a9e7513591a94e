// Package storage records simulation output: hourly temperature snapshots
// held in memory for analysis, streamed to the flat text log format, or
// persisted under a data directory as metadata plus CSV.
package storage

// Snapshot is one hourly record: the day fraction, the orbital phase at
// which it was taken, and every layer's temperature top to bottom. A
// snapshot is filled in by the layer stack during its accumulation pass and
// immutable once recorded.
type Snapshot struct {
	Day           float64   `json:"day"`
	TrueLongitude float64   `json:"true_longitude"`
	Temperatures  []float64 `json:"temperatures"`
}

// NewSnapshot stamps a snapshot with the day fraction for an hour of a
// simulated day on the 24-hour integration grid.
func NewSnapshot(day, hour int, trueLongitude float64) *Snapshot {
	return &Snapshot{
		Day:           float64(day) + float64(hour)/24,
		TrueLongitude: trueLongitude,
	}
}

// Add appends one layer's temperature; the stack calls this once per layer
// in depth order.
func (s *Snapshot) Add(temperature float64) {
	s.Temperatures = append(s.Temperatures, temperature)
}
