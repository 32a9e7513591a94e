package storage

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MemoryLog keeps every recorded snapshot in order, giving O(1)-per-row
// channel projection instead of re-scanning a file the way the flat log
// would require.
type MemoryLog struct {
	snapshots []*Snapshot
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{snapshots: make([]*Snapshot, 0, 1024)}
}

// Record takes ownership of the snapshot.
func (l *MemoryLog) Record(s *Snapshot) {
	l.snapshots = append(l.snapshots, s)
}

// Len returns the number of snapshots recorded.
func (l *MemoryLog) Len() int { return len(l.snapshots) }

// Channels returns the number of temperature channels (layers), zero before
// the first record.
func (l *MemoryLog) Channels() int {
	if len(l.snapshots) == 0 {
		return 0
	}
	return len(l.snapshots[0].Temperatures)
}

// Snapshots exposes the recorded sequence for serialization.
func (l *MemoryLog) Snapshots() []*Snapshot { return l.snapshots }

// Extract projects one layer's temperature history as parallel day and
// temperature slices.
func (l *MemoryLog) Extract(channel int) (days, temperatures []float64, err error) {
	if channel < 0 || channel >= l.Channels() {
		return nil, nil, fmt.Errorf("storage: channel %d out of range [0,%d)", channel, l.Channels())
	}
	days = make([]float64, len(l.snapshots))
	temperatures = make([]float64, len(l.snapshots))
	for i, s := range l.snapshots {
		days[i] = s.Day
		temperatures[i] = s.Temperatures[channel]
	}
	return days, temperatures, nil
}

// ChannelStats summarises one layer's history.
type ChannelStats struct {
	Min  float64
	Max  float64
	Mean float64
}

// Stats computes min, max and mean of a channel.
func (l *MemoryLog) Stats(channel int) (ChannelStats, error) {
	_, temps, err := l.Extract(channel)
	if err != nil {
		return ChannelStats{}, err
	}
	if len(temps) == 0 {
		return ChannelStats{}, fmt.Errorf("storage: no snapshots recorded")
	}
	return ChannelStats{
		Min:  floats.Min(temps),
		Max:  floats.Max(temps),
		Mean: stat.Mean(temps, nil),
	}, nil
}

// DailyExtremes reduces one channel to per-day minimum and maximum
// temperatures, one triple of parallel slices indexed by whole day.
func (l *MemoryLog) DailyExtremes(channel int) (days, mins, maxs []float64, err error) {
	allDays, temps, err := l.Extract(channel)
	if err != nil {
		return nil, nil, nil, err
	}

	var bucket []float64
	flush := func(day float64) {
		if len(bucket) == 0 {
			return
		}
		days = append(days, day)
		mins = append(mins, floats.Min(bucket))
		maxs = append(maxs, floats.Max(bucket))
		bucket = bucket[:0]
	}

	currentDay := -1.0
	for i, d := range allDays {
		whole := float64(int(d))
		if whole != currentDay {
			flush(currentDay)
			currentDay = whole
		}
		bucket = append(bucket, temps[i])
	}
	flush(currentDay)
	return days, mins, maxs, nil
}
