package storage

import (
	"bytes"
	"errors"
	"math"
	"os"
	"strings"
	"testing"
)

func sampleLog() *MemoryLog {
	log := NewMemoryLog()
	for day := 0; day < 3; day++ {
		for hour := 0; hour < 24; hour++ {
			snap := NewSnapshot(day, hour, 0.5)
			snap.Add(200 + 20*math.Sin(2*math.Pi*float64(hour)/24))
			snap.Add(210)
			snap.Add(220)
			log.Record(snap)
		}
	}
	return log
}

func TestMemoryLogExtract(t *testing.T) {
	log := sampleLog()

	if log.Len() != 72 {
		t.Fatalf("Len() = %d, want 72", log.Len())
	}
	if log.Channels() != 3 {
		t.Fatalf("Channels() = %d, want 3", log.Channels())
	}

	days, temps, err := log.Extract(1)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(days) != 72 || len(temps) != 72 {
		t.Fatalf("Extract lengths = %d, %d, want 72", len(days), len(temps))
	}
	if days[0] != 0 {
		t.Errorf("first day = %v, want 0", days[0])
	}
	if want := 2 + 23.0/24; math.Abs(days[71]-want) > 1e-12 {
		t.Errorf("last day = %v, want %v", days[71], want)
	}
	for i, v := range temps {
		if v != 210 {
			t.Fatalf("temps[%d] = %v, want 210", i, v)
		}
	}

	if _, _, err := log.Extract(3); err == nil {
		t.Error("Extract(3) should fail for a 3-channel log")
	}
	if _, _, err := log.Extract(-1); err == nil {
		t.Error("Extract(-1) should fail")
	}
}

func TestMemoryLogStats(t *testing.T) {
	log := sampleLog()

	stats, err := log.Stats(0)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Min < 180-1e-9 || stats.Min > 181 {
		t.Errorf("Min = %v, want about 180", stats.Min)
	}
	if stats.Max > 220+1e-9 || stats.Max < 219 {
		t.Errorf("Max = %v, want about 220", stats.Max)
	}
	if math.Abs(stats.Mean-200) > 1e-9 {
		t.Errorf("Mean = %v, want 200", stats.Mean)
	}

	if _, err := NewMemoryLog().Stats(0); err == nil {
		t.Error("Stats on an empty log should fail")
	}
}

func TestDailyExtremes(t *testing.T) {
	log := sampleLog()

	days, mins, maxs, err := log.DailyExtremes(0)
	if err != nil {
		t.Fatalf("DailyExtremes: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("got %d days, want 3", len(days))
	}
	for i := range days {
		if days[i] != float64(i) {
			t.Errorf("days[%d] = %v, want %d", i, days[i], i)
		}
		if mins[i] >= maxs[i] {
			t.Errorf("day %d: min %v not below max %v", i, mins[i], maxs[i])
		}
		if mins[i] > 181 || maxs[i] < 219 {
			t.Errorf("day %d extremes = [%v, %v], want about [180, 220]", i, mins[i], maxs[i])
		}
	}
}

func TestTextLogRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLog(&buf)
	log.WriteLine("planet: mars")
	log.WriteLine("latitude: 22.3")

	in := sampleLog()
	for _, snap := range in.Snapshots() {
		log.Record(snap)
	}
	log.WriteLine("ignored after START")
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	text := buf.String()
	if !strings.Contains(text, "planet: mars") {
		t.Error("preamble line missing")
	}
	if !strings.Contains(text, "\nSTART\n") {
		t.Error("START token missing")
	}
	if !strings.Contains(text, "END, Elapsed time = ") {
		t.Error("END trailer missing")
	}
	if strings.Contains(text, "ignored after START") {
		t.Error("preamble line accepted after recording started")
	}

	snaps, err := ReadTextLog(&buf)
	if err != nil {
		t.Fatalf("ReadTextLog: %v", err)
	}
	if len(snaps) != in.Len() {
		t.Fatalf("read back %d snapshots, want %d", len(snaps), in.Len())
	}
	for i, snap := range snaps {
		want := in.Snapshots()[i]
		if math.Abs(snap.Day-want.Day) > 1e-6 {
			t.Fatalf("snapshot %d day = %v, want %v", i, snap.Day, want.Day)
		}
		if len(snap.Temperatures) != len(want.Temperatures) {
			t.Fatalf("snapshot %d has %d temps, want %d", i, len(snap.Temperatures), len(want.Temperatures))
		}
		for j := range snap.Temperatures {
			if math.Abs(snap.Temperatures[j]-want.Temperatures[j]) > 1e-9 {
				t.Fatalf("snapshot %d temp %d = %v, want %v", i, j, snap.Temperatures[j], want.Temperatures[j])
			}
		}
	}
}

func TestReadTextLogMalformed(t *testing.T) {
	input := "preamble\nSTART\n0.0 0.5 not-a-number\n"
	if _, err := ReadTextLog(strings.NewReader(input)); err == nil {
		t.Error("malformed temperature should fail")
	}

	input = "START\n0.0 0.5\n"
	if _, err := ReadTextLog(strings.NewReader(input)); err == nil {
		t.Error("record without temperatures should fail")
	}
}

func TestDefaultLogName(t *testing.T) {
	tests := []struct {
		fromDay, toDay int
		temperature    float64
		co2            bool
		latitude       float64
		want           string
	}{
		{0, 720, 225, true, 22.3, "0-720-225-co2-22N.txt"},
		{0, 720, 225, false, -70, "0-720-225-noco2-70S.txt"},
		{100, 200, 210, true, 0, "100-200-210-co2-0.txt"},
	}
	for _, tt := range tests {
		got := DefaultLogName(tt.fromDay, tt.toDay, tt.temperature, tt.co2, tt.latitude)
		if got != tt.want {
			t.Errorf("DefaultLogName = %q, want %q", got, tt.want)
		}
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	in := sampleLog()
	meta := RunMetadata{
		Planet:           "mars",
		LatitudeDegrees:  22.3,
		CO2:              true,
		Days:             3,
		StepsPerHour:     10,
		StartTemperature: 225.9,
	}
	runID, err := store.Save(meta, in)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if runID == "" {
		t.Fatal("Save returned empty run ID")
	}

	loaded, err := store.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Planet != "mars" || loaded.LatitudeDegrees != 22.3 || !loaded.CO2 {
		t.Errorf("metadata round trip mismatch: %+v", loaded)
	}
	if loaded.Layers != 3 {
		t.Errorf("Layers = %d, want 3", loaded.Layers)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Fatalf("List = %+v, want one run %s", runs, runID)
	}

	back, err := store.LoadSnapshots(runID)
	if err != nil {
		t.Fatalf("LoadSnapshots: %v", err)
	}
	if back.Len() != in.Len() || back.Channels() != in.Channels() {
		t.Fatalf("loaded %d snapshots with %d channels, want %d and %d",
			back.Len(), back.Channels(), in.Len(), in.Channels())
	}
	_, temps, err := back.Extract(2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for i, v := range temps {
		if math.Abs(v-220) > 1e-6 {
			t.Fatalf("temps[%d] = %v, want 220", i, v)
		}
	}
}

func TestStoreListEmpty(t *testing.T) {
	store := NewStore(t.TempDir() + "/missing")
	runs, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("List = %+v, want empty", runs)
	}

	if _, err := store.Load("nope"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load of missing run = %v, want not-exist", err)
	}
}
