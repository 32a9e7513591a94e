package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store persists completed runs under a data directory, one subdirectory
// per run holding metadata.json and snapshots.csv.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one stored run.
type RunMetadata struct {
	ID               string    `json:"id"`
	Planet           string    `json:"planet"`
	LatitudeDegrees  float64   `json:"latitude_degrees"`
	CO2              bool      `json:"co2"`
	StartDay         int       `json:"start_day"`
	Days             int       `json:"days"`
	StepsPerHour     int       `json:"steps_per_hour"`
	StartTemperature float64   `json:"start_temperature"`
	Layers           int       `json:"layers"`
	Timestamp        time.Time `json:"timestamp"`
	ElapsedSeconds   float64   `json:"elapsed_seconds"`
}

// Save writes metadata and all snapshots for a run, returning the run ID.
func (s *Store) Save(meta RunMetadata, log *MemoryLog) (string, error) {
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Planet, time.Now().Unix())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Layers = log.Channels()

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "snapshots.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, log); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteCSV serializes a memory log as CSV with the day, the true
// longitude and one column per layer.
func WriteCSV(w io.Writer, log *MemoryLog) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if log.Len() == 0 {
		return cw.Error()
	}

	header := []string{"day", "true_longitude"}
	for i := 0; i < log.Channels(); i++ {
		header = append(header, fmt.Sprintf("t%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, snap := range log.Snapshots() {
		row := make([]string, 0, 2+len(snap.Temperatures))
		row = append(row,
			strconv.FormatFloat(snap.Day, 'f', 6, 64),
			strconv.FormatFloat(snap.TrueLongitude, 'f', 6, 64))
		for _, temp := range snap.Temperatures {
			row = append(row, strconv.FormatFloat(temp, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// List reads the metadata of every stored run. Directories without
// readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSnapshots reads a run's snapshots back into a memory log.
func (s *Store) LoadSnapshots(runID string) (*MemoryLog, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "snapshots.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	log := NewMemoryLog()
	for i, record := range records {
		if i == 0 || len(record) < 3 {
			continue
		}
		snap := &Snapshot{Temperatures: make([]float64, 0, len(record)-2)}
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: run %s row %d: %w", runID, i, err)
			}
			switch j {
			case 0:
				snap.Day = v
			case 1:
				snap.TrueLongitude = v
			default:
				snap.Temperatures = append(snap.Temperatures, v)
			}
		}
		log.Record(snap)
	}
	return log, nil
}
