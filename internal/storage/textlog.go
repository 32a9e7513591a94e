package storage

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Text log layout: free-form preamble lines, a START token, one record per
// snapshot (`day true_longitude temp0 temp1 ...`), and an END trailer with
// the elapsed wall time. The same format the original Leighton & Murray
// implementation wrote, so existing analysis scripts keep working.
const (
	startToken = "START"
	endToken   = "END"
)

// TextLog streams snapshots to a writer in the flat text format. Writes are
// buffered; the first write error is retained and returned from Close.
type TextLog struct {
	w       *bufio.Writer
	started bool
	opened  time.Time
	err     error
}

func NewTextLog(w io.Writer) *TextLog {
	return &TextLog{w: bufio.NewWriter(w), opened: time.Now()}
}

// WriteLine adds a preamble line; only valid before the first Record.
func (l *TextLog) WriteLine(line string) {
	if l.err != nil || l.started {
		return
	}
	_, l.err = fmt.Fprintln(l.w, line)
}

// Record appends one snapshot row, writing the START token first if this is
// the first record.
func (l *TextLog) Record(s *Snapshot) {
	if l.err != nil {
		return
	}
	if !l.started {
		if _, l.err = fmt.Fprintln(l.w, startToken); l.err != nil {
			return
		}
		l.started = true
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%f %f", s.Day, s.TrueLongitude)
	for _, temp := range s.Temperatures {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(temp, 'g', -1, 64))
	}
	_, l.err = fmt.Fprintln(l.w, b.String())
}

// Close writes the END trailer with the elapsed wall time and flushes.
func (l *TextLog) Close() error {
	if l.err != nil {
		return l.err
	}
	elapsed := time.Since(l.opened).Seconds()
	if _, err := fmt.Fprintf(l.w, "%s, Elapsed time = %.1f seconds\n", endToken, elapsed); err != nil {
		return err
	}
	return l.w.Flush()
}

// ReadTextLog parses a flat text log back into snapshots, skipping the
// preamble and stopping at the END trailer.
func ReadTextLog(r io.Reader) ([]*Snapshot, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var snapshots []*Snapshot
	skipping := true
	for scanner.Scan() {
		line := scanner.Text()
		if skipping {
			skipping = line != startToken
			continue
		}
		if strings.HasPrefix(line, endToken) {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("storage: malformed record %q", line)
		}
		snap := &Snapshot{Temperatures: make([]float64, 0, len(fields)-2)}
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: malformed record %q: %w", line, err)
			}
			switch i {
			case 0:
				snap.Day = v
			case 1:
				snap.TrueLongitude = v
			default:
				snap.Temperatures = append(snap.Temperatures, v)
			}
		}
		snapshots = append(snapshots, snap)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// DefaultLogName derives an output file name from the run parameters the
// way the original driver did: `<from>-<to>-<temp>-<co2|noco2>-<lat><N|S>.txt`.
func DefaultLogName(fromDay, toDay int, temperature float64, co2 bool, latitudeDegrees float64) string {
	co2s := "noco2"
	if co2 {
		co2s = "co2"
	}
	ns := ""
	switch {
	case latitudeDegrees > 0:
		ns = "N"
	case latitudeDegrees < 0:
		ns = "S"
	}
	if latitudeDegrees < 0 {
		latitudeDegrees = -latitudeDegrees
	}
	return fmt.Sprintf("%d-%d-%d-%s-%.0f%s.txt", fromDay, toDay, int(temperature), co2s, latitudeDegrees, ns)
}
