package benchmark

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Header is the fixed column layout of the results file.
var Header = []string{"size", "align", "alpha", "time_serial", "time_simd"}

// Recorder persists retained records in the order they are measured.
type Recorder interface {
	Append(rec Record) error
	Close() error
}

// CSVStore is an append-only CSV results file.
type CSVStore struct {
	path string
	f    *os.File
	w    *csv.Writer
}

// CreateCSVStore starts a fresh results file at path, deleting any file left
// by a previous run, and writes the header.
func CreateCSVStore(path string) (*CSVStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove previous results %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create results file: %w", err)
	}

	s := &CSVStore{path: path, f: f, w: csv.NewWriter(f)}
	if err := s.write(Header); err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the location of the results file.
func (s *CSVStore) Path() string {
	return s.path
}

// Append writes rec and flushes it so partial sweeps survive interruption.
func (s *CSVStore) Append(rec Record) error {
	return s.write([]string{
		strconv.Itoa(rec.Size),
		strconv.Itoa(rec.Align),
		strconv.Itoa(rec.Alpha),
		strconv.FormatFloat(rec.TimeSerial, 'g', -1, 64),
		strconv.FormatFloat(rec.TimeSIMD, 'g', -1, 64),
	})
}

func (s *CSVStore) write(row []string) error {
	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", s.path, err)
	}
	return nil
}

func (s *CSVStore) Close() error {
	s.w.Flush()
	werr := s.w.Error()
	cerr := s.f.Close()
	return errors.Join(werr, cerr)
}

// MultiRecorder appends every record to each of its recorders in order.
type MultiRecorder []Recorder

func (m MultiRecorder) Append(rec Record) error {
	for _, r := range m {
		if err := r.Append(rec); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiRecorder) Close() error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}

// Table is the full result set, in file order.
type Table []Record

// ReadTable loads a results file written by CSVStore.
func ReadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ParseTable(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// ParseTable reads CSV rows by header name, so column order does not matter.
func ParseTable(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header")
		}
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range Header {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var t Table
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		var rec Record
		ints := []struct {
			col string
			dst *int
		}{
			{"size", &rec.Size},
			{"align", &rec.Align},
			{"alpha", &rec.Alpha},
		}
		for _, c := range ints {
			v, err := strconv.Atoi(row[index[c.col]])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid %s: %w", line, c.col, err)
			}
			*c.dst = v
		}
		if rec.TimeSerial, err = strconv.ParseFloat(row[index["time_serial"]], 64); err != nil {
			return nil, fmt.Errorf("line %d: invalid time_serial: %w", line, err)
		}
		if rec.TimeSIMD, err = strconv.ParseFloat(row[index["time_simd"]], 64); err != nil {
			return nil, fmt.Errorf("line %d: invalid time_simd: %w", line, err)
		}
		t = append(t, rec)
	}
	return t, nil
}

// WithAlpha returns the rows measured at alpha.
func (t Table) WithAlpha(alpha int) Table {
	var out Table
	for _, r := range t {
		if r.Alpha == alpha {
			out = append(out, r)
		}
	}
	return out
}

// WithAlign returns the rows measured at align.
func (t Table) WithAlign(align int) Table {
	var out Table
	for _, r := range t {
		if r.Align == align {
			out = append(out, r)
		}
	}
	return out
}

// Aligns returns the distinct alignments present, ascending.
func (t Table) Aligns() []int {
	return distinct(t, func(r Record) int { return r.Align })
}

// Alphas returns the distinct alpha values present, ascending.
func (t Table) Alphas() []int {
	return distinct(t, func(r Record) int { return r.Alpha })
}

// Sizes returns the distinct sizes present, ascending.
func (t Table) Sizes() []int {
	return distinct(t, func(r Record) int { return r.Size })
}

// SortedBySize returns a copy ordered by size, keeping file order for ties.
func (t Table) SortedBySize() Table {
	out := append(Table(nil), t...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Size < out[j].Size })
	return out
}

func distinct(t Table, key func(Record) int) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, r := range t {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
