package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/nuosc/internal/oscillation"
	"github.com/san-kum/nuosc/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrInvalidName = errors.New("storage: invalid run name")
)

var seriesHeader = []string{"distance_km", "p_distance", "energy_gev", "p_energy"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one stored evaluation: the slider point, the
// resulting matrix and the sweep axes.
type RunMetadata struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Timestamp     time.Time          `json:"timestamp"`
	Energy        float64            `json:"energy_gev"`
	Distance      float64            `json:"distance_km"`
	Theta12       float64            `json:"theta12_deg"`
	Flavor        string             `json:"flavor"`
	DeltaM2       float64            `json:"delta_m2_ev2"`
	Probability   float64            `json:"probability"`
	Matrix        oscillation.Matrix `json:"matrix"`
	Points        int                `json:"points"`
	DistanceRange sweep.Range        `json:"distance_range"`
	EnergyRange   sweep.Range        `json:"energy_range"`
}

// Run bundles metadata with the two sweeps shown next to the readout.
type Run struct {
	Meta     RunMetadata
	Distance sweep.Series
	Energy   sweep.Series
}

// Save writes <id>/metadata.json and <id>/series.csv and returns the run id.
// A failed save leaves nothing behind.
func (s *Store) Save(run *Run) (id string, err error) {
	if run.Distance.Len() != run.Energy.Len() {
		return "", fmt.Errorf("storage: sweeps differ in length (%d vs %d)", run.Distance.Len(), run.Energy.Len())
	}

	name := run.Meta.Name
	if name == "" {
		name = "run"
	}
	if err := validName(name); err != nil {
		return "", err
	}
	now := time.Now()
	runID, runDir, err := s.allocate(fmt.Sprintf("%s_%d", name, now.Unix()))
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	meta := run.Meta
	meta.ID = runID
	meta.Name = name
	meta.Timestamp = now
	meta.Points = run.Distance.Len()

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), run); err != nil {
		return "", err
	}

	run.Meta = meta
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return fmt.Errorf("storage: encode metadata: %w", err)
	}
	return f.Close()
}

func writeSeries(path string, run *Run) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(seriesHeader); err != nil {
		f.Close()
		return err
	}
	for i := 0; i < run.Distance.Len(); i++ {
		row := []string{
			formatFloat(run.Distance.X[i]),
			formatFloat(run.Distance.Y[i]),
			formatFloat(run.Energy.X[i]),
			formatFloat(run.Energy.Y[i]),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// validName accepts a single path element that stays inside the store.
func validName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// allocate creates a fresh run directory, suffixing the id on collision.
func (s *Store) allocate(base string) (string, string, error) {
	id := base
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
		id = fmt.Sprintf("%s-%d", base, i)
	}
}

// List returns stored runs, oldest first. Unreadable entries are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if err := validName(runID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadRun reads metadata and both sweeps back.
func (s *Store) LoadRun(runID string) (*Run, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s has no series", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(seriesHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", seriesFile, err)
	}

	from, err := oscillation.ParseFlavor(meta.Flavor)
	if err != nil {
		from = oscillation.Electron
	}

	run := &Run{
		Meta: *meta,
		Distance: sweep.Series{
			Name: "distance", Title: sweep.Title(from), XLabel: "Distance (L) [km]", YLabel: sweep.YLabel, From: from,
		},
		Energy: sweep.Series{
			Name: "energy", Title: sweep.Title(from), XLabel: "Energy (E) [GeV]", YLabel: sweep.YLabel, From: from,
		},
	}

	for i := 1; i < len(records); i++ {
		vals := make([]float64, len(seriesHeader))
		for j, field := range records[i] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s line %d: %w", seriesFile, i+1, err)
			}
			vals[j] = v
		}
		run.Distance.X = append(run.Distance.X, vals[0])
		run.Distance.Y = append(run.Distance.Y, vals[1])
		run.Energy.X = append(run.Energy.X, vals[2])
		run.Energy.Y = append(run.Energy.Y, vals[3])
	}

	return run, nil
}

// SeriesPath is the on-disk location of a run's CSV.
func (s *Store) SeriesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, seriesFile)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
