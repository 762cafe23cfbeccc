package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/eca/internal/render"
	"github.com/san-kum/eca/internal/sim"
)

const (
	metadataFile    = "metadata.json"
	generationsFile = "generations.txt"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Rule        uint8              `json:"rule"`
	Cells       int                `json:"cells"`
	Wrap        bool               `json:"wrap"`
	Generations int                `json:"generations"`
	Start       string             `json:"start,omitempty"`
	Probability float64            `json:"random,omitempty"`
	Seed        int64              `json:"seed"`
	Timestamp   time.Time          `json:"timestamp"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a run's metadata and its history, one '#'/'.' row per
// generation. ID and Timestamp are filled in and the ID is returned.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	meta.Timestamp = time.Now()
	meta.ID = fmt.Sprintf("rule%d_%d", meta.Rule, meta.Timestamp.UnixNano())
	meta.Generations = result.Generations
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	genFile, err := os.Create(filepath.Join(runDir, generationsFile))
	if err != nil {
		return "", err
	}
	defer genFile.Close()

	history := result.History
	if len(history) == 0 && result.Final != nil {
		history = [][]bool{result.Final}
	}

	w := bufio.NewWriter(genFile)
	f := render.NewFormatter(render.DefaultLive, render.DefaultDead)
	for _, cells := range history {
		if _, err := fmt.Fprintln(w, f.Render(cells)); err != nil {
			return "", err
		}
	}
	if err := w.Flush(); err != nil {
		return "", err
	}

	Logger().Debug("run saved", zap.String("id", meta.ID), zap.Int("rows", len(history)))
	return meta.ID, nil
}

// List returns the stored runs, oldest first. Directories without readable
// metadata are skipped.
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
			Logger().Debug("skipping run", zap.String("dir", entry.Name()), zap.Error(err))
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}

	return &meta, nil
}

// LoadHistory reads back the generations saved with a run.
func (s *Store) LoadHistory(runID string) ([][]bool, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, generationsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	history := make([][]bool, 0)
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		history = append(history, render.Parse(line, render.DefaultLive))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
