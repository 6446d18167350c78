package model

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
)

const (
	modelFileName    = "outbreak_prediction_model.gob"
	metadataFileName = "outbreak_prediction_model_metadata.json"
)

// Store persists the model and its metadata sidecar as a pair under one
// directory. Writes go through a temp file and rename so a crash never
// leaves a truncated model on disk.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Exists reports whether a complete model/metadata pair is on disk.
func (s *Store) Exists() bool {
	for _, name := range []string{modelFileName, metadataFileName} {
		if _, err := os.Stat(filepath.Join(s.dir, name)); err != nil {
			return false
		}
	}
	return true
}

// Save writes the pair atomically. The metadata sidecar is written second;
// a pair is only considered complete when both files are present.
func (s *Store) Save(m *Model) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	if err := s.writeAtomic(modelFileName, func(f *os.File) error {
		return gob.NewEncoder(f).Encode(m)
	}); err != nil {
		return fmt.Errorf("save model: %w", err)
	}

	meta, err := json.MarshalIndent(m.Meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := s.writeAtomic(metadataFileName, func(f *os.File) error {
		_, werr := f.Write(meta)
		return werr
	}); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}

	return nil
}

// Load reads the pair back. A missing model or sidecar yields
// domain.ErrModelUnavailable so callers can fall through to retraining.
func (s *Store) Load() (*Model, error) {
	f, err := os.Open(filepath.Join(s.dir, modelFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrModelUnavailable
		}
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	var m Model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	meta, err := os.ReadFile(filepath.Join(s.dir, metadataFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrModelUnavailable
		}
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	if err := json.Unmarshal(meta, &m.Meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	return &m, nil
}

func (s *Store) writeAtomic(name string, write func(*os.File) error) error {
	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
