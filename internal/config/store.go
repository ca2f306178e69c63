package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// Store loads and saves settings and the best score.
type Store interface {
	Load() (Settings, error)
	Save(s Settings) error
	LoadBestScore() (float64, error)
	SaveBestScore(score float64) error
}

// FileStore keeps settings in a TOML file. Settings and best score share the
// file; each save rewrites it whole. Safe for concurrent use.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path. The file need not exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (st *FileStore) Path() string {
	return st.path
}

// Load returns the stored settings. A missing file yields the defaults.
// Invalid values are replaced by defaults; the returned error then wraps
// the selection errors while the settings are still usable.
func (st *FileStore) Load() (Settings, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	f, err := st.read()
	if err != nil {
		return DefaultSettings(), err
	}
	return f.settings()
}

// Save writes s, keeping the stored best score. A file that exists but
// cannot be read is left untouched so its best score survives.
func (st *FileStore) Save(s Settings) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	f, err := st.read()
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return st.write(toFile(s, f.BestScore))
}

// LoadBestScore implements run.BestScoreStore.
func (st *FileStore) LoadBestScore() (float64, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	f, err := st.read()
	if err != nil {
		return 0, err
	}
	return f.BestScore, nil
}

// SaveBestScore implements run.BestScoreStore. The stored value only ever
// grows, so concurrent sessions cannot lower each other's record.
func (st *FileStore) SaveBestScore(score float64) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	f, err := st.read()
	if err != nil {
		return err
	}
	if score <= f.BestScore {
		return nil
	}
	s, _ := f.settings()
	return st.write(toFile(s, score))
}

// read decodes the file. A missing file is empty, not an error.
func (st *FileStore) read() (fileSettings, error) {
	var f fileSettings
	if _, err := toml.DecodeFile(st.path, &f); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSettings{}, nil
		}
		return fileSettings{}, fmt.Errorf("read settings %s: %w", st.path, err)
	}
	return f, nil
}

// write replaces the file atomically through a temp file in the same directory.
func (st *FileStore) write(f fileSettings) error {
	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("create settings temp file: %w", err)
	}
	if err := toml.NewEncoder(tmp).Encode(f); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), st.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// MemoryStore keeps settings in memory, for tests and per-connection play.
// The best score can be delegated to another store so remote sessions
// still share a record.
type MemoryStore struct {
	mu       sync.Mutex
	settings Settings
	best     float64
	bestFrom Store
}

// NewMemoryStore creates a store holding s.
func NewMemoryStore(s Settings) *MemoryStore {
	return &MemoryStore{settings: s}
}

// WithBestScoreFrom delegates best-score reads and writes to st.
func (m *MemoryStore) WithBestScoreFrom(st Store) *MemoryStore {
	m.bestFrom = st
	return m
}

// Load implements Store.
func (m *MemoryStore) Load() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, nil
}

// Save implements Store.
func (m *MemoryStore) Save(s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	return nil
}

// LoadBestScore implements Store.
func (m *MemoryStore) LoadBestScore() (float64, error) {
	if m.bestFrom != nil {
		return m.bestFrom.LoadBestScore()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

// SaveBestScore implements Store.
func (m *MemoryStore) SaveBestScore(score float64) error {
	if m.bestFrom != nil {
		return m.bestFrom.SaveBestScore(score)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = max(m.best, score)
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
