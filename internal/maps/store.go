package maps

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrMapNotFound is wrapped by Store.LoadMap when no level has the name.
var ErrMapNotFound = errors.New("map not found")

// ErrFileTaken is wrapped by DirStore.SaveMap when another level's name
// maps to the same file.
var ErrFileTaken = errors.New("file holds another map")

// Store persists levels by name.
type Store interface {
	SaveMap(m *Map) error
	LoadMap(name string) (*Map, error)
	ListMaps() ([]string, error)
	Close() error
}

// LoadAll reads every level in the store.
func LoadAll(s Store) (map[string]*Map, error) {
	names, err := s.ListMaps()
	if err != nil {
		return nil, err
	}
	all := make(map[string]*Map, len(names))
	for _, name := range names {
		m, err := s.LoadMap(name)
		if err != nil {
			return nil, err
		}
		all[name] = m
	}
	return all, nil
}

// DirStore keeps one JSON file per level in a directory.
type DirStore struct {
	dir string
	mu  sync.RWMutex
}

// NewDirStore opens (and creates if needed) a level directory.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create maps directory: %w", err)
	}
	return &DirStore{dir: dir}, nil
}

// FileName returns the file a level name is stored under.
func FileName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		sb.WriteString("unnamed")
	}
	return sb.String() + ".json"
}

// SaveMap writes the level, replacing any level of the same name.
func (s *DirStore) SaveMap(m *Map) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("save %q: %w", m.Name, err)
	}
	data, err := MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", m.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, FileName(m.Name))
	if existing, err := LoadMap(path); err == nil && existing.Name != m.Name {
		return fmt.Errorf("save %q to %s (holds %q): %w", m.Name, FileName(m.Name), existing.Name, ErrFileTaken)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// LoadMap finds a level by its Name field.
func (s *DirStore) LoadMap(name string) (*Map, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// fast path: the conventional file name
	if m, err := LoadMap(filepath.Join(s.dir, FileName(name))); err == nil && m.Name == name {
		return m, nil
	}
	all, err := LoadMaps(s.dir)
	if err != nil {
		return nil, err
	}
	m, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrMapNotFound)
	}
	return m, nil
}

// ListMaps returns the sorted level names in the directory.
func (s *DirStore) ListMaps() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all, err := LoadMaps(s.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op for the directory store.
func (s *DirStore) Close() error {
	return nil
}
