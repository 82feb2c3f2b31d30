// Package store persists saved connection descriptors in a yaml file under
// the user config directory. Entries are keyed by connection name; loading
// skips malformed entries instead of failing.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/4nzor/dbrowse/internal/models"
)

const fileName = "connections.yaml"

// Store reads and writes the connections file.
type Store struct {
	path string
}

// New creates a store rooted at the given config directory.
func New(configDir string) *Store {
	return &Store{path: filepath.Join(configDir, fileName)}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// LoadAll reads every valid descriptor, sorted by name. A missing file is
// an empty result; malformed entries are dropped silently.
func (s *Store) LoadAll() ([]models.ConnectionConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read connections file: %w", err)
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse connections file: %w", err)
	}

	configs := make([]models.ConnectionConfig, 0, len(raw))
	for name, node := range raw {
		var cfg models.ConnectionConfig
		if err := node.Decode(&cfg); err != nil {
			continue
		}
		cfg.Name = name
		if !cfg.Valid() {
			continue
		}
		configs = append(configs, cfg)
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].Name < configs[j].Name })
	return configs, nil
}

// Save upserts a descriptor by name and rewrites the file.
func (s *Store) Save(cfg models.ConnectionConfig) error {
	if !cfg.Valid() {
		return fmt.Errorf("invalid connection descriptor %q", cfg.Name)
	}

	existing, err := s.LoadAll()
	if err != nil {
		return err
	}

	all := map[string]models.ConnectionConfig{}
	for _, c := range existing {
		all[c.Name] = c
	}
	all[cfg.Name] = cfg

	data, err := yaml.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshal connections: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write connections file: %w", err)
	}
	return nil
}
