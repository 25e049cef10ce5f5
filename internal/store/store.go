// Package store owns the canonical in-memory dataset and its single
// JSON document on disk.
//
// The whole document is rewritten on every mutation. There is no
// write-ahead log and no rollback: a crash between a mutation and a
// completed save loses that mutation. The save itself goes through a
// temp file and rename so a crash mid-write cannot truncate the
// document in place.
package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"eco-fashion-api/internal/models"
)

//go:embed seed.json
var seedJSON []byte

// Dataset is the persisted document: five named collections, one file.
type Dataset struct {
	Products   []models.Product  `json:"products"`
	Categories []models.Category `json:"categories"`
	Users      []models.User     `json:"users"`
	CartItems  []models.CartItem `json:"cartItems"`
	Orders     []models.Order    `json:"orders"`
}

// Store guards the dataset with a RWMutex and persists it to path.
// Construct one per process and inject it; there are no package-level
// collections.
type Store struct {
	mu   sync.RWMutex
	path string
	data Dataset
}

// Open reads the document at path. When the file does not exist yet it
// falls back to the bundled seed (products and categories) and persists
// it immediately.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		seed, err := Seed()
		if err != nil {
			return nil, err
		}
		s.data = seed
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("persist seed: %w", err)
		}
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	normalize(&s.data)
	return s, nil
}

// Seed parses the bundled sample document.
func Seed() (Dataset, error) {
	var d Dataset
	if err := json.Unmarshal(seedJSON, &d); err != nil {
		return Dataset{}, fmt.Errorf("malformed seed document: %w", err)
	}
	normalize(&d)
	return d, nil
}

// View runs fn with read access to the dataset. fn must not mutate it
// and must not retain the pointer.
func (s *Store) View(fn func(d *Dataset)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

// Update runs fn with write access and persists the dataset when fn
// returns nil. A non-nil error from fn aborts the save and is returned
// unchanged, so engines can surface their sentinels through it.
func (s *Store) Update(fn func(d *Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.data); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return fmt.Errorf("persist dataset: %w", err)
	}
	return nil
}

// Reset replaces the entire dataset and persists it. Used by the seed
// command to rebuild the data file from scratch.
func (s *Store) Reset(d Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	normalize(&d)
	s.data = d
	if err := s.save(); err != nil {
		return fmt.Errorf("persist dataset: %w", err)
	}
	return nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// save serializes the document pretty-printed and swaps it in via
// rename. Callers hold the write lock.
func (s *Store) save() error {
	buf, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	buf = append(buf, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// normalize replaces nil collections with empty ones so the persisted
// document always carries all five top-level arrays.
func normalize(d *Dataset) {
	if d.Products == nil {
		d.Products = []models.Product{}
	}
	if d.Categories == nil {
		d.Categories = []models.Category{}
	}
	if d.Users == nil {
		d.Users = []models.User{}
	}
	if d.CartItems == nil {
		d.CartItems = []models.CartItem{}
	}
	if d.Orders == nil {
		d.Orders = []models.Order{}
	}
}
