// Package profile keeps one user's settings, memorized ranges and prayer log
// in a local YAML file.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/sabros/sabr-backend/internal/domain"
)

// documentVersion is written to every file; older files are upgraded on save.
const documentVersion = 1

// Document is the top-level YAML structure.
type Document struct {
	Version   int                     `yaml:"version"`
	UserID    uuid.UUID               `yaml:"user_id"`
	Settings  domain.PrayerSettings   `yaml:"settings"`
	Ranges    []domain.MemorizedRange `yaml:"ranges,omitempty"`
	PrayerLog []domain.PrayerEntry    `yaml:"prayer_log,omitempty"`
}

// Store reads and writes the profile file. Every call loads the file afresh,
// so separate processes (CLI and worker) see each other's writes.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by path. The file is created on first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Update loads the document, applies fn and writes the result atomically.
// If fn returns an error nothing is written.
func (s *Store) Update(ctx context.Context, fn func(doc *Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.save(doc)
}

// View loads the document and passes it to fn.
func (s *Store) View(ctx context.Context, fn func(doc Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	doc, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return fn(doc)
}

// load returns an empty document when the file does not exist yet.
func (s *Store) load() (Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{Version: documentVersion}, nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("read profile: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse profile %s: %w", s.path, err)
	}
	if doc.Version > documentVersion {
		return Document{}, fmt.Errorf("profile %s: unsupported version %d", s.path, doc.Version)
	}
	return doc, nil
}

// save writes doc to a temp file in the same directory and renames it over
// the profile, so readers never see a partial file.
func (s *Store) save(doc Document) error {
	doc.Version = documentVersion
	if doc.UserID == uuid.Nil {
		doc.UserID = uuid.New()
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".profile-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp profile: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write profile: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace profile: %w", err)
	}
	return nil
}
