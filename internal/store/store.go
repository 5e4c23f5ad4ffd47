package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bree-jeune/ems-protocols-radio/internal/model"
)

// Store is the final keyed collection of enriched records. It exclusively
// owns its records; readers get lookups, never mutation.
type Store struct {
	Metadata Metadata                 `json:"metadata"`
	Records  map[string]*model.Record `json:"protocols"`
}

// Metadata describes the ingestion that produced the store
type Metadata struct {
	Source         string `json:"source"`
	Version        string `json:"version"`
	TotalProtocols int    `json:"total_protocols"`
}

// Summary is the listing shape for the query service
type Summary struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Category model.Category `json:"category"`
}

// ErrNotFound is returned by Get for unknown ids
var ErrNotFound = fmt.Errorf("record not found")

// New creates an empty store with the given provenance
func New(source, version string) *Store {
	return &Store{
		Metadata: Metadata{Source: source, Version: version},
		Records:  make(map[string]*model.Record),
	}
}

// Put inserts a record. The merger guarantees globally unique ids; a
// duplicate here means an upstream bug, surfaced as an error rather than a
// silent overwrite.
func (s *Store) Put(rec *model.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record %q has empty id", rec.Title)
	}
	if _, exists := s.Records[rec.ID]; exists {
		return fmt.Errorf("duplicate record id %q", rec.ID)
	}
	s.Records[rec.ID] = rec
	s.Metadata.TotalProtocols = len(s.Records)
	return nil
}

// Get returns the record for id, or ErrNotFound
func (s *Store) Get(id string) (*model.Record, error) {
	rec, ok := s.Records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, nil
}

// List returns id/title/category for every record, sorted by id
func (s *Store) List() []Summary {
	out := make([]Summary, 0, len(s.Records))
	for _, rec := range s.Records {
		out = append(out, Summary{ID: rec.ID, Title: rec.Title, Category: rec.Category})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the record count
func (s *Store) Len() int { return len(s.Records) }

// Save persists the store with a replace-on-completion strategy: the JSON is
// written to a temp file in the destination directory and renamed into
// place, so a failed ingestion run leaves the prior store untouched and the
// query service never observes a partial write.
func (s *Store) Save(path string) (err error) {
	s.Metadata.TotalProtocols = len(s.Records)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// Load reads a persisted store
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse store %s: %w", path, err)
	}
	if s.Records == nil {
		s.Records = make(map[string]*model.Record)
	}
	return &s, nil
}
