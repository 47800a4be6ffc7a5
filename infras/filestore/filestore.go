package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"inn/config"
)

// Document is the on-disk shape of the file-backed store. Domain repositories
// own the encoding of their own records; the store only guarantees durable,
// serialized access to the document as a whole.
type Document struct {
	Rooms    map[string]int    `json:"rooms"`
	Bookings []json.RawMessage `json:"bookings"`
}

type Store struct {
	path string
	mu   sync.Mutex
}

func New(cfg *config.Config) (*Store, error) {
	store := &Store{
		path: cfg.Store.FilePath,
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	if _, err := os.Stat(store.path); errors.Is(err, os.ErrNotExist) {
		if err := store.write(&Document{Rooms: map[string]int{}}); err != nil {
			return nil, err
		}

		log.Info().Str("path", store.path).Msg("Initialized empty file store")
	}

	log.Info().Str("path", store.path).Msg("File store ready")

	return store, nil
}

// View runs fn against a read-only snapshot of the document.
func (s *Store) View(ctx context.Context, fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("file store read cancelled: %w", err)
	}

	doc, err := s.read()
	if err != nil {
		return err
	}

	return fn(doc)
}

// Update runs fn against the document and durably persists the result.
// Updates are serialized by the store mutex; the document is written to a
// temporary file and renamed into place so a crash never leaves a torn file.
func (s *Store) Update(ctx context.Context, fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("file store write cancelled: %w", err)
	}

	doc, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	return s.write(doc)
}

func (s *Store) read() (*Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("failed to decode store file: %w", err)
	}

	if doc.Rooms == nil {
		doc.Rooms = map[string]int{}
	}

	return doc, nil
}

func (s *Store) write(doc *Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}
