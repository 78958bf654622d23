// Package keystore keeps named API keys on disk for the CLI.
//
// Each key is one JSON file, readable only by its owner, in the keys
// directory (by default ~/.config/evekit/keys/). Names are validated with
// [errors.ValidateName] so they are always safe file names.
//
//	store, err := keystore.New("")
//	err = store.Set(ctx, &keystore.Entry{Name: "main", KeyID: 123, VCode: code})
//	entry, err := store.Get(ctx, "main")
//
// [errors.ValidateName]: github.com/matzehuels/evekit/pkg/errors.ValidateName
package keystore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/evekit/pkg/errors"
)

// Entry is one stored key.
type Entry struct {
	Name    string    `json:"name"`
	KeyID   int64     `json:"key_id"`
	VCode   string    `json:"vcode"`
	AddedAt time.Time `json:"added_at"`
}

// Validate checks the name, key ID and verification code.
func (e *Entry) Validate() error {
	if err := errors.ValidateName(e.Name); err != nil {
		return err
	}
	if err := errors.ValidateKeyID(e.KeyID); err != nil {
		return err
	}
	return errors.ValidateVCode(e.VCode)
}

// Store is a file-based key store. It is safe for concurrent use within one process.
type Store struct {
	mu      sync.RWMutex
	baseDir string
}

// New opens the key store in baseDir, creating it if needed.
// If baseDir is empty, defaults to ~/.config/evekit/keys/
func New(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "evekit", "keys")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create key dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Path returns the directory holding the key files.
func (s *Store) Path() string { return s.baseDir }

func (s *Store) entryPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Get returns the entry called name, or a NOT_FOUND error.
func (s *Store) Get(ctx context.Context, name string) (*Entry, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.entryPath(name), name)
}

func (s *Store) read(path, name string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeNotFound, "no key named %q", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read key %q", name)
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "parse key %q", name)
	}
	return &e, nil
}

// Set validates and stores e, replacing any entry with the same name.
// A zero AddedAt is set to the current time.
func (s *Store) Set(ctx context.Context, e *Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.AddedAt.IsZero() {
		e.AddedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal key %q", e.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.baseDir, ".key-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write key %q", e.Name)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write key %q", e.Name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write key %q", e.Name)
	}
	if err := os.Rename(tmp.Name(), s.entryPath(e.Name)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write key %q", e.Name)
	}
	return nil
}

// Delete removes the entry called name. Removing a missing entry is NOT_FOUND.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.entryPath(name))
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeNotFound, "no key named %q", name)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "remove key %q", name)
	}
	return nil
}

// List returns all entries sorted by name. Unreadable files are skipped.
func (s *Store) List(ctx context.Context) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read key dir")
	}

	var entries []*Entry
	for _, f := range files {
		name, ok := strings.CutSuffix(f.Name(), ".json")
		if f.IsDir() || !ok || strings.HasPrefix(name, ".") {
			continue
		}
		e, err := s.read(filepath.Join(s.baseDir, f.Name()), name)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
