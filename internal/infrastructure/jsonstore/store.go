// Package jsonstore keeps named JSON documents in a data directory.
//
// Each document is guarded by its own RWMutex. Reads through the Store take
// the shared side; Update holds the exclusive side of every document it names
// for the whole read-modify-write, so concurrent writers never lose updates.
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/greenfund/core/internal/infrastructure/logger"
)

// ErrInvalidName is returned for document names that are not plain file names
var ErrInvalidName = errors.New("jsonstore: invalid document name")

// Store is a directory of JSON documents
type Store struct {
	dir    string
	logger *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.RWMutex

	// File system hooks, replaced in tests to inject failures
	createTemp func(dir, pattern string) (*os.File, error)
	rename     func(oldpath, newpath string) error
}

// Source is anything documents can be read from: the Store itself, or a Tx
// inside an exclusive section.
type Source interface {
	load(name string, dst any) bool
}

// DocumentInfo describes one document on disk
type DocumentInfo struct {
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at"`
}

// New opens (creating if needed) a store rooted at dir
func New(dir string, log *logger.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("jsonstore: data dir is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	if log == nil {
		log = logger.Nop()
	}

	return &Store{
		dir:    dir,
		logger: log.WithComponent("jsonstore"),
		locks:  make(map[string]*sync.RWMutex),

		createTemp: os.CreateTemp,
		rename:     os.Rename,
	}, nil
}

// Dir returns the data directory
func (s *Store) Dir() string {
	return s.dir
}

// Get returns the parsed content of the named document, or fallback when the
// document is absent, unreadable, null or not valid JSON for T.
func Get[T any](src Source, name string, fallback T) T {
	var v T
	if !src.load(name, &v) {
		return fallback
	}
	return v
}

// Present reports whether the document exists and holds non-null valid JSON
func (s *Store) Present(name string) bool {
	var raw json.RawMessage
	return s.load(name, &raw)
}

// Put replaces the named document with v
func (s *Store) Put(name string, v any) error {
	data, err := encode(name, v)
	if err != nil {
		return err
	}

	l, err := s.lockFor(name)
	if err != nil {
		return err
	}
	l.Lock()
	defer l.Unlock()

	return s.commit([]string{name}, map[string][]byte{name: data})
}

// Update runs fn while holding the exclusive lock of every named document.
// Writes staged through the Tx are committed only when fn returns nil.
func (s *Store) Update(ctx context.Context, names []string, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	names = normalizeNames(names)
	locks := make([]*sync.RWMutex, 0, len(names))
	for _, name := range names {
		l, err := s.lockFor(name)
		if err != nil {
			return err
		}
		locks = append(locks, l)
	}

	// Sorted acquisition order keeps multi-document updates deadlock free
	for _, l := range locks {
		l.Lock()
	}
	defer func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}()

	tx := &Tx{
		store:  s,
		names:  make(map[string]struct{}, len(names)),
		staged: make(map[string][]byte),
	}
	for _, name := range names {
		tx.names[name] = struct{}{}
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := s.commit(tx.order, tx.staged); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}

	return nil
}

// HealthCheck verifies the data directory is writable
func (s *Store) HealthCheck() error {
	f, err := os.CreateTemp(s.dir, ".healthcheck-*")
	if err != nil {
		return fmt.Errorf("store health check failed: %w", err)
	}
	name := f.Name()
	f.Close()

	if err := os.Remove(name); err != nil {
		return fmt.Errorf("store health check cleanup failed: %w", err)
	}
	return nil
}

// Stats lists the documents currently on disk
func (s *Store) Stats() ([]DocumentInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data dir: %w", err)
	}

	docs := make([]DocumentInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		docs = append(docs, DocumentInfo{
			Name:       e.Name(),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime().UTC(),
		})
	}

	return docs, nil
}

func (s *Store) load(name string, dst any) bool {
	l, err := s.lockFor(name)
	if err != nil {
		s.logger.Warnw("Rejected document name", "document", name)
		return false
	}
	l.RLock()
	defer l.RUnlock()

	return s.decodeFile(name, dst)
}

func (s *Store) decodeFile(name string, dst any) bool {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warnw("Failed to read document", "document", name, "error", err)
		}
		return false
	}
	return s.decode(name, data, dst)
}

func (s *Store) decode(name string, data []byte, dst any) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		s.logger.Warnw("Failed to parse document", "document", name, "error", err)
		return false
	}
	return true
}

// prepared is a document written to its temp file but not yet renamed into
// place, along with the content it replaces.
type prepared struct {
	name    string
	tmp     string
	size    int
	prev    []byte
	existed bool
}

// commit replaces the named documents in two phases. Every document is first
// written to a temp file; only when all of them succeed are the temp files
// renamed into place. A failed rename restores the documents already
// replaced. Callers hold the documents' exclusive locks.
func (s *Store) commit(names []string, staged map[string][]byte) error {
	started := time.Now()

	ready := make([]prepared, 0, len(names))
	discard := func(ps []prepared) {
		for _, p := range ps {
			os.Remove(p.tmp)
		}
	}

	for _, name := range names {
		p, err := s.prepare(name, staged[name])
		if err != nil {
			discard(ready)
			s.logger.LogStoreWrite(name, len(staged[name]), elapsedMs(started), err)
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		ready = append(ready, p)
	}

	for i, p := range ready {
		if err := s.rename(p.tmp, s.path(p.name)); err != nil {
			discard(ready[i:])
			s.restore(ready[:i])
			s.logger.LogStoreWrite(p.name, p.size, elapsedMs(started), err)
			return fmt.Errorf("failed to write %s: %w", p.name, err)
		}
	}

	for _, p := range ready {
		s.logger.LogStoreWrite(p.name, p.size, elapsedMs(started), nil)
	}
	return nil
}

func (s *Store) prepare(name string, data []byte) (prepared, error) {
	p := prepared{name: name, size: len(data)}

	prev, err := os.ReadFile(s.path(name))
	switch {
	case err == nil:
		p.prev, p.existed = prev, true
	case !errors.Is(err, fs.ErrNotExist):
		return p, err
	}

	tmp, err := s.createTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return p, err
	}
	p.tmp = tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(p.tmp)
		return p, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(p.tmp)
		return p, err
	}
	return p, nil
}

// restore puts back the previous content of documents already renamed
func (s *Store) restore(done []prepared) {
	for _, p := range done {
		var err error
		if !p.existed {
			err = os.Remove(s.path(p.name))
		} else {
			err = os.WriteFile(s.path(p.name), p.prev, 0o644)
		}
		if err != nil {
			s.logger.WithError(err).Errorw("Failed to restore document after aborted commit", "document", p.name)
		}
	}
}

func elapsedMs(started time.Time) float64 {
	return float64(time.Since(started).Microseconds()) / 1000
}

func (s *Store) lockFor(name string) (*sync.RWMutex, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[name]
	if !ok {
		l = new(sync.RWMutex)
		s.locks[name] = l
	}
	return l, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// Tx is the handle passed to an Update section
type Tx struct {
	store  *Store
	names  map[string]struct{}
	staged map[string][]byte
	order  []string
}

// Put stages v as the new content of the named document. The name must be
// one of the documents the section was opened with.
func (tx *Tx) Put(name string, v any) error {
	if _, ok := tx.names[name]; !ok {
		return fmt.Errorf("jsonstore: document %q is not part of this update", name)
	}

	data, err := encode(name, v)
	if err != nil {
		return err
	}

	if _, seen := tx.staged[name]; !seen {
		tx.order = append(tx.order, name)
	}
	tx.staged[name] = data
	return nil
}

func (tx *Tx) load(name string, dst any) bool {
	if _, ok := tx.names[name]; !ok {
		// Not locked by this section; fall back to a shared read
		return tx.store.load(name, dst)
	}

	if data, ok := tx.staged[name]; ok {
		return tx.store.decode(name, data, dst)
	}
	return tx.store.decodeFile(name, dst)
}

func encode(name string, v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return data, nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
