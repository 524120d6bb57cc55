// Package vault gives the app its view of the note directory: reading and
// writing documents, listing send targets, and watching for outside edits.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/flock"

	"github.com/marcus/refile/internal/target"
)

// ErrModified means a document changed on disk between the read that
// produced a snapshot and the attempt to write it back.
var ErrModified = errors.New("document modified on disk")

const (
	lockTimeout      = 2 * time.Second
	lockPollInterval = 10 * time.Millisecond
)

// Doc is one document snapshot. Sum fingerprints the exact bytes that were
// read so a later Write can detect outside modification.
type Doc struct {
	Path string // vault-relative path
	Text string
	Sum  uint64
}

// Store reads and writes documents under a single vault root.
type Store struct {
	root string
}

// NewStore opens a store rooted at dir.
func NewStore(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve vault root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault root %s is not a directory", abs)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute vault root.
func (s *Store) Root() string { return s.root }

// Abs resolves a vault-relative path to an absolute one.
func (s *Store) Abs(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.root, rel)
}

// Read loads a document snapshot.
func (s *Store) Read(rel string) (Doc, error) {
	data, err := os.ReadFile(s.Abs(rel))
	if err != nil {
		return Doc{}, fmt.Errorf("read %s: %w", rel, err)
	}
	return Doc{Path: rel, Text: string(data), Sum: xxhash.Sum64(data)}, nil
}

// Write persists newText for a previously read document. It refuses to
// write when the file no longer matches the snapshot's fingerprint, and it
// holds an OS-level lock for the duration so two writers cannot interleave.
// The write itself is atomic (temp file + rename).
func (s *Store) Write(doc Doc, newText string) error {
	abs := s.Abs(doc.Path)

	lock, err := acquireLock(abs)
	if err != nil {
		return err
	}
	defer releaseLock(lock)

	current, err := os.ReadFile(abs)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reread %s: %w", doc.Path, err)
	}
	if err == nil && xxhash.Sum64(current) != doc.Sum {
		return fmt.Errorf("%s: %w", doc.Path, ErrModified)
	}

	return writeAtomic(abs, []byte(newText))
}

// Create writes a new empty document unless one already exists.
func (s *Store) Create(rel string) error {
	abs := s.Abs(rel)
	if _, err := os.Stat(abs); err == nil {
		return fmt.Errorf("%s already exists", rel)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("create %s: %w", rel, err)
	}
	return writeAtomic(abs, nil)
}

// List returns the vault's markdown documents as sorted vault-relative
// paths. Dotted directories (.git, .obsidian and friends) are skipped.
func (s *Store) List() ([]string, error) {
	var docs []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != s.root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !target.IsMarkdown(name) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		docs = append(docs, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list vault: %w", err)
	}
	sort.Strings(docs)
	return docs, nil
}

func acquireLock(path string) (*flock.Flock, error) {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	fl := flock.New(path + ".lock")
	locked, err := fl.TryLockContext(ctx, lockPollInterval)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("lock %s: timeout", path)
	}
	return fl, nil
}

func releaseLock(fl *flock.Flock) {
	_ = fl.Unlock()
	_ = os.Remove(fl.Path())
}

// writeAtomic writes data via a temp file in the same directory, then
// renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
