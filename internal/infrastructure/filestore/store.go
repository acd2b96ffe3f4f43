package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/juju/clock"

	"github.com/opsbench/opsctl/internal/core/domain"
	"github.com/opsbench/opsctl/internal/core/domain/kubeconfig"
)

const (
	defaultFileMode = 0600
	defaultDirMode  = 0755
	backupLayout    = "20060102-150405"
)

// FileStore implements the DocumentStore port on a local kubeconfig file.
// It assumes a single writer; concurrent invocations race and the last
// rename wins.
type FileStore struct {
	path   string
	logger hclog.Logger
	clock  clock.Clock

	// unreadable holds content the last Load had to discard. The next Save
	// copies it to a backup file before replacing it.
	unreadable []byte
}

// NewFileStore creates a store backed by path
func NewFileStore(path string, logger hclog.Logger) *FileStore {
	return NewFileStoreWithClock(path, logger, clock.WallClock)
}

// NewFileStoreWithClock creates a store that names backups using clk
func NewFileStoreWithClock(path string, logger hclog.Logger, clk clock.Clock) *FileStore {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FileStore{
		path:   path,
		logger: logger.Named("kubeconfig"),
		clock:  clk,
	}
}

// Path returns the location of the backing file
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the document. A missing, empty or malformed file yields a fresh
// document rather than an error.
func (s *FileStore) Load(ctx context.Context) (*kubeconfig.Document, error) {
	s.unreadable = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("kubeconfig not found, starting from an empty document", "path", s.path)
			return kubeconfig.NewDocument(), nil
		}
		return nil, fmt.Errorf("%w: failed to read %s: %v", domain.ErrPersistence, s.path, err)
	}

	doc, err := Decode(data)
	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, errEmptyDocument):
		s.logger.Debug("kubeconfig is empty, starting from an empty document", "path", s.path)
		return kubeconfig.NewDocument(), nil
	default:
		s.logger.Warn("kubeconfig is unreadable, starting from an empty document",
			"path", s.path, "error", err)
		s.unreadable = data
		return kubeconfig.NewDocument(), nil
	}
}

// Save replaces the backing file with doc. The content is written to a
// temporary file in the same directory and renamed over the destination, so
// readers see either the old or the new document.
func (s *FileStore) Save(ctx context.Context, doc *kubeconfig.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document cannot be nil", domain.ErrPersistence)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	target := s.path
	if resolved, err := filepath.EvalSymlinks(s.path); err == nil {
		target = resolved
	}

	if err := os.MkdirAll(filepath.Dir(target), defaultDirMode); err != nil {
		return fmt.Errorf("%w: failed to create config directory: %v", domain.ErrPersistence, err)
	}

	if s.unreadable != nil {
		backupPath := s.path + ".backup." + s.clock.Now().Format(backupLayout)
		if err := writeFileAtomic(backupPath, s.unreadable, defaultFileMode); err != nil {
			return fmt.Errorf("%w: failed to back up unreadable kubeconfig: %v", domain.ErrPersistence, err)
		}
		s.logger.Info("backed up unreadable kubeconfig", "backup", backupPath)
		s.unreadable = nil
	}

	mode := fs.FileMode(defaultFileMode)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	if err := writeFileAtomic(target, data, mode); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", domain.ErrPersistence, target, err)
	}

	s.logger.Debug("kubeconfig saved", "path", target, "bytes", len(data))
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place. The temp file is closed on every path and removed on failure.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	closed := false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}

	closed = true
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
