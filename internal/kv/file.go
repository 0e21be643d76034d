package kv

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
)

var _ Store = (*FileStore)(nil)

// FileStore persists each key as a gzip-compressed JSON blob under a data
// directory. Writes go to a temporary file first and are renamed into
// place, so a value is replaced atomically or not at all.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json.gz")
}

// Get reads and decompresses the blob stored for key. A key that has
// never been written yields ErrNotFound.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "open %s", key)
	}
	defer f.Close()

	zr, err := pgzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "gzip reader %s", key)
	}
	defer zr.Close()

	value, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", key)
	}
	return value, nil
}

// Put compresses value and atomically replaces the blob stored for key.
func (s *FileStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.path(key)
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", key)
	}
	defer os.Remove(tmp.Name())

	zw := pgzip.NewWriter(tmp)
	if _, err := zw.Write(value); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "compress %s", key)
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "flush %s", key)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "sync %s", key)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", key)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replace %s", key)
	}
	return nil
}
