package repository

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexanderramin/clientdesk/internal/domain"
)

// Collection is a JSON array of T kept in a single file.
type Collection[T any] struct {
	path string
}

func NewCollection[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

func (c *Collection[T]) Path() string { return c.path }

// LoadAll reads the whole collection. A missing or empty file is an empty
// collection; unreadable or malformed content is an IO error.
func (c *Collection[T]) LoadAll() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, domain.IOFailure("reading "+filepath.Base(c.path), err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, domain.IOFailure("parsing "+filepath.Base(c.path), err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveAll replaces the collection. The file is written to a temporary
// sibling and renamed so readers never observe a partial document.
func (c *Collection[T]) SaveAll(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return domain.IOFailure("encoding "+filepath.Base(c.path), err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.IOFailure("creating data directory", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".*")
	if err != nil {
		return domain.IOFailure("writing "+filepath.Base(c.path), err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return domain.IOFailure("writing "+filepath.Base(c.path), err)
	}
	if err := tmp.Close(); err != nil {
		return domain.IOFailure("writing "+filepath.Base(c.path), err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		return domain.IOFailure("replacing "+filepath.Base(c.path), err)
	}
	return nil
}
