package command

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/pixil98/go-exploratron/internal/loader"
)

// StorageConfig points at a directory holding items, mobiles, players and
// rooms subdirectories. Without a path the bundled world is used.
type StorageConfig struct {
	Path string `json:"path"`
}

func (c *StorageConfig) validate() error {
	if c.Path == "" {
		return nil
	}
	info, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("storage: invalid path %q: %w", c.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage: path %q is not a directory", c.Path)
	}
	return nil
}

func (c *StorageConfig) assets() fs.FS {
	if c.Path == "" {
		return loader.Shipped()
	}
	return os.DirFS(c.Path)
}

func (c *StorageConfig) loadStores() (*loader.Stores, error) {
	st, err := loader.Load(c.assets())
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	return st, nil
}
