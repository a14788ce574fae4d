package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// StaticDir manages the directory the chart images are written to and
// served from.
type StaticDir struct {
	Dir string
}

// NewStaticDir creates a manager for the given directory
func NewStaticDir(dir string) *StaticDir {
	return &StaticDir{Dir: dir}
}

// Ensure creates the directory if it does not exist yet
func (sd *StaticDir) Ensure() error {
	if err := os.MkdirAll(sd.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create static directory: %w", err)
	}
	return nil
}

// Path returns the on-disk path for a chart file. The name is cleaned so a
// caller can never escape the static directory.
func (sd *StaticDir) Path(name string) string {
	return filepath.Join(sd.Dir, filepath.Base(name))
}

// URL returns the path a browser uses to fetch a chart file
func (sd *StaticDir) URL(name string) string {
	return "/static/" + filepath.Base(name)
}
