// Package dist describes a Python distribution whose native extensions are
// built by CMake.
package dist

import (
	"errors"
	"path/filepath"
)

// An Extension names one compiled module and the directory holding the
// CMakeLists.txt that builds it. No sources are listed; CMake owns them.
type Extension struct {
	name      string
	sourceDir string
}

// NewExtension returns an Extension whose source directory is normalized to
// an absolute path. An empty sourceDir means the current directory. The
// directory is not required to exist.
func NewExtension(name, sourceDir string) (*Extension, error) {
	if name == "" {
		return nil, errors.New("extension name is empty")
	}
	abs, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, err
	}
	return &Extension{name: name, sourceDir: abs}, nil
}

// Name returns the module name, possibly dotted (e.g. "pkg.mod").
func (e *Extension) Name() string { return e.name }

// SourceDir returns the absolute CMake source directory.
func (e *Extension) SourceDir() string { return e.sourceDir }

func (e *Extension) String() string { return e.name }
