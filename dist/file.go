package dist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the manifest name looked up in the working directory.
const DefaultFile = "pyext.yaml"

// Distribution is the parsed form of a pyext.yaml manifest.
type Distribution struct {
	Name        string       `yaml:"name"`
	Version     string       `yaml:"version"`
	Description string       `yaml:"description"`
	Extensions  []*Extension `yaml:"-"`
	Options     Options      `yaml:"options"`
}

// Options holds build_ext defaults from the manifest. A nil field was not
// set and leaves the command default in place.
type Options struct {
	BuildType        *string `yaml:"build-type"`
	SharedLibs       *bool   `yaml:"shared-libs"`
	PythonWrapper    *bool   `yaml:"python-wrapper"`
	PythonExecutable *string `yaml:"python-executable"`
	PythonIncludeDir *string `yaml:"python-include-dir"`
	PythonLib        *string `yaml:"python-lib"`
	NumpyIncludeDir  *string `yaml:"numpy-include-dir"`
	BuildLib         *string `yaml:"build-lib"`
	BuildTemp        *string `yaml:"build-temp"`
	Inplace          *bool   `yaml:"inplace"`
}

type extensionEntry struct {
	Name      string `yaml:"name"`
	SourceDir string `yaml:"sourcedir"`
}

type manifest struct {
	Distribution `yaml:",inline"`
	Extensions   []extensionEntry `yaml:"extensions"`
}

// Parse reads and parses a manifest from either provided data or a file path.
// If data is non-nil, it is used directly and relative source directories
// resolve against the working directory. Otherwise the file is read and they
// resolve against the file's directory.
func Parse(file string, data []byte) (*Distribution, error) {
	var reader io.Reader
	baseDir := ""

	if data != nil {
		reader = bytes.NewReader(data)
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		reader = f
		baseDir = filepath.Dir(file)
	}

	var m manifest
	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty manifest", file)
		}
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	d := m.Distribution
	if d.Name == "" {
		return nil, fmt.Errorf("%s: missing distribution name", file)
	}
	if len(m.Extensions) == 0 {
		return nil, fmt.Errorf("%s: no extensions declared", file)
	}

	seen := make(map[string]bool, len(m.Extensions))
	for _, e := range m.Extensions {
		if seen[e.Name] {
			return nil, fmt.Errorf("%s: duplicate extension %q", file, e.Name)
		}
		seen[e.Name] = true

		sourceDir := e.SourceDir
		if !filepath.IsAbs(sourceDir) {
			sourceDir = filepath.Join(baseDir, sourceDir)
		}
		ext, err := NewExtension(e.Name, sourceDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		d.Extensions = append(d.Extensions, ext)
	}

	return &d, nil
}
