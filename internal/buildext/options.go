package buildext

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goplus/pyext/dist"
	"github.com/goplus/pyext/internal/env"
	"github.com/goplus/pyext/pkgs/buildsys/cmake"
)

// BuildTypes lists the accepted CMAKE_BUILD_TYPE values.
var BuildTypes = []string{"Release", "Debug", "RelWithDebInfo", "MinSizeRel"}

// Options is the build configuration of one build_ext invocation.
type Options struct {
	BuildType        string // CMAKE_BUILD_TYPE
	SharedLibs       bool   // BUILD_SHARED_LIBS=ON
	PythonWrapper    bool   // BUILD_PYTHON_WRAPPER=ON
	PythonExecutable string
	PythonIncludeDir string // optional
	PythonLib        string // optional
	NumpyIncludeDir  string // optional

	BuildLib  string // root of compiled extension modules
	BuildTemp string // root of per-extension CMake build directories
	Inplace   bool   // place modules relative to the working directory
}

// DefaultOptions returns the build_ext defaults.
func DefaultOptions() Options {
	return Options{
		BuildType:        "Release",
		SharedLibs:       true,
		PythonWrapper:    true,
		PythonExecutable: env.PythonExecutable(),
	}
}

// Apply overlays the options set in a manifest.
func (o Options) Apply(m dist.Options) Options {
	setString(&o.BuildType, m.BuildType)
	setBool(&o.SharedLibs, m.SharedLibs)
	setBool(&o.PythonWrapper, m.PythonWrapper)
	setString(&o.PythonExecutable, m.PythonExecutable)
	setString(&o.PythonIncludeDir, m.PythonIncludeDir)
	setString(&o.PythonLib, m.PythonLib)
	setString(&o.NumpyIncludeDir, m.NumpyIncludeDir)
	setString(&o.BuildLib, m.BuildLib)
	setString(&o.BuildTemp, m.BuildTemp)
	setBool(&o.Inplace, m.Inplace)
	return o
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// Finalize validates o and fills in derived defaults. BuildLib and BuildTemp
// are made absolute.
func (o Options) Finalize() (Options, error) {
	if !slices.Contains(BuildTypes, o.BuildType) {
		return o, fmt.Errorf("invalid build type %q (want one of %s)", o.BuildType, strings.Join(BuildTypes, ", "))
	}
	if o.PythonExecutable == "" {
		o.PythonExecutable = env.PythonExecutable()
	}
	plat := env.PlatName()
	if o.BuildLib == "" {
		o.BuildLib = filepath.Join("build", "lib."+plat)
	}
	if o.BuildTemp == "" {
		o.BuildTemp = filepath.Join("build", "temp."+plat)
	}

	var err error
	if o.BuildLib, err = filepath.Abs(o.BuildLib); err != nil {
		return o, err
	}
	if o.BuildTemp, err = filepath.Abs(o.BuildTemp); err != nil {
		return o, err
	}
	return o, nil
}

// ExtFullPath returns the path of the compiled module for a dotted
// extension name, e.g. "<build-lib>/pkg/mod.so" for "pkg.mod".
func (o Options) ExtFullPath(name string) (string, error) {
	parts := strings.Split(name, ".")
	for _, part := range parts {
		if !filepath.IsLocal(part) || strings.ContainsAny(part, `/\`) {
			return "", &FilesystemError{
				Op:   "resolve output directory",
				Path: name,
				Err:  fmt.Errorf("invalid extension name %q", name),
			}
		}
	}

	base := o.BuildLib
	if o.Inplace {
		wd, err := os.Getwd()
		if err != nil {
			return "", &FilesystemError{Op: "resolve output directory", Path: name, Err: err}
		}
		base = wd
	}
	parts[len(parts)-1] += env.ExtSuffix()
	return filepath.Join(append([]string{base}, parts...)...), nil
}

// ExtensionDir returns the absolute directory the compiled module for name
// is written to.
func (o Options) ExtensionDir(name string) (string, error) {
	full, err := o.ExtFullPath(name)
	if err != nil {
		return "", err
	}
	dir, err := filepath.Abs(filepath.Dir(full))
	if err != nil {
		return "", &FilesystemError{Op: "resolve output directory", Path: name, Err: err}
	}
	return dir, nil
}

// BuildDir returns the CMake build directory of the named extension.
func (o Options) BuildDir(name string) string {
	return filepath.Join(o.BuildTemp, name)
}

// ConfigureArgs derives the cmake cache entries for one extension whose
// module lands in extDir. The result depends only on o and extDir.
func ConfigureArgs(o Options, extDir string) []string {
	var d cmake.Defines
	d.Set("CMAKE_LIBRARY_OUTPUT_DIRECTORY", extDir)
	d.Set("CMAKE_BUILD_TYPE", o.BuildType)
	d.Set("PYTHON_EXECUTABLE", o.PythonExecutable)
	if o.SharedLibs {
		d.SetBool("BUILD_SHARED_LIBS", true)
	}
	if o.PythonWrapper {
		d.SetBool("BUILD_PYTHON_WRAPPER", true)
	}
	if o.PythonIncludeDir != "" {
		d.Set("Python3_INCLUDE_DIR", o.PythonIncludeDir)
	}
	if o.PythonLib != "" {
		d.Set("Python3_LIBRARY", o.PythonLib)
	}
	if o.NumpyIncludeDir != "" {
		d.Set("Python3_NUMPY_INCLUDE_DIR", o.NumpyIncludeDir)
	}
	return d.Args()
}
