// Package cmake drives the two-phase CMake configure/build workflow.
package cmake

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/goplus/pyext/pkgs/buildsys"
)

// DefaultBinary is the cmake executable looked up on PATH.
const DefaultBinary = "cmake"

type define struct {
	key   string
	value string
}

// Defines is an ordered list of -D<KEY>=<VALUE> cache entries.
type Defines struct {
	entries []define
}

// Set adds key=value. Redefining a key replaces its value in place.
func (d *Defines) Set(key, value string) {
	for i := range d.entries {
		if d.entries[i].key == key {
			d.entries[i].value = value
			return
		}
	}
	d.entries = append(d.entries, define{key: key, value: value})
}

// SetBool adds key=ON or key=OFF.
func (d *Defines) SetBool(key string, value bool) {
	if value {
		d.Set(key, "ON")
		return
	}
	d.Set(key, "OFF")
}

// Len returns the number of entries.
func (d *Defines) Len() int { return len(d.entries) }

// Args returns the entries as command-line arguments in insertion order.
func (d *Defines) Args() []string {
	if len(d.entries) == 0 {
		return nil
	}
	args := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		args = append(args, "-D"+e.key+"="+e.value)
	}
	return args
}

// CMake drives CMake-based builds of one source tree in one build directory.
type CMake struct {
	Defines

	sourceDir string
	buildDir  string
	binary    string
	runner    buildsys.Runner
	stdout    io.Writer
	stderr    io.Writer
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New returns a CMake that runs the cmake on PATH as a child process with
// output forwarded to os.Stdout and os.Stderr.
func New(sourceDir, buildDir string) *CMake {
	return &CMake{
		sourceDir: sourceDir,
		buildDir:  buildDir,
		binary:    DefaultBinary,
		runner:    buildsys.ExecRunner{},
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// Binary overrides the cmake executable.
func (c *CMake) Binary(path string) *CMake {
	c.binary = path
	return c
}

// Runner overrides how commands are executed.
func (c *CMake) Runner(r buildsys.Runner) *CMake {
	c.runner = r
	return c
}

// Output redirects the tool's stdout and stderr.
func (c *CMake) Output(stdout, stderr io.Writer) *CMake {
	c.stdout = stdout
	c.stderr = stderr
	return c
}

// SourceDir returns the directory holding CMakeLists.txt.
func (c *CMake) SourceDir() string { return c.sourceDir }

// BuildDir returns the directory cmake runs in.
func (c *CMake) BuildDir() string { return c.buildDir }

// Version runs "cmake --version", echoes the banner and returns the
// canonical semantic version (e.g. "v3.27.4"), or the first banner line when
// it carries no recognizable version.
func (c *CMake) Version(ctx context.Context) (string, error) {
	var out bytes.Buffer
	var stdout io.Writer = &out
	if c.stdout != nil {
		stdout = io.MultiWriter(&out, c.stdout)
	}
	if err := c.run(ctx, []string{"--version"}, "", stdout); err != nil {
		return "", err
	}
	return ParseVersion(out.String()), nil
}

// Configure runs "cmake <source> <defines...> <args...>" inside the build
// directory. The build directory must exist.
func (c *CMake) Configure(ctx context.Context, args ...string) error {
	cmakeArgs := []string{c.sourceDir}
	cmakeArgs = append(cmakeArgs, c.Args()...)
	cmakeArgs = append(cmakeArgs, args...)
	return c.run(ctx, cmakeArgs, c.buildDir, c.stdout)
}

// Build runs "cmake --build . <args...>" inside the build directory.
func (c *CMake) Build(ctx context.Context, args ...string) error {
	cmakeArgs := append([]string{"--build", "."}, args...)
	return c.run(ctx, cmakeArgs, c.buildDir, c.stdout)
}

func (c *CMake) run(ctx context.Context, args []string, dir string, stdout io.Writer) error {
	return c.runner.Run(ctx, &buildsys.Cmd{
		Name:   c.binary,
		Args:   args,
		Dir:    dir,
		Stdout: stdout,
		Stderr: c.stderr,
	})
}

// ParseVersion extracts the version from a "cmake version X.Y.Z" banner.
// Suffixes such as "-rc1" or "-dirty" are kept as semver prereleases.
func ParseVersion(banner string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(banner), "\n")
	first = strings.TrimSpace(first)
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	v := "v" + strings.TrimPrefix(fields[len(fields)-1], "v")
	if canonical := semver.Canonical(v); canonical != "" {
		return canonical
	}
	return first
}
