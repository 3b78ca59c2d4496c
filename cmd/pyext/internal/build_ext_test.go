package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/goplus/pyext/dist"
	"github.com/goplus/pyext/internal/buildext"
)

func newFlagSet(t *testing.T, args ...string) (*pflag.FlagSet, *buildext.Options) {
	t.Helper()
	opts := buildext.DefaultOptions()
	fs := pflag.NewFlagSet("build_ext", pflag.ContinueOnError)
	bindOptions(fs, &opts)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return fs, &opts
}

func TestResolveOptionsPrecedence(t *testing.T) {
	d, err := dist.Parse("pyext.yaml", []byte(`
name: apriltag
extensions:
  - name: apriltag
options:
  build-type: Debug
  shared-libs: false
  numpy-include-dir: /manifest/numpy
`))
	if err != nil {
		t.Fatal(err)
	}

	fs, flagOpts := newFlagSet(t, "--numpy-include-dir=/flag/numpy", "--python-wrapper=false")
	got := resolveOptions(fs, *flagOpts, d)

	if got.BuildType != "Debug" {
		t.Errorf("BuildType = %q, want %q", got.BuildType, "Debug")
	}
	if got.SharedLibs {
		t.Error("SharedLibs = true, want manifest value false")
	}
	if got.PythonWrapper {
		t.Error("PythonWrapper = true, want flag value false")
	}
	if got.NumpyIncludeDir != "/flag/numpy" {
		t.Errorf("NumpyIncludeDir = %q, want %q", got.NumpyIncludeDir, "/flag/numpy")
	}
	if got.PythonLib != "" {
		t.Errorf("PythonLib = %q, want empty", got.PythonLib)
	}
}

func TestResolveOptionsUnsetFlagsKeepManifest(t *testing.T) {
	d, err := dist.Parse("pyext.yaml", []byte("name: apriltag\nextensions:\n  - name: apriltag\noptions:\n  build-type: MinSizeRel\n"))
	if err != nil {
		t.Fatal(err)
	}
	fs, flagOpts := newFlagSet(t)
	if got := resolveOptions(fs, *flagOpts, d).BuildType; got != "MinSizeRel" {
		t.Errorf("BuildType = %q, want %q", got, "MinSizeRel")
	}
}

func TestBindOptionsAllFlags(t *testing.T) {
	_, opts := newFlagSet(t,
		"--build-type=Debug",
		"--shared-libs=false",
		"--python-executable=/usr/bin/python3",
		"--python-include-dir=/inc",
		"--python-lib=/lib.so",
		"-b", "out/lib",
		"-t", "out/temp",
		"-i",
	)
	want := buildext.Options{
		BuildType:        "Debug",
		SharedLibs:       false,
		PythonWrapper:    true,
		PythonExecutable: "/usr/bin/python3",
		PythonIncludeDir: "/inc",
		PythonLib:        "/lib.so",
		BuildLib:         "out/lib",
		BuildTemp:        "out/temp",
		Inplace:          true,
	}
	if *opts != want {
		t.Errorf("options = %+v, want %+v", *opts, want)
	}
}

func TestBuildExtDryRun(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, dist.DefaultFile)
	data := "name: apriltag\nversion: 3.4.2\nextensions:\n  - name: apriltag\n    sourcedir: .\n"
	if err := os.WriteFile(manifest, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	temp := filepath.Join(dir, "build", "temp")

	rootCmd.SetArgs([]string{"build_ext", "-n", "-f", manifest, "-t", temp, "-b", filepath.Join(dir, "build", "lib")})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("build_ext: %v", err)
	}
	if _, err := os.Stat(temp); !os.IsNotExist(err) {
		t.Errorf("dry run created %s", temp)
	}
}

func TestBuildExtMissingManifest(t *testing.T) {
	rootCmd.SetArgs([]string{"build_ext", "-n", "-f", filepath.Join(t.TempDir(), "missing.yaml")})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for missing manifest")
	}
}
