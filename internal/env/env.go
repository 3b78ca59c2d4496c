// Package env resolves host-dependent defaults for building extensions.
package env

import (
	"os/exec"
	"path/filepath"
	"runtime"
)

// pythonCandidates are tried in order on PATH.
var pythonCandidates = []string{"python3", "python"}

var lookPath = exec.LookPath

// PythonExecutable returns the absolute path of the Python interpreter found
// on PATH, or "python3" when none is found.
func PythonExecutable() string {
	for _, name := range pythonCandidates {
		path, err := lookPath(name)
		if err != nil {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return pythonCandidates[0]
}

// PlatName returns the distutils-style platform name for the host, e.g.
// "linux-x86_64", "macosx-arm64" or "win-amd64".
func PlatName() string {
	return platName(runtime.GOOS, runtime.GOARCH)
}

func platName(goos, goarch string) string {
	switch goos {
	case "windows":
		switch goarch {
		case "amd64":
			return "win-amd64"
		case "arm64":
			return "win-arm64"
		case "386":
			return "win32"
		}
		return "win-" + goarch
	case "darwin":
		if goarch == "amd64" {
			return "macosx-x86_64"
		}
		return "macosx-" + goarch
	}
	arch := goarch
	switch goarch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	case "386":
		arch = "i686"
	}
	return goos + "-" + arch
}

// ExtSuffix returns the file suffix of compiled extension modules.
func ExtSuffix() string {
	return extSuffix(runtime.GOOS)
}

func extSuffix(goos string) string {
	if goos == "windows" {
		return ".pyd"
	}
	return ".so"
}
