package logfields

import (
	"log/slog"
	"strings"
)

// Canonical log field names.
const (
	KeyExtension = "extension"
	KeySourceDir = "source_dir"
	KeyBuildDir  = "build_dir"
	KeyOutputDir = "output_dir"
	KeyStep      = "step"
	KeyArgs      = "args"
	KeyVersion   = "version"
	KeyCount     = "count"
	KeyError     = "error"
)

func Extension(name string) slog.Attr { return slog.String(KeyExtension, name) }
func SourceDir(dir string) slog.Attr  { return slog.String(KeySourceDir, dir) }
func BuildDir(dir string) slog.Attr   { return slog.String(KeyBuildDir, dir) }
func OutputDir(dir string) slog.Attr  { return slog.String(KeyOutputDir, dir) }
func Step(name string) slog.Attr      { return slog.String(KeyStep, name) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }

// Args joins command-line arguments with spaces.
func Args(args []string) slog.Attr { return slog.String(KeyArgs, strings.Join(args, " ")) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
