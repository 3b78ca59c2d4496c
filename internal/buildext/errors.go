package buildext

import (
	"fmt"
	"strings"
)

// Step names a phase of the external build tool.
type Step string

const (
	StepConfigure Step = "configure"
	StepBuild     Step = "build"
)

// ToolUnavailableError reports that the external build tool could not be
// located or invoked. Nothing was built.
type ToolUnavailableError struct {
	Tool       string
	Extensions []string // every extension that was pending
	Err        error
}

func (e *ToolUnavailableError) Error() string {
	return fmt.Sprintf("%s must be installed to build the following extensions: %s: %v",
		e.Tool, strings.Join(e.Extensions, ", "), e.Err)
}

func (e *ToolUnavailableError) Unwrap() error { return e.Err }

// StepError reports a failed configure or build phase of one extension.
// Err is the tool's error as returned by the runner.
type StepError struct {
	Step      Step
	Extension string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Step, e.Extension, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// FilesystemError reports a failure to resolve or create a directory.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *FilesystemError) Unwrap() error { return e.Err }
