package buildsys

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// BuildSystem captures the lifecycle of an external build tool (CMake, etc):
// an availability probe followed by configure and build phases.
type BuildSystem interface {
	// Version runs the tool's version query. It fails when the tool
	// cannot be located or invoked.
	Version(ctx context.Context) (string, error)

	// Lifecycle.
	Configure(ctx context.Context, args ...string) error
	Build(ctx context.Context, args ...string) error
}

// Cmd describes one external process invocation.
type Cmd struct {
	Name   string
	Args   []string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

func (c *Cmd) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes a Cmd and blocks until it exits.
type Runner interface {
	Run(ctx context.Context, cmd *Cmd) error
}

// ExecRunner runs commands as child processes.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, c *Cmd) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd.Run()
}

// DryRunner logs commands instead of running them.
type DryRunner struct {
	Logger *slog.Logger
}

func (r DryRunner) Run(ctx context.Context, c *Cmd) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "dry run", slog.String("cmd", c.String()), slog.String("dir", c.Dir))
	return nil
}
