// Package buildext implements the build_ext step of a distribution whose
// extensions are built by CMake.
package buildext

import (
	"context"
	"log/slog"
	"os"

	"github.com/goplus/pyext/dist"
	"github.com/goplus/pyext/internal/logfields"
	"github.com/goplus/pyext/pkgs/buildsys"
	"github.com/goplus/pyext/pkgs/buildsys/cmake"
)

// ToolFunc returns the build system for one source and build directory.
type ToolFunc func(sourceDir, buildDir string) buildsys.BuildSystem

// Command builds a fixed list of extensions with a fixed configuration.
// Extensions are built one at a time in registration order.
type Command struct {
	opts       Options
	extensions []*dist.Extension
	newTool    ToolFunc
	logger     *slog.Logger
	dryRun     bool
}

// NewCommand finalizes opts and returns a Command for extensions.
func NewCommand(opts Options, extensions []*dist.Extension) (*Command, error) {
	opts, err := opts.Finalize()
	if err != nil {
		return nil, err
	}
	return &Command{
		opts:       opts,
		extensions: extensions,
		logger:     slog.Default(),
	}, nil
}

// Tool overrides the build system factory. The default drives cmake.
func (c *Command) Tool(fn ToolFunc) *Command {
	c.newTool = fn
	return c
}

// Logger sets the logger. A nil logger selects slog.Default.
func (c *Command) Logger(logger *slog.Logger) *Command {
	if logger == nil {
		logger = slog.Default()
	}
	c.logger = logger
	return c
}

// DryRun makes the command log tool invocations and directory creation
// instead of performing them.
func (c *Command) DryRun(on bool) *Command {
	c.dryRun = on
	return c
}

// Options returns the finalized configuration.
func (c *Command) Options() Options { return c.opts }

// Run checks that the build tool is available and builds every extension.
// The first failure stops the run.
func (c *Command) Run(ctx context.Context) error {
	version, err := c.tool("", "").Version(ctx)
	if err != nil {
		names := make([]string, len(c.extensions))
		for i, ext := range c.extensions {
			names[i] = ext.Name()
		}
		return &ToolUnavailableError{Tool: "CMake", Extensions: names, Err: err}
	}
	c.logger.DebugContext(ctx, "found cmake", logfields.Version(version))

	for _, ext := range c.extensions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.BuildOne(ctx, ext); err != nil {
			c.logger.ErrorContext(ctx, "extension failed", logfields.Extension(ext.Name()), logfields.Error(err))
			return err
		}
	}
	c.logger.InfoContext(ctx, "built extensions", logfields.Count(len(c.extensions)))
	return nil
}

// BuildOne configures and builds a single extension.
func (c *Command) BuildOne(ctx context.Context, ext *dist.Extension) error {
	extDir, err := c.opts.ExtensionDir(ext.Name())
	if err != nil {
		return err
	}
	args := ConfigureArgs(c.opts, extDir)

	buildDir := c.opts.BuildDir(ext.Name())
	if err := c.mkdirAll(ctx, buildDir); err != nil {
		return &FilesystemError{Op: "create build directory", Path: buildDir, Err: err}
	}

	log := c.logger.With(logfields.Extension(ext.Name()))
	tool := c.tool(ext.SourceDir(), buildDir)

	log.InfoContext(ctx, "configuring extension",
		logfields.Step(string(StepConfigure)),
		logfields.SourceDir(ext.SourceDir()),
		logfields.BuildDir(buildDir),
		logfields.OutputDir(extDir))
	log.DebugContext(ctx, "cmake arguments", logfields.Args(args))
	if err := tool.Configure(ctx, args...); err != nil {
		return &StepError{Step: StepConfigure, Extension: ext.Name(), Err: err}
	}

	log.InfoContext(ctx, "building extension", logfields.Step(string(StepBuild)))
	if err := tool.Build(ctx); err != nil {
		return &StepError{Step: StepBuild, Extension: ext.Name(), Err: err}
	}
	return nil
}

func (c *Command) tool(sourceDir, buildDir string) buildsys.BuildSystem {
	if c.newTool != nil {
		return c.newTool(sourceDir, buildDir)
	}
	var runner buildsys.Runner = buildsys.ExecRunner{}
	if c.dryRun {
		runner = buildsys.DryRunner{Logger: c.logger}
	}
	return cmake.New(sourceDir, buildDir).Runner(runner)
}

func (c *Command) mkdirAll(ctx context.Context, dir string) error {
	if c.dryRun {
		c.logger.InfoContext(ctx, "dry run", slog.String("mkdir", dir))
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
