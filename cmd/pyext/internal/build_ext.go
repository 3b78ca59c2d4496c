package internal

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/goplus/pyext/dist"
	"github.com/goplus/pyext/internal/buildext"
	"github.com/goplus/pyext/internal/logfields"
)

var (
	buildExtOpts     = buildext.DefaultOptions()
	buildExtManifest string
	buildExtDryRun   bool
)

var buildExtCmd = &cobra.Command{
	Use:   "build_ext",
	Short: "Build the native extensions with CMake",
	Long: `Build_ext configures and builds every extension declared in the manifest,
one CMake build directory per extension. Options given on the command line
override the manifest's options section.`,
	Args: cobra.NoArgs,
	RunE: runBuildExt,
}

func init() {
	flags := buildExtCmd.Flags()
	bindOptions(flags, &buildExtOpts)
	flags.StringVarP(&buildExtManifest, "manifest", "f", dist.DefaultFile, "Distribution manifest")
	flags.BoolVarP(&buildExtDryRun, "dry-run", "n", false, "Log commands without running them")
	rootCmd.AddCommand(buildExtCmd)
}

// bindOptions registers one flag per build option, defaulting to o.
func bindOptions(fs *pflag.FlagSet, o *buildext.Options) {
	fs.StringVar(&o.BuildType, "build-type", o.BuildType, "Specify the CMAKE_BUILD_TYPE (Release, Debug, RelWithDebInfo or MinSizeRel)")
	fs.BoolVar(&o.SharedLibs, "shared-libs", o.SharedLibs, "Build shared libraries")
	fs.BoolVar(&o.PythonWrapper, "python-wrapper", o.PythonWrapper, "Enable Python wrapper")
	fs.StringVar(&o.PythonExecutable, "python-executable", o.PythonExecutable, "Specify the Python executable")
	fs.StringVar(&o.PythonIncludeDir, "python-include-dir", o.PythonIncludeDir, "Specify Python include directory")
	fs.StringVar(&o.PythonLib, "python-lib", o.PythonLib, "Specify Python library path")
	fs.StringVar(&o.NumpyIncludeDir, "numpy-include-dir", o.NumpyIncludeDir, "Specify NumPy include directory")
	fs.StringVarP(&o.BuildLib, "build-lib", "b", o.BuildLib, "Directory for compiled extension modules")
	fs.StringVarP(&o.BuildTemp, "build-temp", "t", o.BuildTemp, "Directory for temporary build files")
	fs.BoolVarP(&o.Inplace, "inplace", "i", o.Inplace, "Place compiled modules next to the sources")
}

// resolveOptions layers defaults, the manifest's options and the flags that
// were set explicitly, in that order.
func resolveOptions(fs *pflag.FlagSet, flagOpts buildext.Options, d *dist.Distribution) buildext.Options {
	opts := buildext.DefaultOptions().Apply(d.Options)
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "build-type":
			opts.BuildType = flagOpts.BuildType
		case "shared-libs":
			opts.SharedLibs = flagOpts.SharedLibs
		case "python-wrapper":
			opts.PythonWrapper = flagOpts.PythonWrapper
		case "python-executable":
			opts.PythonExecutable = flagOpts.PythonExecutable
		case "python-include-dir":
			opts.PythonIncludeDir = flagOpts.PythonIncludeDir
		case "python-lib":
			opts.PythonLib = flagOpts.PythonLib
		case "numpy-include-dir":
			opts.NumpyIncludeDir = flagOpts.NumpyIncludeDir
		case "build-lib":
			opts.BuildLib = flagOpts.BuildLib
		case "build-temp":
			opts.BuildTemp = flagOpts.BuildTemp
		case "inplace":
			opts.Inplace = flagOpts.Inplace
		}
	})
	return opts
}

func runBuildExt(cmd *cobra.Command, args []string) error {
	d, err := dist.Parse(buildExtManifest, nil)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	opts := resolveOptions(cmd.Flags(), buildExtOpts, d)
	command, err := buildext.NewCommand(opts, d.Extensions)
	if err != nil {
		return fmt.Errorf("invalid build options: %w", err)
	}
	command.Logger(slog.Default()).DryRun(buildExtDryRun)

	slog.Info("building distribution",
		slog.String("name", d.Name),
		logfields.Version(d.Version),
		logfields.Count(len(d.Extensions)))
	return command.Run(cmd.Context())
}
