package internal

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goplus/pyext/internal/logfields"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pyext",
	Short: "pyext builds CMake-based native extensions of a Python distribution",
	Long: `pyext compiles the native extension modules of a Python distribution by
driving CMake, placing the results where the Python import machinery finds them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(verbose))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("pyext failed", logfields.Error(err))
		os.Exit(1)
	}
}
