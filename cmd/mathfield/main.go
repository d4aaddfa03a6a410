// Command mathfield serves, inspects and publishes math fields.
package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mathfield/internal/config"
	"github.com/vango-dev/mathfield/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mathfield",
		Short: "Server-driven math input fields",
		Long: `mathfield hosts math input widgets whose options and event
handlers are driven from Go.

  • serve     run the demo page and field sessions
  • classify  show how a props file splits into options, attributes and handlers
  • publish   upload the browser runtime to an object store
  • explain   describe an error code`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		classifyCmd(),
		publishCmd(),
		explainCmd(),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads path, which may be a file or a directory. With no path
// the working directory is searched and defaults are used when it has no
// config file.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg, err := config.Load(".")
		if stderrors.Is(err, errors.New("E100")) {
			return config.New(), nil
		}
		return cfg, err
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return config.Load(path)
	}
	return config.LoadFile(path)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an indented line.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
