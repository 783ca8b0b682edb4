package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockreg/pkg/config"
	"github.com/getmockd/mockreg/pkg/logging"
	"github.com/getmockd/mockreg/pkg/mock"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
)

// globalOptions holds persistent flags shared by every command.
type globalOptions struct {
	jsonOutput bool
	logLevel   string
	logFormat  string
	files      []string
}

func (o *globalOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(o.logLevel),
		Format: logging.ParseFormat(o.logFormat),
		Output: cmd.ErrOrStderr(),
	})
}

// loadMocks loads the mock files named by -f, falling back to MOCKREG_FILES.
func (o *globalOptions) loadMocks(cmd *cobra.Command) ([]*mock.Response, []string, error) {
	files := o.files
	if len(files) == 0 {
		files = config.FilesFromEnv()
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w: pass -f or set %s", config.ErrNoFiles, config.EnvFiles)
	}
	loader := &config.Loader{Logger: o.logger(cmd)}
	mocks, err := loader.Load(files...)
	if err != nil {
		return nil, files, err
	}
	return mocks, files, nil
}

// NewRootCommand builds the mockreg command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "mockreg",
		Short: "mockreg matches requests against registered mock responses",
		Long: `mockreg loads mock response definitions into an ordered registry and
shows which mock would service a request.

A single matching mock is reused for every identical request. When several
mocks match, the earliest registered one is served and removed, so repeated
requests walk through them in order.`,
		Version:       fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true, // Execute prints errors
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&opts.jsonOutput, "json", false, "Output command results in JSON format")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	pf.StringArrayVarP(&opts.files, "file", "f", nil, "Mock file or glob (repeatable)")

	root.AddCommand(
		newMatchCommand(opts),
		newValidateCommand(opts),
		newListCommand(opts),
	)
	return root
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
