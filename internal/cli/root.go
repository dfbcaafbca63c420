// Package cli provides the command-line interface for artpalette.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/artpalette/internal/version"
)

// EnvPrefix prefixes the environment variables that supply flag defaults.
const EnvPrefix = "ARTPALETTE_"

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	verbose   bool
	quiet     bool
	logFormat string

	logger hclog.Logger
}

// NewRootCmd builds the artpalette command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "artpalette",
		Short: "Extract colour palettes from artwork",
		Long: `artpalette reduces an image to a grid of blurred blocks in CIE Lab space,
clusters the blocks on chroma and picks one representative colour per cluster.

Images can come from local files, URLs, a search of the Art Institute of
Chicago collection, or a generative model.

Every flag can also be set through the environment: --colours reads
ARTPALETTE_COLOURS, --cache-dir reads ARTPALETTE_CACHE_DIR, and so on.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyEnv(cmd.Flags()); err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), opts)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(opts))
	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(newImagineCmd(opts))

	return rootCmd
}

// newLogger builds the logger every component receives.
func newLogger(w io.Writer, opts *rootOptions) (hclog.Logger, error) {
	if opts.verbose && opts.quiet {
		return nil, errors.New("--verbose and --quiet are mutually exclusive")
	}

	level := hclog.Info
	switch {
	case opts.verbose:
		level = hclog.Debug
	case opts.quiet:
		level = hclog.Error
	}

	var jsonFormat bool
	switch opts.logFormat {
	case "", "text":
	case "json":
		jsonFormat = true
	default:
		return nil, fmt.Errorf("invalid log format %q (valid: text, json)", opts.logFormat)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       "artpalette",
		Output:     w,
		Level:      level,
		JSONFormat: jsonFormat,
	}), nil
}

// EnvName returns the environment variable consulted for a flag.
func EnvName(flag string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// applyEnv fills every flag not given on the command line from its
// environment variable.
func applyEnv(fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "help" || f.Name == "version" {
			return
		}
		v, ok := os.LookupEnv(EnvName(f.Name))
		if !ok {
			return
		}
		if err := fs.Set(f.Name, v); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", EnvName(f.Name), err))
		}
	})
	return errors.Join(errs...)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
