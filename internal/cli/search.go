package cli

import (
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/artpalette/internal/source"
	"github.com/jmylchreest/artpalette/internal/source/artic"
	"github.com/jmylchreest/artpalette/internal/util/imagecache"
)

type searchOptions struct {
	palette    paletteOptions
	baseURL    string
	cacheDir   string
	keep       bool
	timeout    time.Duration
	candidates int
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	o := &searchOptions{}
	defaults := artic.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Extract a palette from an Art Institute of Chicago artwork",
		Long: `Search the Art Institute of Chicago collection and extract a palette from the
first matching artwork that has an image.

Downloaded images are discarded after extraction unless --keep or
--cache-dir is given.

Examples:
  artpalette search water lilies
  artpalette search --keep -c 6 "a sunday on la grande jatte"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), o, loggerOr(root.logger))
		},
	}

	addPaletteFlags(cmd, &o.palette)
	cmd.Flags().StringVar(&o.baseURL, "api-url", defaults.BaseURL, "collection API base URL")
	cmd.Flags().StringVar(&o.cacheDir, "cache-dir", "", "directory to keep downloaded images in")
	cmd.Flags().BoolVar(&o.keep, "keep", false, "keep downloaded images in the default cache directory")
	cmd.Flags().DurationVar(&o.timeout, "timeout", defaults.Timeout, "timeout for each API request")
	cmd.Flags().IntVar(&o.candidates, "candidates", defaults.Candidates, "number of search hits inspected for an image")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, o *searchOptions, logger hclog.Logger) error {
	cacheDir, err := resolveCacheDir(o.cacheDir, o.keep)
	if err != nil {
		return err
	}

	src := artic.New(artic.Options{
		BaseURL:    o.baseURL,
		Timeout:    o.timeout,
		Candidates: o.candidates,
		CacheDir:   cacheDir,
	}, logger)

	acq := src.Acquire(cmd.Context(), query)
	return runPalettes(cmd, &o.palette, []source.Acquisition{acq}, 1, logger)
}

// resolveCacheDir returns dir, the default cache directory when keep is set,
// or "" for no persistent cache.
func resolveCacheDir(dir string, keep bool) (string, error) {
	if dir != "" || !keep {
		return dir, nil
	}
	return imagecache.DefaultCacheDir()
}
