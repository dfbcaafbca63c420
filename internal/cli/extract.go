package cli

import (
	"runtime"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	imgload "github.com/jmylchreest/artpalette/internal/image"
	"github.com/jmylchreest/artpalette/internal/pipeline"
	"github.com/jmylchreest/artpalette/internal/source/file"
	httputil "github.com/jmylchreest/artpalette/internal/util/http"
)

type extractOptions struct {
	palette paletteOptions
	jobs    int
	all     bool
	fetch   httputil.FetchOptions
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	o := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image|dir|url>...",
		Short: "Extract colour palettes from images",
		Long: `Extract a colour palette from each image given.

A directory argument yields one of its images at random, or all of them with
--all. Several inputs are processed concurrently.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Five colours from a painting
  artpalette extract starry-night.jpg

  # Eight darker colours as JSON
  artpalette extract -c 8 -l 0.2 -f json starry-night.jpg

  # Every image in a directory, four at a time
  artpalette extract --all --jobs 4 ~/Pictures/art

  # Pixel bars written to a PNG
  artpalette extract -o palette.png https://example.org/painting.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, o, loggerOr(root.logger))
		},
	}

	addPaletteFlags(cmd, &o.palette)
	cmd.Flags().IntVarP(&o.jobs, "jobs", "j", runtime.NumCPU(), "number of images processed at once")
	cmd.Flags().BoolVar(&o.all, "all", false, "process every image in a directory instead of one at random")
	cmd.Flags().DurationVar(&o.fetch.Timeout, "timeout", httputil.DefaultTimeout, "timeout for URL downloads")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, o *extractOptions, logger hclog.Logger) error {
	paths := args
	if o.all {
		expanded, err := imgload.ExpandPaths(args)
		if err != nil {
			return err
		}
		paths = expanded
		logger.Debug("expanded inputs", "inputs", len(args), "images", len(paths))
	}

	src := file.New(o.fetch, logger)
	acqs := pipeline.Acquire(cmd.Context(), src, paths, o.jobs)
	return runPalettes(cmd, &o.palette, acqs, o.jobs, logger)
}
