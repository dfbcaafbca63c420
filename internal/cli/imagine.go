package cli

import (
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/artpalette/internal/source"
	"github.com/jmylchreest/artpalette/internal/source/googlegenai"
)

type imagineOptions struct {
	palette  paletteOptions
	genai    googlegenai.Options
	cacheDir string
	keep     bool
}

func newImagineCmd(root *rootOptions) *cobra.Command {
	o := &imagineOptions{}
	defaults := googlegenai.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "imagine <prompt...>",
		Short: "Extract a palette from a generated artwork",
		Long: `Generate an image from a text prompt with Google Gemini or Imagen and extract
its palette.

The Gemini API backend reads its key from GOOGLE_API_KEY. The Vertex AI
backend uses application default credentials together with
GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION.

Examples:
  artpalette imagine a stormy harbour in the style of turner
  artpalette imagine --model imagen-4.0-generate-001 --keep autumn orchard`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImagine(cmd, strings.Join(args, " "), o, loggerOr(root.logger))
		},
	}

	addPaletteFlags(cmd, &o.palette)
	cmd.Flags().StringVar(&o.genai.Model, "model", defaults.Model, "image generation model")
	cmd.Flags().StringVar(&o.genai.AspectRatio, "aspect-ratio", defaults.AspectRatio, "image aspect ratio (1:1, 3:4, 4:3, 9:16, 16:9)")
	cmd.Flags().StringVar(&o.genai.Backend, "backend", defaults.Backend, "Gen AI backend (gemini-api, vertex-ai)")
	cmd.Flags().BoolVar(&o.genai.Literal, "literal", false, "send the prompt without artwork style hints")
	cmd.Flags().BoolVar(&o.genai.Overwrite, "overwrite", false, "regenerate even when a cached image exists")
	cmd.Flags().StringVar(&o.cacheDir, "cache-dir", "", "directory to keep generated images in")
	cmd.Flags().BoolVar(&o.keep, "keep", false, "keep generated images in the default cache directory")

	return cmd
}

func runImagine(cmd *cobra.Command, prompt string, o *imagineOptions, logger hclog.Logger) error {
	cacheDir, err := resolveCacheDir(o.cacheDir, o.keep)
	if err != nil {
		return err
	}
	opts := o.genai
	if cacheDir != "" && o.cacheDir == "" {
		// keep generated images apart from downloads
		cacheDir = filepath.Join(filepath.Dir(cacheDir), "generated")
	}
	opts.CacheDir = cacheDir

	acq := googlegenai.New(opts, logger).Acquire(cmd.Context(), prompt)
	return runPalettes(cmd, &o.palette, []source.Acquisition{acq}, 1, logger)
}
