package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/artpalette/internal/colour"
	"github.com/jmylchreest/artpalette/internal/pipeline"
	"github.com/jmylchreest/artpalette/internal/reducer"
	"github.com/jmylchreest/artpalette/internal/render"
	"github.com/jmylchreest/artpalette/internal/seed"
	"github.com/jmylchreest/artpalette/internal/source"
)

// paletteOptions holds the flags shared by every command that extracts a palette.
type paletteOptions struct {
	colours   int
	lightness float64
	seedMode  string
	seed      int64

	size      int
	blockSize int
	blur      float64

	format  string
	output  string
	preview bool
	colour  string
}

func addPaletteFlags(cmd *cobra.Command, o *paletteOptions) {
	extract := colour.DefaultExtractOptions()
	rc := reducer.DefaultConfig()

	fs := cmd.Flags()
	fs.IntVarP(&o.colours, "colours", "c", extract.Colours, "number of colours to extract")
	fs.Float64VarP(&o.lightness, "lightness", "l", extract.Lightness, "representative lightness within each cluster (0 darkest, 1 lightest)")
	fs.StringVar(&o.seedMode, "seed-mode", string(seed.ModeFixed), "clustering seed mode (fixed, content, manual, random)")
	fs.Int64Var(&o.seed, "seed", extract.Seed, "seed value for manual seed mode (implies --seed-mode manual)")

	fs.IntVar(&o.size, "size", rc.Size, "edge length the image is resized to before reduction")
	fs.IntVar(&o.blockSize, "block-size", rc.BlockSize, "edge length of each reduction block")
	fs.Float64Var(&o.blur, "blur", rc.BlurSigma, "gaussian blur sigma applied to each block (0 disables)")

	fs.StringVarP(&o.format, "format", "f", string(render.FormatSwatch), "output format (swatch, hex, rgb, json)")
	fs.StringVarP(&o.output, "output", "o", "", "output file (default: stdout); a .png file receives pixel bars")
	fs.BoolVar(&o.preview, "preview", false, "also show colour swatches on stderr")
	fs.StringVar(&o.colour, "colour", "auto", "terminal colour (auto, always, never)")
}

// pipelineConfig turns the flags into pipeline parameters.
func (o *paletteOptions) pipelineConfig(cmd *cobra.Command) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	cfg.Extract.Colours = o.colours
	cfg.Extract.Lightness = o.lightness
	cfg.Reducer = reducer.Config{Size: o.size, BlockSize: o.blockSize, BlurSigma: o.blur}
	if err := cfg.Reducer.Validate(); err != nil {
		return cfg, err
	}

	mode := seed.Mode(o.seedMode)
	if cmd.Flags().Changed("seed") && !cmd.Flags().Changed("seed-mode") {
		mode = seed.ModeManual
	}
	mode, err := seed.ParseMode(string(mode))
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", colour.ErrInvalidParameter, err)
	}

	value := o.seed
	cfg.Seed = &seed.Config{Mode: mode, Value: &value}
	return cfg, nil
}

// emit writes each result and returns the joined hard failures. Results
// without an image are reported on stderr and are not failures.
func (o *paletteOptions) emit(cmd *cobra.Command, results []pipeline.Result, logger hclog.Logger) error {
	format, err := render.ParseFormat(o.format)
	if err != nil {
		return err
	}
	colourMode, err := render.ParseColourMode(o.colour)
	if err != nil {
		return err
	}

	var failures []error
	written := 0
	for i, r := range results {
		if errors.Is(r.Err, pipeline.ErrNoImage) {
			fmt.Fprintf(cmd.ErrOrStderr(), "no palette available: %s\n", r.Acquisition.Reason)
			continue
		}
		if r.Err != nil {
			failures = append(failures, r.Err)
			continue
		}

		if o.preview {
			preview := &render.Terminal{Colour: colourMode}
			if err := preview.Render(cmd.ErrOrStderr(), r.Palette); err != nil {
				return err
			}
		}

		if o.output != "" {
			path := outputPath(o.output, i, len(results))
			if err := o.writeFile(path, format, r); err != nil {
				return err
			}
			logger.Info("palette written", "image", r.Acquisition.Label(), "path", path)
			continue
		}

		out := cmd.OutOrStdout()
		if len(results) > 1 && format != render.FormatJSON {
			if written > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "# %s\n", r.Acquisition.Label())
		}
		renderer, err := render.New(format, colourMode, r.Acquisition.Origin)
		if err != nil {
			return err
		}
		if err := renderer.Render(out, r.Palette); err != nil {
			return fmt.Errorf("failed to write palette: %w", err)
		}
		written++
	}

	return errors.Join(failures...)
}

func (o *paletteOptions) writeFile(path string, format render.Format, r pipeline.Result) error {
	var renderer render.Renderer = &render.Bars{}
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		var err error
		if renderer, err = render.New(format, render.ColourNever, r.Acquisition.Origin); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := renderer.Render(f, r.Palette); err != nil {
		f.Close()
		return fmt.Errorf("failed to write palette: %w", err)
	}
	return f.Close()
}

// outputPath numbers output files when several palettes share one --output.
func outputPath(path string, i, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}

// runPalettes reduces and extracts every acquisition and emits the results.
func runPalettes(cmd *cobra.Command, o *paletteOptions, acqs []source.Acquisition, jobs int, logger hclog.Logger) error {
	cfg, err := o.pipelineConfig(cmd)
	if err != nil {
		return err
	}
	results := pipeline.RunBatch(cmd.Context(), acqs, cfg, jobs, logger)
	return o.emit(cmd, results, logger)
}

// loggerOr returns l, or a null logger when the persistent pre-run was skipped.
func loggerOr(l hclog.Logger) hclog.Logger {
	if l == nil {
		return hclog.NewNullLogger()
	}
	return l
}
