// Package googlegenai acquires artwork by generating an image from a text
// prompt with Google's Gemini and Imagen models.
package googlegenai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"

	imgload "github.com/jmylchreest/artpalette/internal/image"
	"github.com/jmylchreest/artpalette/internal/source"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.5-flash-image"

	// DefaultBackend is used when no backend is configured.
	DefaultBackend = BackendGeminiAPI

	// DefaultAspectRatio suits paintings better than the wide wallpaper ratios.
	DefaultAspectRatio = "4:3"

	BackendGeminiAPI = "gemini-api"
	BackendVertexAI  = "vertex-ai"

	// APIKeyEnv holds the Gemini API key.
	APIKeyEnv = "GOOGLE_API_KEY"

	// artworkStyle is appended to prompts so output reads as a finished painting.
	artworkStyle = ", as a finished fine art painting, full frame, no borders, no text"
)

// ErrNoImageData is returned when a response carries no usable image bytes.
var ErrNoImageData = errors.New("no image data in response")

// Options configures image generation.
type Options struct {
	Model       string
	Backend     string
	AspectRatio string

	// APIKey overrides GOOGLE_API_KEY for the Gemini API backend.
	APIKey string

	// CacheDir keeps generated images keyed by prompt and model. When empty,
	// every call generates a new image and nothing is written to disk.
	CacheDir string

	// Overwrite regenerates images even when a cached copy exists.
	Overwrite bool

	// Literal sends the prompt without the artwork style suffix.
	Literal bool
}

// DefaultOptions returns options for the Gemini API backend.
func DefaultOptions() Options {
	return Options{
		Model:       DefaultModel,
		Backend:     DefaultBackend,
		AspectRatio: DefaultAspectRatio,
	}
}

// generateFunc produces encoded image bytes for a prompt.
type generateFunc func(ctx context.Context, prompt string) ([]byte, error)

// Source generates an image for each prompt.
type Source struct {
	opts     Options
	logger   hclog.Logger
	generate generateFunc
}

// New creates a generative source.
func New(opts Options, logger hclog.Logger) *Source {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Backend == "" {
		opts.Backend = DefaultBackend
	}
	if opts.AspectRatio == "" {
		opts.AspectRatio = DefaultAspectRatio
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s := &Source{opts: opts, logger: logger.Named("googlegenai")}
	s.generate = s.generateWithAPI
	return s
}

// Name returns the source name.
func (s *Source) Name() string {
	return "googlegenai"
}

// CachePath returns where the image for prompt is cached, or "" when caching is off.
func (s *Source) CachePath(prompt string) string {
	if s.opts.CacheDir == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(prompt + s.opts.Model))
	return filepath.Join(s.opts.CacheDir, "genai-"+hex.EncodeToString(hash[:])[:16]+".png")
}

// Prompt returns the text sent to the model for a user prompt.
func (s *Source) Prompt(prompt string) string {
	if s.opts.Literal {
		return prompt
	}
	return prompt + artworkStyle
}

// Acquire generates (or loads from cache) an image for prompt.
func (s *Source) Acquire(ctx context.Context, prompt string) source.Acquisition {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return source.Unavailable(prompt, "empty prompt")
	}

	cachePath := s.CachePath(prompt)
	if cachePath != "" && !s.opts.Overwrite {
		if img, err := imgload.NewFileLoader().Load(ctx, cachePath); err == nil {
			s.logger.Debug("using cached image", "path", cachePath)
			return source.Found(img, cachePath, prompt)
		}
	}

	s.logger.Info("generating image", "backend", s.opts.Backend, "model", s.opts.Model, "prompt", prompt)
	data, err := s.generate(ctx, s.Prompt(prompt))
	if err != nil {
		s.logger.Warn("image generation failed", "error", err)
		return source.Unavailable(prompt, "image generation failed: %v", err)
	}

	img, err := imgload.Decode(data)
	if err != nil {
		return source.Unavailable(prompt, "generated image unreadable: %v", err)
	}

	origin := "genai:" + s.opts.Model
	if cachePath != "" {
		if err := writeCache(cachePath, data); err != nil {
			s.logger.Warn("failed to cache generated image", "path", cachePath, "error", err)
		} else {
			origin = cachePath
		}
	}

	return source.Found(img, origin, prompt)
}

func writeCache(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write image to file: %w", err)
	}
	return nil
}

// clientConfig builds the client configuration for the configured backend.
func (s *Source) clientConfig() (*genai.ClientConfig, error) {
	cfg := &genai.ClientConfig{}
	switch s.opts.Backend {
	case BackendVertexAI:
		cfg.Backend = genai.BackendVertexAI
	case BackendGeminiAPI:
		cfg.Backend = genai.BackendGeminiAPI
		cfg.APIKey = s.opts.APIKey
		if cfg.APIKey == "" {
			cfg.APIKey = os.Getenv(APIKeyEnv)
		}
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s environment variable is required", APIKeyEnv)
		}
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s or %s)", s.opts.Backend, BackendGeminiAPI, BackendVertexAI)
	}
	return cfg, nil
}

// isGeminiModel reports whether model generates images through GenerateContent.
func isGeminiModel(model string) bool {
	return strings.HasPrefix(model, "gemini-")
}

func (s *Source) generateWithAPI(ctx context.Context, prompt string) ([]byte, error) {
	cfg, err := s.clientConfig()
	if err != nil {
		return nil, err
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	if isGeminiModel(s.opts.Model) {
		return s.generateContent(ctx, client, prompt)
	}
	return s.generateImages(ctx, client, prompt)
}

func (s *Source) generateImages(ctx context.Context, client *genai.Client, prompt string) ([]byte, error) {
	resp, err := client.Models.GenerateImages(ctx, s.opts.Model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    s.opts.AspectRatio,
		OutputMIMEType: "image/png",
	})
	if err != nil {
		return nil, err
	}
	return imagesData(resp)
}

func (s *Source) generateContent(ctx context.Context, client *genai.Client, prompt string) ([]byte, error) {
	text := fmt.Sprintf("Generate an image with aspect ratio %s: %s", s.opts.AspectRatio, prompt)
	resp, err := client.Models.GenerateContent(ctx, s.opts.Model, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"Image"},
	})
	if err != nil {
		return nil, err
	}
	return contentData(resp)
}

// imagesData extracts the first image from a GenerateImages response.
func imagesData(resp *genai.GenerateImagesResponse) ([]byte, error) {
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, ErrNoImageData
	}
	generated := resp.GeneratedImages[0]
	if generated.RAIFilteredReason != "" {
		return nil, fmt.Errorf("image was filtered by safety system: %s", generated.RAIFilteredReason)
	}
	if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		return nil, ErrNoImageData
	}
	return generated.Image.ImageBytes, nil
}

// contentData extracts the first inline image part from a GenerateContent response.
func contentData(resp *genai.GenerateContentResponse) ([]byte, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrNoImageData
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, ErrNoImageData
}
