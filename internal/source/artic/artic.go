// Package artic acquires artwork images by free-text search of the Art Institute
// of Chicago public collection API.
package artic

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	imgload "github.com/jmylchreest/artpalette/internal/image"
	"github.com/jmylchreest/artpalette/internal/source"
	httputil "github.com/jmylchreest/artpalette/internal/util/http"
	"github.com/jmylchreest/artpalette/internal/util/imagecache"
)

const (
	// DefaultBaseURL is the public API endpoint.
	DefaultBaseURL = "https://api.artic.edu"

	// DefaultIIIFURL is used when a response omits config.iiif_url.
	DefaultIIIFURL = "https://www.artic.edu/iiif/2"

	// DefaultCandidates is how many search hits are inspected for an image.
	DefaultCandidates = 5

	// imageWidth is the IIIF width the API documentation recommends for full views.
	imageWidth = 843
)

// Options configures the catalogue source.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Candidates int

	// CacheDir keeps downloaded images between runs. When empty, images are
	// written to a temporary directory that is removed after decoding.
	CacheDir string
}

// DefaultOptions returns options pointing at the public API.
func DefaultOptions() Options {
	return Options{
		BaseURL:    DefaultBaseURL,
		Timeout:    httputil.DefaultTimeout,
		Candidates: DefaultCandidates,
	}
}

// Source searches the catalogue and downloads the best match's image.
type Source struct {
	opts   Options
	logger hclog.Logger
}

// New creates a catalogue source.
func New(opts Options, logger hclog.Logger) *Source {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Candidates < 1 {
		opts.Candidates = DefaultCandidates
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Source{opts: opts, logger: logger.Named("artic")}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "artic"
}

// artwork is the subset of artwork fields requested from the search endpoint.
type artwork struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	ArtistDisplay string  `json:"artist_display"`
	ImageID       *string `json:"image_id"`
}

type searchResponse struct {
	Data   []artwork `json:"data"`
	Config struct {
		IIIFURL string `json:"iiif_url"`
	} `json:"config"`
}

// SearchURL builds the search request for query.
func (s *Source) SearchURL(query string) string {
	v := url.Values{}
	v.Set("q", query)
	v.Set("limit", fmt.Sprint(s.opts.Candidates))
	v.Set("fields", "id,title,artist_display,image_id")
	return strings.TrimSuffix(s.opts.BaseURL, "/") + "/api/v1/artworks/search?" + v.Encode()
}

// ImageURL returns the IIIF URL of an artwork image.
func ImageURL(iiifBase, imageID string) string {
	if iiifBase == "" {
		iiifBase = DefaultIIIFURL
	}
	return fmt.Sprintf("%s/%s/full/%d,/0/default.jpg", strings.TrimSuffix(iiifBase, "/"), url.PathEscape(imageID), imageWidth)
}

// Acquire searches for query and returns the first hit that has an image.
func (s *Source) Acquire(ctx context.Context, query string) source.Acquisition {
	query = strings.TrimSpace(query)
	if query == "" {
		return source.Unavailable(query, "empty search query")
	}

	fetch := httputil.FetchOptions{
		Timeout: s.opts.Timeout,
		Headers: map[string]string{"AIC-User-Agent": httputil.UserAgent()},
	}

	var resp searchResponse
	if err := httputil.FetchJSON(ctx, s.SearchURL(query), fetch, &resp); err != nil {
		s.logger.Warn("catalogue search failed", "query", query, "error", err)
		return source.Unavailable(query, "catalogue unavailable: %v", err)
	}
	if len(resp.Data) == 0 {
		return source.Unavailable(query, "no artworks match %q", query)
	}

	var hit *artwork
	for i := range resp.Data {
		if resp.Data[i].ImageID != nil && *resp.Data[i].ImageID != "" {
			hit = &resp.Data[i]
			break
		}
	}
	if hit == nil {
		return source.Unavailable(query, "no image attached to the %d matching artworks", len(resp.Data))
	}

	imageURL := ImageURL(resp.Config.IIIFURL, *hit.ImageID)
	title := describe(*hit)
	s.logger.Debug("artwork selected", "id", hit.ID, "title", title, "url", imageURL)

	img, err := s.download(ctx, imageURL, fetch)
	if err != nil {
		s.logger.Warn("artwork image unavailable", "url", imageURL, "error", err)
		return source.Unavailable(query, "image for %q unavailable: %v", title, err)
	}

	return source.Found(img, imageURL, title)
}

// download stores the image in the cache (or a temporary directory) and decodes it.
func (s *Source) download(ctx context.Context, imageURL string, fetch httputil.FetchOptions) (image.Image, error) {
	dir := s.opts.CacheDir
	if dir == "" {
		tmp, cleanup, err := imagecache.TempDir()
		if err != nil {
			return nil, err
		}
		defer cleanup()
		dir = tmp
	}

	path, err := imagecache.DownloadAndCache(ctx, imageURL, imagecache.CacheOptions{
		CacheDir: dir,
		Fetch:    fetch,
	})
	if err != nil {
		return nil, err
	}

	img, err := imgload.NewFileLoader().Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w (downloaded to %s)", err, path)
	}
	return img, nil
}

func describe(a artwork) string {
	artist, _, _ := strings.Cut(a.ArtistDisplay, "\n")
	if artist == "" {
		return a.Title
	}
	return fmt.Sprintf("%s (%s)", a.Title, artist)
}
