// Package file acquires images from local paths, directories or URLs.
package file

import (
	"context"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	imgload "github.com/jmylchreest/artpalette/internal/image"
	"github.com/jmylchreest/artpalette/internal/source"
	httputil "github.com/jmylchreest/artpalette/internal/util/http"
)

// Source loads the image a path or URL points at. A directory yields one of
// its images picked at random.
type Source struct {
	loader imgload.Loader
	logger hclog.Logger
}

// New creates a file source.
func New(fetch httputil.FetchOptions, logger hclog.Logger) *Source {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Source{
		loader: imgload.NewSmartLoader(fetch),
		logger: logger.Named("file"),
	}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "file"
}

// Acquire loads query as a path or URL.
func (s *Source) Acquire(ctx context.Context, query string) source.Acquisition {
	if err := imgload.ValidateImagePath(query); err != nil {
		return source.Unavailable(query, "%v", err)
	}

	path := query
	if !imgload.IsURL(query) {
		if info, err := os.Stat(query); err == nil && info.IsDir() {
			files, err := imgload.ScanDirectoryForImages(query)
			if err != nil {
				return source.Unavailable(query, "%v", err)
			}
			if path, err = imgload.SelectRandomImage(files); err != nil {
				return source.Unavailable(query, "%v", err)
			}
			s.logger.Debug("selected image from directory", "dir", query, "image", path)
		}
	}

	img, err := s.loader.Load(ctx, path)
	if err != nil {
		s.logger.Debug("image unavailable", "path", path, "error", err)
		return source.Unavailable(path, "%v", err)
	}

	s.logger.Debug("image loaded", "path", path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return source.Found(img, path, filepath.Base(path))
}
