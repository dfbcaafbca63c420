// Package source defines how artwork images are acquired for palette extraction.
//
// Acquisition never fails with a Go error: network failures, empty search
// results and undecodable data all become an Unavailable acquisition carrying
// a reason, which callers must check before reducing the image.
package source

import (
	"context"
	"fmt"
	"image"
)

// Acquisition is either an image or the reason no image could be obtained.
type Acquisition struct {
	// Image is nil when the acquisition is unavailable.
	Image image.Image

	// Origin identifies where the image came from (path, URL or query).
	Origin string

	// Title is a human-readable name for the artwork, if known.
	Title string

	// Reason explains why Image is nil.
	Reason string
}

// Found wraps a successfully acquired image.
func Found(img image.Image, origin, title string) Acquisition {
	return Acquisition{Image: img, Origin: origin, Title: title}
}

// Unavailable records why no image was obtained for origin.
func Unavailable(origin, format string, args ...any) Acquisition {
	return Acquisition{Origin: origin, Reason: fmt.Sprintf(format, args...)}
}

// Available reports whether an image was acquired.
func (a Acquisition) Available() bool {
	return a.Image != nil && !a.Image.Bounds().Empty()
}

// Label returns the title when known, otherwise the origin.
func (a Acquisition) Label() string {
	if a.Title != "" {
		return a.Title
	}
	return a.Origin
}

// Source acquires an image for a query. The meaning of the query (a path, a
// search phrase or a generation prompt) depends on the implementation.
type Source interface {
	Name() string
	Acquire(ctx context.Context, query string) Acquisition
}
