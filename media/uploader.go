// Package media stores uploaded images with a third-party host and hands back durable URLs.
package media

import (
	"context"
	"io"
)

// File is an uploaded image streamed from the request.
type File struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Asset is a stored image.
type Asset struct {
	URL      string
	PublicID string
}

// Uploader stores and deletes images on a media host.
type Uploader interface {
	Upload(ctx context.Context, file File) (*Asset, error)
	Delete(ctx context.Context, publicID string) error
	// PublicIDFromURL recovers the identifier of an asset previously returned by Upload.
	// It returns "" when the URL was not issued by this host.
	PublicIDFromURL(url string) string
}
