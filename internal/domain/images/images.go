// Package images defines the blob store port shared by auction and user images
// together with the accepted image formats.
package images

import (
	"context"
	"errors"
	"path"
	"strings"
)

var (
	ErrImageNotFound        = errors.New("image not found")
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

// Image is a stored image and the MIME type it is served with.
type Image struct {
	Data        []byte
	ContentType string
}

// Store is a key-value blob store addressed by filename.
type Store interface {
	Put(ctx context.Context, filename string, data []byte) error
	Get(ctx context.Context, filename string) ([]byte, error)
	Delete(ctx context.Context, filename string) error
}

var extensions = map[string]string{
	"image/jpeg": "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
}

// ExtensionForContentType returns the file extension used to store an image
// of the given MIME type.
func ExtensionForContentType(contentType string) (string, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := extensions[mediaType]
	if !ok {
		return "", ErrUnsupportedImageType
	}
	return ext, nil
}

// ContentTypeFromFilename derives the MIME type from a stored filename.
func ContentTypeFromFilename(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	switch ext {
	case "jpeg", "jpg":
		return "image/jpeg", nil
	case "png":
		return "image/png", nil
	case "gif":
		return "image/gif", nil
	default:
		return "", ErrUnsupportedImageType
	}
}

// Load fetches filename from store and attaches its content type.
func Load(ctx context.Context, store Store, filename string) (*Image, error) {
	contentType, err := ContentTypeFromFilename(filename)
	if err != nil {
		return nil, err
	}
	data, err := store.Get(ctx, filename)
	if err != nil {
		return nil, err
	}
	return &Image{Data: data, ContentType: contentType}, nil
}
