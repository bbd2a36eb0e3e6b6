package domain

import (
	"errors"
	"strings"

	"github.com/gosimple/slug"
)

var (
	ErrEmptyDescription = errors.New("document description must contain at least one letter or digit")
	ErrEmptyURL         = errors.New("document url is required")
	ErrInvalidSize      = errors.New("document size must be greater or equal to zero")
)

// File is the metadata recorded for an uploaded document.
type File struct {
	ID   int64
	Name string
	Size int64
	Mime string
	URL  string
}

// NewFile validates the stored object metadata.
func NewFile(name string, size int64, mime, url string) (*File, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyDescription
	}
	if size < 0 {
		return nil, ErrInvalidSize
	}
	if strings.TrimSpace(url) == "" {
		return nil, ErrEmptyURL
	}
	return &File{Name: name, Size: size, Mime: mime, URL: url}, nil
}

// FileName derives the stored document name from the user description and
// an extension with or without the leading dot.
func FileName(description, extension string) (string, error) {
	base := slug.Make(description)
	if base == "" {
		return "", ErrEmptyDescription
	}
	extension = strings.TrimPrefix(strings.TrimSpace(extension), ".")
	if extension == "" {
		return base, nil
	}
	return base + "." + strings.ToLower(extension), nil
}
