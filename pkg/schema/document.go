package schema

import (
	"errors"
	"mime"
	"path"
	"strings"
)

// Format is the encoding of a screen document.
type Format string

const (
	// FormatUnknown leaves the decoder to sniff the payload.
	FormatUnknown Format = ""
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
)

// FormatFromLocation infers the format from a file name or URL path.
func FormatFromLocation(location string) Format {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatUnknown
}

// FormatFromContentType maps a response media type to a format. Generic
// types such as text/plain stay unknown.
func FormatFromContentType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatUnknown
	}
	switch {
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return FormatJSON
	case strings.HasSuffix(mediaType, "/yaml"), strings.HasSuffix(mediaType, "/x-yaml"), strings.HasSuffix(mediaType, "+yaml"):
		return FormatYAML
	}
	return FormatUnknown
}

// Document wraps a raw screen payload, its origin and its encoding.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument constructs a Document, inferring the format from the source
// location.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone, format: FormatFromLocation(src.Location())}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// WithFormat returns a copy of d with an explicit format, typically taken
// from a response Content-Type. FormatUnknown keeps the current format.
func (d Document) WithFormat(format Format) Document {
	if format != FormatUnknown {
		d.format = format
	}
	return d
}

// Format reports the document encoding; FormatUnknown means sniff.
func (d Document) Format() Format {
	return d.format
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
