package openapi

import (
	"bytes"
	"errors"
	"mime"
	"path/filepath"
	"strings"
)

// Source identifies where an OpenAPI document originated so loaders can
// operate on files, fs.FS entries, URLs or inline payloads without leaking
// implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindURL    SourceKind = "url"
	SourceKindInline SourceKind = "inline"
)

// Format names the serialization of a document payload.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat classifies a payload. A JSON or YAML media type wins, then the
// location's extension, then the first non-blank byte of the payload.
func DetectFormat(location, contentType string, raw []byte) Format {
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			switch {
			case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
				return FormatJSON
			case strings.Contains(mediaType, "yaml"):
				return FormatYAML
			}
		}
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Document wraps the raw OpenAPI payload (JSON or YAML) and its origin.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument constructs a Document wrapper while validating the inputs. The
// format is sniffed from the location and payload.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	return NewDocumentAs(src, raw, DetectFormat(src.Location(), "", raw))
}

// NewDocumentAs constructs a Document with a format already known to the
// caller, e.g. from an HTTP Content-Type.
func NewDocumentAs(src Source, raw []byte, format Format) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	if format == "" {
		format = DetectFormat(src.Location(), "", raw)
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone, format: format}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
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

// Format reports whether the payload is JSON or YAML.
func (d Document) Format() Format {
	return d.format
}

// Empty reports whether the document carries no payload.
func (d Document) Empty() bool {
	return len(d.raw) == 0
}
