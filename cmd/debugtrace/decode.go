package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for a document format that has no
// decoder.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format is a document encoding accepted by the render command.
type Format string

const (
	JSON  Format = "json"
	JSONL Format = "jsonl"
	YAML  Format = "yaml"
	TOML  Format = "toml"
)

var formats = []Format{JSON, JSONL, YAML, TOML}

// aliases maps alternative names and file extensions onto a format.
var aliases = map[string]Format{
	"yml":    YAML,
	"ndjson": JSONL,
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name or file extension.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	if f, ok := aliases[s]; ok {
		return f, nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// formatOf picks the format from a file extension.
func formatOf(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// documents decodes every document in r as it is read. JSON and JSONL
// accept a stream of concatenated values and keep numbers as json.Number, YAML a stream of ---separated
// documents; TOML holds exactly one. Decoding stops at the first error,
// which is yielded last.
func documents(r io.Reader, f Format) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		var next func(v any) error
		switch f {
		case JSON, JSONL:
			dec := json.NewDecoder(r)
			dec.UseNumber()
			next = dec.Decode
		case YAML:
			next = yaml.NewDecoder(r).Decode
		case TOML:
			var doc any
			if err := toml.NewDecoder(r).Decode(&doc); err != nil {
				yield(nil, fmt.Errorf("failed to decode %s: %w", f, err))
				return
			}
			yield(doc, nil)
			return
		default:
			yield(nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f))
			return
		}

		for {
			var doc any
			err := next(&doc)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("failed to decode %s: %w", f, err))
				return
			}
			if !yield(doc, nil) {
				return
			}
		}
	}
}

// decodeAll collects every document in r.
func decodeAll(r io.Reader, f Format) ([]any, error) {
	var docs []any
	for doc, err := range documents(r, f) {
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
