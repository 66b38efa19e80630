package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/store"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from a file extension.
// Anything other than .yaml or .yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Encode renders a document. JSON output is indented for hand editing.
func Encode(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("persistence: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("persistence: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("persistence: encode json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("persistence: unknown format %q", format)
	}
}

// Decode parses a document. Syntax errors match shared.ErrDataMalformed.
func Decode(data []byte, format Format) (Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return Document{}, fmt.Errorf("persistence: unknown format %q", format)
	}
	if err != nil {
		return Document{}, shared.WrapError("storage", "Decode", shared.ErrDataMalformed,
			"Data file is not in the correct format", err)
	}
	return doc, nil
}

// DecodeSnapshot parses and validates stored data in one step.
func DecodeSnapshot(data []byte, format Format) (store.Snapshot, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return store.Snapshot{}, err
	}
	return doc.Snapshot()
}
