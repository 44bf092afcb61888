package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/githubnext/flowlint/pkg/logger"
)

var loadLog = logger.New("document:load")

// Format is the serialization of a document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Extensions lists the file extensions of flow documents.
var Extensions = []string{".yaml", ".yml", ".json"}

// ErrUnknownFormat is returned when the format cannot be told from the file
// extension.
var ErrUnknownFormat = errors.New("unknown document format")

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s (expected .yaml, .yml or .json)", ErrUnknownFormat, path)
	}
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parse(path, data, format)
}

// Parse decodes data in the given format. The document is checked against
// the schema and its version before it is decoded.
func Parse(data []byte, format Format) (*Document, error) {
	return parse("document", data, format)
}

func parse(source string, data []byte, format Format) (*Document, error) {
	loadLog.Printf("Parsing %s as %s (%d bytes)", source, format, len(data))

	var jsonData []byte
	switch format {
	case FormatJSON:
		jsonData = data
	case FormatYAML:
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", source, err)
		}
		jsonData = converted
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := validateSchema(source, jsonData); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", source, err)
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	loadLog.Printf("Parsed %s: %d nodes, %d edges, %d agents",
		source, len(doc.Flow.Nodes), len(doc.Flow.Edges), len(doc.Agents))
	return &doc, nil
}
