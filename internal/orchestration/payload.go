package orchestration

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// PayloadFormat is the encoding of a step payload.
type PayloadFormat string

const (
	FormatJSON PayloadFormat = "json"
	FormatYAML PayloadFormat = "yaml"
)

// FormatForFile picks the payload format from a file extension.
func FormatForFile(path string) PayloadFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// FormatForContentType picks the payload format from an HTTP content type.
func FormatForContentType(contentType string) PayloadFormat {
	if strings.Contains(strings.ToLower(contentType), "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

// NormalizePayload converts a payload to JSON. JSON input is returned as is.
func NormalizePayload(raw []byte, format PayloadFormat) ([]byte, error) {
	if format != FormatYAML {
		return raw, nil
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml payload: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting yaml payload: %w", err)
	}
	return out, nil
}
