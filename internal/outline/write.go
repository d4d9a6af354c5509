// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-outline/pkg/types"
)

// FormatFor returns the explicit format if set, otherwise infers it from
// the output path extension (.yaml/.yml for YAML, JSON for anything else).
func FormatFor(path, explicit string) (types.OutputFormat, error) {
	switch types.OutputFormat(explicit) {
	case types.OutputJSON, types.OutputYAML:
		return types.OutputFormat(explicit), nil
	case "":
	default:
		return "", fmt.Errorf("unsupported format %q: use json or yaml", explicit)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return types.OutputYAML, nil
	}
	return types.OutputJSON, nil
}

// Marshal encodes res. JSON is indented by four spaces and leaves
// non-ASCII and HTML characters unescaped.
func Marshal(res *types.OutlineResult, format types.OutputFormat) ([]byte, error) {
	out := *res
	if out.Outline == nil {
		out.Outline = []types.HeadingEntry{}
	}

	switch format {
	case types.OutputYAML:
		data, err := yaml.Marshal(&out)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	case types.OutputJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(&out); err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}

// Write encodes res to path, creating parent directories as needed.
func Write(path string, res *types.OutlineResult, format types.OutputFormat) error {
	data, err := Marshal(res, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
