// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Backend identifies the PDF text extraction tool.
type Backend string

const (
	// BackendNative reads the PDF in-process with ledongthuc/pdf.
	BackendNative Backend = "native"

	// BackendPdftotext shells out to poppler's pdftotext and pdfinfo.
	BackendPdftotext Backend = "pdftotext"
)

// OutputFormat selects the serialization of the outline file.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// ExtractionConfig holds settings for reading a PDF and building its outline.
type ExtractionConfig struct {
	// AssetsDir is tried when the input path does not exist: the base name
	// of the input is looked up inside it (default "static").
	AssetsDir string `json:"assets_dir" yaml:"assets_dir"`

	// Backend selects the text extraction tool: native or pdftotext.
	Backend Backend `json:"backend" yaml:"backend"`

	// FallbackPdftotext retries with pdftotext when the native backend
	// fails to read a document.
	FallbackPdftotext bool `json:"fallback_pdftotext" yaml:"fallback_pdftotext"`

	// RulesFile is a YAML rules table replacing the built-in one. Empty
	// means the built-in table.
	RulesFile string `json:"rules_file,omitempty" yaml:"rules_file,omitempty"`
}

// IndexConfig holds settings for the outline catalog.
type IndexConfig struct {
	// Dir is the directory holding outlines.db.
	Dir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of search results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"log_level" yaml:"log_level"`

	// Format is text or json.
	Format string `json:"log_format" yaml:"log_format"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8090").
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadBytes caps the request body of an outline upload.
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}
