package types

import "time"

// HTTPConfig holds settings for fetching remote PDFs.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pdf2docx/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 and 503 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxBytes is the largest accepted download (default 100 MiB).
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes"`
}

// Backend identifies the PDF text extraction backend.
type Backend string

const (
	BackendNative    Backend = "native"
	BackendPdftotext Backend = "pdftotext"
)

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	// Backend selects the text extraction backend: native or pdftotext.
	Backend Backend `json:"backend" yaml:"backend"`

	// OutputDir is the directory that receives .docx files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Overwrite replaces existing output files instead of skipping them.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`

	// LineThreshold is the vertical distance, in page units, above which two
	// consecutive fragments start a new line (default 5).
	LineThreshold float64 `json:"line_threshold" yaml:"line_threshold"`

	// CompressionLevel is the deflate level used for the package archive.
	// Zero selects the library default.
	CompressionLevel int `json:"compression_level" yaml:"compression_level"`
}

// JournalConfig holds settings for the conversion history database.
type JournalConfig struct {
	// Path is the SQLite database file. Empty disables the journal.
	Path string `json:"path" yaml:"path"`
}

// Config groups all settings read by the CLI.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	HTTP       HTTPConfig       `json:"http" yaml:"http"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
}
