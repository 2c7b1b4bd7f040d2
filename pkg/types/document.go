// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the conversion stages.
package types

// Fragment is one run of extracted text with its baseline origin in page
// space. The origin is the bottom-left corner of the page and Y grows upward.
type Fragment struct {
	Text string  `json:"text" yaml:"text"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
}

// PageContent holds the reconstructed lines of one source page.
type PageContent struct {
	// PageNumber is 1-based.
	PageNumber int `json:"page" yaml:"page"`

	// Lines are in reading order, top to bottom.
	Lines []string `json:"lines" yaml:"lines"`
}

// PackagePart is one named entry of the output archive. Path is
// archive-internal and forward-slash separated (e.g. "word/styles.xml").
type PackagePart struct {
	Path string
	Data []byte
}

// Source is a PDF byte source supplied by the caller.
type Source struct {
	// Name is the original file name or URL base name (e.g. "report.pdf").
	Name string

	// ContentType is the declared media type, if known (e.g. "application/pdf").
	ContentType string

	// Data is the raw file content.
	Data []byte
}

// ConversionStatus indicates the outcome of converting one file.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)
