// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source turns PDF bytes into per-page positioned text fragments.
//
// Two backends implement Loader: the native backend reads the file in
// process, the pdftotext backend shells out to poppler. Both report
// fragments with baseline coordinates in PDF page space (origin bottom-left).
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

var (
	// ErrUnreadablePDF is returned when a backend rejects the file content
	// (corrupt, truncated, or encrypted without a usable password).
	ErrUnreadablePDF = errors.New("unreadable PDF")

	// ErrDependencyUnavailable is returned when a backend cannot run, for
	// example because its external tool is not installed.
	ErrDependencyUnavailable = errors.New("PDF backend unavailable")
)

// Loader opens PDF documents.
type Loader interface {
	// Name returns the backend name ("native" or "pdftotext").
	Name() string

	// Available reports whether the backend can run on this host. It
	// returns nil when ready, or an error wrapping ErrDependencyUnavailable.
	Available() error

	// Open parses data. Errors wrap ErrUnreadablePDF when the content is
	// rejected.
	Open(ctx context.Context, data []byte) (Document, error)
}

// Document gives page-by-page access to an opened PDF.
type Document interface {
	// NumPages returns the page count.
	NumPages() int

	// Fragments returns the text fragments of page (1-based) in extraction
	// order. A page without text yields an empty slice.
	Fragments(ctx context.Context, page int) ([]types.Fragment, error)
}

// ByName returns the loader for backend.
func ByName(backend types.Backend) (Loader, error) {
	switch backend {
	case types.BackendNative, "":
		return NewNative(), nil
	case types.BackendPdftotext:
		return NewPdftotext(), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrDependencyUnavailable, backend)
	}
}

func checkPage(page, n int) error {
	if page < 1 || page > n {
		return fmt.Errorf("page %d out of range [1, %d]", page, n)
	}
	return nil
}
