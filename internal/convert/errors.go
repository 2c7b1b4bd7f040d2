// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"

	"github.com/pdiddy/pdf2docx/internal/source"
)

var (
	// ErrInvalidInput is returned when the source is not a PDF by content
	// type or file extension.
	ErrInvalidInput = errors.New("not a PDF file")

	// ErrDependencyUnavailable is returned when no usable PDF backend is
	// configured.
	ErrDependencyUnavailable = source.ErrDependencyUnavailable

	// ErrUnreadablePDF is returned when the backend rejects the file.
	ErrUnreadablePDF = source.ErrUnreadablePDF

	// ErrCancelled is the cause of a run stopped through its context.
	ErrCancelled = errors.New("conversion cancelled")
)

// ConversionError reports a failure after the PDF was loaded. Stage is the
// state the run was in when it failed; Err is the original cause.
type ConversionError struct {
	Stage State
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed while %s: %v", e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
