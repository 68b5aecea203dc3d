package flyer

import "github.com/DANIELNAHUN/afiche-generator/errors"

// Sentinel errors for pipeline stage failures.
// Use these with errors.Is() for type-safe error checking; wrap them with
// errors.Wrap() to add context while preserving the type.
var (
	// ErrTemplateNotFound indicates the named template kind has no backing
	// file at the expected location
	ErrTemplateNotFound = errors.New("template not found")

	// ErrConversionFailed indicates the external document converter exited
	// with an error or produced no output
	ErrConversionFailed = errors.New("conversion failed")

	// ErrRenderFailed indicates page rasterization produced no pages
	ErrRenderFailed = errors.New("render failed")

	// ErrLayoutFailed indicates resampling or page assembly failed
	ErrLayoutFailed = errors.New("layout failed")

	// ErrInvalidFields indicates the event fields failed validation
	ErrInvalidFields = errors.New("invalid event fields")
)
