// Package flyer implements the document generation pipeline: marker
// substitution inside DOCX templates, conversion to PDF through an external
// headless renderer, and the large-format press transformation.
package flyer

import (
	"fmt"
	"strings"

	"github.com/DANIELNAHUN/afiche-generator/errors"
)

// Marker tokens inside the source templates. These are a persisted contract
// with the provisioned template documents and must not change.
const (
	MarkerDate      = "{date}"
	MarkerTime      = "{time}"
	MarkerPlace     = "{place}"
	MarkerReference = "{reference}"
)

// EventFields carries the values substituted into a template.
// Date, Time and Place are required; Reference may be empty and is rendered
// as an empty string, never as the literal marker.
type EventFields struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Place     string `json:"place"`
	Reference string `json:"reference"`
}

// Validate checks that the three required fields are non-empty after trimming.
func (f EventFields) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(f.Time) == "" {
		missing = append(missing, "time")
	}
	if strings.TrimSpace(f.Place) == "" {
		missing = append(missing, "place")
	}
	if len(missing) > 0 {
		return errors.Wrapf(ErrInvalidFields, "missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Replacements returns the marker-to-value mapping for these fields.
// The mapping is deterministic: every marker is always present, with the
// reference marker mapping to "" when no reference was given.
func (f EventFields) Replacements() map[string]string {
	return map[string]string{
		MarkerDate:      f.Date,
		MarkerTime:      f.Time,
		MarkerPlace:     f.Place,
		MarkerReference: f.Reference,
	}
}

// Variant identifies one of the three output document kinds.
type Variant int

const (
	VariantCompact Variant = iota
	VariantBanner
	VariantLargeFormat
)

// Variants lists all variants in the fixed generation order.
var Variants = [3]Variant{VariantCompact, VariantBanner, VariantLargeFormat}

// Suffix returns the filename suffix for this variant. The suffix mapping is
// a persisted contract: compact→a4, banner→4x1, large_format→gigantografia.
func (v Variant) Suffix() string {
	switch v {
	case VariantCompact:
		return "a4"
	case VariantBanner:
		return "4x1"
	case VariantLargeFormat:
		return "gigantografia"
	default:
		return "unknown"
	}
}

// TemplateKind returns the template this variant is filled from. The
// large-format variant renders from the compact template, matching the
// printed source material.
func (v Variant) TemplateKind() TemplateKind {
	if v == VariantBanner {
		return KindBannerStrip
	}
	return KindCompactLetter
}

// Filename returns the output filename for this variant and project:
// {project}_{suffix}.pdf
func (v Variant) Filename(projectName string) string {
	return fmt.Sprintf("%s_%s.pdf", projectName, v.Suffix())
}

// Generation result statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// GenerationResult reports the outcome of one variant's pipeline. A result
// set for one request always contains exactly one entry per variant, in
// fixed order, regardless of how many variants failed.
type GenerationResult struct {
	Type     string `json:"type"`              // variant suffix: a4, 4x1, gigantografia
	Filename string `json:"filename"`          // empty on error
	Status   string `json:"status"`            // success or error
	Message  string `json:"message,omitempty"` // human-readable failure cause
}
