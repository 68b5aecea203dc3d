package flyer

import (
	"go.uber.org/zap"

	"github.com/nguyenthenguyen/docx"

	"github.com/DANIELNAHUN/afiche-generator/errors"
)

// Substituter rewrites marker tokens inside a template's text runs and table
// cells with event field values, preserving all run-level formatting.
//
// A marker split across adjacent formatting runs by the authoring tool will
// not match; that is a limitation inherited from the template's authoring,
// not masked here.
type Substituter struct {
	templates *TemplateSet
	logger    *zap.SugaredLogger
}

// NewSubstituter creates a substitution engine over the given template set.
func NewSubstituter(templates *TemplateSet, logger *zap.SugaredLogger) *Substituter {
	return &Substituter{
		templates: templates,
		logger:    logger.Named("substitute"),
	}
}

// Substitute fills the template of the given kind with the field values and
// writes the result to outPath. The source template is never mutated.
func (s *Substituter) Substitute(kind TemplateKind, fields EventFields, outPath string) error {
	templatePath, err := s.templates.Path(kind)
	if err != nil {
		return err
	}

	reader, err := docx.ReadDocxFile(templatePath)
	if err != nil {
		return errors.Wrapf(err, "failed to open template %s", templatePath)
	}
	defer reader.Close()

	doc := reader.Editable()
	for marker, value := range fields.Replacements() {
		if err := doc.Replace(marker, value, -1); err != nil {
			return errors.Wrapf(err, "failed to replace marker %s", marker)
		}
	}

	if err := doc.WriteToFile(outPath); err != nil {
		return errors.Wrapf(err, "failed to write filled document to %s", outPath)
	}

	s.logger.Debugw("Filled template",
		"kind", kind,
		"template", templatePath,
		"output", outPath,
	)
	return nil
}
