package flyer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/DANIELNAHUN/afiche-generator/errors"
)

// Generator orchestrates the per-variant pipelines. Failures are isolated:
// one variant's error never prevents the other variants from attempting
// generation. Safe to invoke concurrently for different project names; two
// concurrent invocations sharing a project name may collide on filenames,
// a known limitation of the persisted naming contract.
type Generator struct {
	substituter *Substituter
	converter   Converter
	layout      *LargeFormatTransformer
	storageDir  string
	workers     int
	logger      *zap.SugaredLogger
}

// NewGenerator wires the pipeline stages together. workers bounds how many
// variants are generated in parallel per request.
func NewGenerator(substituter *Substituter, converter Converter, layout *LargeFormatTransformer, storageDir string, workers int, logger *zap.SugaredLogger) (*Generator, error) {
	if workers < 1 {
		workers = 1
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create storage directory %s", storageDir)
	}
	return &Generator{
		substituter: substituter,
		converter:   converter,
		layout:      layout,
		storageDir:  storageDir,
		workers:     workers,
		logger:      logger.Named("generator"),
	}, nil
}

// GenerateAll produces the three variants for one request. It always returns
// exactly one result per variant, in the fixed order compact, banner,
// large-format, regardless of how many variants failed. There is no retry
// and no mid-flight cancellation: each variant runs to completion or failure.
func (g *Generator) GenerateAll(ctx context.Context, fields EventFields, projectName string) []GenerationResult {
	results := make([]GenerationResult, len(Variants))

	sem := make(chan struct{}, g.workers)
	var wg sync.WaitGroup
	for i, variant := range Variants {
		wg.Add(1)
		go func(i int, variant Variant) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = g.generateOne(ctx, variant, fields, projectName)
		}(i, variant)
	}
	wg.Wait()

	return results
}

// generateOne runs a single variant's pipeline and converts any failure,
// including a stage panic, into an error result.
func (g *Generator) generateOne(ctx context.Context, variant Variant, fields EventFields, projectName string) (result GenerationResult) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Errorw("Variant pipeline panicked",
				"variant", variant.Suffix(),
				"project", projectName,
				"panic", r,
			)
			result = GenerationResult{
				Type:    variant.Suffix(),
				Status:  StatusError,
				Message: fmt.Sprintf("internal error: %v", r),
			}
		}
	}()

	filename, err := g.generateVariant(ctx, variant, fields, projectName)
	if err != nil {
		g.logger.Errorw("Variant generation failed",
			"variant", variant.Suffix(),
			"project", projectName,
			"error", err,
		)
		return GenerationResult{
			Type:    variant.Suffix(),
			Status:  StatusError,
			Message: err.Error(),
		}
	}

	g.logger.Infow("Variant generated",
		"variant", variant.Suffix(),
		"project", projectName,
		"filename", filename,
	)
	return GenerationResult{
		Type:     variant.Suffix(),
		Filename: filename,
		Status:   StatusSuccess,
	}
}

func (g *Generator) generateVariant(ctx context.Context, variant Variant, fields EventFields, projectName string) (string, error) {
	if variant == VariantLargeFormat {
		return g.generateLargeFormat(ctx, fields, projectName)
	}
	return g.generateDirect(ctx, variant, fields, projectName)
}

// generateDirect runs the two-stage pipeline: substitution then conversion.
func (g *Generator) generateDirect(ctx context.Context, variant Variant, fields EventFields, projectName string) (string, error) {
	filename := variant.Filename(projectName)
	docxPath := filepath.Join(g.storageDir, fmt.Sprintf("%s_%s.docx", projectName, variant.Suffix()))
	pdfPath := filepath.Join(g.storageDir, filename)

	if err := g.substituter.Substitute(variant.TemplateKind(), fields, docxPath); err != nil {
		return "", err
	}
	if err := g.converter.ConvertToPDF(ctx, docxPath, pdfPath); err != nil {
		return "", err
	}
	return filename, nil
}

// generateLargeFormat runs the three-stage pipeline: substitution,
// conversion, then the press layout transform. Its intermediates are removed
// before returning, success or not.
func (g *Generator) generateLargeFormat(ctx context.Context, fields EventFields, projectName string) (string, error) {
	filename := VariantLargeFormat.Filename(projectName)
	docxPath := filepath.Join(g.storageDir, projectName+"_giga_temp.docx")
	pdfTempPath := filepath.Join(g.storageDir, projectName+"_giga_temp.pdf")
	finalPath := filepath.Join(g.storageDir, filename)

	defer g.removeIntermediate(docxPath)
	defer g.removeIntermediate(pdfTempPath)

	if err := g.substituter.Substitute(VariantLargeFormat.TemplateKind(), fields, docxPath); err != nil {
		return "", err
	}
	if err := g.converter.ConvertToPDF(ctx, docxPath, pdfTempPath); err != nil {
		return "", err
	}
	if err := g.layout.ToLargeFormat(ctx, pdfTempPath, finalPath); err != nil {
		return "", err
	}
	return filename, nil
}

// removeIntermediate deletes a within-request temporary file, best effort.
func (g *Generator) removeIntermediate(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		g.logger.Warnw("Failed to remove intermediate file", "path", path, "error", err)
	}
}
