package flyer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"

	"github.com/DANIELNAHUN/afiche-generator/config"
	"github.com/DANIELNAHUN/afiche-generator/errors"
)

// PageRenderer rasterizes the first page of a PDF to an image file at a
// fixed resolution.
type PageRenderer interface {
	RenderPage(ctx context.Context, pdfPath, imagePath string, dpi int) error
}

// PdftoppmRenderer shells out to poppler's pdftoppm. Renders are bounded by
// a semaphore; rasterizing a page at 300 DPI is a slow, memory-heavy call.
type PdftoppmRenderer struct {
	binary string
	sem    chan struct{}
	logger *zap.SugaredLogger
}

// NewPdftoppmRenderer creates a renderer bounded by cfg.MaxConcurrent.
func NewPdftoppmRenderer(cfg config.LayoutConfig, logger *zap.SugaredLogger) *PdftoppmRenderer {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &PdftoppmRenderer{
		binary: cfg.RendererBinary,
		sem:    make(chan struct{}, maxConcurrent),
		logger: logger.Named("render"),
	}
}

// RenderPage rasterizes page 1 of pdfPath to a PNG at imagePath. A PDF with
// zero pages is reported as ErrRenderFailed before the external tool runs.
func (r *PdftoppmRenderer) RenderPage(ctx context.Context, pdfPath, imagePath string, dpi int) error {
	pageCount, err := api.PageCountFile(pdfPath)
	if err != nil {
		return errors.Wrapf(ErrRenderFailed, "failed to read %s: %v", pdfPath, err)
	}
	if pageCount == 0 {
		return errors.Wrapf(ErrRenderFailed, "%s has no pages", pdfPath)
	}

	select {
	case r.sem <- struct{}{}:
		defer func() { <-r.sem }()
	case <-ctx.Done():
		return errors.Wrap(ErrRenderFailed, ctx.Err().Error())
	}

	// pdftoppm -singlefile writes exactly {prefix}.png
	prefix := strings.TrimSuffix(imagePath, filepath.Ext(imagePath))
	args := []string{
		"-png",
		"-singlefile",
		"-r", fmt.Sprintf("%d", dpi),
		"-f", "1", "-l", "1",
		pdfPath,
		prefix,
	}
	cmd := exec.CommandContext(ctx, r.binary, args...)

	r.logger.Debugw("Running page renderer",
		"command", shellquote.Join(append([]string{r.binary}, args...)...),
	)

	start := time.Now()
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(ErrRenderFailed, "%s exited with error: %v: %s",
			r.binary, err, strings.TrimSpace(string(output)))
	}

	if _, err := os.Stat(imagePath); err != nil {
		return errors.Wrapf(ErrRenderFailed, "renderer produced no output at %s", imagePath)
	}

	r.logger.Debugw("Rendered PDF page",
		"pdf", pdfPath,
		"image", imagePath,
		"dpi", dpi,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
