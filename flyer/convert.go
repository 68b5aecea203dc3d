package flyer

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/DANIELNAHUN/afiche-generator/config"
	"github.com/DANIELNAHUN/afiche-generator/errors"
)

// Converter turns a filled-in document into a PDF. Implementations must be
// safe for concurrent use; the call blocks until conversion completes.
type Converter interface {
	ConvertToPDF(ctx context.Context, docPath, pdfPath string) error
}

// SofficeConverter shells out to headless LibreOffice. The external tool
// supports only limited concurrent invocations, so all conversions share one
// process-wide semaphore.
type SofficeConverter struct {
	binary  string
	timeout time.Duration
	sem     chan struct{}
	logger  *zap.SugaredLogger
}

// NewSofficeConverter creates a converter bounded by cfg.MaxConcurrent.
func NewSofficeConverter(cfg config.ConverterConfig, logger *zap.SugaredLogger) *SofficeConverter {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &SofficeConverter{
		binary:  cfg.Binary,
		timeout: timeout,
		sem:     make(chan struct{}, maxConcurrent),
		logger:  logger.Named("convert"),
	}
}

// ConvertToPDF converts docPath to a PDF at pdfPath. LibreOffice names its
// output after the input's base name inside the output directory; the
// generated file is relocated to pdfPath, and a missing output is reported
// as ErrConversionFailed rather than a raw file-not-found.
func (c *SofficeConverter) ConvertToPDF(ctx context.Context, docPath, pdfPath string) error {
	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
	case <-ctx.Done():
		return errors.Wrap(ErrConversionFailed, ctx.Err().Error())
	}

	docAbs, err := filepath.Abs(docPath)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve document path %s", docPath)
	}
	pdfAbs, err := filepath.Abs(pdfPath)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve output path %s", pdfPath)
	}
	outDir := filepath.Dir(pdfAbs)

	cmdCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{"--headless", "--convert-to", "pdf", "--outdir", outDir, docAbs}
	cmd := exec.CommandContext(cmdCtx, c.binary, args...)

	c.logger.Debugw("Running external converter",
		"command", shellquote.Join(append([]string{c.binary}, args...)...),
	)

	start := time.Now()
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(ErrConversionFailed, "%s exited with error: %v: %s",
			c.binary, err, strings.TrimSpace(string(output)))
	}

	// LibreOffice writes {base}.pdf into the output directory
	base := strings.TrimSuffix(filepath.Base(docAbs), filepath.Ext(docAbs))
	generated := filepath.Join(outDir, base+".pdf")

	if generated != pdfAbs {
		if _, statErr := os.Stat(generated); statErr != nil {
			return errors.Wrapf(ErrConversionFailed, "converter produced no output at %s", generated)
		}
		if err := os.Rename(generated, pdfAbs); err != nil {
			return errors.Wrapf(err, "failed to move converted PDF to %s", pdfAbs)
		}
	} else if _, statErr := os.Stat(pdfAbs); statErr != nil {
		return errors.Wrapf(ErrConversionFailed, "converter produced no output at %s", pdfAbs)
	}

	c.logger.Infow("Converted document to PDF",
		"document", docAbs,
		"pdf", pdfAbs,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
