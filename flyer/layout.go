package flyer

import (
	"context"
	"image"
	"image/draw"
	"math"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/DANIELNAHUN/afiche-generator/config"
	"github.com/DANIELNAHUN/afiche-generator/errors"
)

// cmPerInch converts physical centimetres to inches for pixel derivation.
const cmPerInch = 2.54

// TargetPixels derives the pixel dimension for a physical size at a given
// resolution: round(sizeCM / 2.54 * dpi). The large-format constants
// (11811 x 17717 at 100cm x 150cm, 300 DPI) come from this derivation and
// are never hard-coded.
func TargetPixels(sizeCM float64, dpi int) int {
	return int(math.Round(sizeCM / cmPerInch * float64(dpi)))
}

// LargeFormatTransformer converts a rendered page into a press-ready PDF:
// first page rasterized at a fixed DPI, resampled to the exact physical
// target, in 4-channel DeviceCMYK, one full-bleed page whose size in PDF
// units equals the pixel dimensions.
type LargeFormatTransformer struct {
	renderer PageRenderer
	dpi      int
	widthCM  float64
	heightCM float64
	logger   *zap.SugaredLogger
}

// NewLargeFormatTransformer builds the transformer from configuration.
func NewLargeFormatTransformer(renderer PageRenderer, cfg config.LayoutConfig, logger *zap.SugaredLogger) *LargeFormatTransformer {
	return &LargeFormatTransformer{
		renderer: renderer,
		dpi:      cfg.DPI,
		widthCM:  cfg.WidthCM,
		heightCM: cfg.HeightCM,
		logger:   logger.Named("layout"),
	}
}

// TargetSize returns the derived pixel dimensions of the output page.
func (t *LargeFormatTransformer) TargetSize() (width, height int) {
	return TargetPixels(t.widthCM, t.dpi), TargetPixels(t.heightCM, t.dpi)
}

// ToLargeFormat renders srcPDF's first page, resamples it to the physical
// target and writes a single-page DeviceCMYK PDF to outPath. Every
// intermediate file is removed before returning; cleanup failures are
// logged, not raised.
func (t *LargeFormatTransformer) ToLargeFormat(ctx context.Context, srcPDF, outPath string) error {
	rasterPath := outPath + ".raster.png"
	defer t.cleanup(rasterPath)

	if err := t.renderer.RenderPage(ctx, srcPDF, rasterPath, t.dpi); err != nil {
		return err
	}

	img, err := imaging.Open(rasterPath)
	if err != nil {
		return errors.Wrapf(ErrLayoutFailed, "failed to load rendered page: %v", err)
	}

	targetW, targetH := t.TargetSize()

	start := time.Now()
	resized := imaging.Resize(img, targetW, targetH, imaging.Lanczos)
	if resized.Bounds().Dx() != targetW || resized.Bounds().Dy() != targetH {
		return errors.Wrapf(ErrLayoutFailed, "resample produced %dx%d, want %dx%d",
			resized.Bounds().Dx(), resized.Bounds().Dy(), targetW, targetH)
	}

	// Channel conversion to the press color model. No profile mapping is
	// performed beyond this.
	cmyk := image.NewCMYK(image.Rect(0, 0, targetW, targetH))
	draw.Draw(cmyk, cmyk.Bounds(), resized, resized.Bounds().Min, draw.Src)

	if err := writeCMYKPDF(outPath, cmyk); err != nil {
		return errors.Wrapf(ErrLayoutFailed, "failed to assemble output page: %v", err)
	}

	t.logger.Infow("Produced large-format PDF",
		"source", srcPDF,
		"output", outPath,
		"width_px", targetW,
		"height_px", targetH,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// cleanup removes an intermediate file, logging on failure rather than
// propagating it.
func (t *LargeFormatTransformer) cleanup(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		t.logger.Warnw("Failed to remove intermediate file", "path", path, "error", err)
	}
}
