package flyer

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DANIELNAHUN/afiche-generator/config"
	"github.com/DANIELNAHUN/afiche-generator/errors"
)

func TestTargetPixels(t *testing.T) {
	// 100x150 cm at press resolution
	assert.Equal(t, 11811, TargetPixels(100, 300))
	assert.Equal(t, 17717, TargetPixels(150, 300))

	// Small sizes round to the nearest pixel
	assert.Equal(t, 20, TargetPixels(1.0, 50))
	assert.Equal(t, 30, TargetPixels(1.5, 50))
}

// fakeRenderer stands in for the external rasterizer, writing a fixed PNG
// regardless of the source PDF.
type fakeRenderer struct {
	err   error
	calls int
}

func (f *fakeRenderer) RenderPage(_ context.Context, _, imagePath string, _ int) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 20), B: 128, A: 255})
		}
	}
	out, err := os.Create(imagePath)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img)
}

func newTestTransformer(renderer PageRenderer) *LargeFormatTransformer {
	return NewLargeFormatTransformer(renderer, config.LayoutConfig{
		DPI:      50,
		WidthCM:  1.0,
		HeightCM: 1.5,
	}, zap.NewNop().Sugar())
}

func TestToLargeFormat(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "giant.pdf")

	renderer := &fakeRenderer{}
	tr := newTestTransformer(renderer)

	require.NoError(t, tr.ToLargeFormat(context.Background(), filepath.Join(dir, "src.pdf"), outPath))
	assert.Equal(t, 1, renderer.calls)

	// The output is a valid single-page PDF carrying a CMYK raster
	require.NoError(t, api.ValidateFile(outPath, nil))
	pages, err := api.PageCountFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/DeviceCMYK")

	// The intermediate raster was cleaned up
	_, err = os.Stat(outPath + ".raster.png")
	assert.True(t, os.IsNotExist(err))
}

func TestToLargeFormatRenderFailure(t *testing.T) {
	dir := t.TempDir()
	renderer := &fakeRenderer{err: errors.Wrap(ErrRenderFailed, "no pages")}
	tr := newTestTransformer(renderer)

	err := tr.ToLargeFormat(context.Background(), filepath.Join(dir, "src.pdf"), filepath.Join(dir, "out.pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRenderFailed))

	_, statErr := os.Stat(filepath.Join(dir, "out.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestTargetSizeFromConfig(t *testing.T) {
	tr := NewLargeFormatTransformer(&fakeRenderer{}, config.LayoutConfig{
		DPI:      300,
		WidthCM:  100,
		HeightCM: 150,
	}, zap.NewNop().Sugar())

	w, h := tr.TargetSize()
	assert.Equal(t, 11811, w)
	assert.Equal(t, 17717, h)
}
