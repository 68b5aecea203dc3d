package flyer

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCMYK(w, h int) *image.CMYK {
	img := image.NewCMYK(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	return img
}

func TestWriteCMYKPDF(t *testing.T) {
	img := newTestCMYK(3, 2)
	path := filepath.Join(t.TempDir(), "page.pdf")
	require.NoError(t, writeCMYKPDF(path, img))

	require.NoError(t, api.ValidateFile(path, nil))
	pages, err := api.PageCountFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	// Page units match pixel dimensions with the raster at full bleed
	assert.Contains(t, content, "/MediaBox [0 0 3 2]")
	assert.Contains(t, content, "/ColorSpace /DeviceCMYK")
	assert.Contains(t, content, "3 0 0 2 0 0 cm")

	// The embedded stream is the flate-compressed raw samples, untouched
	samples, err := compressCMYKSamples(img)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, samples))
}

func TestWriteCMYKPDFEmptyImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	err := writeCMYKPDF(path, image.NewCMYK(image.Rect(0, 0, 0, 0)))
	require.Error(t, err)
}

func TestCompressCMYKSamplesHonorsStride(t *testing.T) {
	// A subimage carries a stride wider than its row length
	base := newTestCMYK(10, 4)
	sub, ok := base.SubImage(image.Rect(0, 0, 4, 4)).(*image.CMYK)
	require.True(t, ok)

	_, err := compressCMYKSamples(sub)
	require.NoError(t, err)
}
