package flyer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DANIELNAHUN/afiche-generator/config"
	"github.com/DANIELNAHUN/afiche-generator/errors"
)

// stubPdftoppmScript mimics pdftoppm -singlefile: the PNG lands at
// {prefix}.png where prefix is the last argument.
const stubPdftoppmScript = `
for arg in "$@"; do last="$arg"; done
printf 'PNG-stub' > "$last.png"
`

func newTestRenderer(t *testing.T, binary string) *PdftoppmRenderer {
	t.Helper()
	return NewPdftoppmRenderer(config.LayoutConfig{
		RendererBinary: binary,
		MaxConcurrent:  1,
	}, zap.NewNop().Sugar())
}

// writeSinglePagePDF produces a real one-page PDF for the page-count guard.
func writeSinglePagePDF(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, writeCMYKPDF(path, newTestCMYK(2, 2)))
}

func TestRenderPage(t *testing.T) {
	dir := t.TempDir()
	binary := writeStubBinary(t, dir, "pdftoppm-stub", stubPdftoppmScript)

	pdfPath := filepath.Join(dir, "page.pdf")
	writeSinglePagePDF(t, pdfPath)

	imagePath := filepath.Join(dir, "page.png")
	r := newTestRenderer(t, binary)
	require.NoError(t, r.RenderPage(context.Background(), pdfPath, imagePath, 300))

	data, err := os.ReadFile(imagePath)
	require.NoError(t, err)
	assert.Equal(t, "PNG-stub", string(data))
}

func TestRenderPageUnreadablePDF(t *testing.T) {
	dir := t.TempDir()
	binary := writeStubBinary(t, dir, "pdftoppm-stub", stubPdftoppmScript)

	// Not a PDF at all; the guard fires before the external tool runs
	pdfPath := filepath.Join(dir, "garbage.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("not a pdf"), 0o644))

	r := newTestRenderer(t, binary)
	err := r.RenderPage(context.Background(), pdfPath, filepath.Join(dir, "out.png"), 300)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRenderFailed))
}

func TestRenderPageBinaryFails(t *testing.T) {
	dir := t.TempDir()
	binary := writeStubBinary(t, dir, "pdftoppm-fail", `echo "Syntax Error" >&2; exit 1`)

	pdfPath := filepath.Join(dir, "page.pdf")
	writeSinglePagePDF(t, pdfPath)

	r := newTestRenderer(t, binary)
	err := r.RenderPage(context.Background(), pdfPath, filepath.Join(dir, "out.png"), 300)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRenderFailed))
	assert.Contains(t, err.Error(), "Syntax Error")
}

func TestRenderPageNoOutput(t *testing.T) {
	dir := t.TempDir()
	binary := writeStubBinary(t, dir, "pdftoppm-silent", `exit 0`)

	pdfPath := filepath.Join(dir, "page.pdf")
	writeSinglePagePDF(t, pdfPath)

	r := newTestRenderer(t, binary)
	err := r.RenderPage(context.Background(), pdfPath, filepath.Join(dir, "out.png"), 300)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRenderFailed))
	assert.Contains(t, err.Error(), "produced no output")
}
