package flyer

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/DANIELNAHUN/afiche-generator/errors"
)

// writeCMYKPDF assembles a single-page PDF whose page size in PDF units
// equals the image's pixel dimensions, with the image drawn at full bleed
// from the origin. The image is embedded as a raw DeviceCMYK XObject;
// mainstream PDF import libraries re-encode through RGB, which would lose
// the press color model.
func writeCMYKPDF(path string, img *image.CMYK) error {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return errors.Newf("cannot write empty %dx%d image", width, height)
	}

	samples, err := compressCMYKSamples(img)
	if err != nil {
		return errors.Wrap(err, "failed to compress image samples")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	w := &offsetWriter{w: bufio.NewWriter(f)}
	if _, err := fmt.Fprint(w, "%PDF-1.4\n"); err != nil {
		return err
	}

	// Objects: 1 catalog, 2 page tree, 3 page, 4 image XObject, 5 contents
	offsets := make([]int64, 6)

	offsets[1] = w.off
	fmt.Fprint(w, "1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = w.off
	fmt.Fprint(w, "2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = w.off
	fmt.Fprintf(w, "3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] "+
		"/Resources << /XObject << /Im0 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		width, height)

	offsets[4] = w.off
	fmt.Fprintf(w, "4 0 obj\n<< /Type /XObject /Subtype /Image /Width %d /Height %d "+
		"/ColorSpace /DeviceCMYK /BitsPerComponent 8 /Filter /FlateDecode /Length %d >>\nstream\n",
		width, height, len(samples))
	if _, err := w.Write(samples); err != nil {
		return errors.Wrap(err, "failed to write image stream")
	}
	fmt.Fprint(w, "\nendstream\nendobj\n")

	content := fmt.Sprintf("q\n%d 0 0 %d 0 0 cm\n/Im0 Do\nQ\n", width, height)
	offsets[5] = w.off
	fmt.Fprintf(w, "5 0 obj\n<< /Length %d >>\nstream\n%sendstream\nendobj\n",
		len(content), content)

	xrefOff := w.off
	fmt.Fprint(w, "xref\n0 6\n")
	fmt.Fprint(w, "0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(w, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(w, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefOff)

	if err := w.w.Flush(); err != nil {
		return errors.Wrapf(err, "failed to flush %s", path)
	}
	return nil
}

// compressCMYKSamples flate-compresses the raw 4-byte-per-pixel samples,
// rows top to bottom. FlateDecode streams are zlib-wrapped.
func compressCMYKSamples(img *image.CMYK) ([]byte, error) {
	bounds := img.Bounds()
	rowLen := bounds.Dx() * 4

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[(y-bounds.Min.Y)*img.Stride : (y-bounds.Min.Y)*img.Stride+rowLen]
		if _, err := zw.Write(row); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// offsetWriter tracks the byte offset of everything written, for the xref
// table.
type offsetWriter struct {
	w   *bufio.Writer
	off int64
}

var _ io.Writer = (*offsetWriter)(nil)

func (o *offsetWriter) Write(p []byte) (int, error) {
	n, err := o.w.Write(p)
	o.off += int64(n)
	return n, err
}
