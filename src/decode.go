package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/dhowden/tag"
	"github.com/fogleman/gg"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoArtwork is returned for audio files that carry no embedded picture.
var ErrNoArtwork = errors.New("no embedded artwork")

// DecodeFunc turns a file into a premultiplied RGBA buffer.
type DecodeFunc func(path string) (*image.RGBA, error)

// Decoder is the default decode backend used by the worker pool.
type Decoder struct {
	// MaxDimension bounds the longest side of the output; 0 keeps full size.
	MaxDimension int
}

// Decode reads path, sniffs its content and decodes it.
// Audio files yield their embedded cover art.
func (d *Decoder) Decode(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if filetype.IsAudio(data) {
		data, err = extractArtwork(data)
		if err != nil {
			return nil, fmt.Errorf("artwork %s: %w", path, err)
		}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("decode %s (%s): %w", path, kind.Extension, err)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("decode %s (%s): empty image %dx%d", path, format, b.Dx(), b.Dy())
	}

	return d.toRGBA(img), nil
}

// extractArtwork pulls the picture out of an audio file's tags
func extractArtwork(data []byte) ([]byte, error) {
	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	pic := m.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return nil, ErrNoArtwork
	}
	return pic.Data, nil
}

// toRGBA converts img to a zero-origin *image.RGBA, scaling it down to fit
// MaxDimension if needed.
func (d *Decoder) toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	w, h := fitSize(b.Dx(), b.Dy(), d.MaxDimension)

	if w != b.Dx() || h != b.Dy() {
		dc := gg.NewContext(w, h)
		dc.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
		dc.DrawImage(img, -b.Min.X, -b.Min.Y)
		if rgba, ok := dc.Image().(*image.RGBA); ok {
			return rgba
		}
	}

	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(rgba, image.Point{}, img, b, draw.Src, nil)
	return rgba
}

// fitSize scales (w, h) down so that neither side exceeds max, keeping the
// aspect ratio. max <= 0 means unbounded.
func fitSize(w, h, max int) (int, int) {
	if max <= 0 || (w <= max && h <= max) {
		return w, h
	}
	if w >= h {
		nh := h * max / w
		if nh < 1 {
			nh = 1
		}
		return max, nh
	}
	nw := w * max / h
	if nw < 1 {
		nw = 1
	}
	return nw, max
}
