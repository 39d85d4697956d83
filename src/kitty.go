package main

import (
	"encoding/base64"
	"fmt"
	"image"
	"io"
)

// Kitty graphics protocol payloads are sent in chunks of at most 4096 bytes
const KITTY_CHUNK = 4096

// kittyUploader transmits pixels to the terminal once and refers to them by
// image id afterwards. Only the UI goroutine may use it.
type kittyUploader struct {
	w      io.Writer
	nextID uint32
}

func newKittyUploader(w io.Writer) *kittyUploader {
	return &kittyUploader{w: w}
}

func (k *kittyUploader) allocID() Handle {
	k.nextID++
	if k.nextID == 0 || k.nextID == 31 { // 31 is the probe id
		k.nextID++
	}
	return Handle(k.nextID)
}

// Upload sends img as 32-bit RGBA under a fresh image id.
func (k *kittyUploader) Upload(img *image.RGBA) (Handle, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return 0, fmt.Errorf("empty image")
	}

	id := k.allocID()
	payload := base64.StdEncoding.EncodeToString(straightAlpha(img))

	first := true
	for len(payload) > 0 {
		n := min(KITTY_CHUNK, len(payload))
		chunk := payload[:n]
		payload = payload[n:]

		more := 0
		if len(payload) > 0 {
			more = 1
		}

		var err error
		if first {
			_, err = fmt.Fprintf(k.w, "\x1b_Ga=t,f=32,s=%d,v=%d,i=%d,q=2,m=%d;%s\x1b\\",
				b.Dx(), b.Dy(), id, more, chunk)
			first = false
		} else {
			_, err = fmt.Fprintf(k.w, "\x1b_Gm=%d;%s\x1b\\", more, chunk)
		}
		if err != nil {
			return 0, err
		}
	}
	return id, nil
}

// Release frees the image data held by the terminal.
func (k *kittyUploader) Release(h Handle) {
	if h == 0 {
		return
	}
	fmt.Fprintf(k.w, "\x1b_Ga=d,d=I,i=%d,q=2;\x1b\\", h)
}

// kittyPlace shows a previously uploaded image at a cell rectangle (1-based).
func kittyPlace(w io.Writer, h Handle, col, row, cols, rows int) {
	fmt.Fprintf(w, "\x1b[%d;%dH\x1b_Ga=p,i=%d,c=%d,r=%d,C=1,q=2;\x1b\\", row, col, h, cols, rows)
}

// kittyClearPlacements removes every visible image but keeps the data.
func kittyClearPlacements(w io.Writer) {
	fmt.Fprint(w, "\x1b_Ga=d,d=a,q=2;\x1b\\")
}

// straightAlpha returns the pixels of img with alpha un-premultiplied, which
// is what the protocol expects. Opaque images are returned as is.
func straightAlpha(img *image.RGBA) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	opaque := true
	for y := 0; y < h && opaque; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 3; x < len(row); x += 4 {
			if row[x] != 0xff {
				opaque = false
				break
			}
		}
	}
	if opaque && img.Stride == w*4 {
		return img.Pix[:w*h*4]
	}

	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		dst := out[y*w*4 : (y+1)*w*4]
		for x := 0; x < len(src); x += 4 {
			a := uint32(src[x+3])
			dst[x+3] = uint8(a)
			if a == 0 || a == 0xff {
				dst[x], dst[x+1], dst[x+2] = src[x], src[x+1], src[x+2]
				continue
			}
			dst[x] = uint8(uint32(src[x]) * 0xff / a)
			dst[x+1] = uint8(uint32(src[x+1]) * 0xff / a)
			dst[x+2] = uint8(uint32(src[x+2]) * 0xff / a)
		}
	}
	return out
}

// noopUploader hands out handles without drawing anything, for terminals
// without graphics support.
type noopUploader struct {
	nextID uint32
}

func (n *noopUploader) Upload(img *image.RGBA) (Handle, error) {
	n.nextID++
	return Handle(n.nextID), nil
}

func (n *noopUploader) Release(Handle) {}

// newUploader picks the uploader matching the terminal backend
func newUploader(backend string, w io.Writer) Uploader {
	if backend == "kitty" {
		return newKittyUploader(w)
	}
	return &noopUploader{}
}
