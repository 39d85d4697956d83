package main

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"strings"
	"testing"
)

func TestKittyUploader_Chunks(t *testing.T) {
	var buf bytes.Buffer
	k := newKittyUploader(&buf)

	// 64x64 RGBA is 16KiB raw, well over one chunk once base64 encoded
	img := solidImage(64, 64, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	h, err := k.Upload(img)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if h == 0 {
		t.Fatal("Upload returned the zero handle")
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\x1b_Ga=t,f=32,s=64,v=64,i=1,q=2,m=1;") {
		t.Errorf("unexpected first chunk header: %q", out[:min(60, len(out))])
	}

	var payload strings.Builder
	chunks := strings.Split(strings.TrimSuffix(out, "\x1b\\"), "\x1b\\")
	for i, c := range chunks {
		semi := strings.IndexByte(c, ';')
		if semi < 0 {
			t.Fatalf("chunk %d has no payload separator", i)
		}
		data := c[semi+1:]
		if len(data) > KITTY_CHUNK {
			t.Errorf("chunk %d carries %d bytes, max %d", i, len(data), KITTY_CHUNK)
		}
		last := i == len(chunks)-1
		if last != strings.Contains(c[:semi], "m=0") {
			t.Errorf("chunk %d: m flag wrong in %q", i, c[:semi])
		}
		payload.WriteString(data)
	}

	raw, err := base64.StdEncoding.DecodeString(payload.String())
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	if !bytes.Equal(raw, img.Pix) {
		t.Error("payload does not match the image pixels")
	}
}

func TestKittyUploader_SkipsProbeID(t *testing.T) {
	k := newKittyUploader(&bytes.Buffer{})
	k.nextID = 30
	if h := k.allocID(); h != 32 {
		t.Errorf("allocID() = %d, want 32", h)
	}
}

func TestKittyUploader_Release(t *testing.T) {
	var buf bytes.Buffer
	k := newKittyUploader(&buf)
	k.Release(0)
	if buf.Len() != 0 {
		t.Error("releasing the zero handle should write nothing")
	}
	k.Release(7)
	if got := buf.String(); got != "\x1b_Ga=d,d=I,i=7,q=2;\x1b\\" {
		t.Errorf("Release wrote %q", got)
	}
}

func TestStraightAlpha(t *testing.T) {
	// premultiplied half-transparent red
	img := solidImage(1, 1, color.RGBA{R: 0x80, A: 0x80})
	px := straightAlpha(img)
	if px[0] != 0xff || px[3] != 0x80 {
		t.Errorf("straightAlpha = %v, want red 0xff alpha 0x80", px)
	}

	opaque := solidImage(2, 2, color.RGBA{R: 9, A: 0xff})
	if px := straightAlpha(opaque); &px[0] != &opaque.Pix[0] {
		t.Error("opaque images should be passed through without copying")
	}
}
