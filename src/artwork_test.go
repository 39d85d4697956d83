package main

import (
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestWrapText(t *testing.T) {
	face := basicfont.Face7x13 // 7px per glyph

	lines := wrapText("could not decode the file", 70, face)
	for _, l := range lines {
		if measureString(l, face) > 70 {
			t.Errorf("line %q exceeds max width", l)
		}
	}
	if got := strings.Join(lines, " "); got != "could not decode the file" {
		t.Errorf("words lost or reordered: %q", got)
	}

	// a single word longer than a line is split
	lines = wrapText(strings.Repeat("x", 25), 70, face)
	if len(lines) != 3 || lines[0] != strings.Repeat("x", 10) {
		t.Errorf("long word split = %q", lines)
	}

	if len(wrapText("   ", 70, face)) != 0 {
		t.Error("blank text should produce no lines")
	}
}

func TestRenderPlaceholder(t *testing.T) {
	img := renderPlaceholder(ThemeDark, "Could not decode", "unexpected EOF")
	if b := img.Bounds(); b.Dx() != PLACEHOLDER_SIZE || b.Dy() != PLACEHOLDER_SIZE {
		t.Errorf("bounds = %v", b)
	}
}

func TestRenderAboutCard(t *testing.T) {
	img := renderAboutCard(ThemeDark, "abc")
	if b := img.Bounds(); b.Dx() != ABOUT_WIDTH || b.Dy() != ABOUT_HEIGHT {
		t.Errorf("bounds = %v", b)
	}
}
