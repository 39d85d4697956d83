package main

import (
	"image"
	"strings"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// renderPlaceholder draws a square card with a title and a wrapped message,
// used while a frame is decoding or after its decode failed.
func renderPlaceholder(theme Theme, title, message string) *image.RGBA {
	size := PLACEHOLDER_SIZE
	face := basicfont.Face7x13

	dc := gg.NewContext(size, size)
	dc.SetHexColor(theme.BG)
	dc.Clear()

	dc.SetHexColor(theme.Dim)
	dc.SetLineWidth(2)
	dc.DrawRectangle(1, 1, float64(size-2), float64(size-2))
	dc.Stroke()

	dc.SetFontFace(face)
	dc.SetHexColor(theme.ItemTxt)
	dc.DrawStringAnchored(title, float64(size)/2, float64(size)/2-30, 0.5, 0.5)

	if message != "" {
		dc.SetHexColor(theme.Dim)
		lines := wrapText(message, float64(size-40), face)
		yPos := float64(size)/2 + 5
		for i, line := range lines {
			if i >= 6 { // Max 6 lines
				break
			}
			dc.DrawStringAnchored(line, float64(size)/2, yPos+float64(i*16), 0.5, 0.5)
		}
	}

	return toRGBA(dc.Image())
}

// wrapText breaks text into lines that fit within maxWidth. Words longer
// than a line are split.
func wrapText(text string, maxWidth float64, face font.Face) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{}
	}

	var lines []string
	currentLine := ""

	for _, word := range words {
		for measureString(word, face) > maxWidth && len(word) > 1 {
			cut := fitPrefix(word, maxWidth, face)
			if currentLine != "" {
				lines = append(lines, currentLine)
				currentLine = ""
			}
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		if word == "" {
			continue
		}

		test := currentLine
		if test != "" {
			test += " "
		}
		test += word

		if measureString(test, face) <= maxWidth {
			currentLine = test
		} else {
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

// fitPrefix returns the byte length of the longest rune-aligned prefix of s
// that fits within maxWidth, never less than one rune
func fitPrefix(s string, maxWidth float64, face font.Face) int {
	cut := 0
	for i, r := range s {
		end := i + utf8.RuneLen(r)
		if cut > 0 && measureString(s[:end], face) > maxWidth {
			break
		}
		cut = end
	}
	return cut
}

// measureString measures the width of a string with the given font
func measureString(s string, face font.Face) float64 {
	width := fixed.Int26_6(0)
	prevRune := rune(-1)
	for _, r := range s {
		if prevRune >= 0 {
			width += face.Kern(prevRune, r)
		}
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			// Fallback for missing glyphs
			continue
		}
		width += adv
		prevRune = r
	}
	return float64(width) / 64.0 // Convert from fixed.Int26_6 to float64
}

// toRGBA returns img as *image.RGBA, converting if gg handed back another type
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			rgba.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return rgba
}

// placeholderHandle uploads (once per theme) the "decoding" card.
// Failure cards are uploaded per path because they carry the error.
func (app *SlidePod) placeholderHandle() Handle {
	if app.PendingHandle != 0 {
		return app.PendingHandle
	}
	h, err := app.Uploader.Upload(renderPlaceholder(app.Theme, "Decoding...", ""))
	if err != nil {
		log.WithError(err).Warn("Could not upload placeholder")
		return 0
	}
	app.PendingHandle = h
	return h
}

// failureHandle uploads a card describing a failed decode; the handle is
// remembered per path so each failure is rendered once.
func (app *SlidePod) failureHandle(path string, entry *CacheEntry) Handle {
	if h, ok := app.FailureHandles[path]; ok {
		return h
	}
	h, err := app.Uploader.Upload(renderPlaceholder(app.Theme, "Could not decode", entry.Err.Error()))
	if err != nil {
		log.WithError(err).Warn("Could not upload failure card")
		return 0
	}
	app.FailureHandles[path] = h
	return h
}

// invalidateFrames drops every theme-dependent upload so it is redrawn
func (app *SlidePod) invalidateFrames() {
	if app.PendingHandle != 0 {
		app.Uploader.Release(app.PendingHandle)
		app.PendingHandle = 0
	}
	if app.AboutHandle != 0 {
		app.Uploader.Release(app.AboutHandle)
		app.AboutHandle = 0
	}
	for path, h := range app.FailureHandles {
		app.Uploader.Release(h)
		delete(app.FailureHandles, path)
	}
}
