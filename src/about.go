package main

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font/basicfont"
)

// renderAboutCard draws the about page with version info, key help and a QR
// code pointing at the project page
func renderAboutCard(theme Theme, installationID string) *image.RGBA {
	w, h := ABOUT_WIDTH, ABOUT_HEIGHT

	dc := gg.NewContext(w, h)
	dc.SetHexColor(theme.BG)
	dc.Clear()

	dc.SetFontFace(basicfont.Face7x13)

	// Title
	dc.SetHexColor(theme.HeaderTxt)
	dc.DrawStringAnchored("About "+APP_NAME, float64(w)/2, 24, 0.5, 0.5)

	// Version and author info
	dc.SetHexColor(theme.ItemTxt)
	yPos := 52
	dc.DrawStringAnchored("Version: "+APP_VERSION, float64(w)/2, float64(yPos), 0.5, 0.5)
	yPos += 18
	dc.DrawStringAnchored("Created by: "+APP_AUTHOR, float64(w)/2, float64(yPos), 0.5, 0.5)

	yPos += 24
	dc.SetHexColor(theme.Dim)
	help := []string{
		"Left/Right  previous/next image",
		"Space  play/pause    +/-  framerate",
		"l  file list    o  open directory",
		"t  theme    D  debug log",
		"?  about    q  quit",
	}
	for _, line := range help {
		dc.DrawStringAnchored(line, float64(w)/2, float64(yPos), 0.5, 0.5)
		yPos += 16
	}

	// Generate QR code
	qr, err := qrcode.New(SUPPORT_URL, qrcode.Medium)
	if err == nil {
		qrSize := 150
		qrImg := qr.Image(qrSize)

		qrX := (w - qrSize) / 2
		qrY := yPos + 4
		dc.DrawImage(qrImg, qrX, qrY)

		dc.SetHexColor(theme.ItemTxt)
		dc.DrawStringAnchored("Support this project", float64(w)/2, float64(qrY+qrSize+12), 0.5, 0.5)
	} else {
		log.WithError(err).Warn("Could not generate QR code")
	}

	if installationID != "" {
		dc.SetHexColor(theme.Dim)
		dc.DrawStringAnchored(fmt.Sprintf("Install %s", installationID), float64(w)/2, float64(h-10), 0.5, 0.5)
	}

	return toRGBA(dc.Image())
}

// showAboutScreen switches to the about overlay, uploading it on first use
func (app *SlidePod) showAboutScreen() {
	if app.AboutHandle == 0 {
		h, err := app.Uploader.Upload(renderAboutCard(app.Theme, app.InstallationID))
		if err != nil {
			log.WithError(err).Warn("Could not upload about card")
		} else {
			app.AboutHandle = h
		}
	}
	app.setScreen(ScreenAbout)
}

// handleAboutKey returns to the slideshow on any key
func (app *SlidePod) handleAboutKey(key Key) {
	if key == KEY_QUIT || key == CTRL_C {
		app.Running = false
		return
	}
	app.setScreen(ScreenSlideshow)
}
