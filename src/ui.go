package main

import (
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
)

// drawCurrentScreen composes the whole screen and writes it in one go
func (app *SlidePod) drawCurrentScreen() {
	t := app.Term
	cols, rows, _, _ := t.Size()
	cellW, cellH := t.CellSize()
	buf := t.Frame()

	buf.WriteString("\x1b[H\x1b[2J")
	if t.Backend == "kitty" {
		kittyClearPlacements(buf)
	}

	app.drawHeader(buf, cols)

	contentTop := HEADER_ROWS + 1
	contentRows := rows - HEADER_ROWS - PROGRESS_ROWS - STATUS_BAR_ROWS
	contentLeft := 1
	contentCols := cols

	if app.ListFiles && cols > FILE_LIST_COLS+MIN_IMAGE_COLS {
		app.drawFileList(buf, contentTop, FILE_LIST_COLS, contentRows)
		contentLeft += FILE_LIST_COLS + 1
		contentCols -= FILE_LIST_COLS + 1
	}

	switch app.CurrentScreen {
	case ScreenAbout:
		app.drawHandle(buf, app.AboutHandle, ABOUT_WIDTH, ABOUT_HEIGHT, contentLeft, contentTop, contentCols, contentRows, cellW, cellH)
	default:
		app.drawImage(buf, contentLeft, contentTop, contentCols, contentRows, cellW, cellH)
	}

	app.drawProgressBar(buf, rows-STATUS_BAR_ROWS, cols)
	app.drawStatusBar(buf, rows, cols)

	if err := t.Flush(); err != nil {
		log.WithError(err).Error("Failed to write frame")
	}
	app.Dirty = false
}

// drawHeader draws the top bar: directory, flags, framerate and current file
func (app *SlidePod) drawHeader(buf *bytes.Buffer, cols int) {
	v := app.Viewer

	parts := []string{"PWD: " + v.Show.Dir}
	if app.ListFiles {
		parts = append(parts, "[list]")
	}
	parts = append(parts, fmt.Sprintf("Framerate: %.1f", v.Playback.Framerate()))
	if i, ok := v.Show.Current(); ok {
		name, _ := v.Show.CurrentName()
		parts = append(parts, fmt.Sprintf("Frame: %d", i), "File: "+name)
	} else {
		parts = append(parts, "No images")
	}
	if v.Playback.Playing() {
		parts = append(parts, "▶")
	}

	line := padRight(truncateMiddle(strings.Join(parts, "  "), cols), cols)
	fmt.Fprintf(buf, "\x1b[1;1H%s", app.Theme.headerStyle().Render(line))
}

// drawFileList draws the side panel, keeping the current file in view
func (app *SlidePod) drawFileList(buf *bytes.Buffer, top, width, height int) {
	show := app.Viewer.Show
	if height <= 0 {
		return
	}

	cur, ok := show.Current()
	scroll := 0
	if ok && cur >= height {
		scroll = cur - height + 1
	}

	for row := 0; row < height; row++ {
		idx := scroll + row
		fmt.Fprintf(buf, "\x1b[%d;1H", top+row)
		if idx >= show.Len() {
			buf.WriteString(strings.Repeat(" ", width))
			continue
		}

		name := padRight(" "+truncateMiddle(show.Files[idx], width-2)+" ", width)
		switch {
		case ok && idx == cur:
			buf.WriteString(app.Theme.selectedStyle().Render(name))
		case app.Viewer.Cache.Has(show.PathAt(idx)):
			buf.WriteString(app.Theme.itemStyle().Render(name))
		default:
			buf.WriteString(app.Theme.dimStyle().Render(name))
		}
	}
}

// drawImage places the current frame, or a placeholder while it decodes
func (app *SlidePod) drawImage(buf *bytes.Buffer, left, top, cols, rows, cellW, cellH int) {
	v := app.Viewer
	path, ok := v.Show.CurrentPath()
	if !ok {
		app.drawCentered(buf, "No images in this directory", left, top, cols, rows)
		return
	}

	entry, cached := v.Cache.Get(path)
	switch {
	case !cached:
		app.drawHandle(buf, app.placeholderHandle(), PLACEHOLDER_SIZE, PLACEHOLDER_SIZE, left, top, cols, rows, cellW, cellH)
		if app.Term.Backend != "kitty" {
			app.drawCentered(buf, "Decoding "+filepath.Base(path)+"...", left, top, cols, rows)
		}
	case entry.Failed():
		app.drawHandle(buf, app.failureHandle(path, entry), PLACEHOLDER_SIZE, PLACEHOLDER_SIZE, left, top, cols, rows, cellW, cellH)
		if app.Term.Backend != "kitty" {
			app.drawCentered(buf, "Could not decode: "+entry.Err.Error(), left, top, cols, rows)
		}
	default:
		app.drawHandle(buf, entry.Handle, entry.Width, entry.Height, left, top, cols, rows, cellW, cellH)
		if app.Term.Backend != "kitty" {
			app.drawCentered(buf, fmt.Sprintf("%s  %dx%d", filepath.Base(path), entry.Width, entry.Height), left, top, cols, rows)
		}
	}
}

// drawHandle fits an uploaded image into the cell rectangle, centered
func (app *SlidePod) drawHandle(buf *bytes.Buffer, h Handle, imgW, imgH, left, top, cols, rows, cellW, cellH int) {
	if h == 0 || app.Term.Backend != "kitty" {
		return
	}
	c, r := fitCells(imgW, imgH, cols, rows, cellW, cellH)
	if c == 0 || r == 0 {
		return
	}
	kittyPlace(buf, h, left+(cols-c)/2, top+(rows-r)/2, c, r)
}

// drawCentered writes one line of text in the middle of a rectangle
func (app *SlidePod) drawCentered(buf *bytes.Buffer, text string, left, top, cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	text = truncateMiddle(text, cols)
	x := left + (cols-runewidth.StringWidth(text))/2
	y := top + rows/2
	fmt.Fprintf(buf, "\x1b[%d;%dH%s", y, x, app.Theme.itemStyle().Render(text))
}

// drawProgressBar shows index/len across the full width
func (app *SlidePod) drawProgressBar(buf *bytes.Buffer, row, cols int) {
	if cols <= 0 {
		return
	}
	fill := int(app.Viewer.Show.Progress() * float64(cols))
	fmt.Fprintf(buf, "\x1b[%d;1H%s%s", row,
		app.Theme.progressStyle().Render(strings.Repeat("█", fill)),
		app.Theme.progressBGStyle().Render(strings.Repeat("░", cols-fill)))
}

// drawStatusBar shows pipeline counters, or the directory prompt
func (app *SlidePod) drawStatusBar(buf *bytes.Buffer, row, cols int) {
	var line string
	if app.CurrentScreen == ScreenPrompt {
		line = app.Theme.accentStyle().Render("Open: ") +
			app.Theme.itemStyle().Render(truncateLeft(app.PromptInput, cols-8)+"_")
	} else {
		cache := app.Viewer.Cache
		status := fmt.Sprintf("cached %d", cache.Len())
		if cache.Failed() > 0 {
			status += fmt.Sprintf(" (%d failed)", cache.Failed())
		}
		status += fmt.Sprintf(" • queued %d • workers %d • %s", app.Jobs.Len(), app.Pool.Size(), app.Term.Backend)
		hints := "←/→ navigate • space play • ? help • q quit"

		pad := cols - runewidth.StringWidth(status) - runewidth.StringWidth(hints)
		if pad < 1 {
			line = app.Theme.dimStyle().Render(truncateMiddle(status, cols))
		} else {
			line = app.Theme.dimStyle().Render(status + strings.Repeat(" ", pad) + hints)
		}
	}
	fmt.Fprintf(buf, "\x1b[%d;1H%s", row, line)
}

// fitCells returns the cell size of an imgW x imgH image scaled to fit
// cols x rows cells without changing its aspect ratio
func fitCells(imgW, imgH, cols, rows, cellW, cellH int) (int, int) {
	if imgW <= 0 || imgH <= 0 || cols <= 0 || rows <= 0 || cellW <= 0 || cellH <= 0 {
		return 0, 0
	}
	areaW := float64(cols * cellW)
	areaH := float64(rows * cellH)
	scale := math.Min(areaW/float64(imgW), areaH/float64(imgH))

	c := int(math.Round(float64(imgW) * scale / float64(cellW)))
	r := int(math.Round(float64(imgH) * scale / float64(cellH)))
	return clampInt(c, 1, cols), clampInt(r, 1, rows)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// truncateMiddle shortens s to width display cells, eliding the middle
func truncateMiddle(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}

	keep := width - runewidth.StringWidth("…")
	headW := keep / 2
	tailW := keep - headW

	head := runewidth.Truncate(s, headW, "")
	tail := truncateLeft(s, tailW)
	return head + "…" + tail
}

// truncateLeft keeps the last width display cells of s
func truncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	w := 0
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if w+rw > width {
			break
		}
		w += rw
		i--
	}
	return string(runes[i:])
}

// padRight pads s with spaces to width display cells
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
