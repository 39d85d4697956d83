package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
	xt "golang.org/x/term"
)

// Terminal owns stdin/stdout while the viewer runs: raw mode, alternate
// screen and the graphics backend.
type Terminal struct {
	in       *os.File
	out      *os.File
	oldState *xt.State
	Backend  string

	frame bytes.Buffer // one frame of output, flushed in a single write
}

// OpenTerminal switches the terminal to raw mode on the alternate screen and
// picks a graphics backend ("auto", "kitty" or "none").
func OpenTerminal(backend string) (*Terminal, error) {
	t := &Terminal{in: os.Stdin, out: os.Stdout}

	fdIn := int(t.in.Fd())
	if !xt.IsTerminal(fdIn) || !xt.IsTerminal(int(t.out.Fd())) {
		return nil, errors.New("slidepod needs an interactive terminal")
	}

	old, err := xt.MakeRaw(fdIn)
	if err != nil {
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	t.oldState = old

	name, err := detectBackend(backend, t.in, t.out)
	if err != nil {
		t.Close()
		return nil, err
	}
	t.Backend = name

	// Alternate screen, hidden cursor
	fmt.Fprint(t.out, "\x1b[?1049h\x1b[?25l\x1b[2J")
	log.WithField("backend", name).Info("Terminal opened")
	return t, nil
}

// Close restores the terminal. Safe to call more than once.
func (t *Terminal) Close() {
	if t == nil || t.oldState == nil {
		return
	}
	if t.Backend == "kitty" {
		fmt.Fprint(t.out, "\x1b_Ga=d,d=A,q=2;\x1b\\")
	}
	fmt.Fprint(t.out, "\x1b[0m\x1b[2J\x1b[?25h\x1b[?1049l")
	_ = xt.Restore(int(t.in.Fd()), t.oldState)
	t.oldState = nil
}

// Size returns the window size in cells and pixels. Pixel sizes are zero
// when the terminal does not report them.
func (t *Terminal) Size() (cols, rows, pxW, pxH int) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return DEFAULT_COLS, DEFAULT_ROWS, 0, 0
	}
	return int(ws.Col), int(ws.Row), int(ws.Xpixel), int(ws.Ypixel)
}

// CellSize returns the size of one cell in pixels, falling back to a typical
// value when the terminal does not say.
func (t *Terminal) CellSize() (int, int) {
	cols, rows, pxW, pxH := t.Size()
	if pxW <= 0 || pxH <= 0 {
		return CELL_PIXEL_W, CELL_PIXEL_H
	}
	return max(1, pxW/cols), max(1, pxH/rows)
}

// Frame returns the buffer the current frame is composed into.
func (t *Terminal) Frame() *bytes.Buffer {
	return &t.frame
}

// Flush writes the composed frame in one go.
func (t *Terminal) Flush() error {
	if t.frame.Len() == 0 {
		return nil
	}
	_, err := t.out.Write(t.frame.Bytes())
	t.frame.Reset()
	return err
}

// Writer is where graphics commands go. Image uploads bypass the frame
// buffer so large payloads are not held twice.
func (t *Terminal) Writer() io.Writer {
	return t.out
}

// Input is the raw key stream.
func (t *Terminal) Input() io.Reader {
	return t.in
}

func detectBackend(pref string, in, out *os.File) (string, error) {
	switch pref {
	case "kitty":
		if kittyProtocolAvailable(in, out, 75*time.Millisecond) {
			return "kitty", nil
		}
		return "", errors.New("kitty graphics protocol not available")
	case "auto", "":
		if kittyProtocolAvailable(in, out, 75*time.Millisecond) {
			return "kitty", nil
		}
		return "none", nil
	case "none":
		return "none", nil
	default:
		return "", errors.New("unknown backend: " + pref)
	}
}

// kittyProtocolAvailable sends a graphics query and waits briefly for the
// terminal to answer it. Must run before the input reader starts.
func kittyProtocolAvailable(in, out *os.File, timeout time.Duration) bool {
	fdIn := int(in.Fd())

	query := "\x1b_Gi=31,s=1,v=1,a=q,t=d,f=24;AAAA\x1b\\"
	if _, err := fmt.Fprint(out, query); err != nil {
		return false
	}
	_ = out.Sync()

	oldFlags, err := unix.FcntlInt(uintptr(fdIn), unix.F_GETFL, 0)
	if err != nil {
		return false
	}
	defer func() {
		_, _ = unix.FcntlInt(uintptr(fdIn), unix.F_SETFL, oldFlags)
	}()
	if err := unix.SetNonblock(fdIn, true); err != nil {
		return false
	}

	deadline := time.Now().Add(timeout)
	buf := make([]byte, 512)
	var acc bytes.Buffer
	for time.Now().Before(deadline) {
		remaining := int(time.Until(deadline) / time.Millisecond)
		if remaining <= 0 {
			remaining = 1
		}
		fds := []unix.PollFd{{Fd: int32(fdIn), Events: unix.POLLIN}}
		if _, err := unix.Poll(fds, remaining); err != nil {
			return false
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fdIn, buf)
		if n > 0 {
			acc.Write(buf[:n])
			if bytes.Contains(acc.Bytes(), []byte("\x1b_G")) {
				return true
			}
		}
		if err != nil && err != unix.EAGAIN {
			return false
		}
	}
	return false
}
