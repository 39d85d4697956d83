package main

import "unicode/utf8"

// Key is either a printable rune or one of the special keys below.
type Key int

// Special keys live above the Unicode range so they never clash with runes
const (
	NONE Key = -1

	UP Key = 0x110000 + iota
	DOWN
	LEFT
	RIGHT
	HOME
	END
	PGUP
	PGDN
	ENTER
	BACKSPACE
	ESCAPE
	TAB
	CTRL_C
)

// Printable keys used by the slideshow
const (
	KEY_SPACE     Key = ' '
	KEY_QUIT      Key = 'q'
	KEY_LIST      Key = 'l'
	KEY_OPEN      Key = 'o'
	KEY_THEME     Key = 't'
	KEY_ABOUT     Key = '?'
	KEY_FASTER    Key = '+'
	KEY_SLOWER    Key = '-'
	KEY_NEXT_ALT  Key = 'n'
	KEY_PREV_ALT  Key = 'p'
	KEY_FIRST_ALT Key = 'g'
	KEY_LAST_ALT  Key = 'G'
	KEY_DEBUG     Key = 'D'
)

// IsPrintable reports whether k is a rune that can be typed into the prompt.
func (k Key) IsPrintable() bool {
	return k >= ' ' && k < 0x110000 && k != 0x7f
}

// escapeKeys maps CSI/SS3 sequences to special keys
var escapeKeys = map[string]Key{
	"\x1b[A":  UP,
	"\x1b[B":  DOWN,
	"\x1b[C":  RIGHT,
	"\x1b[D":  LEFT,
	"\x1bOA":  UP,
	"\x1bOB":  DOWN,
	"\x1bOC":  RIGHT,
	"\x1bOD":  LEFT,
	"\x1b[H":  HOME,
	"\x1b[F":  END,
	"\x1bOH":  HOME,
	"\x1bOF":  END,
	"\x1b[1~": HOME,
	"\x1b[4~": END,
	"\x1b[5~": PGUP,
	"\x1b[6~": PGDN,
}

// parseKeys splits a chunk of raw terminal input into keys. Incomplete or
// unknown escape sequences are dropped; a lone ESC is the escape key.
func parseKeys(b []byte) []Key {
	var keys []Key
	for len(b) > 0 {
		c := b[0]
		switch {
		case c == 0x1b:
			n, k := parseEscape(b)
			if k != NONE {
				keys = append(keys, k)
			}
			b = b[n:]
			continue
		case c == '\r' || c == '\n':
			keys = append(keys, ENTER)
		case c == 0x7f || c == 0x08:
			keys = append(keys, BACKSPACE)
		case c == '\t':
			keys = append(keys, TAB)
		case c == 0x03:
			keys = append(keys, CTRL_C)
		case c < ' ':
			// other control bytes are ignored
		default:
			r, size := utf8.DecodeRune(b)
			if r != utf8.RuneError || size > 1 {
				keys = append(keys, Key(r))
			}
			b = b[size:]
			continue
		}
		b = b[1:]
	}
	return keys
}

// parseEscape consumes one escape sequence from the start of b
func parseEscape(b []byte) (int, Key) {
	if len(b) == 1 {
		return 1, ESCAPE
	}
	if b[1] != '[' && b[1] != 'O' && b[1] != '_' {
		return 1, ESCAPE
	}

	// APC replies (graphics protocol acks) run until ST
	if b[1] == '_' {
		for i := 2; i+1 < len(b); i++ {
			if b[i] == 0x1b && b[i+1] == '\\' {
				return i + 2, NONE
			}
		}
		return len(b), NONE
	}

	// CSI/SS3: parameters then a final byte in 0x40..0x7e
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			if k, ok := escapeKeys[string(b[:i+1])]; ok {
				return i + 1, k
			}
			return i + 1, NONE
		}
	}
	return len(b), NONE
}
