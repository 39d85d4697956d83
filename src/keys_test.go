package main

import (
	"reflect"
	"testing"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Key
	}{
		{"arrows", "\x1b[C\x1b[D\x1bOA", []Key{RIGHT, LEFT, UP}},
		{"page keys", "\x1b[5~\x1b[6~", []Key{PGUP, PGDN}},
		{"lone escape", "\x1b", []Key{ESCAPE}},
		{"printable", "q +", []Key{KEY_QUIT, KEY_SPACE, KEY_FASTER}},
		{"utf8", "é", []Key{Key('é')}},
		{"controls", "\r\x7f\t\x03", []Key{ENTER, BACKSPACE, TAB, CTRL_C}},
		{"graphics reply skipped", "\x1b_Gi=31;OK\x1b\\n", []Key{KEY_NEXT_ALT}},
		{"unknown sequence dropped", "\x1b[99zp", []Key{KEY_PREV_ALT}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseKeys([]byte(tt.in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseKeys(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeyIsPrintable(t *testing.T) {
	for _, k := range []Key{'a', ' ', '/', Key('é')} {
		if !k.IsPrintable() {
			t.Errorf("%q should be printable", rune(k))
		}
	}
	for _, k := range []Key{ENTER, ESCAPE, UP, 0x7f, '\t'} {
		if k.IsPrintable() {
			t.Errorf("key %d should not be printable", k)
		}
	}
}
