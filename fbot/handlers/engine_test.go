package handlers

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "empty", in: "", max: 10, want: "*(empty)*"},
		{name: "fits", in: "hello", max: 10, want: "hello"},
		{name: "cut with ellipsis", in: "hello world", max: 6, want: "hello…"},
		{name: "multi-byte fits within max runes", in: "héllo", max: 5, want: "héllo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateCutsOnRuneBoundary(t *testing.T) {
	in := strings.Repeat("é", 64)
	got := truncate(in, 10)

	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 10 {
		t.Errorf("rune count = %d, want 10", n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated string %q missing ellipsis", got)
	}
}
