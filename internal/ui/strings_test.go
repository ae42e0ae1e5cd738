package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		value string
		limit int
		want  string
	}{
		{name: "short enough", value: "Dune", limit: 10, want: "Dune"},
		{name: "exact limit", value: "Dune", limit: 4, want: "Dune"},
		{name: "needs ellipsis", value: "The Left Hand of Darkness", limit: 12, want: "The Left ..."},
		{name: "tiny limit", value: "Dune", limit: 2, want: "Du"},
		{name: "zero limit returns all", value: "Dune", limit: 0, want: "Dune"},
		{name: "trims whitespace", value: "  Dune  ", limit: 10, want: "Dune"},
		{name: "multibyte runes", value: "Ráðherrabókin mikla", limit: 10, want: "Ráðherr..."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.value, tc.limit); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.value, tc.limit, got, tc.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	cases := []struct {
		name  string
		value string
		width int
		want  string
	}{
		{name: "pads", value: "ID", width: 5, want: "ID   "},
		{name: "exact", value: "YEAR", width: 4, want: "YEAR"},
		{name: "truncates", value: "AUTHOR", width: 4, want: "AUTH"},
		{name: "zero width", value: "x", width: 0, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := padRight(tc.value, tc.width); got != tc.want {
				t.Fatalf("padRight(%q, %d) = %q, want %q", tc.value, tc.width, got, tc.want)
			}
		})
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "book"); got != "1 book" {
		t.Fatalf("pluralize(1) = %q, want %q", got, "1 book")
	}
	if got := pluralize(0, "book"); got != "0 books" {
		t.Fatalf("pluralize(0) = %q, want %q", got, "0 books")
	}
	if got := pluralize(7, "book"); got != "7 books" {
		t.Fatalf("pluralize(7) = %q, want %q", got, "7 books")
	}
}
