package slug

import (
	"strings"
	"testing"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "simple_word",
			title: "Introduction",
			want:  "introduction",
		},
		{
			name:  "spaces_become_hyphens",
			title: "Intro to Go",
			want:  "intro-to-go",
		},
		{
			name:  "punctuation_collapses",
			title: "What's new?! (2026 edition)",
			want:  "what-s-new-2026-edition",
		},
		{
			name:  "leading_trailing_trimmed",
			title: "  --Hello--  ",
			want:  "hello",
		},
		{
			name:  "digits_kept",
			title: "Lesson 12: Maps",
			want:  "lesson-12-maps",
		},
		{
			name:  "empty_title",
			title: "",
			want:  "",
		},
		{
			name:  "only_symbols",
			title: "!!!",
			want:  "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Derive(tc.title)
			if got != tc.want {
				t.Fatalf("Derive(%q)=%q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestDeriveLengthCap(t *testing.T) {
	long := strings.Repeat("a", 500)
	got := Derive(long)
	if len(got) > 80 {
		t.Fatalf("Derive produced %d chars, cap is 80", len(got))
	}
}
