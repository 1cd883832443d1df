package utils

import (
	"slices"
	"testing"
)

func TestEventPreview(t *testing.T) {
	cases := []struct {
		text, file, want string
	}{
		{"  hello ", "", "hello"},
		{"", "http://x/f.png", "File"},
		{"   ", "", "Message"},
		{"caption", "http://x/f.png", "caption"},
	}
	for _, tc := range cases {
		if got := EventPreview(tc.text, tc.file); got != tc.want {
			t.Errorf("EventPreview(%q, %q): got %q, want %q", tc.text, tc.file, got, tc.want)
		}
	}
}

func TestChatPreview(t *testing.T) {
	if got := ChatPreview("hi", "", true); got != "You: hi" {
		t.Errorf("mine: got %q", got)
	}
	if got := ChatPreview("", "", true); got != "You: message" {
		t.Errorf("mine empty: got %q", got)
	}
	if got := ChatPreview("", "u", false); got != "File" {
		t.Errorf("file: got %q", got)
	}
	if got := ChatPreview("", "", false); got != "Message" {
		t.Errorf("empty: got %q", got)
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"a", "b", "a", "c", "b"})
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("got %v", got)
	}
}
