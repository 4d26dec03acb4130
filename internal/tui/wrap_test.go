package tui

import (
	"reflect"
	"testing"
)

func TestWrapWords(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{name: "fits", in: "Draws in the mixture.", width: 30, want: []string{"Draws in the mixture."}},
		{name: "wraps", in: "Piston moves down.", width: 12, want: []string{"Piston moves", "down."}},
		{name: "splits long word", in: "abcdefgh", width: 3, want: []string{"abc", "def", "gh"}},
		{name: "empty", in: "", width: 10, want: []string{""}},
		{name: "wide runes one per line", in: "世界", width: 1, want: []string{"世", "界"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapWords(tt.in, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("wrapWords(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}
