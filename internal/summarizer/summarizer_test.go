package summarizer

import (
	"testing"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"normalizes whitespace", "hello   world\n\tnext", "hello world next"},
		{"strips specials", "costs $40 (roughly)", "costs 40 roughly"},
		{"keeps sentence punctuation", "Done. Really? Yes, done!", "Done. Really? Yes, done!"},
		{"trims", "  padded  ", "padded"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanText(tt.in); got != tt.want {
				t.Errorf("cleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRotateKey(t *testing.T) {
	s := New([]string{"a", "b", "c"}, "", logger.New("error")).(*implSummarizer)

	if s.currentKey != 0 {
		t.Fatalf("currentKey = %d, want 0", s.currentKey)
	}
	s.rotateKey()
	if s.currentKey != 1 {
		t.Errorf("currentKey = %d, want 1", s.currentKey)
	}
	s.rotateKey()
	s.rotateKey()
	if s.currentKey != 0 {
		t.Errorf("currentKey = %d, want wrap to 0", s.currentKey)
	}
}

func TestNewDefaultsModel(t *testing.T) {
	s := New([]string{"a"}, "", logger.New("error")).(*implSummarizer)
	if s.model != "gemini-2.5-flash" {
		t.Errorf("model = %q, want default", s.model)
	}
}
