package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestFromFilePlainText(t *testing.T) {
	path := writeTemp(t, "notes.txt", "Photosynthesis converts light\n\n\n\ninto chemical energy.\n")

	m, err := FromFile(path)
	if err != nil {
		t.Fatalf("from file: %v", err)
	}
	if m.FileName != "notes.txt" {
		t.Errorf("file name = %q", m.FileName)
	}
	if m.Pages != 1 {
		t.Errorf("pages = %d, want 1", m.Pages)
	}
	if m.Truncated {
		t.Error("plain text should never be truncated")
	}
	if strings.Count(m.Text, "\n") != 2 {
		t.Errorf("blank runs not collapsed: %q", m.Text)
	}
}

func TestFromFileEmpty(t *testing.T) {
	path := writeTemp(t, "empty.txt", "   \n\n\t\n")

	if _, err := FromFile(path); err == nil {
		t.Fatal("expected error for file with no extractable text")
	}
}

func TestFromFileMissing(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFromPDFRejectsGarbage(t *testing.T) {
	path := writeTemp(t, "broken.pdf", "this is not a pdf")

	if _, err := FromFile(path); err == nil {
		t.Fatal("expected error for malformed pdf")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\n\n\n\nb", "a\n\nb"},
		{"  \n\nhello  \n", "hello"},
		{"one\ntwo", "one\ntwo"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
