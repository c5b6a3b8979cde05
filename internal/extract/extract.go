// Package extract pulls study text out of uploaded material files.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxPages caps how much of a PDF is read. Anything past this is ignored
// so a textbook upload cannot blow the summarizer's input budget.
const MaxPages = 10

// Material is the extracted text of one uploaded file.
type Material struct {
	FileName  string
	Pages     int  // pages actually read
	Truncated bool // true when the file had more pages than MaxPages
	Text      string
}

// FromFile extracts text from the file at path. PDFs are parsed page by
// page; everything else is read as plain UTF-8 text.
func FromFile(path string) (*Material, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return FromPDF(path)
	}
	return fromTextFile(path)
}

// FromPDF extracts plain text from the first MaxPages pages of a PDF.
func FromPDF(path string) (*Material, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	total := r.NumPage()
	limit := total
	if limit > MaxPages {
		limit = MaxPages
	}

	var b strings.Builder
	for i := 1; i <= limit; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d of %s: %w", i, filepath.Base(path), err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	m := &Material{
		FileName:  filepath.Base(path),
		Pages:     limit,
		Truncated: total > MaxPages,
		Text:      normalize(b.String()),
	}
	if m.Text == "" {
		return nil, fmt.Errorf("no extractable text in %s", m.FileName)
	}
	return m, nil
}

func fromTextFile(path string) (*Material, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	text := normalize(string(raw))
	if text == "" {
		return nil, fmt.Errorf("no extractable text in %s", filepath.Base(path))
	}

	return &Material{
		FileName: filepath.Base(path),
		Pages:    1,
		Text:     text,
	}, nil
}

// normalize collapses runs of blank lines and trims surrounding whitespace.
func normalize(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
