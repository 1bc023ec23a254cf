// Package knowledge loads the optional reference document injected into the
// chat system prompt.
package knowledge

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxChars caps the knowledge text embedded in the system prompt so it stays
// within the model's context limit.
const MaxChars = 80_000

// truncationNote is appended when the document is cut at MaxChars.
const truncationNote = " [Document truncated for length.]"

var whitespace = regexp.MustCompile(`\s+`)

// Load reads the document at path and returns its text, collapsed to single
// spaces and truncated to MaxChars. A missing, empty, or unreadable document
// yields "" — chat still works, just without the knowledge preamble.
func Load(path string) string {
	if path == "" {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}

	var text string
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text = readPDF(path)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return ""
		}
		text = string(data)
	}

	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	if text == "" {
		return ""
	}
	if len(text) > MaxChars {
		cut := MaxChars
		// Back off to a rune boundary so the cut never splits a multi-byte
		// character.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + truncationNote
	}
	return text
}

func readPDF(path string) string {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	var buf bytes.Buffer
	total := 0
	for i := 1; i <= reader.NumPage(); i++ {
		if total >= MaxChars {
			break
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
		buf.WriteByte(' ')
		total += len(text)
	}
	return buf.String()
}
