package bulletins

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Bulletin is one row extracted from the listing page: the display name
// from the first table cell and the raw link target from the third.
type Bulletin struct {
	Name string
	URL  string
}

// sanitize keeps the bulletin name readable (spaces and accents survive)
// and only strips what a filesystem cannot take.
func sanitize(s string) string {
	repl := []string{
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "",
		"?", "",
		"\"", "",
		"<", "",
		">", "",
		"|", "",
	}
	for i := 0; i < len(repl); i += 2 {
		s = strings.ReplaceAll(s, repl[i], repl[i+1])
	}

	s = strings.Join(strings.Fields(s), " ")

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		clean = append(clean, r)
	}
	s = string(clean)

	return strings.Trim(s, " .")
}

func (b Bulletin) SafeName() string {
	name := sanitize(b.Name)
	if name == "" {
		return "boletin"
	}
	return name
}

func (b Bulletin) OutputPDF() string {
	return b.SafeName() + ".pdf"
}

func (b Bulletin) OutputPDFPath(out string) string {
	return filepath.Join(out, b.OutputPDF())
}
