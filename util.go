package main

import (
	"os"
	"path/filepath"
	"strings"
)

// sanitizeTitle maps a book title onto a file name: letters, digits, '.',
// '(', ')', space and '-' are kept, every other rune becomes '_'.
func sanitizeTitle(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if r == '-' || r == '.' || r == '(' || r == ')' || r == ' ' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	out := strings.Trim(b.String(), ". ")
	if out == "" {
		return "book"
	}
	return out
}

// cleanText collapses runs of whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func ensureDirs(dirs ...string) error {
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func join(elem ...string) string { return filepath.Join(elem...) }
