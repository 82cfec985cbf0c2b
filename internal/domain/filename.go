package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultFilename is used when a client sends a file part without a usable name.
const DefaultFilename = "document.pdf"

// unsafeChars matches characters that are not alphanumeric, dot, hyphen, or underscore.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// CleanFilename reduces a client supplied name to its base name and removes
// characters that would break a Content-Disposition header.
func CleanFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || r == '"' {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return DefaultFilename
	}
	return name
}

// SanitizeFilename returns a name safe for object keys. Disallowed characters
// become underscores, runs of underscores collapse, and the result is capped
// at 100 bytes.
func SanitizeFilename(name string) string {
	s := unsafeChars.ReplaceAllString(CleanFilename(name), "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_.")
	if len(s) > 100 {
		s = s[len(s)-100:]
	}
	if s == "" {
		return DefaultFilename
	}
	return s
}
