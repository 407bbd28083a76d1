package media

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SecureFilename reduces a client-supplied name to a safe single path segment:
// directory parts are dropped, whitespace becomes '_', and only ASCII letters,
// digits, '.', '-' and '_' survive. It may return "".
func SecureFilename(name string) string {
	name = norm.NFKD.String(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "\\", "/")
	clean := path.Base(name)
	if clean == "." || clean == "/" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case unicode.IsSpace(r):
			b.WriteRune('_')
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_'):
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}

// Extension returns the lower-cased extension without the dot.
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}
