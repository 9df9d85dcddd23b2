package utils

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrBadFilename is returned when an uploaded filename reduces to nothing
// usable after sanitization.
var ErrBadFilename = errors.New("unusable upload filename")

// UploadFilename derives the stored name for an uploaded file from its
// original client-side name: path components are stripped, unsafe runes
// replaced, and an opaque suffix (UTC microsecond timestamp plus a UUID
// fragment) is appended to the base before the extension so repeated
// uploads of the same original name never collide, even within the same
// microsecond.
func UploadFilename(original string) (string, error) {
	// Browsers on Windows may send backslash-separated paths.
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == ".." || base == "/" || base == "" {
		return "", ErrBadFilename
	}

	ext := filepath.Ext(base)
	stem := sanitize(strings.TrimSuffix(base, ext))
	if e := sanitize(ext); e != "" {
		ext = "." + e
	} else {
		ext = ""
	}
	if stem == "" {
		return "", ErrBadFilename
	}

	suffix := fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102150405.000000"), uuid.NewString()[:8])
	return fmt.Sprintf("%s_%s%s", stem, strings.ReplaceAll(suffix, ".", ""), ext), nil
}

// sanitize keeps letters, digits, dot, dash and underscore; everything
// else becomes an underscore.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
