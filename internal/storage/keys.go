package storage

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KeyFunc derives a storage key from the uploaded file's original name.
type KeyFunc func(originalName string, now time.Time) string

// RandomKey returns "<unix-millis>-<uuid><.ext>".
func RandomKey(originalName string, now time.Time) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.NewString(), Extension(originalName))
}

// TimestampedNameKey returns "<unix-millis>_<sanitized name>".
func TimestampedNameKey(originalName string, now time.Time) string {
	return fmt.Sprintf("%d_%s", now.UnixMilli(), SanitizeName(originalName))
}

// Extension returns the lower-cased extension of name including the dot,
// or "" when it has none or it contains anything but letters and digits.
func Extension(name string) string {
	ext := strings.ToLower(path.Ext(SanitizeName(name)))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}

const maxNameLength = 200

// SanitizeName reduces an uploaded file name to a single safe path segment.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.TrimLeft(b.String(), ".")
	if len(out) > maxNameLength {
		out = out[len(out)-maxNameLength:]
	}
	if out == "" {
		return "file"
	}
	return out
}
