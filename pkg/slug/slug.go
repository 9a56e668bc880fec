// Package slug derives URL-safe product identifiers from display names.
package slug

import (
	"strconv"
	"strings"
	"time"

	"github.com/tair/product-catalog/pkg/textutil"
)

// Make lower-cases and hyphenates name into a URL-safe token and appends a
// millisecond creation timestamp to keep concurrent creations apart. It does
// not guarantee uniqueness by itself; the store's unique index on the slug
// field does. An empty or unusable name yields an empty token.
func Make(name string) string {
	token := hyphenate(textutil.StripDiacritics(name))
	if token == "" {
		return ""
	}
	return token + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func hyphenate(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(collapseHyphens(b.String()), "-")
}

func collapseHyphens(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}
