package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make turns a display label into a lowercase hyphenated token usable as an
// element id or class name. Blank labels give fallback.
func Make(label, fallback string) string {
	s := nonAlphaNum.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "-")
	if s = strings.Trim(s, "-"); s == "" {
		return fallback
	}
	return s
}
