package waitk

import "strings"

var absoluteSchemes = []string{"http:", "https:", "file:", "about:", "data:"}

// IsAbsoluteURL reports whether u starts with a scheme Open navigates to as is.
func IsAbsoluteURL(u string) bool {
	lower := strings.ToLower(u)
	for _, scheme := range absoluteSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// ResolveURL prefixes relative urls with base. No normalisation is done.
func ResolveURL(base, u string) string {
	if IsAbsoluteURL(u) {
		return u
	}
	return base + u
}
