package fingerprint

import (
	"regexp"
	"strconv"
	"strings"
)

var hashPlaceholder = regexp.MustCompile(`\[(?:content)?hash(?::(\d+))?\]`)

// Interpolate replaces [hash], [contenthash] and their [hash:N] truncated
// forms in template with the given hash.
func Interpolate(template, hash string) string {
	return hashPlaceholder.ReplaceAllStringFunc(template, func(m string) string {
		sub := hashPlaceholder.FindStringSubmatch(m)
		if sub[1] == "" {
			return hash
		}
		n, err := strconv.Atoi(sub[1])
		if err != nil || n <= 0 || n >= len(hash) {
			return hash
		}
		return hash[:n]
	})
}

// EnsureTrailingSlash appends "/" unless p is empty or already ends with one.
func EnsureTrailingSlash(p string) string {
	if p == "" || strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}
