package core

import "strings"

const (
	// sandboxPrefix is where hermetic sandbox builds mount the checker's
	// workspace; local builds see paths without it.
	sandboxPrefix = "external/io_tycho_checker/"
	// urlPrefix is the canonical source link prefix used for payload file
	// paths in tooling output.
	urlPrefix = "https://github.com/tycho-lang/tycho/tree/master/"
)

// CensorPath normalizes a path for reproducible snapshot comparison, so the
// same file censors identically whether the checker ran inside the build
// sandbox or from a local checkout. A URL-shaped path keeps its URL prefix
// but loses any embedded sandbox prefix.
func CensorPath(path string) string {
	result := strings.TrimPrefix(path, sandboxPrefix)

	if strings.HasPrefix(path, urlPrefix) {
		result = strings.TrimPrefix(path, urlPrefix)
		result = strings.TrimPrefix(result, sandboxPrefix)
		return urlPrefix + result
	}
	return result
}
