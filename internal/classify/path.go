package classify

import "strings"

// sensitiveExtensions flag files whose extension suggests key material.
var sensitiveExtensions = []string{".key", ".pem", ".p12", ".pfx", ".crt", ".pwd"}

// sensitiveKeywords flag paths whose name suggests secrets or config.
var sensitiveKeywords = []string{"password", "secret", "private", "config", ".env"}

// IsSensitivePath reports whether a path looks sensitive by name alone:
// a known key-material extension or a secret-suggesting substring,
// case-insensitive. This is a pre-filter for collaborators; permission
// decisions stay path-prefix based.
func IsSensitivePath(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range sensitiveExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	for _, kw := range sensitiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
