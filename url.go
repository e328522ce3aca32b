package kilroyws

import "strings"

// joinURL applies the trivial composition rule from spec.md §6: the
// base's trailing slash is removed if present, a leading slash is added
// to path if absent, and the two are concatenated. No dot-segment
// resolution is applied.
func joinURL(base, path string) string {
	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
