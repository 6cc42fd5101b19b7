package crawler

import "strings"

// StripURITemplate removes RFC 6570 template expressions (e.g. "{/sha}",
// "{?page,per_page}") from a GitHub API URL, as required before any URL is
// queued (spec.md §3 invariants, §4.7 step 4).
func StripURITemplate(rawURL string) string {
	var b strings.Builder
	depth := 0
	for _, r := range rawURL {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
