package routes

import "strings"

// JoinURL joins a parent URL and a child path into a canonical URL. A child
// of "/" or "" is the parent's index route.
func JoinURL(parent, child string) string {
	return CanonicalURL(parent + "/" + child)
}

// CanonicalURL normalizes a URL path:
//   - ensures a leading slash
//   - collapses multiple slashes (/auth//login → /auth/login)
//   - removes "." segments
//   - removes the trailing slash (except for root "/")
//
// Route parameters such as "$id" are kept verbatim.
func CanonicalURL(path string) string {
	segments := strings.Split(path, "/")
	result := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "" || seg == "." {
			continue
		}
		result = append(result, seg)
	}
	return "/" + strings.Join(result, "/")
}
