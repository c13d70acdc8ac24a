package download

import (
	"net/url"
	"strings"
)

// VideoID extracts the YouTube video identifier from the usual URL
// shapes: watch?v=, youtu.be/, shorts/, embed/. It returns "" when
// nothing recognizable is found; output naming then falls back to a
// generic base name.
func VideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	if id := u.Query().Get("v"); id != "" {
		return id
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	path := strings.Trim(u.Path, "/")

	if host == "youtu.be" && path != "" {
		return firstSegment(path)
	}

	for _, prefix := range []string{"shorts/", "embed/", "live/", "v/"} {
		if strings.HasPrefix(path, prefix) {
			return firstSegment(strings.TrimPrefix(path, prefix))
		}
	}

	return ""
}

func firstSegment(path string) string {
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
