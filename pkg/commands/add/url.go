package add

import (
	"net/url"
	"path"
	"strings"
)

// RepositoryName derives a package name from a repository url. It
// understands URLs with a scheme (https, ssh, git, file), scp-like
// "user@host:path" addresses and local paths.
func RepositoryName(rawURL string) string {
	s := strings.TrimSpace(rawURL)

	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil {
			s = u.Path
		}
	} else if i := strings.Index(s, ":"); i > 0 && !isWindowsDrive(s) && !strings.ContainsAny(s[:i], `/\`) {
		s = s[i+1:]
	}

	s = strings.ReplaceAll(s, `\`, "/")
	s = strings.TrimRight(s, "/")
	s = strings.TrimSuffix(path.Base(s), ".git")

	if s == "." || s == "/" {
		return ""
	}
	return s
}

func isWindowsDrive(s string) bool {
	return len(s) >= 2 && s[1] == ':' &&
		(('a' <= s[0] && s[0] <= 'z') || ('A' <= s[0] && s[0] <= 'Z'))
}
