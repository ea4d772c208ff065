package socials

import (
	"regexp"
	"strings"
)

var (
	schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
	nonDigits     = regexp.MustCompile(`[^0-9]`)
)

// DeriveURL builds the profile URL for a platform and username.
// It never fails: unknown platforms treat the username as a raw URL.
func DeriveURL(platform, username string) string {
	p, ok := byName[platform]
	if !ok || platform == CustomLink {
		return EnsureScheme(username)
	}

	if platform == WhatsApp {
		return p.BaseURL + nonDigits.ReplaceAllString(username, "")
	}

	return p.BaseURL + username
}

// EnsureScheme prefixes https:// unless s already carries a scheme.
func EnsureScheme(s string) string {
	if HasScheme(s) {
		return s
	}
	return "https://" + s
}

// HasScheme reports whether s starts with a URL scheme such as https://.
func HasScheme(s string) bool {
	return schemePattern.MatchString(s)
}

// ExtractUsername strips the platform base URL from url. Values that do not
// start with the base URL, custom links and unknown platforms are returned as-is.
func ExtractUsername(platform, url string) string {
	p, ok := byName[platform]
	if !ok || platform == CustomLink || p.BaseURL == "" {
		return url
	}
	if rest, found := strings.CutPrefix(url, p.BaseURL); found {
		return rest
	}
	return url
}
