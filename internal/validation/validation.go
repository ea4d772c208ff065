package validation

import (
	"net/url"
	"regexp"
	"strings"
)

// SlugPattern defines the valid card slug format: lowercase alphanumeric, hyphens, underscores.
var SlugPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// MaxSlugLength bounds slug length.
const MaxSlugLength = 64

// ReservedSlugs cannot be claimed by a card.
var ReservedSlugs = map[string]bool{
	"admin":   true,
	"api":     true,
	"auth":    true,
	"c":       true,
	"console": true,
	"static":  true,
	"metrics": true,
	"login":   true,
}

// NormalizeSlug trims and lowercases a slug.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// ValidateSlug checks if a normalized slug matches the allowed pattern and is not reserved.
func ValidateSlug(slug string) bool {
	if slug == "" || len(slug) > MaxSlugLength {
		return false
	}
	return SlugPattern.MatchString(slug) && !ReservedSlugs[slug]
}

// UsernamePattern matches handles usable in a platform URL path.
var UsernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// HexColorPattern matches #RGB and #RRGGBB colors.
var HexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
