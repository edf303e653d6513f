package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

var blockedSchemes = map[string]bool{
	"javascript": true,
	"data":       true,
	"file":       true,
}

// IsBlockedScheme reports schemes that must never be opened from outside input.
func IsBlockedScheme(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return blockedSchemes[strings.ToLower(u.Scheme)]
}

// LooksLikeURL is true for input with an http(s)/about scheme or a bare host
// such as "mozilla.org" or "localhost:8080/path".
func LooksLikeURL(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" || strings.ContainsAny(input, " \t\n") {
		return false
	}
	if u, err := url.Parse(input); err == nil && u.Scheme != "" && u.Opaque == "" && u.Host != "" {
		return true
	}
	if strings.HasPrefix(strings.ToLower(input), "about:") {
		return true
	}
	host := input
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if h, _, found := strings.Cut(host, ":"); found {
		host = h
	}
	return host == "localhost" || (strings.Contains(host, ".") && !strings.HasPrefix(host, ".") && !strings.HasSuffix(host, "."))
}

// Normalize turns user input into something loadable: URLs gain a scheme when
// missing, anything else becomes a search using template (which contains %s).
func Normalize(input, template string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if LooksLikeURL(input) {
		if u, err := url.Parse(input); err == nil && u.Scheme != "" && u.Host != "" {
			return input
		}
		if strings.HasPrefix(strings.ToLower(input), "about:") {
			return input
		}
		return "http://" + input
	}
	return fmt.Sprintf(template, url.QueryEscape(input))
}

// StripCommonPrefixes drops scheme and "www." so autocomplete and tile titles
// match what people type.
func StripCommonPrefixes(raw string) string {
	s := strings.TrimSpace(raw)
	for _, p := range []string{"https://", "http://"} {
		if len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
			s = s[len(p):]
			break
		}
	}
	if len(s) >= 4 && strings.EqualFold(s[:4], "www.") {
		s = s[4:]
	}
	return strings.TrimSuffix(s, "/")
}
