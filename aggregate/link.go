// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import "strings"

// NormalizeLink trims the link and prefixes https:// when it has no scheme.
// An empty link stays empty.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	if strings.Contains(link, "://") {
		return link
	}
	return "https://" + link
}
