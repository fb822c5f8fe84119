// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug converts between category names and the URL tokens used in
// link paths. The two directions are intentionally separate operations:
// ToSlug is for building outbound links, SearchKey turns an inbound URL
// segment back into a lookup key. They are NOT inverses — names with mixed
// internal casing or pre-existing underscores do not survive a round trip.
// Callers must resolve SearchKey output with a case-insensitive name match,
// never by comparing it to the original name.
package slug

import "strings"

// ToSlug derives the URL token for a category name: lowercased, spaces
// replaced with underscores. Other URL-unsafe characters pass through
// unchanged; feeding them in is the caller's problem, not an error.
func ToSlug(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

// SearchKey reconstructs a display-form lookup key from a URL token:
// underscore-separated segments, first letter of each capitalized, joined
// with single spaces. Letters after the first keep whatever case the token
// had, so "php_tips" becomes "Php Tips", not "PHP Tips". The result is only
// usable as input to a case-insensitive name lookup.
func SearchKey(token string) string {
	parts := strings.Split(token, "_")
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

// capitalize upper-cases the first byte of s if it is an ASCII letter.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
