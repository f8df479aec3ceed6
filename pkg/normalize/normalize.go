// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package normalize canonicalises user-entered photo tags.
//
// # Usage
//
// Tags are free text ("part": "Ｏｐｅｎｉｎｇ", "character": "  Rei   Ayanami ").
// Two tags that read the same must compare equal, so both keys and values pass
// through [Key] and [Value] before they are stored or used as a filter.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// whitespace matches any run of Unicode spaces.
	whitespace = regexp.MustCompile(`\s+`)
	// invalidKey matches characters not allowed in tag keys.
	invalidKey = regexp.MustCompile(`[^a-z0-9_]+`)
)

// Value folds width and compatibility forms (NFKC), drops control characters
// and collapses whitespace. Case is preserved.
func Value(s string) string {
	t := transform.Chain(norm.NFKC, transform.RemoveFunc(unicode.IsControl))
	result, _, _ := transform.String(t, s)

	result = whitespace.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// Key normalises a tag key to lowercase ASCII snake_case.
//
// # Transformation Pipeline
//
// 1. NFKC fold, as in [Value].
// 2. NFD decomposition and removal of combining marks (é → e).
// 3. Lowercase; any other character run becomes "_".
func Key(s string) string {
	// 1. Fold and strip accents
	t := transform.Chain(norm.NFKC, norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, s)

	// 2. Lowercase and sanitise
	result = strings.ToLower(strings.TrimSpace(result))
	result = invalidKey.ReplaceAllString(result, "_")

	return strings.Trim(result, "_")
}

// Tags applies [Key] and [Value] to every entry, dropping entries whose key or
// value is empty after normalisation. Later duplicates win.
func Tags(tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags))
	for key, value := range tags {
		k, v := Key(key), Value(value)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
