// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-shaped URL query parameters.
package query

import "strings"

/*
IDs splits a comma-separated list of identifiers such as
"exclude=a1,B2, a1".

Entries are trimmed and lowercased so UUIDs compare equal regardless of the
client's casing. Blanks and repeats are dropped and first appearance wins.

Returns ok=false, and no ids, when the list holds more than limit distinct
entries; callers reject the request instead of dropping entries silently.
*/
func IDs(raw string, limit int) (ids []string, ok bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}

	seen := make(map[string]struct{})
	for part := range strings.SplitSeq(raw, ",") {
		id := strings.ToLower(strings.TrimSpace(part))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		if len(ids) == limit {
			return nil, false
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, true
}
