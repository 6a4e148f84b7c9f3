// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package security

import (
	"net/url"
	"strings"
)

// IsOperatorKey reports whether key could be interpreted as a query
// operator by a document database: it starts with "$", contains ".", or is
// a bracketed query key such as "price[$gt]".
func IsOperatorKey(key string) bool {
	return strings.HasPrefix(key, "$") ||
		strings.Contains(key, ".") ||
		strings.Contains(key, "[$")
}

// StripOperatorKeys removes every operator key from v, descending into
// nested maps and slices. Maps are modified in place; the (possibly same)
// value is returned.
func StripOperatorKeys(v any) any {
	switch value := v.(type) {
	case map[string]any:
		for key, nested := range value {
			if IsOperatorKey(key) {
				delete(value, key)
				continue
			}
			value[key] = StripOperatorKeys(nested)
		}
		return value
	case []any:
		for i, nested := range value {
			value[i] = StripOperatorKeys(nested)
		}
		return value
	case url.Values:
		return StripOperatorValues(value)
	default:
		return v
	}
}

// StripOperatorValues removes every operator key from q in place and
// returns q.
func StripOperatorValues(q url.Values) url.Values {
	for key := range q {
		if IsOperatorKey(key) {
			delete(q, key)
		}
	}
	return q
}
