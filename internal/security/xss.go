// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package security

import (
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// XSSSanitizer strips HTML markup from user input. Every tag is removed,
// the content of script and style elements is dropped, and angle brackets
// left in the text are HTML-escaped. It is safe for concurrent use.
type XSSSanitizer struct {
	policy *bluemonday.Policy
}

// The HTML tokenizer behind bluemonday decodes entities found in text
// before re-escaping it. escapeAmpersand protects entities already present
// in the input so unescapeSafe restores only the ones bluemonday emits for
// characters that cannot open markup on their own.
var (
	escapeAmpersand = strings.NewReplacer("&", "&amp;")
	unescapeSafe    = strings.NewReplacer("&#39;", "'", "&#34;", `"`, "&amp;", "&")
)

func NewXSSSanitizer() *XSSSanitizer {
	return &XSSSanitizer{policy: bluemonday.StrictPolicy()}
}

// SanitizeString returns s without markup.
func (s *XSSSanitizer) SanitizeString(str string) string {
	return unescapeSafe.Replace(s.policy.Sanitize(escapeAmpersand.Replace(str)))
}

// Sanitize cleans every string in v, descending into nested maps and
// slices. Maps and slices are modified in place; the (possibly new) value is
// returned. Map keys are left untouched.
func (s *XSSSanitizer) Sanitize(v any) any {
	switch value := v.(type) {
	case string:
		return s.SanitizeString(value)
	case map[string]any:
		for key, nested := range value {
			value[key] = s.Sanitize(nested)
		}
		return value
	case []any:
		for i, nested := range value {
			value[i] = s.Sanitize(nested)
		}
		return value
	case url.Values:
		return s.SanitizeValues(value)
	default:
		return v
	}
}

// SanitizeValues cleans every value of q in place and returns q.
func (s *XSSSanitizer) SanitizeValues(q url.Values) url.Values {
	for _, values := range q {
		for i, v := range values {
			values[i] = s.SanitizeString(v)
		}
	}
	return q
}
