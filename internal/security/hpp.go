// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package security

import "net/url"

// HPP collapses repeated query parameters to a single value, the last one
// given. Whitelisted parameters keep every value.
type HPP struct {
	whitelist map[string]struct{}
}

func NewHPP(whitelist []string) *HPP {
	h := &HPP{whitelist: make(map[string]struct{}, len(whitelist))}
	for _, name := range whitelist {
		h.whitelist[name] = struct{}{}
	}
	return h
}

// Apply collapses repeated parameters of q in place. It returns q and the
// original values of every collapsed parameter; polluted is nil when
// nothing was collapsed.
func (h *HPP) Apply(q url.Values) (cleaned url.Values, polluted url.Values) {
	for key, values := range q {
		if len(values) < 2 {
			continue
		}
		if h.Whitelisted(key) {
			continue
		}

		if polluted == nil {
			polluted = url.Values{}
		}
		polluted[key] = values
		q[key] = []string{values[len(values)-1]}
	}

	return q, polluted
}

// Whitelisted reports whether name may carry several values.
func (h *HPP) Whitelisted(name string) bool {
	_, ok := h.whitelist[name]
	return ok
}
