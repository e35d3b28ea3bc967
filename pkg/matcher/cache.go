// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import "sync"

type (
	cachedFilter struct {
		Filter

		mux   sync.RWMutex
		cache map[string]bool
	}
)

// WithCache adds a MatchString result cache to the filter.
// Columns tend to repeat a small set of values, so rule predicates hit the cache often.
func WithCache(f Filter) Filter {
	switch f.(type) {
	case *cachedFilter, stringFullMatcher, stringFoldMatcher:
		return f
	default:
		return &cachedFilter{Filter: f, cache: make(map[string]bool)}
	}
}

func (m *cachedFilter) Match(b []byte) bool {
	return m.MatchString(string(b))
}

func (m *cachedFilter) MatchString(s string) bool {
	if result, ok := m.fetch(s); ok {
		return result
	}
	result := m.Filter.MatchString(s)
	m.put(s, result)
	return result
}

func (m *cachedFilter) fetch(key string) (result bool, ok bool) {
	m.mux.RLock()
	result, ok = m.cache[key]
	m.mux.RUnlock()
	return
}

func (m *cachedFilter) put(key string, result bool) {
	m.mux.Lock()
	m.cache[key] = result
	m.mux.Unlock()
}
