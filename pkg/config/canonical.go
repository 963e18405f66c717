package config

import (
	"slices"
	"sort"
	"strings"
)

// CanonicalUsername maps a person's display name to the stable username used
// for dedup across episodes. The alias table is scanned in sorted key order
// so the lookup is deterministic when a name appears under several keys.
// Unknown names fall back to a lowercased, hyphenated slug.
func (c *Config) CanonicalUsername(name string) string {
	keys := make([]string, 0, len(c.UsernamesMap))
	for key := range c.UsernamesMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if slices.Contains(c.UsernamesMap[key], name) {
			return key
		}
	}

	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
