// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package stringcache deduplicates the short strings a scanner produces over
// and over (tag names, attribute names and the like), to lessen garbage. It is
// a flyweight table, not a map: on a hash collision the newer string simply
// replaces the older one, trading some duplicates for zero bookkeeping.
package stringcache

import "sync"

const (
	// MaxEntryLen is the longest string the cache will hold. Longer strings
	// are unlikely to recur and bypass the cache entirely.
	MaxEntryLen = 12

	// TableSize is the number of hash buckets. Must be a power of two.
	TableSize = 512
)

// tablePool recycles bucket tables across documents. Entries are kept on
// release, so a reused table starts warm.
var tablePool = sync.Pool{
	New: func() any {
		t := make([]string, TableSize)
		return &t
	},
}

// Cache is a fixed-size flyweight table for short strings. Not safe for
// concurrent use.
type Cache struct {
	entries []string
}

// New returns a Cache backed by a pooled bucket table. Callers must Release
// it when done.
func New() *Cache {
	return &Cache{entries: *tablePool.Get().(*[]string)}
}

// Intern returns the string value of buf[start : start+count], reusing a
// previously returned string when one with identical content is cached.
// Counts above MaxEntryLen bypass the cache; counts below one return "".
func (c *Cache) Intern(buf []rune, start, count int) string {
	if count > MaxEntryLen {
		return string(buf[start : start+count])
	}
	if count < 1 {
		return ""
	}

	var hash uint32
	for i := start; i < start+count; i++ {
		hash = 31*hash + uint32(buf[i])
	}

	idx := hash & (TableSize - 1)
	if cached := c.entries[idx]; cached != "" && rangeEquals(buf, start, count, cached) {
		return cached
	}

	s := string(buf[start : start+count])
	c.entries[idx] = s // replace on collision; recent strings are the likeliest to recur
	return s
}

// Release returns the bucket table to the pool. The Cache must not be used
// afterwards.
func (c *Cache) Release() {
	entries := c.entries
	c.entries = nil
	tablePool.Put(&entries)
}

// rangeEquals reports whether buf[start : start+count] and cached hold the
// same runes.
func rangeEquals(buf []rune, start, count int, cached string) bool {
	i := start
	for _, r := range cached {
		if count == 0 || buf[i] != r {
			return false
		}
		i++
		count--
	}
	return count == 0
}
