// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package stringcache

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestInternDeduplicates(t *testing.T) {
	c := New()
	defer c.Release()

	buf := []rune("div span div")
	first := c.Intern(buf, 0, 3)
	second := c.Intern(buf, 9, 3)
	assert.Equal(t, "div", first)
	assert.Equal(t, "div", second)
	// identical content at or under the threshold shares backing storage
	assert.Same(t, unsafe.StringData(first), unsafe.StringData(second))
}

func TestInternLongStringsBypass(t *testing.T) {
	c := New()
	defer c.Release()

	long := strings.Repeat("a", MaxEntryLen+1)
	buf := []rune(long + long)
	first := c.Intern(buf, 0, MaxEntryLen+1)
	second := c.Intern(buf, MaxEntryLen+1, MaxEntryLen+1)
	assert.Equal(t, long, first)
	assert.Equal(t, long, second)
	assert.NotSame(t, unsafe.StringData(first), unsafe.StringData(second))
}

func TestInternEmpty(t *testing.T) {
	c := New()
	defer c.Release()

	buf := []rune("abc")
	assert.Equal(t, "", c.Intern(buf, 1, 0))
}

func TestInternCollisionStaysCorrect(t *testing.T) {
	c := New()
	defer c.Release()

	// hammer the table with distinct strings; whatever the bucket layout,
	// returned values must always equal the scanned range
	var sb strings.Builder
	for r := 'a'; r <= 'z'; r++ {
		for s := 'a'; s <= 'z'; s++ {
			sb.WriteRune(r)
			sb.WriteRune(s)
		}
	}
	buf := []rune(sb.String())
	for i := 0; i+2 <= len(buf); i += 2 {
		assert.Equal(t, string(buf[i:i+2]), c.Intern(buf, i, 2))
	}
}

func TestRangeEquals(t *testing.T) {
	buf := []rune("Check\tCheck\tCheck\tCHOKE")
	assert.True(t, rangeEquals(buf, 0, 5, "Check"))
	assert.True(t, rangeEquals(buf, 6, 5, "Check"))
	assert.True(t, rangeEquals(buf, 12, 5, "Check"))
	assert.False(t, rangeEquals(buf, 18, 5, "Check"))
	assert.False(t, rangeEquals(buf, 0, 4, "Check"))
	assert.False(t, rangeEquals(buf, 0, 5, "Chec"))
}

func BenchmarkIntern(b *testing.B) {
	c := New()
	defer c.Release()
	buf := []rune("title body title body")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Intern(buf, 0, 5)
		c.Intern(buf, 6, 4)
	}
}
