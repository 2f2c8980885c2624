// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charreader

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIndexOfRune(t *testing.T) {
	r := FromString("blah blah")
	defer r.Close()
	assert.Equal(t, 0, r.NextIndexOfRune('b'))
	assert.Equal(t, 4, r.NextIndexOfRune(' '))
	assert.Equal(t, NotFound, r.NextIndexOfRune('z'))

	r.Consume()
	assert.Equal(t, 4, r.NextIndexOfRune('b'))
}

func TestNextIndexOfSequence(t *testing.T) {
	r := FromString("One Two something Two Three")
	defer r.Close()
	assert.Equal(t, 4, r.NextIndexOf("Two"))
	assert.Equal(t, NotFound, r.NextIndexOf("Four"))
	assert.Equal(t, 0, r.NextIndexOf(""))
}

func TestConsumeToRune(t *testing.T) {
	r := FromString("One Two Three")
	defer r.Close()
	assert.Equal(t, "One ", r.ConsumeToRune('T'))
	assert.Equal(t, 'T', r.Consume())
	assert.Equal(t, "wo ", r.ConsumeToRune('T'))
	// not resident: the full remainder comes back
	assert.Equal(t, "Three", r.ConsumeToRune('z'))
	assert.True(t, r.IsEmpty())
}

func TestConsumeToSequence(t *testing.T) {
	r := FromString("One Two Two Four")
	defer r.Close()
	assert.Equal(t, "One ", r.ConsumeTo("Two"))
	assert.True(t, r.MatchConsume("Two"))

	// absent sequence: all but len-1 characters come back, then the tail
	assert.Equal(t, " Two Fo", r.ConsumeTo("Qux"))
	assert.Equal(t, "ur", r.ConsumeTo("Qux"))
	assert.True(t, r.IsEmpty())
}

func TestConsumeToSequenceAcrossRefill(t *testing.T) {
	input := strings.Repeat("a", 15) + "XY" + "bbb"
	r := NewReaderSize(StringSource(input), 16)
	defer r.Close()

	// the delimiter straddles the first window edge: the reserve keeps its
	// possible start unread, and a repeated call finds it after the refill
	assert.Equal(t, strings.Repeat("a", 15), r.ConsumeTo("XY"))
	assert.Equal(t, "", r.ConsumeTo("XY"))
	assert.True(t, r.MatchConsume("XY"))
	assert.Equal(t, "bbb", r.ConsumeToEnd())
	assert.True(t, r.IsEmpty())
}

func TestConsumeToFullStream(t *testing.T) {
	input := strings.Repeat("0123456789abcdefghij", 1)
	r := NewReaderSize(StringSource(input), 16)
	defer r.Close()

	var sb strings.Builder
	for !r.IsEmpty() {
		sb.WriteString(r.ConsumeTo("zz"))
	}
	assert.Equal(t, input, sb.String())
}

func TestConsumeMatching(t *testing.T) {
	r := FromString("abcdefg hij")
	defer r.Close()
	assert.Equal(t, "abcd", r.ConsumeMatching(unicode.IsLetter, 4))
	assert.Equal(t, "efg", r.ConsumeMatching(unicode.IsLetter, -1))
	assert.Equal(t, "", r.ConsumeMatching(unicode.IsLetter, -1))
	assert.Equal(t, ' ', r.Consume())
}

func TestConsumeToAny(t *testing.T) {
	r := FromString("One &bar; qux")
	defer r.Close()
	assert.Equal(t, "One ", r.ConsumeToAny('&', ';'))
	assert.True(t, r.MatchesRune('&'))
	assert.Equal(t, '&', r.Consume())
	assert.Equal(t, "bar", r.ConsumeToAny('&', ';'))
	assert.Equal(t, ';', r.Consume())
	assert.Equal(t, " qux", r.ConsumeToAny('&', ';'))
	assert.True(t, r.IsEmpty())
}

func TestConsumeData(t *testing.T) {
	r := FromString("data &amp; <p>")
	defer r.Close()
	assert.Equal(t, "data ", r.ConsumeData())
	assert.Equal(t, '&', r.Current())
}

func TestConsumeRawData(t *testing.T) {
	r := FromString("raw &data</script>")
	defer r.Close()
	assert.Equal(t, "raw &data", r.ConsumeRawData())
	assert.Equal(t, '<', r.Current())
}

func TestConsumeTagName(t *testing.T) {
	r := FromString("div>rest")
	defer r.Close()
	assert.Equal(t, "div", r.ConsumeTagName())
	assert.Equal(t, '>', r.Current())

	r2 := FromString("img/>")
	defer r2.Close()
	assert.Equal(t, "img", r2.ConsumeTagName())

	r3 := FromString("a b")
	defer r3.Close()
	assert.Equal(t, "a", r3.ConsumeTagName())
}

func TestConsumeAttributeQuoted(t *testing.T) {
	single := FromString("value' rest")
	defer single.Close()
	assert.Equal(t, "value", single.ConsumeAttributeQuoted(true))
	assert.Equal(t, '\'', single.Current())

	double := FromString(`value" rest`)
	defer double.Close()
	assert.Equal(t, "value", double.ConsumeAttributeQuoted(false))
	assert.Equal(t, '"', double.Current())

	amp := FromString("va&lue")
	defer amp.Close()
	assert.Equal(t, "va", amp.ConsumeAttributeQuoted(false))
}

func TestConsumeLetterSequence(t *testing.T) {
	r := FromString("Hello5 World")
	defer r.Close()
	assert.Equal(t, "Hello", r.ConsumeLetterSequence())

	r2 := FromString("嗚ab1")
	defer r2.Close()
	assert.Equal(t, "嗚ab", r2.ConsumeLetterSequence())
}

func TestConsumeLetterThenDigitSequence(t *testing.T) {
	r := FromString("html5 spec")
	defer r.Close()
	assert.Equal(t, "html5", r.ConsumeLetterThenDigitSequence())
	assert.Equal(t, ' ', r.Current())

	r2 := FromString("123abc")
	defer r2.Close()
	assert.Equal(t, "123", r2.ConsumeLetterThenDigitSequence())
}

func TestConsumeHexSequence(t *testing.T) {
	r := FromString("03F2h")
	defer r.Close()
	assert.Equal(t, "03F2", r.ConsumeHexSequence())
	assert.Equal(t, 'h', r.Current())
}

func TestConsumeDigitSequence(t *testing.T) {
	r := FromString("12345 six")
	defer r.Close()
	assert.Equal(t, "12345", r.ConsumeDigitSequence())
	assert.Equal(t, ' ', r.Current())
}

func TestMatches(t *testing.T) {
	r := FromString("One Two Three")
	defer r.Close()
	assert.True(t, r.MatchesRune('O'))
	assert.False(t, r.MatchesRune('o'))
	assert.True(t, r.Matches("One"))
	assert.True(t, r.Matches("One Two Three"))
	assert.False(t, r.Matches("One Two Three Four"))
	assert.False(t, r.Matches("one"))
	r.Consume()
	assert.True(t, r.Matches("ne Two"))
}

func TestMatchesIgnoreCase(t *testing.T) {
	r := FromString("One Two Three")
	defer r.Close()
	assert.True(t, r.MatchesIgnoreCase("one"))
	assert.True(t, r.MatchesIgnoreCase("ONE tWO"))
	assert.False(t, r.MatchesIgnoreCase("two"))
	assert.False(t, r.MatchesIgnoreCase("one two three four"))
}

func TestMatchesAny(t *testing.T) {
	r := FromString("One")
	defer r.Close()
	assert.True(t, r.MatchesAny('x', 'O', 'z'))
	assert.False(t, r.MatchesAny('x', 'y', 'z'))

	empty := FromString("")
	defer empty.Close()
	assert.False(t, empty.MatchesAny('x'))
}

func TestMatchesAsciiAlphaAndDigit(t *testing.T) {
	r := FromString("a1")
	defer r.Close()
	assert.True(t, r.MatchesAsciiAlpha())
	assert.False(t, r.MatchesDigit())
	r.Consume()
	assert.False(t, r.MatchesAsciiAlpha())
	assert.True(t, r.MatchesDigit())
}

func TestMatchConsume(t *testing.T) {
	r := FromString("One Two")
	defer r.Close()
	assert.False(t, r.MatchConsume("Two"))
	assert.Equal(t, 0, r.Pos())
	assert.True(t, r.MatchConsume("One "))
	assert.Equal(t, 4, r.Pos())
	assert.True(t, r.MatchConsumeIgnoreCase("tWo"))
	assert.True(t, r.IsEmpty())
}

func TestMatchConsumeMultibyte(t *testing.T) {
	r := FromString("日本語x")
	defer r.Close()
	require.True(t, r.MatchConsume("日本"))
	assert.Equal(t, 2, r.Pos())
	assert.Equal(t, '語', r.Current())
}

func TestMatchesThenMatchConsumeAdvances(t *testing.T) {
	r := FromString("<title>Check</title>")
	defer r.Close()
	for _, seq := range []string{"<", "title", ">Check"} {
		require.True(t, r.Matches(seq))
		before := r.Pos()
		require.True(t, r.MatchConsume(seq))
		assert.Equal(t, before+len([]rune(seq)), r.Pos())
	}
}

func TestContainsIgnoreCase(t *testing.T) {
	r := FromString("<p><P>One</TiTle> Two")
	defer r.Close()
	assert.True(t, r.ContainsIgnoreCase("</title>"))
	assert.True(t, r.ContainsIgnoreCase("</title>")) // cached path
	assert.False(t, r.ContainsIgnoreCase("</style>"))

	// once the cursor passes the only occurrence, it is no longer contained
	r.ConsumeTo("</TiTle>")
	require.True(t, r.MatchConsume("</TiTle>"))
	assert.False(t, r.ContainsIgnoreCase("</title>"))
}

func TestContainsIgnoreCaseCaseVariants(t *testing.T) {
	for _, variant := range []string{"</title>", "</TITLE>", "</TiTle>", "</tItLE>"} {
		r := FromString("<p>text" + variant + "more")
		assert.True(t, r.ContainsIgnoreCase("</Title>"), variant)
		r.Close()
	}
}

func TestConsumeToVsConsumeMatchingEquivalence(t *testing.T) {
	input := "alpha,beta gamma,delta"
	a := FromString(input)
	b := FromString(input)
	defer a.Close()
	defer b.Close()

	for !a.IsEmpty() {
		assert.Equal(t, a.ConsumeToRune(','), b.ConsumeMatching(func(c rune) bool { return c != ',' }, -1))
		assert.Equal(t, a.Consume(), b.Consume())
		assert.Equal(t, a.Pos(), b.Pos())
	}
	assert.True(t, b.IsEmpty())
}

func TestMatchesBoundedByWindow(t *testing.T) {
	probe := strings.Repeat("a", 20)
	r := NewReaderSize(StringSource(probe+probe), 16)
	defer r.Close()
	// longer than the resident window: false rather than a forced refill
	assert.False(t, r.Matches(probe))
	assert.False(t, r.MatchesIgnoreCase(probe))
	assert.True(t, r.Matches(probe[:16]))
}
