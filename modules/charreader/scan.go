// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charreader

import (
	"unicode"
	"unicode/utf8"
)

// NotFound is returned by the NextIndexOf functions when the target does not
// occur in the resident window.
const NotFound = -1

// NextIndexOfRune returns the offset from the cursor to the next occurrence
// of c within the resident window, or NotFound. The search is bounded by the
// window, not the whole stream.
func (r *Reader) NextIndexOfRune(c rune) int {
	r.bufferUp()
	for i := r.bufPos; i < r.bufLen; i++ {
		if r.buf[i] == c {
			return i - r.bufPos
		}
	}
	return NotFound
}

// NextIndexOf returns the offset from the cursor to the next occurrence of
// seq within the resident window, or NotFound. An empty seq matches at the
// cursor.
func (r *Reader) NextIndexOf(seq string) int {
	r.bufferUp()
	runes := []rune(seq)
	if len(runes) == 0 {
		return 0
	}
	first := runes[0]
	for offset := r.bufPos; offset+len(runes) <= r.bufLen; offset++ {
		if r.buf[offset] != first {
			continue
		}
		found := true
		for j := 1; j < len(runes); j++ {
			if r.buf[offset+j] != runes[j] {
				found = false
				break
			}
		}
		if found {
			return offset - r.bufPos
		}
	}
	return NotFound
}

// ConsumeToRune consumes and returns the characters up to (not including) the
// next occurrence of c, or the remainder of the resident window when c is
// absent from it.
func (r *Reader) ConsumeToRune(c rune) string {
	offset := r.NextIndexOfRune(c)
	if offset != NotFound {
		consumed := r.cache.Intern(r.buf, r.bufPos, offset)
		r.bufPos += offset
		return consumed
	}
	return r.ConsumeToEnd()
}

// ConsumeTo consumes and returns the characters up to (not including) the
// next occurrence of the case-sensitive seq. When seq is not resident, the
// last len(seq)-1 characters are left unread in case they begin an occurrence
// straddling the next refill, so this call may simply be repeated; when the
// source is exhausted and the remainder is shorter than seq, the full
// remainder is returned instead.
func (r *Reader) ConsumeTo(seq string) string {
	offset := r.NextIndexOf(seq)
	if offset != NotFound {
		consumed := r.cache.Intern(r.buf, r.bufPos, offset)
		r.bufPos += offset
		return consumed
	}
	seqLen := utf8.RuneCountInString(seq)
	if r.bufLen-r.bufPos < seqLen {
		// NextIndexOf did a bufferUp, so a window shorter than seq means EOF
		return r.ConsumeToEnd()
	}
	endPos := r.bufLen - seqLen + 1
	consumed := r.cache.Intern(r.buf, r.bufPos, endPos-r.bufPos)
	r.bufPos = endPos
	return consumed
}

// ConsumeMatching consumes the longest resident run of characters satisfying
// pred, capped at maxLength characters (-1 for no cap). Returns "" when the
// first character already fails pred.
func (r *Reader) ConsumeMatching(pred func(rune) bool, maxLength int) string {
	r.bufferUp()
	pos := r.bufPos
	start := pos
	remaining := r.bufLen
	buf := r.buf

	for pos < remaining && (maxLength == -1 || pos-start < maxLength) && pred(buf[pos]) {
		pos++
	}

	r.bufPos = pos
	if pos > start {
		return r.cache.Intern(r.buf, start, pos-start)
	}
	return ""
}

// ConsumeToAny consumes until the first occurrence of any of chars.
func (r *Reader) ConsumeToAny(chars ...rune) string {
	return r.ConsumeMatching(func(c rune) bool {
		for _, seek := range chars {
			if c == seek {
				return false
			}
		}
		return true
	}, -1)
}

// ConsumeData consumes text content: stops at '&', '<' or NUL.
func (r *Reader) ConsumeData() string {
	return r.ConsumeMatching(func(c rune) bool {
		return c != '&' && c != '<' && c != 0
	}, -1)
}

// ConsumeRawData consumes raw-text content (script, style): stops at '<' or
// NUL only.
func (r *Reader) ConsumeRawData() string {
	return r.ConsumeMatching(func(c rune) bool {
		return c != '<' && c != 0
	}, -1)
}

// ConsumeTagName consumes a tag name: stops at '\t', '\n', '\r', '\f', ' ',
// '/' or '>'.
func (r *Reader) ConsumeTagName() string {
	return r.ConsumeMatching(func(c rune) bool {
		switch c {
		case '\t', '\n', '\r', '\f', ' ', '/', '>':
			return false
		}
		return true
	}, -1)
}

// ConsumeAttributeQuoted consumes a quoted attribute value: stops at NUL,
// '&', and the active quote character (single or double).
func (r *Reader) ConsumeAttributeQuoted(single bool) string {
	return r.ConsumeMatching(func(c rune) bool {
		if c == 0 || c == '&' {
			return false
		}
		if single {
			return c != '\''
		}
		return c != '"'
	}, -1)
}

// ConsumeToEnd consumes and returns the remainder of the resident window.
func (r *Reader) ConsumeToEnd() string {
	r.bufferUp()
	consumed := r.cache.Intern(r.buf, r.bufPos, r.bufLen-r.bufPos)
	r.bufPos = r.bufLen
	return consumed
}

// ConsumeLetterSequence consumes a run of Unicode letters.
func (r *Reader) ConsumeLetterSequence() string {
	return r.ConsumeMatching(unicode.IsLetter, -1)
}

// ConsumeLetterThenDigitSequence consumes a run of ASCII letters followed by
// a run of ASCII digits.
func (r *Reader) ConsumeLetterThenDigitSequence() string {
	r.bufferUp()
	start := r.bufPos
	for r.bufPos < r.bufLen && isASCIILetter(r.buf[r.bufPos]) {
		r.bufPos++
	}
	for r.bufPos < r.bufLen && isDigit(r.buf[r.bufPos]) {
		r.bufPos++
	}
	return r.cache.Intern(r.buf, start, r.bufPos-start)
}

// ConsumeHexSequence consumes a run of hex digits.
func (r *Reader) ConsumeHexSequence() string {
	return r.ConsumeMatching(isHexDigit, -1)
}

// ConsumeDigitSequence consumes a run of ASCII digits.
func (r *Reader) ConsumeDigitSequence() string {
	return r.ConsumeMatching(isDigit, -1)
}

// MatchesRune reports whether the character at the cursor is c.
func (r *Reader) MatchesRune(c rune) bool {
	return !r.IsEmpty() && r.buf[r.bufPos] == c
}

// Matches reports whether the resident window starts with seq at the cursor.
// A seq longer than the resident remainder reports false rather than forcing
// a refill; probe sequences must be short relative to the window capacity.
func (r *Reader) Matches(seq string) bool {
	r.bufferUp()
	i := r.bufPos
	for _, c := range seq {
		if i >= r.bufLen || r.buf[i] != c {
			return false
		}
		i++
	}
	return true
}

// MatchesIgnoreCase is Matches without case sensitivity.
func (r *Reader) MatchesIgnoreCase(seq string) bool {
	r.bufferUp()
	i := r.bufPos
	for _, c := range seq {
		if i >= r.bufLen {
			return false
		}
		target := r.buf[i]
		if c != target && unicode.ToUpper(c) != unicode.ToUpper(target) {
			return false
		}
		i++
	}
	return true
}

// MatchesAny reports whether the character at the cursor is any of chars.
func (r *Reader) MatchesAny(chars ...rune) bool {
	if r.IsEmpty() {
		return false
	}
	c := r.buf[r.bufPos]
	for _, seek := range chars {
		if seek == c {
			return true
		}
	}
	return false
}

// MatchesAsciiAlpha reports whether the character at the cursor is an ASCII
// letter, per https://infra.spec.whatwg.org/#ascii-alpha
func (r *Reader) MatchesAsciiAlpha() bool {
	return !r.IsEmpty() && isASCIILetter(r.buf[r.bufPos])
}

// MatchesDigit reports whether the character at the cursor is an ASCII digit.
func (r *Reader) MatchesDigit() bool {
	return !r.IsEmpty() && isDigit(r.buf[r.bufPos])
}

// MatchConsume consumes seq if the window starts with it, reporting whether
// it did.
func (r *Reader) MatchConsume(seq string) bool {
	r.bufferUp()
	if !r.Matches(seq) {
		return false
	}
	r.bufPos += utf8.RuneCountInString(seq)
	return true
}

// MatchConsumeIgnoreCase is MatchConsume without case sensitivity.
func (r *Reader) MatchConsumeIgnoreCase(seq string) bool {
	if !r.MatchesIgnoreCase(seq) {
		return false
	}
	r.bufPos += utf8.RuneCountInString(seq)
	return true
}

// ContainsIgnoreCase reports whether seq occurs anywhere in the resident
// window, ignoring case. Used to check for the presence of a closing
// </title> or </style> while scanning RCDATA.
//
// The previous query and its hit are cached, so bashing on a long run of
// open tags ahead of one closing tag does not rescan quadratically. The cache
// holds while the cursor has not advanced past the hit and every refill drops
// it; it is a performance aid only, never load-bearing.
func (r *Reader) ContainsIgnoreCase(seq string) bool {
	if r.lastIcValid && seq == r.lastIcSeq {
		if r.lastIcIndex == NotFound {
			return false
		}
		if r.lastIcIndex >= r.bufPos {
			return true
		}
	}
	r.bufferUp()
	r.lastIcSeq = seq
	r.lastIcValid = true

	folded := []rune(seq)
	for i := range folded {
		folded[i] = unicode.ToUpper(folded[i])
	}
	for offset := r.bufPos; offset+len(folded) <= r.bufLen; offset++ {
		found := true
		for j := range folded {
			if c := r.buf[offset+j]; c != folded[j] && unicode.ToUpper(c) != folded[j] {
				found = false
				break
			}
		}
		if found {
			r.lastIcIndex = offset
			return true
		}
	}
	r.lastIcIndex = NotFound
	return false
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
