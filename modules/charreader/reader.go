// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package charreader provides the buffered character input that feeds a
// streaming markup tokenizer: single-character consumption, bounded
// multi-character lookahead, a single bounded mark/rewind, and optional
// line/column tracking.
//
// A Reader is single-threaded and non-reentrant; concurrent use from multiple
// goroutines is a caller bug and is not defended against. Misusing the API
// (double mark, rewind without a mark, use after Close) panics: those are
// faults in the state machine driving the reader, not runtime conditions.
package charreader

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"code.gitea.io/charstream/modules/optional"
	"code.gitea.io/charstream/modules/stringcache"
)

// EOF is returned by Current and Consume once the stream is exhausted.
const EOF rune = -1

const (
	// DefaultBufferSize is the window capacity used by NewReader. Window
	// storage of this size is recycled through a process-wide pool.
	DefaultBufferSize = 2048

	// MinBufferSize is the smallest window NewReaderSize accepts. The window
	// must exceed the largest atomic lookahead the grammar needs.
	MinBufferSize = 16
)

// ErrSourceRead wraps any I/O fault reported by a Source during refill. Use
// errors.Is to distinguish it. The fault is sticky: characters already
// buffered stay readable, but the reader never retries the source.
var ErrSourceRead = errors.New("source read fault")

// bufPool recycles default-size windows between readers.
var bufPool = sync.Pool{
	New: func() any {
		buf := make([]rune, DefaultBufferSize)
		return &buf
	},
}

// Reader consumes characters off a Source through a fixed-capacity window.
type Reader struct {
	source    Source
	buf       []rune
	bufPos    int // index of the next unread character
	bufLen    int // characters resident in buf, <= len(buf)
	fillPoint int // refill once bufPos passes this; len(buf)/2 after a fill
	consumed  int // characters shifted out of the window so far
	mark      optional.Option[int]
	readFully bool // source reported EOF; permanent
	err       error
	closed    bool

	cache *stringcache.Cache
	lines *lineTracker // nil unless TrackNewlines(true)

	// single-entry cache for ContainsIgnoreCase; dropped on every refill
	lastIcSeq   string
	lastIcIndex int
	lastIcValid bool
}

// NewReader returns a Reader over src with the default window capacity.
func NewReader(src Source) *Reader {
	r := &Reader{
		source: src,
		buf:    *bufPool.Get().(*[]rune),
		cache:  stringcache.New(),
	}
	r.bufferUp()
	return r
}

// NewReaderSize returns a Reader with a custom window capacity. Capacity is a
// tuning knob, not a correctness one; it panics below MinBufferSize.
func NewReaderSize(src Source, capacity int) *Reader {
	if capacity < MinBufferSize {
		panic(fmt.Sprintf("charreader: buffer capacity %d below minimum %d", capacity, MinBufferSize))
	}
	r := &Reader{
		source: src,
		buf:    make([]rune, capacity),
		cache:  stringcache.New(),
	}
	r.bufferUp()
	return r
}

// FromString returns a Reader over an in-memory string.
func FromString(s string) *Reader {
	return NewReader(StringSource(s))
}

// FromReader returns a Reader decoding rd as a UTF-8 byte stream.
func FromReader(rd io.Reader) *Reader {
	return NewReader(ReaderSource(rd))
}

// Close releases the window and intern table back to their pools and closes
// the Source if it is an io.Closer. Any use of the Reader afterwards panics.
func (r *Reader) Close() {
	if r.closed {
		return
	}
	r.closed = true
	if c, ok := r.source.(io.Closer); ok {
		_ = c.Close()
	}
	r.source = nil
	if len(r.buf) == DefaultBufferSize {
		clear(r.buf) // not required, but keeps stale content out of the next borrower's debug view
		buf := r.buf
		bufPool.Put(&buf)
	}
	r.buf = nil
	r.bufPos, r.bufLen = 0, 0
	r.cache.Release()
	r.cache = nil
	r.lines = nil
}

func (r *Reader) mustBeOpen() {
	if r.closed {
		panic("charreader: use after Close")
	}
}

// bufferUp refills the window when due: not yet past the fill point, an
// outstanding mark, a fully read source, or a recorded source fault all
// suppress it.
func (r *Reader) bufferUp() {
	r.mustBeOpen()
	if r.readFully || r.err != nil || r.bufPos < r.fillPoint || r.mark.Has() {
		return
	}
	r.doBufferUp()
}

func (r *Reader) doBufferUp() {
	// shift the unconsumed remainder to the window start, discarding what the
	// cursor has passed, then pull from the source until full or exhausted
	r.consumed += r.bufPos
	r.bufLen -= r.bufPos
	if r.bufLen > 0 {
		copy(r.buf, r.buf[r.bufPos:r.bufPos+r.bufLen])
	}
	r.bufPos = 0

	for r.bufLen < len(r.buf) {
		n, err := r.source.ReadRunes(r.buf[r.bufLen:])
		r.bufLen += n
		if err == io.EOF {
			r.readFully = true
			break
		}
		if err != nil {
			r.err = fmt.Errorf("%w: %w", ErrSourceRead, err)
			break
		}
		if n == 0 {
			break
		}
	}
	r.fillPoint = min(r.bufLen, len(r.buf)/2)

	r.scanBufferForNewlines()
	r.lastIcValid = false
}

// Pos returns the current global stream position, starting at 0.
func (r *Reader) Pos() int {
	return r.consumed + r.bufPos
}

// Err returns the source fault recorded during a refill, or nil. Characters
// buffered before the fault remain readable; once IsEmpty reports true the
// caller should check Err to tell exhaustion from failure.
func (r *Reader) Err() error {
	return r.err
}

// IsEmpty reports whether all buffered and bufferable content has been
// consumed. While a mark is outstanding it reports on the resident window
// only, since refills are suppressed.
func (r *Reader) IsEmpty() bool {
	r.bufferUp()
	return r.bufPos >= r.bufLen
}

func (r *Reader) isEmptyNoBufferUp() bool {
	return r.bufPos >= r.bufLen
}

// Current returns the character at the read cursor without advancing, or EOF.
func (r *Reader) Current() rune {
	r.bufferUp()
	if r.isEmptyNoBufferUp() {
		return EOF
	}
	return r.buf[r.bufPos]
}

// Consume returns the character at the read cursor and advances past it.
// At end of stream it returns EOF without moving; calling it repeatedly
// there is legal.
func (r *Reader) Consume() rune {
	r.bufferUp()
	if r.isEmptyNoBufferUp() {
		return EOF
	}
	c := r.buf[r.bufPos]
	r.bufPos++
	return c
}

// Advance moves the cursor forward one position without reading, for callers
// that already inspected the character via Current. At end of resident
// content it is a no-op.
func (r *Reader) Advance() {
	r.mustBeOpen()
	if r.bufPos < r.bufLen {
		r.bufPos++
	}
}

// Unconsume moves the cursor back one position. It must only be called
// directly after a Consume or Advance, with no intervening refill; a refill
// may have shifted the window, so violating that is a programming error and
// panics.
func (r *Reader) Unconsume() {
	r.mustBeOpen()
	if r.bufPos < 1 {
		panic("charreader: no buffered character to unconsume")
	}
	r.bufPos--
}

// Mark records the current cursor position for a later RewindToMark. At most
// one mark may be outstanding; marking again without Unmark or RewindToMark
// panics. While marked, refills are suppressed, so at least rewindLimit
// characters of lookahead are guaranteed before marking.
func (r *Reader) Mark() {
	r.mustBeOpen()
	if r.mark.Has() {
		panic("charreader: mark already outstanding")
	}
	// make sure there is enough lookahead capacity
	if r.bufLen-r.bufPos < r.rewindLimit() {
		r.fillPoint = 0
	}
	r.bufferUp()
	r.mark = optional.Some(r.bufPos)
}

// Unmark clears the outstanding mark without moving the cursor.
func (r *Reader) Unmark() {
	r.mark = optional.None[int]()
}

// RewindToMark restores the cursor to the marked position and clears the
// mark. Panics when no mark is outstanding.
func (r *Reader) RewindToMark() {
	r.mustBeOpen()
	if !r.mark.Has() {
		panic("charreader: rewind without mark")
	}
	r.bufPos = r.mark.Value()
	r.Unmark()
}

// rewindLimit is the lookback capacity Mark guarantees: half the window,
// 1024 characters at the default capacity. No markup backtrack sequence (the
// longest being an ambiguous character reference) comes near it.
func (r *Reader) rewindLimit() int {
	return len(r.buf) / 2
}

// String returns the unconsumed resident window, for debugging.
func (r *Reader) String() string {
	if r.bufLen-r.bufPos < 0 {
		return ""
	}
	return string(r.buf[r.bufPos:r.bufLen])
}
