// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charreader

import (
	"fmt"
	"sort"
)

// lineTracker indexes the global offsets at which lines start, so that
// line/column lookups are a binary search. It only ever holds offsets for the
// resident window plus one carry-over entry; lines the window has shifted
// past are folded into lineOffset, keeping memory bounded however long the
// stream runs.
type lineTracker struct {
	starts     []int // global offsets of line starts after the first; strictly increasing
	lineOffset int   // 1-based count of lines rolled off ahead of starts[0]
}

func newLineTracker(capacity int) *lineTracker {
	return &lineTracker{
		starts:     make([]int, 0, max(capacity/80, 8)), // rough guess of likely line count
		lineOffset: 1,
	}
}

// search returns the index of the last tracked line start at or before pos,
// or -1 when pos is on the first tracked line.
func (t *lineTracker) search(pos int) int {
	return sort.SearchInts(t.starts, pos+1) - 1
}

// compact folds lines that ended before windowStart into lineOffset, keeping
// at most the one entry still needed as the current line's start. Callers
// re-scan the resident window afterwards.
func (t *lineTracker) compact(windowStart int) {
	if len(t.starts) == 0 {
		return
	}
	i := t.search(windowStart)
	if i < 0 {
		// every tracked start is inside the window and will be re-scanned
		t.starts = t.starts[:0]
		return
	}
	carry := t.starts[i]
	t.lineOffset += i
	t.starts = append(t.starts[:0], carry)
}

// add records a line starting at global offset pos. Offsets already tracked
// (the carry-over, or re-scanned window content) are dropped to keep the
// sequence strictly increasing.
func (t *lineTracker) add(pos int) {
	if n := len(t.starts); n > 0 && pos <= t.starts[n-1] {
		return
	}
	t.starts = append(t.starts, pos)
}

func (t *lineTracker) lineNumber(pos int) int {
	i := t.search(pos)
	if i == -1 {
		return t.lineOffset
	}
	return i + t.lineOffset + 1
}

func (t *lineTracker) columnNumber(pos int) int {
	i := t.search(pos)
	if i == -1 {
		return pos + 1
	}
	return pos - t.starts[i] + 1
}

// TrackNewlines enables or disables line number tracking. Off by default;
// enable it before reading any content or earlier newlines go uncounted.
// Enabling scans the already-resident window immediately; subsequent scans
// happen during refills.
func (r *Reader) TrackNewlines(track bool) {
	r.mustBeOpen()
	if track && r.lines == nil {
		r.lines = newLineTracker(len(r.buf))
		r.scanBufferForNewlines()
	} else if !track {
		r.lines = nil
	}
}

// IsTrackingNewlines reports whether line number tracking is enabled.
func (r *Reader) IsTrackingNewlines() bool {
	return r.lines != nil
}

// LineNumber returns the 1-based line the reader has consumed to, or 1 when
// tracking is disabled.
func (r *Reader) LineNumber() int {
	return r.LineNumberAt(r.Pos())
}

// LineNumberAt returns the 1-based line containing the global position pos.
// Only positions within the tracked range (the resident window and the line
// the window starts in) are meaningful.
func (r *Reader) LineNumberAt(pos int) int {
	if r.lines == nil {
		return 1
	}
	return r.lines.lineNumber(pos)
}

// ColumnNumber returns the 1-based column the reader has consumed to. When
// tracking is disabled it is pos+1, as if the input were one long line.
func (r *Reader) ColumnNumber() int {
	return r.ColumnNumberAt(r.Pos())
}

// ColumnNumberAt returns the 1-based column of the global position pos.
func (r *Reader) ColumnNumberAt(pos int) int {
	if r.lines == nil {
		return pos + 1
	}
	return r.lines.columnNumber(pos)
}

// PosLineCol formats the current line and column as "line:col", e.g. "5:10".
func (r *Reader) PosLineCol() string {
	return fmt.Sprintf("%d:%d", r.LineNumber(), r.ColumnNumber())
}

// scanBufferForNewlines records line starts in the resident window. Called
// when tracking is first enabled and at the end of every refill; on refill
// the tracker is compacted first so memory stays proportional to the window.
func (r *Reader) scanBufferForNewlines() {
	if r.lines == nil {
		return
	}
	r.lines.compact(r.consumed)
	for i := r.bufPos; i < r.bufLen; i++ {
		if r.buf[i] == '\n' {
			r.lines.add(1 + r.consumed + i)
		}
	}
}
