// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charreader

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Source is an incremental provider of decoded characters. ReadRunes reads up
// to len(p) runes into p and returns the number read; io.EOF signals the end
// of data, any other error is a source fault the Reader will not retry.
//
// A Source that also implements io.Closer is closed when the Reader is.
type Source interface {
	ReadRunes(p []rune) (int, error)
}

// StringSource returns a Source feeding runes from an in-memory string.
func StringSource(s string) Source {
	return &stringSource{remainder: s}
}

// ReaderSource returns a Source decoding rd as a UTF-8 byte stream. rd's own
// Close, if any, is forwarded when the Reader is closed.
func ReaderSource(rd io.Reader) Source {
	closer, _ := rd.(io.Closer)
	return &runeSource{rd: bufio.NewReader(rd), closer: closer}
}

// stringSource feeds runes from an in-memory string.
type stringSource struct {
	remainder string
}

func (s *stringSource) ReadRunes(p []rune) (int, error) {
	if len(s.remainder) == 0 {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) && len(s.remainder) > 0 {
		r, size := utf8.DecodeRuneInString(s.remainder)
		p[n] = r
		s.remainder = s.remainder[size:]
		n++
	}
	return n, nil
}

// runeSource feeds runes decoded from an io.RuneReader, typically a
// bufio.Reader over a UTF-8 byte stream.
type runeSource struct {
	rd     io.RuneReader
	closer io.Closer
}

func (s *runeSource) ReadRunes(p []rune) (int, error) {
	n := 0
	for n < len(p) {
		r, _, err := s.rd.ReadRune()
		if err != nil {
			return n, err
		}
		p[n] = r
		n++
	}
	return n, nil
}

func (s *runeSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
