// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package charset detects the encoding of byte content and converts it to
// UTF-8, producing the character streams the reader consumes.
package charset

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"code.gitea.io/charstream/modules/util"

	"github.com/gogs/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// UTF8BOM is the utf-8 byte-order marker
var UTF8BOM = []byte{'\xef', '\xbb', '\xbf'}

// sniffLen is how much content DetectEncoding examines at most.
const sniffLen = 1024

// ToUTF8Reader detects the encoding of rd's content and returns a reader
// yielding it as UTF-8. Content that is already UTF-8, or whose encoding
// cannot be determined, passes through unchanged (less any BOM).
func ToUTF8Reader(rd io.Reader) io.Reader {
	buf := make([]byte, 2048)
	n, err := util.ReadAtMost(rd, buf)
	if err != nil {
		return io.MultiReader(bytes.NewReader(RemoveBOM(buf[:n])), rd)
	}

	charsetLabel, err := DetectEncoding(buf[:n])
	if err != nil || charsetLabel == "UTF-8" {
		return io.MultiReader(bytes.NewReader(RemoveBOM(buf[:n])), rd)
	}

	encoding, _ := charset.Lookup(charsetLabel)
	if encoding == nil {
		return io.MultiReader(bytes.NewReader(buf[:n]), rd)
	}

	return transform.NewReader(
		io.MultiReader(bytes.NewReader(RemoveBOM(buf[:n])), rd),
		encoding.NewDecoder(),
	)
}

// ToUTF8 converts content to UTF-8, returning an error if the encoding could
// not be determined or the conversion was lossy.
func ToUTF8(content []byte) (string, error) {
	charsetLabel, err := DetectEncoding(content)
	if err != nil {
		return "", err
	} else if charsetLabel == "UTF-8" {
		return string(RemoveBOM(content)), nil
	}

	encoding, _ := charset.Lookup(charsetLabel)
	if encoding == nil {
		return string(content), fmt.Errorf("unknown encoding: %s", charsetLabel)
	}

	// If there is an error, we concatenate the nicely decoded part and the
	// original left over. This way we won't lose much data.
	result, n, err := transform.Bytes(encoding.NewDecoder(), content)
	if err != nil {
		result = append(result, content[n:]...)
	}

	return string(RemoveBOM(result)), err
}

// RemoveBOM removes a leading UTF-8 BOM from content.
func RemoveBOM(content []byte) []byte {
	if len(content) > 2 && bytes.Equal(content[0:3], UTF8BOM) {
		return content[3:]
	}
	return content
}

// DetectEncoding returns the IANA label of content's detected encoding.
func DetectEncoding(content []byte) (string, error) {
	// First check if the content is valid utf8 excepting a truncated character
	// at the end. Walking back over at most three trailing continuation bytes
	// is cheaper than decoding every rune.
	toValidate := content
	end := len(toValidate) - 1

	if end < 0 {
		// no-op
	} else if toValidate[end]>>5 == 0b110 {
		// incomplete 1 byte extension e.g. Â© <c2><a9> truncated to <c2>
		toValidate = toValidate[:end]
	} else if end > 0 && toValidate[end]>>6 == 0b10 && toValidate[end-1]>>4 == 0b1110 {
		// incomplete 2 byte extension e.g. â›” <e2><9b><94> truncated to <e2><9b>
		toValidate = toValidate[:end-1]
	} else if end > 1 && toValidate[end]>>6 == 0b10 && toValidate[end-1]>>6 == 0b10 && toValidate[end-2]>>3 == 0b11110 {
		// incomplete 3 byte extension e.g. ðŸ’© <f0><9f><92><a9> truncated to <f0><9f><92>
		toValidate = toValidate[:end-2]
	}
	if utf8.Valid(toValidate) {
		return "UTF-8", nil
	}

	textDetector := chardet.NewTextDetector()
	var detectContent []byte
	if len(content) < sniffLen {
		// the detector is unreliable on tiny inputs; repeating the content
		// gives it more statistics to work with
		if _, err := textDetector.DetectBest(content); err != nil {
			return "", err
		}
		times := sniffLen / len(content)
		detectContent = make([]byte, 0, times*len(content))
		for i := 0; i < times; i++ {
			detectContent = append(detectContent, content...)
		}
	} else {
		detectContent = content
	}

	result, err := textDetector.DetectBest(detectContent)
	if err != nil {
		return "", err
	}
	return result.Charset, nil
}
