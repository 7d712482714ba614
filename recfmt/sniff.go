// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recfmt

import (
	"bufio"
	"io"
	"strings"
)

// Sniff inspects the first non-blank line of r and reports a best
// guess of the record format. The guess is advisory only; format
// selection stays with the caller.
func Sniff(r io.Reader) Format {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		switch {
		case text[0] == ':' && len(text) >= 11 && len(text)%2 == 1 &&
			hexDigits(text[1:]):
			return IHex
		case text[0] == 'S' && len(text) > 1 &&
			'0' <= text[1] && text[1] <= '9':
			return SRec
		case text[0] == '@' && hexDigits(text[1:]):
			return TITxt
		case text == "q":
			return TITxt
		default:
			joined := strings.Join(strings.Fields(text), "")
			if len(joined)%2 == 0 && hexDigits(joined) {
				return TITxt
			}
		}
		return Unknown
	}
	return Unknown
}

func hexDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if '0' <= c && c <= '9' || 'A' <= c && c <= 'F' || 'a' <= c && c <= 'f' {
			continue
		}
		return false
	}
	return true
}
