// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recfmt

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseTITxt reads a TI-txt stream and assembles it into segments.
// An @ line sets the current address, a line of hex byte pairs
// appends at the current address and advances it, a lone q ends the
// stream. TI-txt carries no checksums and no execution address.
func ParseTITxt(r io.Reader, o *Options) (*ParseResult, error) {
	c := newCoalescer(o)
	sc := bufio.NewScanner(r)
	line := 0
	var addr uint32
	addrSet := false
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if text[0] == '@' {
			v, err := strconv.ParseUint(text[1:], 16, 32)
			if err != nil {
				return nil, &MalformedRecordError{TITxt, line, text, "invalid address"}
			}
			addr = uint32(v)
			addrSet = true
			continue
		}
		if text == "q" {
			break
		}
		data, err := hex.DecodeString(strings.Join(strings.Fields(text), ""))
		if err != nil {
			return nil, &MalformedRecordError{TITxt, line, text, "invalid hex digits"}
		}
		if !addrSet {
			return nil, &MalformedRecordError{TITxt, line, text, "data before @ address marker"}
		}
		if err := c.checkAddr(TITxt, line, text, addr); err != nil {
			return nil, err
		}
		c.data(addr, data)
		addr += uint32(len(data))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return c.result(), nil
}

// BuildTITxt serializes segments to w in the TI-txt format: an @
// address line per segment, lines of 16 space-separated hex byte
// pairs and the final q marker. The format encodes 16-bit addresses
// only; a segment beyond that range is a BuildError. Execution
// address and info payload are not representable and are ignored.
func BuildTITxt(w io.Writer, segs Segments, execAddr *uint32, info []byte, o *BuildOptions) error {
	_, _ = execAddr, info
	e := newEmitter(w, o)
	off := buildOffset(o)
	for _, s := range segs {
		if len(s.Data) == 0 {
			continue
		}
		addr := uint64(off) + uint64(s.Addr)
		if end := addr + uint64(len(s.Data)); end > 1<<16 {
			reason := fmt.Sprintf("address 0x%X exceeds the 16-bit TI-txt range", end-1)
			return &BuildError{TITxt, reason}
		}
		e.line(fmt.Sprintf("@%04X", addr))
		for pos := 0; pos < len(s.Data); pos += 16 {
			chunk := s.Data[pos:min(pos+16, len(s.Data))]
			var b strings.Builder
			for i, v := range chunk {
				if i > 0 {
					b.WriteByte(' ')
				}
				fmt.Fprintf(&b, "%02X", v)
			}
			e.line(b.String())
		}
	}
	e.line("q")
	return e.flush()
}
