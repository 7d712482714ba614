// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recfmt

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// srecAddrLen returns the address field width in bytes for an
// S-record type digit, or 0 for an unsupported type.
func srecAddrLen(typ byte) int {
	switch typ {
	case '0', '1', '9':
		return 2
	case '2', '8':
		return 3
	case '3', '7':
		return 4
	}
	return 0
}

// ParseSRec reads a Motorola S-record stream and assembles its data
// records into segments. S1/S2/S3 records carry data, S7/S8/S9 the
// execution address and S0 the header payload. The first malformed
// record aborts the parse.
func ParseSRec(r io.Reader, o *Options) (*ParseResult, error) {
	c := newCoalescer(o)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if len(text) < 5 {
			continue
		}
		if text[0] != 'S' {
			return nil, &MalformedRecordError{SRec, line, text, "missing 'S' record mark"}
		}
		typ := text[1]
		addrLen := srecAddrLen(typ)
		if addrLen == 0 {
			reason := fmt.Sprintf("unsupported record type: %q", text[:2])
			return nil, &MalformedRecordError{SRec, line, text, reason}
		}
		raw, err := hex.DecodeString(text[2:])
		if err != nil {
			return nil, &MalformedRecordError{SRec, line, text, "invalid hex digits"}
		}
		if len(raw) < addrLen+2 {
			return nil, &MalformedRecordError{SRec, line, text, "record too short"}
		}
		if int(raw[0]) != len(raw)-1 {
			reason := fmt.Sprintf("expected %d bytes, got %d", raw[0], len(raw)-1)
			return nil, &MalformedRecordError{SRec, line, text, reason}
		}
		if c.verify {
			var sum byte
			for _, b := range raw[:len(raw)-1] {
				sum += b
			}
			if want := sum ^ 0xFF; raw[len(raw)-1] != want {
				return nil, &ChecksumError{SRec, line, text, raw[len(raw)-1], want}
			}
		}
		var addr uint32
		for _, b := range raw[1 : 1+addrLen] {
			addr = addr<<8 | uint32(b)
		}
		data := raw[1+addrLen : len(raw)-1]
		switch typ {
		case '1', '2', '3':
			if err := c.checkAddr(SRec, line, text, addr); err != nil {
				return nil, err
			}
			c.data(addr, data)
		case '7', '8', '9':
			if err := c.checkAddr(SRec, line, text, addr); err != nil {
				return nil, err
			}
			if err := c.execute(addr); err != nil {
				return nil, err
			}
		case '0':
			c.infoData(data)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return c.result(), nil
}

// BuildSRec serializes segments to w as S-records: an S0 header when
// an info payload is given, 16-byte data records with the narrowest
// address field that fits the segment end address (S1/S2/S3), and the
// narrowest execution address record (S9/S8/S7) when an execution
// address is given. There is no separate end-of-file record. A
// segment shifted past the 32-bit address space is a BuildError.
func BuildSRec(w io.Writer, segs Segments, execAddr *uint32, info []byte, o *BuildOptions) error {
	e := newEmitter(w, o)
	off := buildOffset(o)
	if len(info) != 0 {
		msg := info
		if len(msg) > 16 {
			msg = msg[:16]
		}
		e.line(srecLine('0', 2, 0, msg))
	}
	for _, s := range segs {
		end := uint64(off) + uint64(s.Addr) + uint64(len(s.Data))
		if end > 1<<32 {
			reason := fmt.Sprintf("address 0x%X exceeds the 32-bit range", end-1)
			return &BuildError{SRec, reason}
		}
		addr := off + s.Addr
		var typ byte
		var addrLen int
		switch {
		case end < 1<<16:
			typ, addrLen = '1', 2
		case end < 1<<24:
			typ, addrLen = '2', 3
		default:
			typ, addrLen = '3', 4
		}
		for pos := 0; pos < len(s.Data); pos += 16 {
			chunk := s.Data[pos:min(pos+16, len(s.Data))]
			e.line(srecLine(typ, addrLen, addr, chunk))
			addr += uint32(len(chunk))
		}
	}
	if execAddr != nil {
		switch a := *execAddr; {
		case a < 1<<16:
			e.line(srecLine('9', 2, a, nil))
		case a < 1<<24:
			e.line(srecLine('8', 3, a, nil))
		default:
			e.line(srecLine('7', 4, a, nil))
		}
	}
	return e.flush()
}

func srecLine(typ byte, addrLen int, addr uint32, data []byte) string {
	rec := make([]byte, 0, 2+addrLen+len(data))
	rec = append(rec, byte(addrLen+len(data)+1))
	for i := addrLen - 1; i >= 0; i-- {
		rec = append(rec, byte(addr>>(8*i)))
	}
	rec = append(rec, data...)
	var sum byte
	for _, b := range rec {
		sum += b
	}
	rec = append(rec, sum^0xFF)
	return "S" + string(typ) + strings.ToUpper(hex.EncodeToString(rec))
}
