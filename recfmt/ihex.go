// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recfmt

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Intel HEX record types.
const (
	ihexData    = 0 // data record
	ihexEOF     = 1 // end of file
	ihexExtSeg  = 2 // extended segment address
	ihexStart   = 3 // start segment address (CS:IP)
	ihexExtLin  = 4 // extended linear address
	ihexStartLA = 5 // start linear address
)

// ihexState dispatches decoded Intel HEX records into the coalescer,
// tracking the extended address offset that records of type 2 and 4
// impose on subsequent data records.
type ihexState struct {
	c       *coalescer
	extAddr uint32
}

// apply processes one decoded record (byte count, address, type, data
// and checksum, the ':' mark already stripped). It reports true for
// the EOF record, after which the caller must stop scanning.
func (st *ihexState) apply(line int, text string, raw []byte) (done bool, err error) {
	c := st.c
	if len(raw) < 5 {
		return false, &MalformedRecordError{IHex, line, text, "record too short"}
	}
	count := int(raw[0])
	addr := uint32(raw[1])<<8 | uint32(raw[2])
	typ := raw[3]
	data := raw[4 : len(raw)-1]
	if count != len(data) {
		reason := fmt.Sprintf("expected %d data bytes, got %d", count, len(data))
		return false, &MalformedRecordError{IHex, line, text, reason}
	}
	if c.verify {
		var sum byte
		for _, b := range raw[:len(raw)-1] {
			sum += b
		}
		if want := -sum; raw[len(raw)-1] != want {
			return false, &ChecksumError{IHex, line, text, raw[len(raw)-1], want}
		}
	}
	switch typ {
	case ihexData:
		abs := addr + st.extAddr
		if err := c.checkAddr(IHex, line, text, abs); err != nil {
			return false, err
		}
		c.data(abs, data)
	case ihexEOF:
		// A non-zero address here is tolerated, everything after the
		// EOF record is ignored.
		return true, nil
	case ihexExtSeg:
		if count != 2 {
			return false, &MalformedRecordError{IHex, line, text, "invalid extended segment address record"}
		}
		v := uint32(data[0])<<8 | uint32(data[1])
		st.extAddr = st.extAddr&^0xFFFFF | v<<4
	case ihexExtLin:
		if count != 2 {
			return false, &MalformedRecordError{IHex, line, text, "invalid extended linear address record"}
		}
		st.extAddr = (uint32(data[0])<<8 | uint32(data[1])) << 16
	case ihexStart:
		if count != 4 {
			return false, &MalformedRecordError{IHex, line, text, "invalid start segment address record"}
		}
		cs := uint32(data[0])<<8 | uint32(data[1])
		ip := uint32(data[2])<<8 | uint32(data[3])
		exec := cs<<4 + ip
		if err := c.checkAddr(IHex, line, text, exec); err != nil {
			return false, err
		}
		if err := c.execute(exec); err != nil {
			return false, err
		}
	case ihexStartLA:
		if count != 4 {
			return false, &MalformedRecordError{IHex, line, text, "invalid start linear address record"}
		}
		exec := uint32(data[0])<<24 | uint32(data[1])<<16 |
			uint32(data[2])<<8 | uint32(data[3])
		if err := c.checkAddr(IHex, line, text, exec); err != nil {
			return false, err
		}
		if err := c.execute(exec); err != nil {
			return false, err
		}
	default:
		reason := fmt.Sprintf("unsupported record type: %d", typ)
		return false, &MalformedRecordError{IHex, line, text, reason}
	}
	return false, nil
}

// ParseIHex reads an Intel HEX stream and assembles its data records
// into segments. The first malformed record aborts the parse.
func ParseIHex(r io.Reader, o *Options) (*ParseResult, error) {
	st := &ihexState{c: newCoalescer(o)}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if len(text) < 5 {
			continue
		}
		if text[0] != ':' {
			return nil, &MalformedRecordError{IHex, line, text, "missing ':' record mark"}
		}
		raw, err := hex.DecodeString(text[1:])
		if err != nil {
			return nil, &MalformedRecordError{IHex, line, text, "invalid hex digits"}
		}
		done, err := st.apply(line, text, raw)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return st.c.result(), nil
}

var ihexLineRE = regexp.MustCompile(`(?im)^:((?:[0-9A-F][0-9A-F]){5,})\r?$`)

// ParseIHexFast is a faster ParseIHex that matches all records out of
// the buffered input in one pass instead of scanning line by line.
// For well-formed input the result is identical to ParseIHex.
func ParseIHexFast(r io.Reader, o *Options) (*ParseResult, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	st := &ihexState{c: newCoalescer(o)}
	for i, m := range ihexLineRE.FindAllSubmatch(buf, -1) {
		text := ":" + string(m[1])
		raw := make([]byte, len(m[1])/2)
		if _, err := hex.Decode(raw, m[1]); err != nil {
			return nil, &MalformedRecordError{IHex, i + 1, text, "invalid hex digits"}
		}
		done, err := st.apply(i+1, text, raw)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	return st.c.result(), nil
}

// BuildIHex serializes segments to w as Intel HEX records: an
// extended linear address record whenever the upper 16 address bits
// change, 16-byte data records, an optional start address record and
// the EOF record. The info payload has no Intel HEX equivalent and is
// ignored. A segment shifted past the 32-bit address space is a
// BuildError.
func BuildIHex(w io.Writer, segs Segments, execAddr *uint32, info []byte, o *BuildOptions) error {
	_ = info
	e := newEmitter(w, o)
	off := buildOffset(o)
	for _, s := range segs {
		if end := uint64(off) + uint64(s.Addr) + uint64(len(s.Data)); end > 1<<32 {
			reason := fmt.Sprintf("address 0x%X exceeds the 32-bit range", end-1)
			return &BuildError{IHex, reason}
		}
		addr := off + s.Addr
		first := true
		var high uint16
		for pos := 0; pos < len(s.Data); pos += 16 {
			chunk := s.Data[pos:min(pos+16, len(s.Data))]
			if h := uint16(addr >> 16); first || h != high {
				e.line(ihexLine(ihexExtLin, 0, []byte{byte(h >> 8), byte(h)}))
				high, first = h, false
			}
			e.line(ihexLine(ihexData, uint16(addr), chunk))
			addr += uint32(len(chunk))
		}
	}
	if execAddr != nil {
		a := *execAddr
		if a < 1<<20 {
			cs := a >> 4
			ip := a & 0xF
			e.line(ihexLine(ihexStart, 0, []byte{
				byte(cs >> 8), byte(cs), byte(ip >> 8), byte(ip),
			}))
		} else {
			e.line(ihexLine(ihexStartLA, 0, []byte{
				byte(a >> 24), byte(a >> 16), byte(a >> 8), byte(a),
			}))
		}
	}
	e.line(ihexLine(ihexEOF, 0, nil))
	return e.flush()
}

func ihexLine(typ byte, addr uint16, data []byte) string {
	rec := make([]byte, 0, 5+len(data))
	rec = append(rec, byte(len(data)), byte(addr>>8), byte(addr), typ)
	rec = append(rec, data...)
	var sum byte
	for _, b := range rec {
		sum += b
	}
	rec = append(rec, -sum)
	return ":" + strings.ToUpper(hex.EncodeToString(rec))
}
