// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recfmt

import (
	"fmt"
	"io"
)

// Format identifies one of the supported record file encodings.
type Format int

const (
	Unknown Format = iota
	IHex           // Intel HEX
	SRec           // Motorola S-record
	TITxt          // TI-txt
)

func (f Format) String() string {
	switch f {
	case IHex:
		return "ihex"
	case SRec:
		return "srec"
	case TITxt:
		return "titxt"
	}
	return "unknown"
}

// ParseFormat returns the format named by s: "ihex", "srec" or
// "titxt".
func ParseFormat(s string) (Format, error) {
	for _, f := range []Format{IHex, SRec, TITxt} {
		if s == f.String() {
			return f, nil
		}
	}
	return Unknown, fmt.Errorf("unknown record format: %q", s)
}

// Parse reads a record stream in this format and assembles it into
// segments.
func (f Format) Parse(r io.Reader, o *Options) (*ParseResult, error) {
	switch f {
	case IHex:
		return ParseIHex(r, o)
	case SRec:
		return ParseSRec(r, o)
	case TITxt:
		return ParseTITxt(r, o)
	}
	return nil, fmt.Errorf("cannot parse format: %v", f)
}

// Build serializes segments to w in this format.
func (f Format) Build(w io.Writer, segs Segments, execAddr *uint32, info []byte, o *BuildOptions) error {
	switch f {
	case IHex:
		return BuildIHex(w, segs, execAddr, info, o)
	case SRec:
		return BuildSRec(w, segs, execAddr, info, o)
	case TITxt:
		return BuildTITxt(w, segs, execAddr, info, o)
	}
	return fmt.Errorf("cannot build format: %v", f)
}

// DefaultSegmentGap is the address discontinuity that makes a parser
// close the open segment and start a new one.
const DefaultSegmentGap = 16

// Options control how a record stream is parsed. The zero value
// selects the full 32-bit address window, checksum verification and
// the default segment gap.
type Options struct {
	Offset     uint32 // subtracted from every data record address
	MinAddr    uint32 // lowest acceptable address
	MaxAddr    uint32 // highest acceptable address, 0 means 0xFFFFFFFF
	SegmentGap uint32 // 0 means DefaultSegmentGap
	NoVerify   bool   // skip checksum verification
}

// ParseResult is what a parser extracts from a record stream.
type ParseResult struct {
	Segments Segments
	ExecAddr *uint32 // execution (entry point) address, nil if absent
	Info     []byte  // header/info record payload, nil if absent
}

// coalescer folds the data records of one parse into segments. It
// keeps at most one segment open: a data write farther than the
// segment gap from the open segment's end, or below its base address,
// closes it and opens a new one at the write address.
type coalescer struct {
	offset   uint32
	min, max uint32
	gap      uint32
	verify   bool

	segs Segments
	seg  *Segment // open segment, nil if none
	exec *uint32
	info []byte
}

func newCoalescer(o *Options) *coalescer {
	c := &coalescer{verify: true}
	if o != nil {
		c.offset = o.Offset
		c.min = o.MinAddr
		c.max = o.MaxAddr
		c.gap = o.SegmentGap
		c.verify = !o.NoVerify
	}
	if c.max == 0 {
		c.max = 0xFFFFFFFF
	}
	if c.gap == 0 {
		c.gap = DefaultSegmentGap
	}
	return c
}

// checkAddr validates a decoded record address against the configured
// window and the global offset.
func (c *coalescer) checkAddr(f Format, line int, text string, addr uint32) error {
	if addr < c.min || addr > c.max {
		return &AddrRangeError{f, line, text, addr, c.min, c.max}
	}
	if addr < c.offset {
		return &AddrRangeError{f, line, text, addr, c.offset, c.max}
	}
	return nil
}

func (c *coalescer) data(addr uint32, p []byte) {
	addr -= c.offset
	if c.seg != nil {
		gap := int64(addr) - int64(c.seg.End())
		if gap < 0 {
			gap = -gap
		}
		if gap >= int64(c.gap) || addr < c.seg.Addr {
			c.close()
		}
	}
	if c.seg == nil {
		c.seg = &Segment{Addr: addr}
	}
	c.seg.Write(addr, p)
}

func (c *coalescer) execute(addr uint32) error {
	if c.exec != nil && *c.exec != addr {
		return &ExecAddrConflictError{*c.exec, addr}
	}
	c.exec = &addr
	return nil
}

func (c *coalescer) infoData(p []byte) {
	c.info = append(c.info, p...)
}

func (c *coalescer) close() {
	if c.seg != nil && len(c.seg.Data) != 0 {
		c.segs = append(c.segs, c.seg)
	}
	c.seg = nil
}

func (c *coalescer) result() *ParseResult {
	c.close()
	return &ParseResult{Segments: c.segs, ExecAddr: c.exec, Info: c.info}
}
