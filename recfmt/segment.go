// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recfmt parses and generates firmware image files in the
// Intel HEX, Motorola S-record and TI-txt formats. A parser turns a
// record stream into contiguous data segments plus an optional
// execution address; a builder does the reverse. The Image type
// merges independently parsed inputs into one consistent segment set.
package recfmt

import (
	"fmt"
	"sort"
)

// Segment is a contiguous run of bytes at a fixed base address.
type Segment struct {
	Addr uint32 // address of the first byte
	Data []byte
}

// Size returns the number of bytes in the segment.
func (s *Segment) Size() int { return len(s.Data) }

// End returns the address just past the last byte of the segment.
func (s *Segment) End() uint32 { return s.Addr + uint32(len(s.Data)) }

func (s *Segment) String() string {
	return fmt.Sprintf("data segment @ %#08x, %d bytes", s.Addr, len(s.Data))
}

// Write places p at the absolute address addr. A contiguous write
// appends in place, a forward jump fills the hole with zero bytes, a
// backward jump overwrites previously written bytes. Splitting on
// large gaps is the parser's job, not the segment's, so addr must not
// be below the segment base address.
func (s *Segment) Write(addr uint32, p []byte) {
	off := int(addr - s.Addr)
	switch {
	case off == len(s.Data):
		s.Data = append(s.Data, p...)
	case off > len(s.Data):
		s.Data = append(s.Data, make([]byte, off-len(s.Data))...)
		s.Data = append(s.Data, p...)
	default:
		n := copy(s.Data[off:], p)
		s.Data = append(s.Data, p[n:]...)
	}
}

// Segments is a list of data segments, not necessarily sorted or
// disjoint.
type Segments []*Segment

// SortByAddr sorts segments according to the base address.
func (ss Segments) SortByAddr() {
	sort.Slice(
		ss,
		func(i, j int) bool {
			return ss[i].Addr < ss[j].Addr
		},
	)
}

// MinAddr returns the lowest base address in the list.
func (ss Segments) MinAddr() uint32 {
	min := ^uint32(0)
	for _, s := range ss {
		if s.Addr < min {
			min = s.Addr
		}
	}
	return min
}

// MaxEnd returns the highest end address in the list.
func (ss Segments) MaxEnd() uint32 {
	max := uint32(0)
	for _, s := range ss {
		if s.End() > max {
			max = s.End()
		}
	}
	return max
}

// Span returns the distance between the lowest base address and the
// highest end address.
func (ss Segments) Span() uint32 {
	if len(ss) == 0 {
		return 0
	}
	return ss.MaxEnd() - ss.MinAddr()
}

// TotalBytes returns the number of data bytes in all segments.
func (ss Segments) TotalBytes() int {
	n := 0
	for _, s := range ss {
		n += len(s.Data)
	}
	return n
}
