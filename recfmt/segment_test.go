// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recfmt

import (
	"bytes"
	"testing"
)

func TestSegmentWrite(t *testing.T) {
	s := &Segment{Addr: 0x100}
	s.Write(0x100, []byte{1, 2, 3, 4})
	if s.Size() != 4 || s.End() != 0x104 {
		t.Fatalf("after contiguous write: size %d, end %#x", s.Size(), s.End())
	}
	s.Write(0x104, []byte{5, 6})
	if !bytes.Equal(s.Data, []byte{1, 2, 3, 4, 5, 6}) {
		t.Fatalf("append: %v", s.Data)
	}
	// forward jump fills the hole with zeros
	s.Write(0x108, []byte{9})
	if !bytes.Equal(s.Data, []byte{1, 2, 3, 4, 5, 6, 0, 0, 9}) {
		t.Fatalf("gap fill: %v", s.Data)
	}
	// backward jump overwrites in place
	s.Write(0x101, []byte{0xAA, 0xBB})
	if !bytes.Equal(s.Data, []byte{1, 0xAA, 0xBB, 4, 5, 6, 0, 0, 9}) {
		t.Fatalf("overwrite: %v", s.Data)
	}
	// backward jump running past the end extends the segment
	s.Write(0x108, []byte{7, 8})
	if !bytes.Equal(s.Data, []byte{1, 0xAA, 0xBB, 4, 5, 6, 0, 0, 7, 8}) {
		t.Fatalf("overwrite+extend: %v", s.Data)
	}
}

func TestSegmentsSortAndStats(t *testing.T) {
	ss := Segments{
		{Addr: 0x2000, Data: make([]byte, 8)},
		{Addr: 0x1000, Data: make([]byte, 16)},
	}
	ss.SortByAddr()
	if ss[0].Addr != 0x1000 || ss[1].Addr != 0x2000 {
		t.Fatalf("sort: %v %v", ss[0], ss[1])
	}
	if ss.MinAddr() != 0x1000 {
		t.Fatalf("min: %#x", ss.MinAddr())
	}
	if ss.MaxEnd() != 0x2008 {
		t.Fatalf("max end: %#x", ss.MaxEnd())
	}
	if ss.Span() != 0x1008 {
		t.Fatalf("span: %#x", ss.Span())
	}
	if ss.TotalBytes() != 24 {
		t.Fatalf("total: %d", ss.TotalBytes())
	}
	if (Segments{}).Span() != 0 {
		t.Fatal("span of empty list")
	}
}
