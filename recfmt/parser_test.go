// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recfmt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// 16 data bytes 0x00..0x0F at 0x0000, 0x10..0x1F at 0x0010 and
// 0x10..0x1F at 0x0100.
const (
	ihexData0000 = ":10000000000102030405060708090A0B0C0D0E0F78"
	ihexData0010 = ":10001000101112131415161718191A1B1C1D1E1F68"
	ihexData0100 = ":10010000101112131415161718191A1B1C1D1E1F77"
	ihexEOFLine  = ":00000001FF"
)

func seq(first byte, n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = first + byte(i)
	}
	return p
}

func TestSegmentGapCoalescing(t *testing.T) {
	src := strings.Join([]string{ihexData0000, ihexData0010, ihexEOFLine}, "\n")
	res, err := ParseIHex(strings.NewReader(src), &Options{SegmentGap: 16})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(res.Segments))
	}
	s := res.Segments[0]
	if s.Addr != 0 || !bytes.Equal(s.Data, seq(0, 32)) {
		t.Fatalf("unexpected segment: %v", s)
	}

	src = strings.Join([]string{ihexData0000, ihexData0100, ihexEOFLine}, "\n")
	res, err = ParseIHex(strings.NewReader(src), &Options{SegmentGap: 16})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(res.Segments))
	}
	if res.Segments[0].Addr != 0 || res.Segments[1].Addr != 0x100 {
		t.Fatalf("unexpected segments: %v %v", res.Segments[0], res.Segments[1])
	}
}

func TestParseOffset(t *testing.T) {
	src := ihexData0100 + "\n" + ihexEOFLine
	res, err := ParseIHex(strings.NewReader(src), &Options{Offset: 0x100})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Segments) != 1 || res.Segments[0].Addr != 0 {
		t.Fatalf("offset not applied: %v", res.Segments)
	}
}

func TestParseAddrBelowOffset(t *testing.T) {
	src := ihexData0000 + "\n" + ihexEOFLine
	_, err := ParseIHex(strings.NewReader(src), &Options{Offset: 0x100})
	var rerr *AddrRangeError
	if !errors.As(err, &rerr) {
		t.Fatalf("got %v, want AddrRangeError", err)
	}
	if rerr.Addr != 0 || rerr.Line != 1 {
		t.Fatalf("unexpected error context: %+v", rerr)
	}
}

func TestParseAddrRange(t *testing.T) {
	src := ihexData0100 + "\n" + ihexEOFLine
	_, err := ParseIHex(strings.NewReader(src), &Options{MaxAddr: 0xFF})
	var rerr *AddrRangeError
	if !errors.As(err, &rerr) {
		t.Fatalf("got %v, want AddrRangeError", err)
	}
	if rerr.Addr != 0x100 || rerr.Max != 0xFF {
		t.Fatalf("unexpected error context: %+v", rerr)
	}
}

func TestParseNoVerify(t *testing.T) {
	bad := ihexData0000[:len(ihexData0000)-2] + "00" // wrong checksum
	src := bad + "\n" + ihexEOFLine
	if _, err := ParseIHex(strings.NewReader(src), nil); err == nil {
		t.Fatal("corrupted checksum accepted")
	}
	res, err := ParseIHex(strings.NewReader(src), &Options{NoVerify: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Segments) != 1 || res.Segments[0].Size() != 16 {
		t.Fatalf("unexpected result: %v", res.Segments)
	}
}
