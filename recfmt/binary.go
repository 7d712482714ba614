// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recfmt

import (
	"fmt"
	"io"
)

// Flatten writes the segments to w as a raw binary image. Addresses
// are taken relative to the lowest base address and the gaps between
// segments are filled with the pad byte. If maxSize > 0, a segment
// that starts or ends outside the first maxSize bytes of the image is
// an error. The segments are sorted by base address first; an overlap
// is an error.
func (ss Segments) Flatten(w io.Writer, pad byte, maxSize int) (n int, err error) {
	if len(ss) == 0 {
		return
	}
	ss.SortByAddr()
	base := ss[0].Addr
	pa := base
	var prev *Segment
	var padCache []byte
	for _, s := range ss {
		if prev != nil && s.Addr < prev.End() {
			return n, &SegmentOverlapError{prev, s}
		}
		if maxSize > 0 {
			off := int64(s.Addr) - int64(base)
			if off >= int64(maxSize) || off+int64(len(s.Data)) > int64(maxSize) {
				reason := fmt.Sprintf(
					"segment [0x%08X..0x%08X) outside the %d byte image",
					s.Addr, s.End(), maxSize,
				)
				return n, &BuildError{Unknown, reason}
			}
		}
		if m := int(s.Addr - pa); m > 0 {
			k, werr := w.Write(padBytes(&padCache, m, pad))
			n += k
			if werr != nil {
				return n, werr
			}
		}
		k, werr := w.Write(s.Data)
		n += k
		if werr != nil {
			return n, werr
		}
		pa = s.End()
		prev = s
	}
	return n, nil
}

// padBytes returns a slice of m bytes equal to b.
func padBytes(cache *[]byte, m int, b byte) []byte {
	if len(*cache) < m {
		*cache = make([]byte, m)
		for i := range *cache {
			(*cache)[i] = b
		}
	}
	return (*cache)[:m]
}
