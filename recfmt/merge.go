// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recfmt

import "fmt"

// Image accumulates segments from independently parsed inputs and
// checks them for consistency: segment address ranges must be
// pairwise disjoint and at most one execution address may be defined.
type Image struct {
	segs   Segments
	exec   *uint32
	noExec bool
}

// NewImage returns an empty image.
func NewImage() *Image { return new(Image) }

// DiscardExec makes the image ignore the execution addresses of
// subsequently added inputs.
func (im *Image) DiscardExec() {
	im.noExec = true
	im.exec = nil
}

// Add merges one parse result into the image.
func (im *Image) Add(res *ParseResult) error {
	if err := im.AddSegments(res.Segments); err != nil {
		return err
	}
	if res.ExecAddr != nil {
		return im.SetExec(*res.ExecAddr)
	}
	return nil
}

// AddSegments adds segments to the image, rejecting any that overlaps
// an already accepted one. Empty segments are dropped.
func (im *Image) AddSegments(segs Segments) error {
	for _, s := range segs {
		if len(s.Data) == 0 {
			continue
		}
		for _, t := range im.segs {
			if t.Addr < s.End() && s.Addr < t.End() {
				return &SegmentOverlapError{t, s}
			}
		}
		im.segs = append(im.segs, s)
	}
	return nil
}

// SetExec records the execution address, rejecting a conflicting
// redefinition.
func (im *Image) SetExec(addr uint32) error {
	if im.noExec {
		return nil
	}
	if im.exec != nil && *im.exec != addr {
		return &ExecAddrConflictError{*im.exec, addr}
	}
	im.exec = &addr
	return nil
}

// Segments returns the accumulated segments sorted by base address.
func (im *Image) Segments() Segments {
	im.segs.SortByAddr()
	return im.segs
}

// ExecAddr returns the merged execution address, nil if no input
// defined one or DiscardExec was called.
func (im *Image) ExecAddr() *uint32 { return im.exec }

func (im *Image) String() string {
	if len(im.segs) == 0 {
		return "empty image"
	}
	return fmt.Sprintf(
		"%d segments, 0x%08X..0x%08X, %d bytes",
		len(im.segs), im.segs.MinAddr(), im.segs.MaxEnd(), im.segs.TotalBytes(),
	)
}
