// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recfmt

import "fmt"

// ChecksumError reports a record whose stored checksum differs from
// the one computed over its content.
type ChecksumError struct {
	Format   Format
	Line     int    // 1-based line number
	Text     string // raw record text
	Stored   byte
	Computed byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf(
		"%s: invalid checksum: 0x%02X / 0x%02X @ line %d: %q",
		e.Format, e.Stored, e.Computed, e.Line, e.Text,
	)
}

// AddrRangeError reports a record address outside the configured
// address window.
type AddrRangeError struct {
	Format   Format
	Line     int
	Text     string
	Addr     uint32
	Min, Max uint32
}

func (e *AddrRangeError) Error() string {
	return fmt.Sprintf(
		"%s: address out of range [0x%08X..0x%08X]: 0x%08X @ line %d: %q",
		e.Format, e.Min, e.Max, e.Addr, e.Line, e.Text,
	)
}

// MalformedRecordError reports a record of invalid shape: bad record
// mark, invalid hex digits, byte-count mismatch or an unsupported
// record type.
type MalformedRecordError struct {
	Format Format
	Line   int
	Text   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s: %s @ line %d: %q", e.Format, e.Reason, e.Line, e.Text)
}

// SegmentOverlapError reports two segments whose address ranges
// intersect.
type SegmentOverlapError struct {
	A, B *Segment
}

func (e *SegmentOverlapError) Error() string {
	return fmt.Sprintf(
		"segments overlap: [0x%08X..0x%08X) and [0x%08X..0x%08X)",
		e.A.Addr, e.A.End(), e.B.Addr, e.B.End(),
	)
}

// ExecAddrConflictError reports two inputs that define different
// execution addresses.
type ExecAddrConflictError struct {
	A, B uint32
}

func (e *ExecAddrConflictError) Error() string {
	return fmt.Sprintf("conflicting execution addresses: 0x%08X / 0x%08X", e.A, e.B)
}

// BuildError reports a serialization-time invariant violation, like
// an address that does not fit the target format.
type BuildError struct {
	Format Format
	Reason string
}

func (e *BuildError) Error() string {
	if e.Format == Unknown {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Format, e.Reason)
}
