// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recfmt

import (
	"bufio"
	"io"
)

// BuildOptions control how segments are serialized. The zero value
// emits addresses unshifted with LF line terminators.
type BuildOptions struct {
	Offset uint32 // added to every emitted data address
	CRLF   bool   // use CRLF line terminators
}

func buildOffset(o *BuildOptions) uint32 {
	if o == nil {
		return 0
	}
	return o.Offset
}

// emitter writes records line by line, remembering the first write
// error so the per-format builders stay free of error plumbing.
type emitter struct {
	w   *bufio.Writer
	sep string
	err error
}

func newEmitter(w io.Writer, o *BuildOptions) *emitter {
	sep := "\n"
	if o != nil && o.CRLF {
		sep = "\r\n"
	}
	return &emitter{w: bufio.NewWriter(w), sep: sep}
}

func (e *emitter) line(s string) {
	if e.err != nil {
		return
	}
	if _, e.err = e.w.WriteString(s); e.err == nil {
		_, e.err = e.w.WriteString(e.sep)
	}
}

func (e *emitter) flush() error {
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}
