// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package info

import (
	"flag"
	"fmt"
	"os"

	"github.com/firmkit/rectool/recfmt"
	"github.com/firmkit/rectool/rectool/internal/util"
)

const Descr = "print the segment and image statistics of a record file"

func Main(args []string) {
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		os.Stderr.WriteString("Usage:\n  info [OPTIONS] INPUT\nOptions:\n")
		fs.PrintDefaults()
	}
	ifmt := fs.String("if", "", "input `format`: ihex, srec or titxt (default: sniffed)")
	gap := fs.Uint("gap", recfmt.DefaultSegmentGap, "segment gap in `bytes`")
	nocheck := fs.Bool("nocheck", false, "skip checksum verification")
	fs.Parse(args[1:])
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	in := fs.Arg(0)
	f, err := util.InputFormat(*ifmt, in)
	util.FatalErr("", err)

	r, err := util.OpenInput(in)
	util.FatalErr("", err)
	res, err := f.Parse(r, &recfmt.Options{
		SegmentGap: uint32(*gap),
		NoVerify:   *nocheck,
	})
	r.Close()
	util.FatalErr(in, err)

	fmt.Printf("%s: %s\n", in, f)
	res.Segments.SortByAddr()
	for i, s := range res.Segments {
		fmt.Printf(
			"%d: Addr: %#08x End: %#08x Size: %d\n",
			i, s.Addr, s.End(), s.Size(),
		)
	}
	if res.ExecAddr != nil {
		fmt.Printf("Exec: %#08x\n", *res.ExecAddr)
	}
	if len(res.Info) != 0 {
		fmt.Printf("Info: %q\n", res.Info)
	}
	if len(res.Segments) != 0 {
		fmt.Printf(
			"Range: %#08x..%#08x Span: %d Data: %d bytes\n",
			res.Segments.MinAddr(), res.Segments.MaxEnd(),
			res.Segments.Span(), res.Segments.TotalBytes(),
		)
	}
}
