// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bin

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/firmkit/rectool/recfmt"
	"github.com/firmkit/rectool/rectool/internal/util"
)

const Descr = "convert a record file to a raw binary image"

func Main(args []string) {
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		os.Stderr.WriteString("Usage:\n  bin [OPTIONS] INPUT [BIN]\nOptions:\n")
		fs.PrintDefaults()
	}
	ifmt := fs.String("if", "", "input `format`: ihex, srec or titxt (default: sniffed)")
	gap := fs.Uint("gap", recfmt.DefaultSegmentGap, "segment gap in `bytes`")
	offset := fs.Uint("offset", 0, "`offset` subtracted from input addresses")
	pad := fs.Uint("pad", 0xff, "pad `byte` used to fill gaps between segments")
	size := fs.Uint("size", 0, "maximum image `size` in bytes, 0 means unlimited")
	nocheck := fs.Bool("nocheck", false, "skip checksum verification")
	verbose := fs.Bool("v", false, "report what is being done")
	fs.Parse(args[1:])
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	util.Verbose(*verbose)
	in := fs.Arg(0)
	f, err := util.InputFormat(*ifmt, in)
	util.FatalErr("", err)
	out := util.OutName(in, fs.Arg(1), ".bin")

	r, err := util.OpenInput(in)
	util.FatalErr("", err)
	res, err := f.Parse(r, &recfmt.Options{
		Offset:     uint32(*offset),
		SegmentGap: uint32(*gap),
		NoVerify:   *nocheck,
	})
	r.Close()
	util.FatalErr(in, err)
	glog.V(1).Infof(
		"%s: %s: %d segments, %d bytes",
		in, f, len(res.Segments), res.Segments.TotalBytes(),
	)

	w, err := util.CreateOutput(out)
	util.FatalErr("", err)
	defer w.Close()
	n, err := res.Segments.Flatten(w, byte(*pad), int(*size))
	util.FatalErr("flatten", err)
	glog.V(1).Infof("%s: %d bytes written", out, n)
}
