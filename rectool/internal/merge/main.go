// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merge

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/firmkit/rectool/recfmt"
	"github.com/firmkit/rectool/rectool/internal/util"
)

const Descr = "merge record files into one non-overlapping image"

func Main(args []string) {
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		os.Stderr.WriteString("Usage:\n  merge [OPTIONS] -o OUTPUT INPUT...\nOptions:\n")
		fs.PrintDefaults()
	}
	out := fs.String("o", "", "output `file` (required)")
	ifmt := fs.String("if", "", "force input `format`: ihex, srec or titxt (default: sniffed per file)")
	ofmt := fs.String("of", "ihex", "output `format`: ihex, srec or titxt")
	gap := fs.Uint("gap", recfmt.DefaultSegmentGap, "segment gap in `bytes`")
	offset := fs.Uint("offset", 0, "`offset` subtracted from input addresses")
	nocheck := fs.Bool("nocheck", false, "skip checksum verification")
	noexec := fs.Bool("x", false, "drop execution addresses")
	crlf := fs.Bool("crlf", false, "use CRLF line terminators")
	verbose := fs.Bool("v", false, "report what is being done")
	fs.Parse(args[1:])
	if *out == "" || fs.NArg() == 0 {
		fs.Usage()
		os.Exit(1)
	}
	util.Verbose(*verbose)
	outf, err := recfmt.ParseFormat(*ofmt)
	util.FatalErr("", err)

	im := recfmt.NewImage()
	if *noexec {
		im.DiscardExec()
	}
	for _, name := range fs.Args() {
		f, err := util.InputFormat(*ifmt, name)
		util.FatalErr("", err)
		r, err := util.OpenInput(name)
		util.FatalErr("", err)
		res, err := f.Parse(r, &recfmt.Options{
			Offset:     uint32(*offset),
			SegmentGap: uint32(*gap),
			NoVerify:   *nocheck,
		})
		r.Close()
		util.FatalErr(name, err)
		glog.V(1).Infof(
			"%s: %s: %d segments, %d bytes",
			name, f, len(res.Segments), res.Segments.TotalBytes(),
		)
		util.FatalErr(name, im.Add(res))
	}
	glog.V(1).Infof("image: %s", im)

	w, err := util.CreateOutput(*out)
	util.FatalErr("", err)
	defer w.Close()
	err = outf.Build(w, im.Segments(), im.ExecAddr(), nil, &recfmt.BuildOptions{CRLF: *crlf})
	util.FatalErr(*out, err)
}
