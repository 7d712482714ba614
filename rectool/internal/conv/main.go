// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conv

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/firmkit/rectool/recfmt"
	"github.com/firmkit/rectool/rectool/internal/util"
)

const Descr = "convert a record file to another record format"

func Main(args []string) {
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		os.Stderr.WriteString("Usage:\n  conv [OPTIONS] INPUT [OUTPUT]\nOptions:\n")
		fs.PrintDefaults()
	}
	ifmt := fs.String("if", "", "input `format`: ihex, srec or titxt (default: sniffed)")
	ofmt := fs.String("of", "titxt", "output `format`: ihex, srec or titxt")
	gap := fs.Uint("gap", recfmt.DefaultSegmentGap, "segment gap in `bytes`")
	offset := fs.Uint("offset", 0, "`offset` subtracted from input addresses")
	nocheck := fs.Bool("nocheck", false, "skip checksum verification")
	noexec := fs.Bool("x", false, "drop the execution address")
	crlf := fs.Bool("crlf", false, "use CRLF line terminators")
	verbose := fs.Bool("v", false, "report what is being done")
	fs.Parse(args[1:])
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	util.Verbose(*verbose)
	in := fs.Arg(0)
	inf, err := util.InputFormat(*ifmt, in)
	util.FatalErr("", err)
	outf, err := recfmt.ParseFormat(*ofmt)
	util.FatalErr("", err)
	out := util.OutName(in, fs.Arg(1), util.FormatExt(outf))

	r, err := util.OpenInput(in)
	util.FatalErr("", err)
	res, err := inf.Parse(r, &recfmt.Options{
		Offset:     uint32(*offset),
		SegmentGap: uint32(*gap),
		NoVerify:   *nocheck,
	})
	r.Close()
	util.FatalErr(in, err)
	glog.V(1).Infof(
		"%s: %s: %d segments, %d bytes",
		in, inf, len(res.Segments), res.Segments.TotalBytes(),
	)
	exec := res.ExecAddr
	if *noexec {
		exec = nil
	}
	res.Segments.SortByAddr()

	w, err := util.CreateOutput(out)
	util.FatalErr("", err)
	defer w.Close()
	err = outf.Build(w, res.Segments, exec, res.Info, &recfmt.BuildOptions{CRLF: *crlf})
	util.FatalErr(out, err)
	glog.V(1).Infof("%s: %s written", out, outf)
}
