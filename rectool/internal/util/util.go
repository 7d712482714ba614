// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/firmkit/rectool/recfmt"
)

func Warn(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
}

func Fatal(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

// FatalErr prints an error description and exits the program if the
// err != nil.
func FatalErr(what string, err error) {
	if err == nil {
		return
	}
	s := err.Error() + "\n"
	if what != "" {
		s = what + ": " + s
	}
	os.Stderr.WriteString(s)
	os.Exit(1)
}

// Verbose raises the glog verbosity so that V(1) messages show up.
func Verbose(on bool) {
	if on {
		flag.Set("v", "1")
	}
}

// OpenInput opens the named file for reading. The name "-" selects
// the standard input; closing the returned reader then leaves the
// standard input open.
func OpenInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

// CreateOutput creates the named file for writing. The name "-"
// selects the standard output; closing the returned writer then
// leaves the standard output open.
func CreateOutput(name string) (io.WriteCloser, error) {
	if name == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(name)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// FormatExt returns the conventional file name extension for a
// record format.
func FormatExt(f recfmt.Format) string {
	switch f {
	case recfmt.IHex:
		return ".hex"
	case recfmt.SRec:
		return ".srec"
	case recfmt.TITxt:
		return ".txt"
	}
	return ".out"
}

// OutName derives the name of the output file from the name of the
// input file if outName is an empty string. Input from the standard
// input implies output to the standard output.
func OutName(inName, outName, outSuffix string) string {
	if outName != "" {
		return outName
	}
	if inName == "-" {
		return "-"
	}
	if i := strings.LastIndexByte(inName, '.'); i > 0 {
		inName = inName[:i]
	}
	return inName + outSuffix
}

// InputFormat resolves the format of the named input file: the forced
// format if the name is not empty, the sniffed one otherwise. The
// standard input cannot be rewound after sniffing, so its format must
// be forced.
func InputFormat(forced, fileName string) (recfmt.Format, error) {
	if forced != "" {
		return recfmt.ParseFormat(forced)
	}
	if fileName == "-" {
		return recfmt.Unknown, fmt.Errorf("the record format of the standard input must be given explicitly")
	}
	r, err := os.Open(fileName)
	if err != nil {
		return recfmt.Unknown, err
	}
	defer r.Close()
	f := recfmt.Sniff(r)
	if f == recfmt.Unknown {
		return f, fmt.Errorf("cannot determine the record format of %s", fileName)
	}
	return f, nil
}
