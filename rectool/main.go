// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/golang/glog"

	"github.com/firmkit/rectool/rectool/internal/bin"
	"github.com/firmkit/rectool/rectool/internal/conv"
	"github.com/firmkit/rectool/rectool/internal/info"
	"github.com/firmkit/rectool/rectool/internal/merge"
)

type tool struct {
	descr string
	main  func(args []string)
}

var tools = map[string]tool{
	"bin":   {bin.Descr, bin.Main},
	"conv":  {conv.Descr, conv.Main},
	"info":  {info.Descr, info.Main},
	"merge": {merge.Descr, merge.Main},
}

func printToolList() {
	names := slices.Sorted(maps.Keys(tools))
	maxLen := 0
	for _, k := range names {
		if maxLen < len(k) {
			maxLen = len(k)
		}
	}
	uw := os.Stderr
	uw.WriteString("Usage:\n  rectool COMMAND [ARGUMENTS]\n\n")
	uw.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(uw, "  %*s  %s\n", maxLen, name, tools[name].descr)
	}
}

func main() {
	flag.Set("logtostderr", "true")
	defer glog.Flush()
	if len(os.Args) < 2 || os.Args[1] == "-h" {
		printToolList()
		return
	}
	tool, ok := tools[os.Args[1]]
	if !ok {
		printToolList()
		os.Exit(1)
	}
	tool.main(os.Args[1:])
}
