// Copyright 2026 The Rectool Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/firmkit/rectool/recfmt"
)

func TestOpenInputStdio(t *testing.T) {
	r, err := OpenInput("-")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	// the standard input itself must survive the Close above
	if _, err := os.Stdin.Stat(); err != nil {
		t.Fatalf("stdin closed: %v", err)
	}
	w, err := CreateOutput("-")
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stdout.Stat(); err != nil {
		t.Fatalf("stdout closed: %v", err)
	}
}

func TestOpenInputFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "fw.hex")
	if err := os.WriteFile(in, []byte(":00000001FF\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := OpenInput(in)
	if err != nil {
		t.Fatal(err)
	}
	p, err := io.ReadAll(r)
	r.Close()
	if err != nil || string(p) != ":00000001FF\n" {
		t.Fatalf("read %q, %v", p, err)
	}

	out := filepath.Join(dir, "fw.bin")
	w, err := CreateOutput(out)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if p, err := os.ReadFile(out); err != nil || len(p) != 3 {
		t.Fatalf("read back %q, %v", p, err)
	}
}

func TestOutName(t *testing.T) {
	tests := []struct {
		in, out, suffix, want string
	}{
		{"fw.hex", "", ".txt", "fw.txt"},
		{"fw.hex", "other.ti", ".txt", "other.ti"},
		{"fw", "", ".bin", "fw.bin"},
		{"-", "", ".bin", "-"},
	}
	for _, tc := range tests {
		if got := OutName(tc.in, tc.out, tc.suffix); got != tc.want {
			t.Errorf("OutName(%q, %q, %q) = %q, want %q",
				tc.in, tc.out, tc.suffix, got, tc.want)
		}
	}
}

func TestInputFormat(t *testing.T) {
	if f, err := InputFormat("srec", "ignored"); err != nil || f != recfmt.SRec {
		t.Fatalf("forced: %v, %v", f, err)
	}
	if _, err := InputFormat("", "-"); err == nil {
		t.Fatal("sniffing stdin must fail")
	}
	dir := t.TempDir()
	name := filepath.Join(dir, "fw.hex")
	if err := os.WriteFile(name, []byte(":00000001FF\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if f, err := InputFormat("", name); err != nil || f != recfmt.IHex {
		t.Fatalf("sniffed: %v, %v", f, err)
	}
	if err := os.WriteFile(name, []byte("not a record file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := InputFormat("", name); err == nil {
		t.Fatal("unknown format accepted")
	}
}
