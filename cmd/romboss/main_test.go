// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"romboss/internal/rom/romtest"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"romboss": func() {
			os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
		},
	})
}

func TestScripts(t *testing.T) {
	t.Parallel()

	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"mkrom": mkrom,
		},
	})
}

// mkrom writes a synthetic image: mkrom snes|snes-smc|megadrive|nds <file> <title>
func mkrom(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! mkrom")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: mkrom kind file title")
	}

	var img []byte
	switch args[0] {
	case "snes":
		img = romtest.SNES(args[2], false)
	case "snes-smc":
		img = romtest.SNES(args[2], true)
	case "megadrive":
		img = romtest.MegaDrive(args[2])
	case "nds":
		img = romtest.NDS(args[2])
	default:
		ts.Fatalf("%s", fmt.Sprintf("unknown rom kind %q", args[0]))
	}
	ts.Check(os.WriteFile(ts.MkAbs(args[1]), img, 0o644))
}
