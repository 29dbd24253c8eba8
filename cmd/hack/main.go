// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ezrec/hack/cpu"
	"github.com/ezrec/hack/emulator"
	hackio "github.com/ezrec/hack/io"
	"github.com/ezrec/hack/translate"
)

func main() {
	var cycles int
	var output string
	var save bool
	var listing bool
	var permissive bool
	var verbose bool

	flag.IntVar(&cycles, "cycles", emulator.CYCLES_DEFAULT, "The number of cycles to run")
	flag.StringVar(&output, "o", "", "Output file (default: source with .json, or .hack with -s)")
	flag.BoolVar(&save, "s", false, "Save assembled .hack, do not execute")
	flag.BoolVar(&listing, "l", false, "Print program listing")
	flag.BoolVar(&permissive, "p", false, "Permissive assembly, default unresolved fields")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one .asm or .hack file, got: %v", os.Args[0], flag.Args())
	}

	source := flag.Arg(0)
	dir, name := filepath.Split(source)

	asm := &cpu.Assembler{
		Verbose:    verbose,
		Permissive: permissive,
	}

	prog, err := hackio.Load(os.DirFS(filepath.Clean(dir)), name, asm)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	if listing {
		err = prog.Listing(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
	}

	// Outputs are relative to the working directory, and default to
	// the source directory.
	cwd := hackio.DirFS("")

	if save {
		if len(output) == 0 {
			output = filepath.Join(dir, hackio.Rename(name, ".hack"))
		}
		err = hackio.WriteFile(cwd, output, prog.WriteBinary)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose

	changes, err := emu.Run(ctx, cycles)
	if err != nil {
		if verbose {
			log.Print(emu.Cpu.String())
		}
		log.Fatalf("%v: %v", source, err)
	}

	if len(output) == 0 {
		output = filepath.Join(dir, hackio.Rename(name, ".json"))
	}
	err = hackio.WriteFile(cwd, output, func(w io.Writer) error {
		return hackio.WriteReport(w, changes)
	})
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	fmt.Println(translate.From("Simulation completed. Changed RAM addresses and their final values have been saved to %v", output))
}
