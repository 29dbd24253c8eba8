// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"

	"github.com/ezrec/hack/cpu"
)

const (
	CYCLES_DEFAULT  = 5000 // Default cycle budget.
	CANCEL_INTERVAL = 1024 // Ticks between context checks.
)

// Emulator state. CPU + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Reset the emulator to a fresh machine state running the current program.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Rom = emu.Program.Rom()
	emu.Cpu.Reset()
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Changes returns the memory change set since a reset.
func (emu *Emulator) Changes() cpu.ChangeSet {
	return emu.Cpu.Changed
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Pc)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrPcEmpty) {
		err = nil
		done = true
		return
	}

	return
}

// Run resets the machine, then ticks until the program counter leaves the
// program, the cycle budget is spent, or the context is done.
// The change set is returned even if an error stops the run.
func (emu *Emulator) Run(ctx context.Context, cycles int) (changes cpu.ChangeSet, err error) {
	if cycles < 1 {
		err = ErrCyclesInvalid
		return
	}

	emu.Reset()
	defer func() {
		changes = emu.Changes()
	}()

	for emu.Ticks() < cycles {
		if emu.Ticks()%CANCEL_INTERVAL == 0 {
			err = ctx.Err()
			if err != nil {
				return
			}
		}

		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	return
}

// Simulate runs a program on a fresh emulator.
func Simulate(ctx context.Context, prog *cpu.Program, cycles int) (changes cpu.ChangeSet, err error) {
	emu := NewEmulator()
	emu.Program = prog

	changes, err = emu.Run(ctx, cycles)
	return
}
