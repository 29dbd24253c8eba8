// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
)

const (
	MEMORY_SIZE = 1 << 15 // Number of addressable data memory cells.
)

// ChangeSet maps each written memory address to its final value.
type ChangeSet map[uint16]int16

// Sorted returns an iterator over the change set in address order.
func (cs ChangeSet) Sorted() iter.Seq2[uint16, int16] {
	return func(yield func(address uint16, value int16) bool) {
		for _, address := range slices.Sorted(maps.Keys(cs)) {
			if !yield(address, cs[address]) {
				return
			}
		}
	}
}

// Cpu is the simulation context for the Hack CPU.
//
// Registers and memory cells are 16-bit two's complement; all arithmetic
// wraps at 16 bits.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Rom    []Code             // Instruction memory.
	Pc     int                // Current program counter.
	A      int16              // Address register.
	D      int16              // Data register.
	Memory [MEMORY_SIZE]int16 // Data memory.

	Ticks   int       // CPU ticks counter.
	Changed ChangeSet // Memory cells written since reset.
}

// NewCpu creates a new CPU with a cleared state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("%5s: %d\n", "pc", cpu.Pc)
	text += fmt.Sprintf("%5s: %04X (%d)\n", "a", uint16(cpu.A), cpu.A)
	text += fmt.Sprintf("%5s: %04X (%d)\n", "d", uint16(cpu.D), cpu.D)
	if address := uint16(cpu.A); address < MEMORY_SIZE {
		val := cpu.Memory[address]
		text += fmt.Sprintf("%5s: %04X (%d)\n", "m", uint16(val), val)
	} else {
		text += fmt.Sprintf("%5s: ----\n", "m")
	}
	text += fmt.Sprintf("%5s: %d\n", "ticks", cpu.Ticks)

	return
}

// Reset the CPU state.
// - Clears the registers and data memory.
// - Zeros the tick counter and the change set.
// - Keeps the instruction memory.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Pc = 0
	cpu.A = 0
	cpu.D = 0
	clear(cpu.Memory[:])
	cpu.Ticks = 0
	cpu.Changed = ChangeSet{}
}

// FetchCode fetches the instruction at the program counter.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if cpu.Pc < 0 || cpu.Pc >= len(cpu.Rom) {
		err = ErrPcEmpty
		return
	}

	code = cpu.Rom[cpu.Pc]
	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}

// load reads a data memory cell.
func (cpu *Cpu) load(address uint16) (value int16, err error) {
	if address >= MEMORY_SIZE {
		err = ErrMemoryRange
		return
	}

	value = cpu.Memory[address]
	return
}

// store writes a data memory cell and records it in the change set.
func (cpu *Cpu) store(address uint16, value int16) {
	cpu.Memory[address] = value
	cpu.Changed[address] = value
}

// Execute executes a single decoded instruction.
// On error the CPU state is left unmodified.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%04x: %v", cpu.Pc, code)
	}

	next_pc := cpu.Pc + 1

	switch code.Class() {
	case OP_ADDRESS:
		cpu.A = int16(code.Address())
	case OP_COMPUTE:
		if !code.Reserved() {
			err = ErrOpcodeReserved
			return
		}

		comp, dest, jump := code.ComputeDecode()
		if !comp.Valid() {
			err = ErrOpcodeComp
			return
		}

		// M is addressed by A as it was before write-back.
		address := uint16(cpu.A)
		if dest.M() && address >= MEMORY_SIZE {
			err = ErrMemoryRange
			return
		}

		y := cpu.A
		if comp.UsesM() {
			y, err = cpu.load(address)
			if err != nil {
				return
			}
		}

		result := doAlu(comp, cpu.D, y)

		if dest.A() {
			cpu.A = result
		}
		if dest.D() {
			cpu.D = result
		}
		if dest.M() {
			cpu.store(address, result)
		}

		if jump.Taken(result) {
			next_pc = int(uint16(cpu.A))
		}
	}

	cpu.Pc = next_pc

	return
}

// doAlu performs the ALU operation on D and y (either A or M).
func doAlu(comp CodeComp, d int16, y int16) (output int16) {
	switch comp &^ COMP_A_BIT {
	case COMP_ZERO: // 0
		output = 0
	case COMP_ONE: // 1
		output = 1
	case COMP_NEG_ONE: // -1
		output = -1
	case COMP_D: // D
		output = d
	case COMP_A: // A, M
		output = y
	case COMP_NOT_D: // !D
		output = ^d
	case COMP_NOT_A: // !A, !M
		output = ^y
	case COMP_NEG_D: // -D
		output = -d
	case COMP_NEG_A: // -A, -M
		output = -y
	case COMP_D_INC: // D+1
		output = d + 1
	case COMP_A_INC: // A+1, M+1
		output = y + 1
	case COMP_D_DEC: // D-1
		output = d - 1
	case COMP_A_DEC: // A-1, M-1
		output = y - 1
	case COMP_D_ADD_A: // D+A, D+M
		output = d + y
	case COMP_D_SUB_A: // D-A, D-M
		output = d - y
	case COMP_A_SUB_D: // A-D, M-D
		output = y - d
	case COMP_D_AND_A: // D&A, D&M
		output = d & y
	case COMP_D_OR_A: // D|A, D|M
		output = d | y
	default:
		panic("unknown comp")
	}

	return
}
