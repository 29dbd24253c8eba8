package cpu

import (
	"fmt"
)

// CodeClass is the type of instruction class.
type CodeClass int

const (
	OP_ADDRESS = CodeClass(0) // @
	OP_COMPUTE = CodeClass(1) // c
)

// Instruction word layout.
const (
	CODE_CLASS_BIT     = uint16(1 << 15) // Set for compute instructions.
	CODE_ADDRESS_MASK  = uint16(0x7fff)  // Address bits of an address instruction.
	CODE_RESERVED_MASK = uint16(0b11 << 13)
)

// CodeComp is the 7-bit comp field (a-bit followed by c1..c6).
type CodeComp int

const (
	COMP_A_BIT = CodeComp(0b1000000) // Selects M instead of A as the ALU y input.

	COMP_ZERO    = CodeComp(0b0101010) // 0
	COMP_ONE     = CodeComp(0b0111111) // 1
	COMP_NEG_ONE = CodeComp(0b0111010) // -1
	COMP_D       = CodeComp(0b0001100) // D
	COMP_A       = CodeComp(0b0110000) // A
	COMP_NOT_D   = CodeComp(0b0001101) // !D
	COMP_NOT_A   = CodeComp(0b0110001) // !A
	COMP_NEG_D   = CodeComp(0b0001111) // -D
	COMP_NEG_A   = CodeComp(0b0110011) // -A
	COMP_D_INC   = CodeComp(0b0011111) // D+1
	COMP_A_INC   = CodeComp(0b0110111) // A+1
	COMP_D_DEC   = CodeComp(0b0001110) // D-1
	COMP_A_DEC   = CodeComp(0b0110010) // A-1
	COMP_D_ADD_A = CodeComp(0b0000010) // D+A
	COMP_D_SUB_A = CodeComp(0b0010011) // D-A
	COMP_A_SUB_D = CodeComp(0b0000111) // A-D
	COMP_D_AND_A = CodeComp(0b0000000) // D&A
	COMP_D_OR_A  = CodeComp(0b0010101) // D|A

	COMP_M       = COMP_A_BIT | COMP_A       // M
	COMP_NOT_M   = COMP_A_BIT | COMP_NOT_A   // !M
	COMP_NEG_M   = COMP_A_BIT | COMP_NEG_A   // -M
	COMP_M_INC   = COMP_A_BIT | COMP_A_INC   // M+1
	COMP_M_DEC   = COMP_A_BIT | COMP_A_DEC   // M-1
	COMP_D_ADD_M = COMP_A_BIT | COMP_D_ADD_A // D+M
	COMP_D_SUB_M = COMP_A_BIT | COMP_D_SUB_A // D-M
	COMP_M_SUB_D = COMP_A_BIT | COMP_A_SUB_D // M-D
	COMP_D_AND_M = COMP_A_BIT | COMP_D_AND_A // D&M
	COMP_D_OR_M  = COMP_A_BIT | COMP_D_OR_A  // D|M
)

// compName is indexed by the comp field; unrecognized patterns are empty.
var compName = [128]string{
	COMP_ZERO:    "0",
	COMP_ONE:     "1",
	COMP_NEG_ONE: "-1",
	COMP_D:       "D",
	COMP_A:       "A",
	COMP_NOT_D:   "!D",
	COMP_NOT_A:   "!A",
	COMP_NEG_D:   "-D",
	COMP_NEG_A:   "-A",
	COMP_D_INC:   "D+1",
	COMP_A_INC:   "A+1",
	COMP_D_DEC:   "D-1",
	COMP_A_DEC:   "A-1",
	COMP_D_ADD_A: "D+A",
	COMP_D_SUB_A: "D-A",
	COMP_A_SUB_D: "A-D",
	COMP_D_AND_A: "D&A",
	COMP_D_OR_A:  "D|A",
	COMP_M:       "M",
	COMP_NOT_M:   "!M",
	COMP_NEG_M:   "-M",
	COMP_M_INC:   "M+1",
	COMP_M_DEC:   "M-1",
	COMP_D_ADD_M: "D+M",
	COMP_D_SUB_M: "D-M",
	COMP_M_SUB_D: "M-D",
	COMP_D_AND_M: "D&M",
	COMP_D_OR_M:  "D|M",
}

// Valid returns true if the comp field is one of the recognized ALU operations.
func (comp CodeComp) Valid() bool {
	return comp >= 0 && int(comp) < len(compName) && compName[comp] != ""
}

// UsesM returns true if the ALU operation reads the memory cell addressed by A.
func (comp CodeComp) UsesM() bool {
	return comp&COMP_A_BIT != 0
}

func (comp CodeComp) String() string {
	if !comp.Valid() {
		return fmt.Sprintf("CodeComp(%07b)", int(comp))
	}
	return compName[comp]
}

// CodeDest is the 3-bit dest field. Each bit is an independent store target.
type CodeDest int

//go:generate go tool stringer -linecomment -type=CodeDest
const (
	DEST_NULL = CodeDest(0) // null
	DEST_M    = CodeDest(1) // M
	DEST_D    = CodeDest(2) // D
	DEST_MD   = CodeDest(3) // MD
	DEST_A    = CodeDest(4) // A
	DEST_AM   = CodeDest(5) // AM
	DEST_AD   = CodeDest(6) // AD
	DEST_AMD  = CodeDest(7) // AMD
)

// A returns true if the result is stored to register A.
func (dest CodeDest) A() bool {
	return dest&DEST_A != 0
}

// D returns true if the result is stored to register D.
func (dest CodeDest) D() bool {
	return dest&DEST_D != 0
}

// M returns true if the result is stored to memory at A.
func (dest CodeDest) M() bool {
	return dest&DEST_M != 0
}

// CodeJump is the 3-bit jump field.
type CodeJump int

//go:generate go tool stringer -linecomment -type=CodeJump
const (
	JUMP_NULL = CodeJump(0) // null
	JUMP_JGT  = CodeJump(1) // JGT
	JUMP_JEQ  = CodeJump(2) // JEQ
	JUMP_JGE  = CodeJump(3) // JGE
	JUMP_JLT  = CodeJump(4) // JLT
	JUMP_JNE  = CodeJump(5) // JNE
	JUMP_JLE  = CodeJump(6) // JLE
	JUMP_JMP  = CodeJump(7) // JMP
)

// Taken returns true if the jump condition holds for an ALU result.
func (jump CodeJump) Taken(value int16) (taken bool) {
	switch jump {
	case JUMP_NULL:
		taken = false
	case JUMP_JGT:
		taken = value > 0
	case JUMP_JEQ:
		taken = value == 0
	case JUMP_JGE:
		taken = value >= 0
	case JUMP_JLT:
		taken = value < 0
	case JUMP_JNE:
		taken = value != 0
	case JUMP_JLE:
		taken = value <= 0
	case JUMP_JMP:
		taken = true
	}

	return
}

// Code is a single 16-bit instruction word.
type Code uint16

// MakeCodeAddress creates an address instruction loading address into A.
func MakeCodeAddress(address uint16) Code {
	return Code(address & CODE_ADDRESS_MASK)
}

// MakeCodeCompute creates a compute instruction.
func MakeCodeCompute(comp CodeComp, dest CodeDest, jump CodeJump) Code {
	return Code(CODE_CLASS_BIT | CODE_RESERVED_MASK |
		((uint16(comp) & 0x7f) << 6) |
		((uint16(dest) & 0x7) << 3) |
		((uint16(jump) & 0x7) << 0))
}

// Class returns the instruction class from the instruction word.
func (code Code) Class() CodeClass {
	if uint16(code)&CODE_CLASS_BIT == 0 {
		return OP_ADDRESS
	}
	return OP_COMPUTE
}

// Address returns the 15-bit value of an address instruction.
func (code Code) Address() uint16 {
	return uint16(code) & CODE_ADDRESS_MASK
}

// Reserved returns true if the reserved bits of a compute instruction are both set.
func (code Code) Reserved() bool {
	return uint16(code)&CODE_RESERVED_MASK == CODE_RESERVED_MASK
}

// ComputeDecode decodes and returns the comp, dest and jump fields.
func (code Code) ComputeDecode() (comp CodeComp, dest CodeDest, jump CodeJump) {
	word := uint16(code)
	comp = CodeComp((word >> 6) & 0x7f)
	dest = CodeDest((word >> 3) & 0x7)
	jump = CodeJump((word >> 0) & 0x7)
	return
}

// Binary returns the instruction word as 16 '0' and '1' characters.
func (code Code) Binary() string {
	return fmt.Sprintf("%016b", uint16(code))
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	if code.Class() == OP_ADDRESS {
		out = fmt.Sprintf("@%d", code.Address())
		return
	}

	comp, dest, jump := code.ComputeDecode()

	out = comp.String()
	if dest != DEST_NULL {
		out = dest.String() + "=" + out
	}
	if jump != JUMP_NULL {
		out = out + ";" + jump.String()
	}
	if !code.Reserved() {
		out = fmt.Sprintf("%v (reserved %02b)", out, (uint16(code)&CODE_RESERVED_MASK)>>13)
	}

	return
}
