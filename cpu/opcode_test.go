package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_Decode(t *testing.T) {
	assert := assert.New(t)

	code := MakeCodeAddress(0x1234)
	assert.Equal(OP_ADDRESS, code.Class())
	assert.Equal(uint16(0x1234), code.Address())
	assert.Equal("0001001000110100", code.Binary())

	// Address instructions only carry 15 bits.
	assert.Equal(MakeCodeAddress(0x7fff), MakeCodeAddress(0xffff))

	code = MakeCodeCompute(COMP_D_ADD_M, DEST_AM, JUMP_JLE)
	assert.Equal(OP_COMPUTE, code.Class())
	assert.True(code.Reserved())
	comp, dest, jump := code.ComputeDecode()
	assert.Equal(COMP_D_ADD_M, comp)
	assert.Equal(DEST_AM, dest)
	assert.Equal(JUMP_JLE, jump)
	assert.Equal("1111000010101110", code.Binary())

	assert.False(Code(0b1000101010000111).Reserved())
	assert.False(Code(0b1010101010000111).Reserved())
	assert.True(Code(0b1110101010000111).Reserved())
}

func TestCode_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		text string
	}){
		{MakeCodeAddress(0), "@0"},
		{MakeCodeAddress(24576), "@24576"},
		{MakeCodeCompute(COMP_ZERO, DEST_NULL, JUMP_JMP), "0;JMP"},
		{MakeCodeCompute(COMP_D, DEST_M, JUMP_NULL), "M=D"},
		{MakeCodeCompute(COMP_M_DEC, DEST_AMD, JUMP_JNE), "AMD=M-1;JNE"},
		{MakeCodeCompute(COMP_A_SUB_D, DEST_D, JUMP_NULL), "D=A-D"},
		{MakeCodeCompute(CodeComp(0b1101010), DEST_D, JUMP_NULL), "D=CodeComp(1101010)"},
		{Code(0b1000101010000111), "0;JMP (reserved 00)"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.code.String(), entry.text)
	}
}

func TestCodeComp(t *testing.T) {
	assert := assert.New(t)

	valid := 0
	for n := range 128 {
		comp := CodeComp(n)
		if comp.Valid() {
			valid++
			assert.Equal(comp, compMap[comp.String()])
		}
	}
	assert.Equal(28, valid)
	assert.Equal(28, len(compMap))

	assert.False(CodeComp(-1).Valid())
	assert.False(CodeComp(128).Valid())

	assert.True(COMP_M.UsesM())
	assert.True(COMP_D_OR_M.UsesM())
	assert.False(COMP_D_OR_A.UsesM())
	assert.False(COMP_ZERO.UsesM())
}

func TestCodeDest(t *testing.T) {
	assert := assert.New(t)

	for n := range 8 {
		dest := CodeDest(n)
		assert.Equal(n&4 != 0, dest.A(), dest.String())
		assert.Equal(n&2 != 0, dest.D(), dest.String())
		assert.Equal(n&1 != 0, dest.M(), dest.String())

		if dest != DEST_NULL {
			parsed, err := parseDest(dest.String())
			assert.NoError(err)
			assert.Equal(dest, parsed)
		}
	}

	assert.Equal("CodeDest(8)", CodeDest(8).String())
}

func TestCodeJump(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		jump     CodeJump
		positive bool
		zero     bool
		negative bool
	}){
		{JUMP_NULL, false, false, false},
		{JUMP_JGT, true, false, false},
		{JUMP_JEQ, false, true, false},
		{JUMP_JGE, true, true, false},
		{JUMP_JLT, false, false, true},
		{JUMP_JNE, true, false, true},
		{JUMP_JLE, false, true, true},
		{JUMP_JMP, true, true, true},
	}

	for _, entry := range table {
		name := entry.jump.String()
		assert.Equal(entry.positive, entry.jump.Taken(1), name)
		assert.Equal(entry.positive, entry.jump.Taken(32767), name)
		assert.Equal(entry.zero, entry.jump.Taken(0), name)
		assert.Equal(entry.negative, entry.jump.Taken(-1), name)
		assert.Equal(entry.negative, entry.jump.Taken(-32768), name)

		if entry.jump != JUMP_NULL {
			assert.Equal(entry.jump, jumpMap[name])
		}
	}
}
