package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTable(t *testing.T) {
	assert := assert.New(t)

	st := NewSymbolTable(nil)

	table := [](struct {
		name    string
		address uint16
	}){
		{"SP", 0}, {"LCL", 1}, {"ARG", 2}, {"THIS", 3}, {"THAT", 4},
		{"R0", 0}, {"R1", 1}, {"R2", 2}, {"R3", 3}, {"R4", 4}, {"R5", 5},
		{"R6", 6}, {"R7", 7}, {"R8", 8}, {"R9", 9}, {"R10", 10}, {"R11", 11},
		{"R12", 12}, {"R13", 13}, {"R14", 14}, {"R15", 15},
		{"SCREEN", 16384}, {"KBD", 24576},
	}

	for _, entry := range table {
		address, ok := st.Lookup(entry.name)
		assert.True(ok, entry.name)
		assert.Equal(entry.address, address, entry.name)
	}

	_, ok := st.Lookup("R16")
	assert.False(ok)
	_, ok = st.Lookup("screen")
	assert.False(ok)
}

func TestSymbolTable_Variables(t *testing.T) {
	assert := assert.New(t)

	st := NewSymbolTable(nil)

	assert.NoError(st.DefineLabel("LOOP", 7, false))

	for n, name := range []string{"x", "y", "x", "LOOP", "KBD", "z"} {
		address, err := st.DefineVariable(name)
		assert.NoError(err, n)
		switch name {
		case "x":
			assert.Equal(uint16(16), address)
		case "y":
			assert.Equal(uint16(17), address)
		case "z":
			assert.Equal(uint16(18), address)
		case "LOOP":
			assert.Equal(uint16(7), address)
		case "KBD":
			assert.Equal(uint16(KBD_ADDRESS), address)
		}
	}

	var names []string
	for name := range st.Variables() {
		names = append(names, name)
	}
	assert.Equal([]string{"x", "y", "z"}, names)
}

func TestSymbolTable_VariableFull(t *testing.T) {
	assert := assert.New(t)

	st := NewSymbolTable(nil)
	st.next = CODE_ADDRESS_MASK

	address, err := st.DefineVariable("last")
	assert.NoError(err)
	assert.Equal(CODE_ADDRESS_MASK, address)

	_, err = st.DefineVariable("overflow")
	assert.ErrorIs(err, ErrVariableFull)
}

func TestSymbolTable_Label(t *testing.T) {
	assert := assert.New(t)

	st := NewSymbolTable(map[string]uint16{"STACK": 256})

	assert.NoError(st.DefineLabel("LOOP", 3, false))
	assert.ErrorIs(st.DefineLabel("LOOP", 4, false), ErrLabelDuplicate)
	assert.ErrorIs(st.DefineLabel("THAT", 4, false), ErrLabelPredefined)
	assert.ErrorIs(st.DefineLabel("STACK", 4, false), ErrLabelPredefined)

	address, _ := st.Lookup("LOOP")
	assert.Equal(uint16(3), address)

	assert.NoError(st.DefineLabel("LOOP", 4, true))
	assert.NoError(st.DefineLabel("THAT", 5, true))

	address, _ = st.Lookup("LOOP")
	assert.Equal(uint16(4), address)
	address, _ = st.Lookup("THAT")
	assert.Equal(uint16(5), address)

	// The system baseline is never modified.
	assert.Equal(uint16(4), sysSymbol["THAT"])
	address, _ = NewSymbolTable(nil).Lookup("THAT")
	assert.Equal(uint16(4), address)
}

func TestSymbolTable_Predefine(t *testing.T) {
	assert := assert.New(t)

	predefine := map[string]uint16{"STACK": 256}
	st := NewSymbolTable(predefine)
	predefine["HEAP"] = 2048

	address, ok := st.Lookup("STACK")
	assert.True(ok)
	assert.Equal(uint16(256), address)

	_, ok = st.Lookup("HEAP")
	assert.False(ok)
}

func TestSymbolTable_All(t *testing.T) {
	assert := assert.New(t)

	st := NewSymbolTable(map[string]uint16{"STACK": 256})
	assert.NoError(st.DefineLabel("LOOP", 2, false))
	_, err := st.DefineVariable("b")
	assert.NoError(err)
	_, err = st.DefineVariable("a")
	assert.NoError(err)

	var names []string
	all := map[string]uint16{}
	for name, address := range st.All() {
		names = append(names, name)
		all[name] = address
	}

	assert.Equal(len(sysSymbol)+4, len(names))
	assert.Equal([]string{"STACK", "LOOP", "b", "a"}, names[len(sysSymbol):])
	assert.Equal(uint16(16), all["b"])
	assert.Equal(uint16(17), all["a"])
	assert.Equal(uint16(24576), all["KBD"])
}
