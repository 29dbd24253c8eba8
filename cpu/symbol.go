package cpu

import (
	"iter"
	"maps"
	"slices"

	"github.com/ezrec/hack/internal"
)

const (
	VARIABLE_BASE  = 16     // First address assigned to variables.
	SCREEN_ADDRESS = 0x4000 // Base of the memory mapped screen.
	KBD_ADDRESS    = 0x6000 // Memory mapped keyboard.
)

// Predefined system symbols. Never modified.
var sysSymbol = map[string]uint16{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"R0":     0,
	"R1":     1,
	"R2":     2,
	"R3":     3,
	"R4":     4,
	"R5":     5,
	"R6":     6,
	"R7":     7,
	"R8":     8,
	"R9":     9,
	"R10":    10,
	"R11":    11,
	"R12":    12,
	"R13":    13,
	"R14":    14,
	"R15":    15,
	"SCREEN": SCREEN_ADDRESS,
	"KBD":    KBD_ADDRESS,
}

// SymbolTable maps symbol names to addresses for a single assembly run.
type SymbolTable struct {
	Label    map[string]uint16 // Map of labels to instruction indexes.
	Variable map[string]uint16 // Map of variables to memory addresses.

	predefine map[string]uint16
	order     []string // Variables in allocation order.
	next      uint16
}

// NewSymbolTable creates a symbol table seeded with the system symbols and
// any additional predefines. The predefines map is copied.
func NewSymbolTable(predefine map[string]uint16) (st *SymbolTable) {
	st = &SymbolTable{
		Label:     map[string]uint16{},
		Variable:  map[string]uint16{},
		predefine: maps.Clone(predefine),
		next:      VARIABLE_BASE,
	}

	return
}

// Predefined returns true if name is a system symbol or a predefine.
func (st *SymbolTable) Predefined(name string) (address uint16, ok bool) {
	address, ok = st.predefine[name]
	if ok {
		return
	}
	address, ok = sysSymbol[name]
	return
}

// Lookup resolves a symbol. Labels shadow predefined symbols.
func (st *SymbolTable) Lookup(name string) (address uint16, ok bool) {
	address, ok = st.Label[name]
	if ok {
		return
	}
	address, ok = st.Predefined(name)
	if ok {
		return
	}
	address, ok = st.Variable[name]
	return
}

// DefineLabel binds a label to an instruction index. Unless overwrite is
// set, an existing label or a predefined symbol can not be redefined.
func (st *SymbolTable) DefineLabel(name string, ip uint16, overwrite bool) (err error) {
	if !overwrite {
		if _, ok := st.Label[name]; ok {
			err = ErrLabelDuplicate
			return
		}
		if _, ok := st.Predefined(name); ok {
			err = ErrLabelPredefined
			return
		}
	}

	st.Label[name] = ip

	return
}

// DefineVariable returns the address of a symbol, allocating the next free
// variable address if it is not yet known.
func (st *SymbolTable) DefineVariable(name string) (address uint16, err error) {
	address, ok := st.Lookup(name)
	if ok {
		return
	}

	if st.next > CODE_ADDRESS_MASK {
		err = ErrVariableFull
		return
	}

	address = st.next
	st.next++
	st.Variable[name] = address
	st.order = append(st.order, name)

	return
}

// Variables returns an iterator over the variables in allocation order.
func (st *SymbolTable) Variables() iter.Seq2[string, uint16] {
	return func(yield func(name string, address uint16) bool) {
		for _, name := range st.order {
			if !yield(name, st.Variable[name]) {
				return
			}
		}
	}
}

// sortedSeq returns an iterator over a map in name order.
func sortedSeq(symbols map[string]uint16) iter.Seq2[string, uint16] {
	return func(yield func(name string, address uint16) bool) {
		for _, name := range slices.Sorted(maps.Keys(symbols)) {
			if !yield(name, symbols[name]) {
				return
			}
		}
	}
}

// All returns an iterator over every bound symbol: system symbols,
// predefines, labels, then variables.
func (st *SymbolTable) All() iter.Seq2[string, uint16] {
	return internal.IterSeq2Concat(
		sortedSeq(sysSymbol),
		sortedSeq(st.predefine),
		sortedSeq(st.Label),
		st.Variables(),
	)
}
