// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"
	"unicode"
)

// Line is a normalized line of assembly source.
type Line struct {
	LineNo int    // Line number in the original source.
	Text   string // Text with comments and whitespace removed.
}

// Label returns the label name if the line is a label pseudo-instruction.
func (line Line) Label() (name string, ok bool) {
	if !strings.HasPrefix(line.Text, "(") {
		return
	}
	return line.Text[1:], true
}

// Operand returns the operand if the line is an address instruction.
func (line Line) Operand() (operand string, ok bool) {
	if !strings.HasPrefix(line.Text, "@") {
		return
	}
	return line.Text[1:], true
}

// strip removes a trailing comment and all whitespace.
func strip(text string) string {
	text, _, _ = strings.Cut(text, "//")
	return strings.Join(strings.FieldsFunc(text, unicode.IsSpace), "")
}

// normalizeLine strips a source line. The body of an @$(...) operand is
// kept verbatim, so expressions may use spaces and the '//' operator.
func normalizeLine(text string) string {
	trimmed := strings.TrimSpace(text)
	body, ok := strings.CutPrefix(trimmed, "@")
	if !ok {
		return strip(trimmed)
	}
	body = strings.TrimLeftFunc(body, unicode.IsSpace)
	if !strings.HasPrefix(body, "$(") {
		return strip(trimmed)
	}

	depth := 0
	for n, r := range body {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return "@" + body[:n+1] + strip(body[n+1:])
			}
		}
	}

	return strip(trimmed)
}

// Normalize strips comments and whitespace, and drops the resulting empty lines.
// Expression operands keep their text between the outer parentheses.
func Normalize(lines []string) (source []Line) {
	for n, text := range lines {
		text = normalizeLine(text)
		if len(text) == 0 {
			continue
		}
		source = append(source, Line{LineNo: n + 1, Text: text})
	}

	return
}

// Assembler is a multi-pass assembler for the Hack instruction set.
type Assembler struct {
	Verbose    bool         // If set, verbosely logs the assembler actions.
	Permissive bool         // If set, substitutes defaults for unresolvable fields instead of failing.
	Symbols    *SymbolTable // Symbols of the most recent assembly.

	predefine map[string]uint16 // Predefines
}

// Predefine adds a symbol to the baseline of every following assembly.
func (asm *Assembler) Predefine(name string, address uint16) {
	if asm.predefine == nil {
		asm.predefine = map[string]uint16{name: address}
	} else {
		asm.predefine[name] = address
	}
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	prog, err = asm.Assemble(lines)
	return
}

// Assemble translates source lines into a Program.
func (asm *Assembler) Assemble(lines []string) (prog *Program, err error) {
	source := Normalize(lines)

	asm.Symbols = NewSymbolTable(asm.predefine)

	err = asm.addLabels(source)
	if err != nil {
		return
	}

	err = asm.addVariables(source)
	if err != nil {
		return
	}

	prog, err = asm.translate(source)
	return
}

// addLabels binds each label to the index of the next real instruction.
func (asm *Assembler) addLabels(source []Line) (err error) {
	var ip int

	for _, line := range source {
		name, ok := line.Label()
		if !ok {
			ip++
			continue
		}

		if !strings.HasSuffix(name, ")") {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: ErrLabelSyntax}
			return
		}
		name = name[:len(name)-1]
		if !validSymbol(name) {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: ErrSymbolInvalid}
			return
		}

		var address uint16
		address, err = asm.address(uint64(ip))
		if err == nil {
			err = asm.Symbols.DefineLabel(name, address, asm.Permissive)
		}
		if err != nil {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
			return
		}

		if asm.Verbose {
			log.Printf("%3d: label %v = %d", line.LineNo, name, address)
		}
	}

	return
}

// addVariables allocates addresses to unknown symbols in first-occurrence order.
func (asm *Assembler) addVariables(source []Line) (err error) {
	for _, line := range source {
		operand, ok := line.Operand()
		if !ok || isNumber(operand) || isExpression(operand) {
			continue
		}

		if len(operand) == 0 {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: ErrAddressMissing}
			return
		}
		if !asm.Permissive && !validSymbol(operand) {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: ErrSymbolInvalid}
			return
		}

		_, known := asm.Symbols.Lookup(operand)
		var address uint16
		address, err = asm.Symbols.DefineVariable(operand)
		if err != nil {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
			return
		}

		if asm.Verbose && !known {
			log.Printf("%3d: variable %v = %d", line.LineNo, operand, address)
		}
	}

	return
}

// translate emits one instruction word for each non-label line.
func (asm *Assembler) translate(source []Line) (prog *Program, err error) {
	prog = &Program{}

	for _, line := range source {
		if _, ok := line.Label(); ok {
			continue
		}

		var code Code
		if operand, ok := line.Operand(); ok {
			code, err = asm.translateAddress(operand)
		} else {
			code, err = asm.translateCompute(line.Text)
		}
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
			return
		}

		if asm.Verbose {
			log.Printf("%3d: %v => %v", line.LineNo, line.Text, code.Binary())
		}

		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: line.LineNo,
			Ip:     len(prog.Opcodes),
			Text:   line.Text,
			Code:   code,
		})
	}

	return
}

// address range checks a resolved address.
func (asm *Assembler) address(value uint64) (address uint16, err error) {
	if value > uint64(CODE_ADDRESS_MASK) {
		if !asm.Permissive {
			err = ErrAddressRange
			return
		}
		value &= uint64(CODE_ADDRESS_MASK)
	}

	address = uint16(value)
	return
}

// translateAddress encodes an address instruction.
func (asm *Assembler) translateAddress(operand string) (code Code, err error) {
	var address uint16

	switch {
	case isNumber(operand):
		var value uint64
		value, err = strconv.ParseUint(operand, 10, 64)
		if err != nil {
			err = ErrParseNumber(operand)
			return
		}
		address, err = asm.address(value)
	case isExpression(operand):
		var value int64
		value, err = asm.parenEval(operand[2 : len(operand)-1])
		if err != nil {
			return
		}
		if value < 0 {
			err = ErrAddressRange
			return
		}
		address, err = asm.address(uint64(value))
	default:
		var ok bool
		address, ok = asm.Symbols.Lookup(operand)
		if !ok && !asm.Permissive {
			err = ErrSymbolMissing(operand)
		}
	}
	if err != nil {
		return
	}

	code = MakeCodeAddress(address)
	return
}

// compMap maps comp mnemonics to comp fields.
var compMap = func() map[string]CodeComp {
	comps := make(map[string]CodeComp, 32)
	for comp, name := range compName {
		if len(name) != 0 {
			comps[name] = CodeComp(comp)
		}
	}
	return comps
}()

// jumpMap maps jump mnemonics to jump fields.
var jumpMap = map[string]CodeJump{
	"JGT": JUMP_JGT,
	"JEQ": JUMP_JEQ,
	"JGE": JUMP_JGE,
	"JLT": JUMP_JLT,
	"JNE": JUMP_JNE,
	"JLE": JUMP_JLE,
	"JMP": JUMP_JMP,
}

// parseDest decodes a dest mnemonic. Each of A, D and M may appear once, in any order.
func parseDest(text string) (dest CodeDest, err error) {
	for _, r := range text {
		var bit CodeDest
		switch r {
		case 'A':
			bit = DEST_A
		case 'D':
			bit = DEST_D
		case 'M':
			bit = DEST_M
		default:
			err = ErrDestInvalid
			return
		}
		if dest&bit != 0 {
			err = ErrDestInvalid
			return
		}
		dest |= bit
	}

	return
}

// translateCompute encodes a dest=comp;jump instruction.
func (asm *Assembler) translateCompute(text string) (code Code, err error) {
	dest_text, rest, has_dest := strings.Cut(text, "=")
	if !has_dest {
		dest_text = ""
		rest = text
	}
	comp_text, jump_text, has_jump := strings.Cut(rest, ";")

	dest, err := parseDest(dest_text)
	if err == nil && has_dest && len(dest_text) == 0 {
		err = ErrDestInvalid
	}
	if err != nil {
		if !asm.Permissive {
			return
		}
		dest, err = DEST_NULL, nil
	}

	comp, ok := compMap[comp_text]
	if !ok {
		if !asm.Permissive {
			err = ErrCompInvalid
			if len(comp_text) == 0 {
				err = ErrCompMissing
			}
			return
		}
		comp = CodeComp(0)
	}

	jump := JUMP_NULL
	if has_jump {
		jump, ok = jumpMap[jump_text]
		if !ok {
			if !asm.Permissive {
				err = ErrJumpInvalid
				return
			}
			jump = JUMP_NULL
		}
	}

	code = MakeCodeCompute(comp, dest, jump)
	return
}

// isNumber returns true for a non-empty string of decimal digits.
func isNumber(word string) bool {
	if len(word) == 0 {
		return false
	}
	for _, r := range word {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isExpression returns true for a $(...) compile time expression.
func isExpression(word string) bool {
	return len(word) >= 3 && strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")")
}

// validSymbol returns true if a symbol is letters, digits, '_', '.', '$'
// and ':', not starting with a digit.
func validSymbol(name string) bool {
	if len(name) == 0 || unicode.IsDigit(rune(name[0])) {
		return false
	}
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
		case r == '_', r == '.', r == '$', r == ':':
		default:
			return false
		}
	}
	return true
}
