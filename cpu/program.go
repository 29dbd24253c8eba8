package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// Opcode represents a line of assembled code with its source location and generated instruction.
type Opcode struct {
	LineNo int    // Source line number, or 0 if unknown.
	Ip     int    // Instruction index.
	Text   string // Source text.
	Code   Code   // Instruction word.
}

// Program is an ordered sequence of instruction words.
type Program struct {
	Opcodes []Opcode
}

// MakeProgram creates a program from instruction words without source information.
func MakeProgram(codes ...Code) (prog *Program) {
	prog = &Program{}
	for ip, code := range codes {
		prog.Opcodes = append(prog.Opcodes, Opcode{Ip: ip, Text: code.String(), Code: code})
	}

	return
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Debug returns the opcode at an instruction index, or nil.
func (prog *Program) Debug(ip int) (op *Opcode) {
	if ip >= 0 && ip < len(prog.Opcodes) {
		op = &prog.Opcodes[ip]
	}

	return
}

// Codes returns an iterator over the instruction words by index.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(ip int, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Ip, op.Code) {
				return
			}
		}
	}
}

// Rom returns the instruction words.
func (prog *Program) Rom() (rom []Code) {
	rom = make([]Code, 0, len(prog.Opcodes))
	for _, code := range prog.Codes() {
		rom = append(rom, code)
	}

	return
}

// Binary returns the instruction words as lines of '0' and '1'.
func (prog *Program) Binary() (bins []string) {
	for _, code := range prog.Codes() {
		bins = append(bins, code.Binary())
	}

	return
}

// WriteBinary writes the program in .hack text form.
func (prog *Program) WriteBinary(output io.Writer) (err error) {
	for _, bin := range prog.Binary() {
		_, err = fmt.Fprintln(output, bin)
		if err != nil {
			return
		}
	}

	return
}

// Listing writes the program with indexes, words and source text.
func (prog *Program) Listing(output io.Writer) (err error) {
	for _, op := range prog.Opcodes {
		_, err = fmt.Fprintf(output, "%5d %v %-16v %v\n", op.Ip, op.Code.Binary(), op.Code, op.Text)
		if err != nil {
			return
		}
	}

	return
}

// ParseBinary parses .hack text, one 16 character binary word per line.
// Lines not starting with '0' or '1' are ignored.
func ParseBinary(input io.Reader) (prog *Program, err error) {
	prog = &Program{}

	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || (line[0] != '0' && line[0] != '1') {
			continue
		}

		var word uint64
		if len(line) == 16 {
			word, err = strconv.ParseUint(line, 2, 16)
		}
		if len(line) != 16 || err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: ErrBinaryInvalid}
			return
		}

		code := Code(word)
		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: lineno,
			Ip:     len(prog.Opcodes),
			Text:   line,
			Code:   code,
		})
	}

	err = scanner.Err()
	if err != nil {
		prog = nil
	}

	return
}
