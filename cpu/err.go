package cpu

import (
	"errors"

	"github.com/ezrec/hack/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrPcEmpty        = errors.New(f("pc empty"))
	ErrOpcodeComp     = errors.New(f("comp unknown"))
	ErrOpcodeReserved = errors.New(f("reserved bits clear"))
	ErrMemoryRange    = errors.New(f("memory address out of range"))

	// Assembler errors
	ErrLabelSyntax     = errors.New(f("label syntax"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelPredefined = errors.New(f("label redefines predefined symbol"))
	ErrSymbolInvalid   = errors.New(f("symbol invalid"))
	ErrVariableFull    = errors.New(f("variable space exhausted"))
	ErrAddressMissing  = errors.New(f("address missing"))
	ErrAddressRange    = errors.New(f("address out of range"))
	ErrCompMissing     = errors.New(f("comp missing"))
	ErrCompInvalid     = errors.New(f("comp invalid"))
	ErrDestInvalid     = errors.New(f("dest invalid"))
	ErrJumpInvalid     = errors.New(f("jump invalid"))
	ErrBinaryInvalid   = errors.New(f("binary word invalid"))
)

type ErrSymbolMissing string

func (es ErrSymbolMissing) Error() string {
	return f("symbol %v missing", string(es))
}

type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode %016b %v", uint16(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
