package cpu

import (
	"errors"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// isIdentifier returns true if name can be predeclared to starlark.
func isIdentifier(name string) bool {
	if len(name) == 0 || unicode.IsDigit(rune(name[0])) {
		return false
	}
	for _, r := range name {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// parenEval does compile-time $(...) evaluations over the bound symbols.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, address := range asm.Symbols.All() {
		// Symbols such as 'LOOP.end' can not be referenced.
		if !isIdentifier(name) {
			continue
		}
		pred[name] = starlark.MakeInt(int(address))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrAddressRange
		return
	}
	return
}
