package emulator

import (
	"errors"

	"github.com/ezrec/hack/translate"
)

var f = translate.From

var (
	ErrCyclesInvalid = errors.New(f("cycle budget must be positive"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Pc     int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d pc %d %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
