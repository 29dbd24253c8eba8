package io

import (
	"errors"

	"github.com/ezrec/hack/translate"
)

var f = translate.From

var (
	// Source errors
	ErrFormatUnknown = errors.New(f("unsupported file type, expected .asm or .hack"))
)
