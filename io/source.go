// Package io provides the file collaborators of the Hack tools: loading
// .asm and .hack sources, and saving programs and memory reports.
package io

import (
	"io/fs"
	"path"
	"strings"

	"github.com/ezrec/hack/cpu"
)

// Format is a source file format.
type Format int

const (
	FORMAT_ASM  = Format(0) // .asm
	FORMAT_HACK = Format(1) // .hack
)

// FormatOf determines the source format from the file name extension.
func FormatOf(name string) (format Format, err error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".asm":
		format = FORMAT_ASM
	case ".hack":
		format = FORMAT_HACK
	default:
		err = ErrFormatUnknown
	}

	return
}

// Rename replaces the extension of name with ext.
func Rename(name string, ext string) string {
	return strings.TrimSuffix(name, path.Ext(name)) + ext
}

// Load reads a source file, assembling it if it is .asm or parsing
// the binary words if it is .hack.
func Load(fsys fs.FS, name string, asm *cpu.Assembler) (prog *cpu.Program, err error) {
	format, err := FormatOf(name)
	if err != nil {
		return
	}

	inf, err := fsys.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	switch format {
	case FORMAT_ASM:
		prog, err = asm.Parse(inf)
	case FORMAT_HACK:
		prog, err = cpu.ParseBinary(inf)
	}

	return
}
