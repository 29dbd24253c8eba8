package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ezrec/hack/cpu"
)

// Report is the memory change report written after a simulation.
// Addresses are encoded in numeric order.
type Report struct {
	RAM cpu.ChangeSet
}

var _ json.Marshaler = (*Report)(nil)

// MarshalJSON encodes the report as {"RAM": {"addr": value, ...}}.
func (rp *Report) MarshalJSON() (data []byte, err error) {
	var buf bytes.Buffer

	buf.WriteString(`{"RAM":{`)
	first := true
	for address, value := range rp.RAM.Sorted() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		fmt.Fprintf(&buf, `"%d":%d`, address, value)
	}
	buf.WriteString(`}}`)

	data = buf.Bytes()
	return
}

// WriteReport writes the change set as indented JSON.
func WriteReport(output io.Writer, changes cpu.ChangeSet) (err error) {
	data, err := json.MarshalIndent(&Report{RAM: changes}, "", "    ")
	if err != nil {
		return
	}

	data = append(data, '\n')
	_, err = output.Write(data)
	return
}
