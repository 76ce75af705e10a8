package command

import (
	"fmt"

	"github.com/gdbmi/adapter/internal/commio"
	"github.com/gdbmi/adapter/pkg/mi"
)

// Eval evaluates expr in the current frame and returns its textual value.
func (s *Surface) Eval(expr string) (string, error) {
	rec, err := s.core.SendCommand("data-evaluate-expression " + quote(expr))
	if err != nil {
		return "", err
	}
	return requireString(rec.Results, "value")
}

// RegisterNames returns the raw results of data-list-register-names: an
// index-to-name map the caller joins against RegisterValues. The MI subset
// emitted for registers has no parsed form on the wire (spec §9); this
// package leaves the join to RegisterValues rather than guessing a layout.
func (s *Surface) RegisterNames() (mi.Tuple, error) {
	rec, err := s.core.SendCommand("data-list-register-names")
	if err != nil {
		return nil, err
	}
	return rec.Results, nil
}

// RegisterValues fetches register values in format fmtCode (GDB's single
// character format codes, e.g. "x" for hex) and decodes them into
// {number, name, value} using names as the index-to-name map produced by
// RegisterNames.
func (s *Surface) RegisterValues(fmtCode string, names mi.Tuple) ([]Register, error) {
	rec, err := s.core.SendCommand("data-list-register-values " + fmtCode)
	if err != nil {
		return nil, err
	}
	items, err := requireList(rec.Results, "register-values")
	if err != nil {
		return nil, err
	}

	nameList, _ := names["register-names"].AsList()

	out := make([]Register, 0, len(items))
	for _, item := range items {
		tup, ok := item.AsTuple()
		if !ok {
			return nil, &commio.TypeError{Field: "register-values[]"}
		}
		number, err := requireUint32(tup, "number")
		if err != nil {
			return nil, err
		}
		value, err := requireString(tup, "value")
		if err != nil {
			return nil, err
		}
		name := ""
		if int(number) < len(nameList) {
			name, _ = nameList[number].AsString()
		}
		out = append(out, Register{Number: number, Name: name, Value: value})
	}
	return out, nil
}

// Disassemble disassembles the address range [start, end).
func (s *Surface) Disassemble(start, end string) ([]AssemblyLine, error) {
	cmd := fmt.Sprintf("data-disassemble -s %s -e %s -- 0", start, end)
	rec, err := s.core.SendCommand(cmd)
	if err != nil {
		return nil, err
	}
	items, err := requireList(rec.Results, "asm_insns")
	if err != nil {
		return nil, err
	}
	out := make([]AssemblyLine, 0, len(items))
	for _, item := range items {
		tup, ok := item.AsTuple()
		if !ok {
			return nil, &commio.TypeError{Field: "asm_insns[]"}
		}
		line, err := decodeAssemblyLine(tup)
		if err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, nil
}

// ReadMemoryBytes reads size bytes starting at addr. The decoder is a
// pass-through per spec §4.4: formatting raw bytes for display is the
// front end's job, not the adapter's.
func (s *Surface) ReadMemoryBytes(addr string, size uint64) (mi.Tuple, error) {
	cmd := fmt.Sprintf("data-read-memory-bytes %s %d", addr, size)
	rec, err := s.core.SendCommand(cmd)
	if err != nil {
		return nil, err
	}
	return rec.Results, nil
}
