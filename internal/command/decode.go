package command

import (
	"strconv"

	"github.com/gdbmi/adapter/internal/commio"
	"github.com/gdbmi/adapter/pkg/mi"
)

// quote wraps s in double quotes, as MI requires for a c-string argument.
// Callers pass raw text; no escaping of embedded quotes is performed here —
// a location or expression containing a literal `"` will produce malformed
// MI. This is a preserved, not fixed, source behavior (spec §9 open
// question); tightening it is a documented deviation, not the default.
func quote(s string) string {
	return `"` + s + `"`
}

func requireTuple(t mi.Tuple, field string) (mi.Tuple, error) {
	v, ok := t[field]
	if !ok {
		return nil, &commio.MissingField{Field: field}
	}
	tup, ok := v.AsTuple()
	if !ok {
		return nil, &commio.TypeError{Field: field}
	}
	return tup, nil
}

func requireList(t mi.Tuple, field string) ([]mi.Value, error) {
	v, ok := t[field]
	if !ok {
		return nil, &commio.MissingField{Field: field}
	}
	list, ok := v.AsList()
	if !ok {
		return nil, &commio.TypeError{Field: field}
	}
	return list, nil
}

func requireString(t mi.Tuple, field string) (string, error) {
	v, ok := t[field]
	if !ok {
		return "", &commio.MissingField{Field: field}
	}
	s, ok := v.AsString()
	if !ok {
		return "", &commio.TypeError{Field: field}
	}
	return s, nil
}

func optString(t mi.Tuple, field string) string {
	v, ok := t[field]
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}

func requireUint32(t mi.Tuple, field string) (uint32, error) {
	s, err := requireString(t, field)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, &commio.TypeError{Field: field}
	}
	return uint32(n), nil
}

func optUint32(t mi.Tuple, field string) uint32 {
	s := optString(t, field)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// decodeBreakpoint decodes one bkpt tuple (from break-insert's `results.bkpt`
// or a break-list table row) into a Breakpoint. number is required and
// numeric per spec §9 (the source stores it both ways; the decoded form is
// numeric).
func decodeBreakpoint(t mi.Tuple) (Breakpoint, error) {
	number, err := requireUint32(t, "number")
	if err != nil {
		return Breakpoint{}, err
	}
	return Breakpoint{
		Number:   number,
		Enabled:  optString(t, "enabled") == "y",
		Addr:     optString(t, "addr"),
		Func:     optString(t, "func"),
		File:     optString(t, "file"),
		Fullname: optString(t, "fullname"),
		Line:     optUint32(t, "line"),
		Times:    optUint32(t, "times"),
	}, nil
}

// DecodeFrame decodes a stack-list-frames entry, unwrapping one level of
// `frame` if the tuple is wrapped as {frame={…}}.
func DecodeFrame(t mi.Tuple) (StackFrame, error) {
	if inner, ok := t["frame"]; ok {
		tup, ok := inner.AsTuple()
		if !ok {
			return StackFrame{}, &commio.TypeError{Field: "frame"}
		}
		t = tup
	}
	return StackFrame{
		Level:    optUint32(t, "level"),
		Addr:     optString(t, "addr"),
		Func:     optString(t, "func"),
		File:     optString(t, "file"),
		Fullname: optString(t, "fullname"),
		Line:     optUint32(t, "line"),
	}, nil
}

func decodeVariable(t mi.Tuple) (Variable, error) {
	name, err := requireString(t, "name")
	if err != nil {
		return Variable{}, err
	}
	return Variable{
		Name:  name,
		Value: optString(t, "value"),
		Type:  optString(t, "type"),
	}, nil
}

func decodeAssemblyLine(t mi.Tuple) (AssemblyLine, error) {
	addr, err := requireString(t, "address")
	if err != nil {
		return AssemblyLine{}, err
	}
	inst, err := requireString(t, "inst")
	if err != nil {
		return AssemblyLine{}, err
	}
	return AssemblyLine{
		Address:     addr,
		Function:    optString(t, "func-name"),
		Offset:      optString(t, "offset"),
		Instruction: inst,
		Opcodes:     optString(t, "opcodes"),
	}, nil
}
