package command

import (
	"fmt"

	"github.com/gdbmi/adapter/internal/commio"
)

// BreakInsert sets a breakpoint at location and returns its number.
func (s *Surface) BreakInsert(location string) (uint32, error) {
	rec, err := s.core.SendCommand("break-insert " + quote(location))
	if err != nil {
		return 0, err
	}
	bkpt, err := requireTuple(rec.Results, "bkpt")
	if err != nil {
		return 0, err
	}
	bp, err := decodeBreakpoint(bkpt)
	if err != nil {
		return 0, err
	}
	return bp.Number, nil
}

// BreakDelete removes breakpoint n. Acknowledgement only.
func (s *Surface) BreakDelete(n uint32) error {
	_, err := s.core.SendCommand(fmt.Sprintf("break-delete %d", n))
	return err
}

// BreakDisable disables breakpoint n. Acknowledgement only.
func (s *Surface) BreakDisable(n uint32) error {
	_, err := s.core.SendCommand(fmt.Sprintf("break-disable %d", n))
	return err
}

// BreakEnable enables breakpoint n. Acknowledgement only.
func (s *Surface) BreakEnable(n uint32) error {
	_, err := s.core.SendCommand(fmt.Sprintf("break-enable %d", n))
	return err
}

// BreakList lists all breakpoints. A missing BreakpointTable.body yields an
// empty list rather than an error.
func (s *Surface) BreakList() ([]Breakpoint, error) {
	rec, err := s.core.SendCommand("break-list")
	if err != nil {
		return nil, err
	}
	table, ok := rec.Results["BreakpointTable"]
	if !ok {
		return nil, nil
	}
	tableTuple, ok := table.AsTuple()
	if !ok {
		return nil, &commio.TypeError{Field: "BreakpointTable"}
	}
	body, ok := tableTuple["body"]
	if !ok {
		return nil, nil
	}
	items, ok := body.AsList()
	if !ok {
		return nil, &commio.TypeError{Field: "BreakpointTable.body"}
	}

	out := make([]Breakpoint, 0, len(items))
	for _, item := range items {
		tup, ok := item.AsTuple()
		if !ok {
			return nil, &commio.TypeError{Field: "BreakpointTable.body[]"}
		}
		bp, err := decodeBreakpoint(tup)
		if err != nil {
			return nil, err
		}
		out = append(out, bp)
	}
	return out, nil
}
