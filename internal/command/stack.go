package command

import (
	"fmt"

	"github.com/gdbmi/adapter/internal/commio"
)

// StackFrames lists frames in [low, high], or all frames if both are < 0.
func (s *Surface) StackFrames(low, high int) ([]StackFrame, error) {
	cmd := "stack-list-frames"
	if low >= 0 && high >= 0 {
		cmd = fmt.Sprintf("%s %d %d", cmd, low, high)
	} else if low >= 0 {
		cmd = fmt.Sprintf("%s %d", cmd, low)
	}
	rec, err := s.core.SendCommand(cmd)
	if err != nil {
		return nil, err
	}
	items, err := requireList(rec.Results, "stack")
	if err != nil {
		return nil, err
	}
	out := make([]StackFrame, 0, len(items))
	for _, item := range items {
		tup, ok := item.AsTuple()
		if !ok {
			return nil, &commio.TypeError{Field: "stack[]"}
		}
		frame, err := DecodeFrame(tup)
		if err != nil {
			return nil, err
		}
		out = append(out, frame)
	}
	return out, nil
}

// Locals lists variables visible in the current frame. allValues selects
// --all-values over --no-values.
func (s *Surface) Locals(allValues bool) ([]Variable, error) {
	flag := "--no-values"
	if allValues {
		flag = "--all-values"
	}
	rec, err := s.core.SendCommand("stack-list-variables " + flag)
	if err != nil {
		return nil, err
	}
	items, err := requireList(rec.Results, "variables")
	if err != nil {
		return nil, err
	}
	out := make([]Variable, 0, len(items))
	for _, item := range items {
		tup, ok := item.AsTuple()
		if !ok {
			return nil, &commio.TypeError{Field: "variables[]"}
		}
		v, err := decodeVariable(tup)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
