package command

// Execution control operations are acknowledgement only: success is the
// command completing without a GdbError, the actual state transition is
// observed asynchronously by internal/state from the resulting async
// records.

func (s *Surface) Run(args ...string) error {
	cmd := "exec-run"
	for _, a := range args {
		cmd += " " + quote(a)
	}
	_, err := s.core.SendCommand(cmd)
	return err
}

func (s *Surface) Continue() error {
	_, err := s.core.SendCommand("exec-continue")
	return err
}

func (s *Surface) Step() error {
	_, err := s.core.SendCommand("exec-step")
	return err
}

func (s *Surface) Next() error {
	_, err := s.core.SendCommand("exec-next")
	return err
}

func (s *Surface) StepInstruction() error {
	_, err := s.core.SendCommand("exec-step-instruction")
	return err
}

func (s *Surface) NextInstruction() error {
	_, err := s.core.SendCommand("exec-next-instruction")
	return err
}

func (s *Surface) Finish() error {
	_, err := s.core.SendCommand("exec-finish")
	return err
}

// Interrupt requests a stop via the MI `exec-interrupt` command. Note this
// is distinct from process.Supervisor.Interrupt, which delivers an
// operating-system signal; the two are alternative ways to achieve the same
// effect and a front end may use either.
func (s *Surface) Interrupt() error {
	_, err := s.core.SendCommand("exec-interrupt")
	return err
}
