package command

import "github.com/gdbmi/adapter/internal/commio"

// Surface formats MI commands, dispatches them through a communication
// core, and decodes the replies. It holds no state of its own beyond the
// core it was built with.
type Surface struct {
	core *commio.Core
}

// New builds a command Surface bound to core.
func New(core *commio.Core) *Surface {
	return &Surface{core: core}
}
