package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/gdbmi/adapter/internal/debug"
)

// controlEnvelope is the small control protocol a front-end sends on the
// events socket to drive the façade, e.g.
// {"action":"break_insert","location":"main.c:10"}.
type controlEnvelope struct {
	Action   string   `json:"action"`
	Location string   `json:"location,omitempty"`
	Number   uint32   `json:"number,omitempty"`
	Expr     string   `json:"expr,omitempty"`
	Args     []string `json:"args,omitempty"`
}

// handleEventsWebSocket streams state/output/breakpoints envelopes to the
// client and accepts controlEnvelope frames in the other direction,
// matching the shape of the teacher's handleSessionWebSocket but collapsed
// to the one session this adapter ever manages.
func (srv *Server) handleEventsWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}
	defer ws.CloseNow()

	ctx := r.Context()
	sub := srv.broadcast.subscribe()
	defer srv.broadcast.unsubscribe(sub)

	go srv.readControlMessages(ctx, ws)

	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-sub:
			if !ok {
				return
			}
			data, err := json.Marshal(env)
			if err != nil {
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err = ws.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

func (srv *Server) readControlMessages(ctx context.Context, ws *websocket.Conn) {
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			return
		}
		var ctrl controlEnvelope
		if err := json.Unmarshal(data, &ctrl); err != nil {
			continue
		}
		if err := srv.dispatchControl(ctrl); err != nil {
			debug.LogKV("bridge", "control command failed", "action", ctrl.Action, "error", err.Error())
		}
	}
}

// dispatchControl forwards a control envelope to the session's typed
// command surface. Unknown actions are ignored rather than treated as
// errors, since a front-end ahead of this adapter's command set should
// degrade gracefully.
func (srv *Server) dispatchControl(ctrl controlEnvelope) error {
	commands := srv.session.Commands()
	if commands == nil {
		return nil
	}
	switch ctrl.Action {
	case "break_insert":
		_, err := commands.BreakInsert(ctrl.Location)
		return err
	case "break_delete":
		return commands.BreakDelete(ctrl.Number)
	case "break_enable":
		return commands.BreakEnable(ctrl.Number)
	case "break_disable":
		return commands.BreakDisable(ctrl.Number)
	case "run":
		return commands.Run(ctrl.Args...)
	case "continue":
		return commands.Continue()
	case "step":
		return commands.Step()
	case "next":
		return commands.Next()
	case "stepi":
		return commands.StepInstruction()
	case "nexti":
		return commands.NextInstruction()
	case "finish":
		return commands.Finish()
	case "interrupt":
		return commands.Interrupt()
	case "eval":
		_, err := commands.Eval(ctrl.Expr)
		return err
	default:
		return nil
	}
}
