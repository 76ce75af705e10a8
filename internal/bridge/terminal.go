package bridge

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const terminalReadBufferLen = 4096

// terminalWSMessage mirrors the teacher's pty_handler.go wire shape, applied
// to the debuggee's pty instead of a login shell.
type terminalWSMessage struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
	Cols int    `json:"cols,omitempty"`
	Rows int    `json:"rows,omitempty"`
}

// handleTerminalWebSocket streams the inferior's pseudo-terminal (allocated
// via Options.InferiorPTY at session start) to a remote front end, the same
// base64-framed input/output/resize protocol as the teacher's login-shell
// terminal bridge, just pointed at the debuggee.
func (srv *Server) handleTerminalWebSocket(w http.ResponseWriter, r *http.Request) {
	inferior := srv.session.InferiorPTY()
	if inferior == nil || inferior.Master == nil {
		http.Error(w, "no inferior pty allocated for this session", http.StatusNotFound)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}
	defer ws.CloseNow()

	ctx := r.Context()
	var writeMu sync.Mutex

	send := func(msg terminalWSMessage) error {
		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		writeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		return ws.Write(writeCtx, websocket.MessageText, data)
	}

	go func() {
		buf := make([]byte, terminalReadBufferLen)
		for {
			n, readErr := inferior.Master.Read(buf)
			if n > 0 {
				msg := terminalWSMessage{Type: "output", Data: base64.StdEncoding.EncodeToString(buf[:n])}
				if err := send(msg); err != nil {
					ws.CloseNow()
					return
				}
			}
			if readErr != nil {
				if !errors.Is(readErr, io.EOF) {
					ws.Close(websocket.StatusInternalError, "pty read failed")
				}
				return
			}
		}
	}()

	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			return
		}
		var msg terminalWSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "input":
			if msg.Data == "" {
				continue
			}
			decoded, err := base64.StdEncoding.DecodeString(msg.Data)
			if err != nil || len(decoded) == 0 {
				continue
			}
			if _, err := inferior.Master.Write(decoded); err != nil {
				return
			}
		case "resize":
			if msg.Cols <= 0 || msg.Rows <= 0 {
				continue
			}
			_ = inferior.Resize(clampToUint16(msg.Cols), clampToUint16(msg.Rows))
		}
	}
}

func clampToUint16(value int) uint16 {
	if value < 1 {
		return 1
	}
	if value > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(value)
}
