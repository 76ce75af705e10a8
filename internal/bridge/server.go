package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/mdns"

	"github.com/gdbmi/adapter/internal/adapter"
	"github.com/gdbmi/adapter/internal/debug"
	"github.com/gdbmi/adapter/internal/state"
)

// mDNSServiceType is the Bonjour/mDNS service type this bridge advertises,
// grounded on the teacher's webMDNSServiceType but renamed for this domain.
const mDNSServiceType = "_gdbmi._tcp"

// Options configures a Server.
type Options struct {
	Host string
	Port int

	// Advertise enables mDNS advertisement of the bridge under
	// _gdbmi._tcp, named ServiceName (default "gdbmi").
	Advertise   bool
	ServiceName string
}

func (o Options) withDefaults() Options {
	if o.Host == "" {
		o.Host = "127.0.0.1"
	}
	if o.Port <= 0 {
		o.Port = 8787
	}
	if strings.TrimSpace(o.ServiceName) == "" {
		o.ServiceName = "gdbmi"
	}
	return o
}

// Server hosts the WebSocket event/control bridge in front of a single
// adapter.Session, mirroring the lifecycle of the teacher's webserver.Server
// (Start/Shutdown/Addr) trimmed to the one endpoint this domain needs.
type Server struct {
	session *adapter.Session
	opts    Options

	httpServer *http.Server
	broadcast  *broadcaster
	mdnsServer *mdns.Server
}

// NewServer wires a bridge in front of an already-constructed session. The
// session need not be started yet; StartSession/StopSession may be driven
// independently of the bridge's own lifecycle.
func NewServer(session *adapter.Session, opts Options) *Server {
	opts = opts.withDefaults()
	srv := &Server{
		session:   session,
		opts:      opts,
		broadcast: newBroadcaster(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/events", srv.handleEventsWebSocket)
	mux.HandleFunc("/ws/terminal", srv.handleTerminalWebSocket)

	srv.httpServer = &http.Server{
		Addr:              srv.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv
}

// Addr returns the bound host:port address.
func (srv *Server) Addr() string {
	return net.JoinHostPort(srv.opts.Host, strconv.Itoa(srv.opts.Port))
}

// URL returns the ws:// URL front-ends should connect to for the event
// stream, used for QR-code pairing by the CLI.
func (srv *Server) URL() string {
	return fmt.Sprintf("ws://%s/ws/events", srv.Addr())
}

// Start binds the listener, relays the session's state/output/breakpoints
// events to connected front-ends, and serves in a background goroutine,
// returning immediately, matching the teacher's Server.Start shape. The
// session must already be started (its Handler must exist) before calling
// Start, or the relay registers nothing.
func (srv *Server) Start() error {
	ln, err := net.Listen("tcp", srv.Addr())
	if err != nil {
		return err
	}
	if tcpAddr, ok := ln.Addr().(*net.TCPAddr); ok {
		srv.opts.Port = tcpAddr.Port
		srv.httpServer.Addr = srv.Addr()
	}

	srv.relayStateEvents()

	go func() {
		if err := srv.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			debug.LogKV("bridge", "server stopped with error", "error", err)
		}
	}()

	if srv.opts.Advertise {
		if err := srv.startMDNS(); err != nil {
			debug.LogKV("bridge", "mdns advertisement failed", "error", err)
		}
	}

	debug.LogKV("bridge", "server started", "addr", srv.Addr())
	return nil
}

// Shutdown gracefully stops the HTTP server and mDNS advertisement.
func (srv *Server) Shutdown(ctx context.Context) error {
	if srv.mdnsServer != nil {
		_ = srv.mdnsServer.Shutdown()
		srv.mdnsServer = nil
	}
	if srv.httpServer == nil {
		return nil
	}
	return srv.httpServer.Shutdown(ctx)
}

// relayStateEvents registers observers on the session's state handler that
// forward every event into the broadcaster, which fans it out to connected
// WebSocket clients. Registration is additive (state.Handler offers no way
// to unregister), so this must only be called once per Server.
func (srv *Server) relayStateEvents() {
	h := srv.session.State()
	if h == nil {
		return
	}
	h.ObserveState(func(ev state.StateChangedEvent) { srv.broadcast.publish(toEnvelope(ev)) })
	h.ObserveOutput(func(ev state.OutputEvent) { srv.broadcast.publish(toEnvelope(ev)) })
	h.ObserveBreakpoints(func(ev state.BreakpointsStaleEvent) { srv.broadcast.publish(toEnvelope(ev)) })
	h.ObserveConnection(func(ev state.ConnectionLostEvent) { srv.broadcast.publish(toEnvelope(ev)) })
}

// startMDNS advertises the bridge under _gdbmi._tcp, grounded on the
// teacher's startWebMDNSService.
func (srv *Server) startMDNS() error {
	_, portStr, err := net.SplitHostPort(srv.Addr())
	if err != nil {
		return err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	txtRecords := []string{
		fmt.Sprintf("service=%s", srv.opts.ServiceName),
		fmt.Sprintf("url=%s", srv.URL()),
	}
	service, err := mdns.NewMDNSService(srv.opts.ServiceName, mDNSServiceType, "local", "", port, nil, txtRecords)
	if err != nil {
		return err
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return err
	}
	srv.mdnsServer = server
	return nil
}
