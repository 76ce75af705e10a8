// Package commio is the communication core: it owns the stdin writer, the
// token counter, the pending-command table, and the stdout/stderr reader
// loops that demultiplex GDB's replies by token and broadcast everything
// else as events.
package commio

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/gdbmi/adapter/internal/debug"
	"github.com/gdbmi/adapter/internal/eventq"
	"github.com/gdbmi/adapter/pkg/mi"
)

// eventBufferSize bounds the broadcast channel so a slow or absent observer
// never blocks the reader loop; Offer drops events rather than awaiting
// capacity.
const eventBufferSize = 256

// Core is the communication core for one GDB session. Only the writer
// (SendCommand) inserts into the pending table; only the reader removes.
// Both hold the mutex only for the table mutation itself, never across I/O.
type Core struct {
	stdin io.WriteCloser

	mu      sync.Mutex
	pending map[uint32]chan mi.Record

	nextToken atomic.Uint32
	running   atomic.Bool

	events chan Event

	readerDone sync.WaitGroup
}

// New constructs a Core bound to stdin. StartReaders must be called with the
// stdout/stderr readers before SendCommand is used.
func New(stdin io.WriteCloser) *Core {
	c := &Core{
		stdin:   stdin,
		pending: make(map[uint32]chan mi.Record),
		events:  make(chan Event, eventBufferSize),
	}
	c.nextToken.Store(1)
	c.running.Store(true)
	return c
}

// Events returns the broadcast channel for async records, token-less result
// records, stream records, and connection-lost notifications.
func (c *Core) Events() <-chan Event { return c.events }

// IsRunning reports whether the core still accepts commands.
func (c *Core) IsRunning() bool { return c.running.Load() }

// SendCommand implements the send protocol of spec §4.3: allocate a token,
// register a single-shot sink, write "{T}-{text}\n", and await the sink. A
// result record of class error is translated into a *GdbError.
func (c *Core) SendCommand(text string) (mi.Record, error) {
	if !c.running.Load() {
		return mi.Record{}, ErrChannelClosed
	}

	token := c.nextToken.Add(1) - 1
	sink := make(chan mi.Record, 1)

	c.mu.Lock()
	c.pending[token] = sink
	c.mu.Unlock()

	line := fmt.Sprintf("%d-%s\n", token, text)
	if _, err := io.WriteString(c.stdin, line); err != nil {
		c.mu.Lock()
		delete(c.pending, token)
		c.mu.Unlock()
		return mi.Record{}, &WriteError{Err: err}
	}

	rec, ok := <-sink
	if !ok {
		return mi.Record{}, ErrChannelClosed
	}
	if rec.Kind == mi.KindResult && rec.ResultClass == mi.ResultError {
		msg := ""
		if v, ok := rec.Results["msg"]; ok {
			msg, _ = v.AsString()
		}
		return rec, &GdbError{Msg: msg}
	}
	return rec, nil
}

// StartReaders launches the stdout and stderr reader loops. Call once after
// New. Both loops run until EOF, or until the first line read after
// Shutdown (the running flag is checked once per line).
func (c *Core) StartReaders(stdout, stderr io.Reader) {
	c.readerDone.Add(2)
	go c.readStdout(stdout)
	go c.readStderr(stderr)
}

// Wait blocks until both reader loops have finished (EOF or Shutdown).
func (c *Core) Wait() { c.readerDone.Wait() }

// readStdout implements the reader loop of spec §4.3: parse each line,
// route result records with a token to their pending sink, and broadcast
// everything else.
func (c *Core) readStdout(stdout io.Reader) {
	defer c.readerDone.Done()
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		if !c.running.Load() {
			break
		}
		line := scanner.Text()
		rec, err := mi.Parse(line)
		if err != nil {
			debug.LogKV("commio", "parse error, skipping line", "err", err.Error(), "line", line)
			continue
		}
		c.dispatch(rec)
	}

	c.onConnectionLost(scanner.Err())
}

// dispatch routes one parsed record per §4.3.
func (c *Core) dispatch(rec mi.Record) {
	switch rec.Kind {
	case mi.KindNone:
		return
	case mi.KindResult:
		if rec.Token != nil {
			c.completePending(*rec.Token, rec)
			return
		}
		c.emit(Event{Kind: EventResult, Record: rec})
	case mi.KindAsync:
		c.emit(Event{Kind: EventAsync, Record: rec})
	case mi.KindStream:
		c.emit(Event{Kind: EventStream, Record: rec})
	}
}

// completePending removes the pending entry for token and delivers rec to
// it. A token with no matching entry is discarded silently (spurious or
// abandoned).
func (c *Core) completePending(token uint32, rec mi.Record) {
	c.mu.Lock()
	sink, ok := c.pending[token]
	if ok {
		delete(c.pending, token)
	}
	c.mu.Unlock()

	if !ok {
		debug.LogKV("commio", "discarding result for unknown token", "token", token)
		return
	}
	sink <- rec
}

// readStderr wraps each non-empty stderr line into a synthetic log-channel
// stream record, per §4.3's "single ordered view" requirement.
func (c *Core) readStderr(stderr io.Reader) {
	defer c.readerDone.Done()
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		if !c.running.Load() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		rec := mi.Record{Kind: mi.KindStream, Channel: mi.ChannelLog, Content: line}
		c.emit(Event{Kind: EventStream, Record: rec})
	}
}

func (c *Core) emit(ev Event) {
	if !eventq.Offer(c.events, ev) {
		debug.Log("commio", "event channel full, dropping event")
	}
}

// onConnectionLost treats stdout EOF/IO-error as process death: it stops
// accepting new commands, drains the pending table with ErrChannelClosed,
// and broadcasts a connection-lost event.
func (c *Core) onConnectionLost(err error) {
	c.Shutdown()
	c.emit(Event{Kind: EventConnectionLost, Err: err})
}

// Shutdown sets the running flag to false and drains the pending table,
// completing each outstanding sink with ErrChannelClosed (by closing it,
// which SendCommand observes as a closed-channel receive). Idempotent.
func (c *Core) Shutdown() {
	if !c.running.CompareAndSwap(true, false) {
		return
	}
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[uint32]chan mi.Record)
	c.mu.Unlock()

	for _, sink := range pending {
		close(sink)
	}
}
