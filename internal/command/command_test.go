package command

import (
	"bufio"
	"io"
	"testing"
	"time"

	"github.com/gdbmi/adapter/internal/commio"
)

// fakeGDB wires a Surface to an in-memory pipe pair and lets tests script
// GDB's replies to each command line it observes.
type fakeGDB struct {
	t       *testing.T
	surface *Surface
	core    *commio.Core
	cmds    chan string
	stdoutW io.WriteCloser
}

func newFakeGDB(t *testing.T) *fakeGDB {
	t.Helper()
	stdinR, stdinW := io.Pipe()
	stdoutR, stdoutW := io.Pipe()
	stderrR, stderrW := io.Pipe()

	core := commio.New(stdinW)
	core.StartReaders(stdoutR, stderrR)

	f := &fakeGDB{t: t, core: core, surface: New(core), cmds: make(chan string, 16), stdoutW: stdoutW}

	go func() {
		scanner := bufio.NewScanner(stdinR)
		for scanner.Scan() {
			f.cmds <- scanner.Text()
		}
	}()

	t.Cleanup(func() {
		core.Shutdown()
		stdinW.Close()
		stdoutW.Close()
		stderrW.Close()
	})

	return f
}

// expectCommandThenReply writes a raw line (already including the token prefix if needed) to
// GDB's simulated stdout, after waiting for and discarding the next
// observed command line.
func (f *fakeGDB) expectCommandThenReply(line string) {
	f.t.Helper()
	select {
	case <-f.cmds:
	case <-time.After(2 * time.Second):
		f.t.Fatalf("timed out waiting for command")
	}
	if _, err := io.WriteString(f.stdoutW, line+"\n"); err != nil {
		f.t.Fatalf("write reply: %v", err)
	}
}

func TestBreakInsert_Decodes(t *testing.T) {
	f := newFakeGDB(t)
	done := make(chan struct{})
	var number uint32
	var err error
	go func() {
		number, err = f.surface.BreakInsert("main")
		close(done)
	}()
	f.expectCommandThenReply(`1^done,bkpt={number="1",type="breakpoint",enabled="y",line="68"}`)
	<-done
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != 1 {
		t.Fatalf("number = %d, want 1", number)
	}
}

func TestBreakInsert_MissingNumberIsMissingField(t *testing.T) {
	f := newFakeGDB(t)
	done := make(chan struct{})
	var err error
	go func() {
		_, err = f.surface.BreakInsert("main")
		close(done)
	}()
	f.expectCommandThenReply(`1^done,bkpt={type="breakpoint",enabled="y"}`)
	<-done
	var mf *commio.MissingField
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := err.(*commio.MissingField); !ok {
		t.Fatalf("err = %T (%v), want *commio.MissingField", err, err)
	}
	_ = mf
}

func TestBreakInsert_GdbError(t *testing.T) {
	f := newFakeGDB(t)
	done := make(chan struct{})
	var err error
	go func() {
		_, err = f.surface.BreakInsert("nosuchfile.c:1")
		close(done)
	}()
	f.expectCommandThenReply(`1^error,msg="No symbol table is loaded."`)
	<-done
	gerr, ok := err.(*commio.GdbError)
	if !ok {
		t.Fatalf("err = %T, want *commio.GdbError", err)
	}
	if gerr.Msg != "No symbol table is loaded." {
		t.Fatalf("msg = %q", gerr.Msg)
	}
}

func TestBreakList_MissingBodyYieldsEmpty(t *testing.T) {
	f := newFakeGDB(t)
	done := make(chan struct{})
	var list []Breakpoint
	var err error
	go func() {
		list, err = f.surface.BreakList()
		close(done)
	}()
	f.expectCommandThenReply(`1^done,BreakpointTable={nr_rows="0"}`)
	<-done
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("list = %v, want empty", list)
	}
}

func TestEval_ReturnsValueText(t *testing.T) {
	f := newFakeGDB(t)
	done := make(chan struct{})
	var value string
	var err error
	go func() {
		value, err = f.surface.Eval("x + 1")
		close(done)
	}()
	f.expectCommandThenReply(`1^done,value="43"`)
	<-done
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "43" {
		t.Fatalf("value = %q, want 43", value)
	}
}

func TestStackFrames_UnwrapsFrameWrapper(t *testing.T) {
	f := newFakeGDB(t)
	done := make(chan struct{})
	var frames []StackFrame
	var err error
	go func() {
		frames, err = f.surface.StackFrames(-1, -1)
		close(done)
	}()
	f.expectCommandThenReply(`1^done,stack=[frame={level="0",addr="0x1",func="main",file="p.c",line="10"}]`)
	<-done
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(frames) != 1 || frames[0].Func != "main" {
		t.Fatalf("frames = %+v", frames)
	}
}

func TestExecutionAcks(t *testing.T) {
	f := newFakeGDB(t)
	done := make(chan struct{})
	var err error
	go func() {
		err = f.surface.Continue()
		close(done)
	}()
	f.expectCommandThenReply(`1^running`)
	<-done
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
