package mi

import (
	"fmt"
	"strconv"
	"strings"
)

// ResultClass enumerates the class identifiers a ResultRecord can carry.
type ResultClass int

const (
	ResultDone ResultClass = iota
	ResultRunning
	ResultConnected
	ResultError
	ResultExit
	resultUnknown
)

var resultClassNames = map[string]ResultClass{
	"done":      ResultDone,
	"running":   ResultRunning,
	"connected": ResultConnected,
	"error":     ResultError,
	"exit":      ResultExit,
}

func (c ResultClass) String() string {
	for name, v := range resultClassNames {
		if v == c {
			return name
		}
	}
	return "unknown"
}

// AsyncKind distinguishes the three async record prefixes.
type AsyncKind int

const (
	AsyncExec AsyncKind = iota
	AsyncNotify
	AsyncStatus
)

func (k AsyncKind) String() string {
	switch k {
	case AsyncExec:
		return "exec"
	case AsyncNotify:
		return "notify"
	case AsyncStatus:
		return "status"
	default:
		return "unknown"
	}
}

// AsyncClass enumerates the spontaneous event classes GDB reports via async
// records. Unrecognized classes are preserved verbatim as the AsyncClass
// string itself, so forward-compatible GDB versions don't cause parse
// failures.
type AsyncClass string

const (
	AsyncClassRunning            AsyncClass = "running"
	AsyncClassStopped            AsyncClass = "stopped"
	AsyncClassThreadGroupAdded   AsyncClass = "thread-group-added"
	AsyncClassThreadGroupRemoved AsyncClass = "thread-group-removed"
	AsyncClassThreadGroupStarted AsyncClass = "thread-group-started"
	AsyncClassThreadGroupExited  AsyncClass = "thread-group-exited"
	AsyncClassThreadCreated      AsyncClass = "thread-created"
	AsyncClassThreadExited       AsyncClass = "thread-exited"
	AsyncClassThreadSelected     AsyncClass = "thread-selected"
	AsyncClassLibraryLoaded      AsyncClass = "library-loaded"
	AsyncClassLibraryUnloaded    AsyncClass = "library-unloaded"
	AsyncClassBreakpointCreated  AsyncClass = "breakpoint-created"
	AsyncClassBreakpointModified AsyncClass = "breakpoint-modified"
	AsyncClassBreakpointDeleted  AsyncClass = "breakpoint-deleted"
	AsyncClassMemoryChanged      AsyncClass = "memory-changed"
	AsyncClassRecordStarted      AsyncClass = "record-started"
	AsyncClassRecordStopped      AsyncClass = "record-stopped"
	AsyncClassCmdParamChanged    AsyncClass = "cmd-param-changed"
	AsyncClassTraceframeChanged  AsyncClass = "traceframe-changed"
	AsyncClassTsvCreated         AsyncClass = "tsv-created"
	AsyncClassTsvDeleted         AsyncClass = "tsv-deleted"
	AsyncClassTsvModified        AsyncClass = "tsv-modified"
)

// StreamChannel distinguishes the three stream record prefixes.
type StreamChannel int

const (
	ChannelConsole StreamChannel = iota
	ChannelTarget
	ChannelLog
)

func (ch StreamChannel) String() string {
	switch ch {
	case ChannelConsole:
		return "console"
	case ChannelTarget:
		return "target"
	case ChannelLog:
		return "log"
	default:
		return "unknown"
	}
}

// RecordKind tags which variant a Record holds.
type RecordKind int

const (
	KindResult RecordKind = iota
	KindAsync
	KindStream
	// KindNone is the distinguished "no record" outcome for prompt and
	// blank lines; never an error.
	KindNone
)

// Record is the result of parsing one MI output line: a ResultRecord, an
// AsyncRecord, a StreamRecord, or the NoRecord sentinel.
type Record struct {
	Kind RecordKind

	// Result fields (Kind == KindResult).
	Token       *uint32
	ResultClass ResultClass

	// Async fields (Kind == KindAsync). Token may also be set.
	AsyncKind  AsyncKind
	AsyncClass AsyncClass

	// Shared by Result and Async: the decoded key=value tuple.
	Results Tuple

	// Stream fields (Kind == KindStream).
	Channel StreamChannel
	Content string
}

// NoRecord is returned by Parse for the GDB prompt line and blank lines.
var NoRecord = Record{Kind: KindNone}

// ParseError reports a line that failed to parse. It is never fatal: the
// reader logs and continues past it.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mi: parse error on line %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse parses one already-terminator-stripped output line from GDB into a
// Record. It is a total function: every input maps to a Record, NoRecord, or
// a *ParseError; it never panics.
func Parse(line string) (Record, error) {
	trimmed := strings.TrimRight(line, "\r\n")
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" || trimmed == "(gdb)" {
		return NoRecord, nil
	}

	if rec, err, handled := parseStream(trimmed); handled {
		if err != nil {
			return Record{}, &ParseError{Line: line, Err: err}
		}
		return rec, nil
	}

	if rec, err, handled := parseAsync(trimmed); handled {
		if err != nil {
			return Record{}, &ParseError{Line: line, Err: err}
		}
		return rec, nil
	}

	if rec, err, handled := parseResult(trimmed); handled {
		if err != nil {
			return Record{}, &ParseError{Line: line, Err: err}
		}
		return rec, nil
	}

	return Record{}, &ParseError{Line: line, Err: fmt.Errorf("unrecognized record prefix")}
}

func parseStream(line string) (Record, error, bool) {
	if len(line) == 0 {
		return Record{}, nil, false
	}
	var ch StreamChannel
	switch line[0] {
	case '~':
		ch = ChannelConsole
	case '@':
		ch = ChannelTarget
	case '&':
		ch = ChannelLog
	default:
		return Record{}, nil, false
	}

	c := newCursor(line[1:])
	s, err := c.parseQuotedString()
	if err != nil {
		return Record{}, err, true
	}
	return Record{Kind: KindStream, Channel: ch, Content: s}, nil, true
}

func parseAsync(line string) (Record, error, bool) {
	token, rest := splitToken(line)
	if rest == "" {
		return Record{}, nil, false
	}
	var kind AsyncKind
	switch rest[0] {
	case '*':
		kind = AsyncExec
	case '=':
		kind = AsyncNotify
	case '+':
		kind = AsyncStatus
	default:
		return Record{}, nil, false
	}

	body := rest[1:]
	class, remainder := splitClass(body)
	c := newCursor(remainder)
	var tok *uint32
	if token != nil {
		tok = token
	}
	results, err := c.parseKeyValueList()
	if err != nil {
		return Record{}, err, true
	}
	return Record{
		Kind:       KindAsync,
		Token:      tok,
		AsyncKind:  kind,
		AsyncClass: AsyncClass(class),
		Results:    results,
	}, nil, true
}

func parseResult(line string) (Record, error, bool) {
	token, rest := splitToken(line)
	if rest == "" || rest[0] != '^' {
		return Record{}, nil, false
	}
	body := rest[1:]
	className, remainder := splitClass(body)
	class, ok := resultClassNames[className]
	if !ok {
		return Record{}, fmt.Errorf("unknown result class %q", className), true
	}
	c := newCursor(remainder)
	results, err := c.parseKeyValueList()
	if err != nil {
		return Record{}, err, true
	}
	return Record{
		Kind:        KindResult,
		Token:       token,
		ResultClass: class,
		Results:     results,
	}, nil, true
}

// splitToken consumes an optional leading decimal token prefix, returning
// the parsed token (nil if absent) and the remainder of the line.
func splitToken(line string) (*uint32, string) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 {
		return nil, line
	}
	n, err := strconv.ParseUint(line[:i], 10, 32)
	if err != nil {
		return nil, line
	}
	tok := uint32(n)
	return &tok, line[i:]
}

// splitClass splits a record body into its class identifier (up to the
// first comma or end of string) and the remainder (after the comma, if any).
func splitClass(body string) (class string, remainder string) {
	idx := strings.IndexByte(body, ',')
	if idx < 0 {
		return body, ""
	}
	return body[:idx], body[idx+1:]
}
