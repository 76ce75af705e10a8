package mi

import (
	"errors"
	"testing"
)

func u32(n uint32) *uint32 { return &n }

func TestParse_ResultRecordDone(t *testing.T) {
	rec, err := Parse("^done")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Kind != KindResult {
		t.Fatalf("kind = %v, want KindResult", rec.Kind)
	}
	if rec.Token != nil {
		t.Fatalf("token = %v, want nil", *rec.Token)
	}
	if rec.ResultClass != ResultDone {
		t.Fatalf("class = %v, want done", rec.ResultClass)
	}
	if len(rec.Results) != 0 {
		t.Fatalf("results = %v, want empty", rec.Results)
	}
}

func TestParse_ResultRecordWithTokenAndBreakpoint(t *testing.T) {
	line := `42^done,bkpt={number="1",type="breakpoint",enabled="y",line="68"}`
	rec, err := Parse(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Token == nil || *rec.Token != 42 {
		t.Fatalf("token = %v, want 42", rec.Token)
	}
	bkpt, ok := rec.Results["bkpt"]
	if !ok || !bkpt.IsTuple() {
		t.Fatalf("bkpt field missing or not a tuple: %v", rec.Results)
	}
	number, ok := bkpt.Field("number")
	if !ok {
		t.Fatalf("bkpt.number missing")
	}
	s, _ := number.AsString()
	if s != "1" {
		t.Fatalf("bkpt.number = %q, want %q", s, "1")
	}
}

func TestParse_ErrorResult(t *testing.T) {
	rec, err := Parse(`7^error,msg="No symbol table is loaded."`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ResultClass != ResultError {
		t.Fatalf("class = %v, want error", rec.ResultClass)
	}
	msg, ok := rec.Results["msg"]
	if !ok {
		t.Fatalf("msg field missing")
	}
	s, _ := msg.AsString()
	if s != "No symbol table is loaded." {
		t.Fatalf("msg = %q", s)
	}
}

func TestParse_AsyncStoppedBreakpointHit(t *testing.T) {
	line := `*stopped,reason="breakpoint-hit",thread-id="1",frame={addr="0x08048564",func="main",file="p.c",line="68"}`
	rec, err := Parse(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Kind != KindAsync || rec.AsyncKind != AsyncExec || rec.AsyncClass != AsyncClassStopped {
		t.Fatalf("unexpected record: %+v", rec)
	}
	frame, ok := rec.Results["frame"]
	if !ok || !frame.IsTuple() {
		t.Fatalf("frame missing or not tuple")
	}
	fn, _ := frame.Field("func")
	s, _ := fn.AsString()
	if s != "main" {
		t.Fatalf("frame.func = %q, want main", s)
	}
}

func TestParse_AsyncStoppedExited(t *testing.T) {
	rec, err := Parse(`*stopped,reason="exited",exit-code="2"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	code, ok := rec.Results["exit-code"]
	if !ok {
		t.Fatalf("exit-code missing")
	}
	s, _ := code.AsString()
	if s != "2" {
		t.Fatalf("exit-code = %q, want 2", s)
	}
}

func TestParse_StreamEscapes(t *testing.T) {
	rec, err := Parse(`~"Hello\nWorld\n"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Kind != KindStream || rec.Channel != ChannelConsole {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Content != "Hello\nWorld\n" {
		t.Fatalf("content = %q", rec.Content)
	}
}

func TestParse_StreamEscapedQuotesAndBackslashes(t *testing.T) {
	rec, err := Parse(`&"a \"quoted\" \\ value\n"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `a "quoted" \ value` + "\n"
	if rec.Content != want {
		t.Fatalf("content = %q, want %q", rec.Content, want)
	}
}

func TestParse_PromptAndBlankAreNoRecord(t *testing.T) {
	for _, line := range []string{"(gdb)", "", "   "} {
		rec, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", line, err)
		}
		if rec.Kind != KindNone {
			t.Fatalf("Parse(%q) = %+v, want NoRecord", line, rec)
		}
	}
}

func TestParse_UnterminatedStringIsError(t *testing.T) {
	_, err := Parse(`~"unterminated`)
	if err == nil {
		t.Fatalf("expected error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}

func TestParse_UnknownPrefixIsError(t *testing.T) {
	_, err := Parse("this is not an MI line")
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestParse_TrailingCommaTolerated(t *testing.T) {
	rec, err := Parse(`^done,a="1",`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Results) != 1 {
		t.Fatalf("results = %v, want 1 entry", rec.Results)
	}
}

func TestParse_EmptyListAndTuple(t *testing.T) {
	rec, err := Parse(`^done,list=[],table={}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := rec.Results["list"]
	if !ok || !list.IsList() {
		t.Fatalf("list field missing or not a list")
	}
	items, _ := list.AsList()
	if len(items) != 0 {
		t.Fatalf("list has %d items, want 0", len(items))
	}
	table, ok := rec.Results["table"]
	if !ok || !table.IsTuple() {
		t.Fatalf("table field missing or not a tuple")
	}
}

func TestParse_DuplicateKeyLastWriterWins(t *testing.T) {
	rec, err := Parse(`^done,x="1",x="2"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := rec.Results["x"]
	if !ok {
		t.Fatalf("x missing")
	}
	s, _ := v.AsString()
	if s != "2" {
		t.Fatalf("x = %q, want 2 (last writer wins)", s)
	}
}

func TestParse_NestedDepthThreeRoundTrips(t *testing.T) {
	line := `^done,a={b={c=[1,2,3]}}`
	rec, err := Parse(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := rec.Results["a"].AsTuple()
	b, _ := a["b"].AsTuple()
	c, ok := b["c"]
	if !ok || !c.IsList() {
		t.Fatalf("a.b.c missing or not a list: %v", rec.Results)
	}
	items, _ := c.AsList()
	if len(items) != 3 {
		t.Fatalf("a.b.c has %d items, want 3", len(items))
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	cases := []Record{
		{Kind: KindResult, ResultClass: ResultDone, Results: Tuple{}},
		{Kind: KindResult, Token: u32(42), ResultClass: ResultError, Results: Tuple{"msg": String("boom")}},
		{Kind: KindAsync, AsyncKind: AsyncExec, AsyncClass: AsyncClassStopped, Results: Tuple{
			"reason": String("breakpoint-hit"),
			"frame": TupleValue(Tuple{
				"func": String("main"),
				"line": String("68"),
			}),
		}},
		{Kind: KindStream, Channel: ChannelLog, Content: "a \"quoted\" \\ value\n"},
	}
	for _, rec := range cases {
		formatted := Format(rec)
		reparsed, err := Parse(formatted)
		if err != nil {
			t.Fatalf("Parse(Format(%+v)) error: %v (formatted=%q)", rec, err, formatted)
		}
		if reparsed.Kind != rec.Kind {
			t.Fatalf("round-trip kind mismatch: %+v vs %+v", reparsed, rec)
		}
	}
}

func TestParse_NeverPanics(t *testing.T) {
	inputs := []string{
		"", "^", "*", "=", "+", "~", "@", "&", "1^", "^done,",
		"^done,a=", "^done,a={", "^done,a=[", `^done,a="`, "{}[]",
		"999999999999999999999999^done",
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Parse(%q) panicked: %v", in, r)
				}
			}()
			_, _ = Parse(in)
		}()
	}
}
