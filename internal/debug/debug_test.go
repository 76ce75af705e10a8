package debug

import (
	"os"
	"strings"
	"testing"
)

func TestShouldEnableFromEnv(t *testing.T) {
	tests := []struct {
		name string
		val  string
		want bool
	}{
		{name: "unset", val: "", want: false},
		{name: "1", val: "1", want: true},
		{name: "true", val: "true", want: true},
		{name: "yes", val: "YES", want: true},
		{name: "0", val: "0", want: false},
		{name: "garbage", val: "maybe", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvEnabled, tt.val)
			if got := ShouldEnableFromEnv(); got != tt.want {
				t.Fatalf("ShouldEnableFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInitWritesHeaderAndLogLines(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	defer Close()

	path, err := Init()
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !Enabled() {
		t.Fatalf("expected Enabled() after Init")
	}
	if Path() != path {
		t.Fatalf("Path() = %q, want %q", Path(), path)
	}

	LogKV("test", "hello", "k", "v")
	Close()

	if Enabled() {
		t.Fatalf("expected Enabled() false after Close")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "GDBMI ADAPTER DEBUG LOG") {
		t.Fatalf("missing header: %q", s)
	}
	if !strings.Contains(s, "[test") || !strings.Contains(s, "hello k=v") {
		t.Fatalf("missing emitted debug line: %q", s)
	}
	if !strings.Contains(s, "=== DEBUG LOG CLOSED ===") {
		t.Fatalf("missing close marker: %q", s)
	}
}

func TestLogIsNoopWhenDisabled(t *testing.T) {
	Close() // ensure disabled
	Log("test", "should not panic or allocate a file")
	Logf("test", "%d", 1)
	LogKV("test", "msg", "k", "v")
	if Enabled() {
		t.Fatalf("expected disabled")
	}
	if Path() != "" {
		t.Fatalf("Path() = %q, want empty", Path())
	}
}
