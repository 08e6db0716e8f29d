package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func capture(t *testing.T, level Level, verboseOut bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetMinLevel(level)
	SetVerbose(verboseOut)
	t.Cleanup(func() {
		SetOutput(nil)
		SetMinLevel(LevelWarn)
		SetVerbose(false)
	})
	return &buf
}

func TestFieldsAreEncoded(t *testing.T) {
	buf := capture(t, LevelDebug, false)
	Debugw("table pipeline", Fields{"rows": 3, "err": errors.New("boom"), "took": 2 * time.Millisecond})

	var e struct {
		Level  string         `json:"level"`
		Msg    string         `json:"msg"`
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("not a JSON line: %v (%s)", err, buf.String())
	}
	if e.Level != "debug" || e.Msg != "table pipeline" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.Fields["rows"] != float64(3) || e.Fields["err"] != "boom" || e.Fields["took"] != "2ms" {
		t.Fatalf("unexpected fields %v", e.Fields)
	}
}

func TestMinLevelFilters(t *testing.T) {
	buf := capture(t, LevelWarn, false)
	Infof("hidden %d", 1)
	Debugw("hidden", nil)
	Warnf("shown %d", 2)
	got := buf.String()
	if strings.Contains(got, "hidden") || !strings.Contains(got, "shown 2") {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestTruncationWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	w := StdlogWriter(LevelDebug, &buf)
	SetMinLevel(LevelDebug)
	SetVerbose(false)
	t.Cleanup(func() { SetMinLevel(LevelWarn) })

	long := strings.Repeat("a", 6000)
	if _, err := w.Write([]byte(long + "\n")); err != nil {
		t.Fatalf("write error: %v", err)
	}
	if !strings.Contains(buf.String(), "truncated") {
		t.Fatalf("expected truncation indicator, got: %s", buf.String())
	}
}

func TestNoTruncationWhenVerbose(t *testing.T) {
	buf := capture(t, LevelDebug, true)
	Infow("long", Fields{"v": strings.Repeat("b", 4000)})
	if strings.Contains(buf.String(), "truncated") {
		t.Fatalf("did not expect truncation, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"debug": LevelDebug, "INFO": LevelInfo, " warning ": LevelWarn, "error": LevelError} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) want %v got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
