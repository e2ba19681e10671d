package logger

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"log/slog"
)

func newCapturedHandler(t *testing.T, format logFormat) (*structuredHandler, *asyncWriter, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	h := newStructuredHandler(handlerConfig{
		level:    slog.LevelDebug,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	})
	return h, aw, buf
}

func drainLine(t *testing.T, aw *asyncWriter, buf *bytes.Buffer) string {
	t.Helper()
	if err := aw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return strings.TrimSpace(buf.String())
}

func TestHandlerSummaryKVOrder(t *testing.T) {
	h, aw, buf := newCapturedHandler(t, formatKV)
	ctx := WithRID(Background(), "rid-abc")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)
	ctx = WithHandler(ctx, "callback.tests_run")

	log := slog.New(h).With("component", "tg")
	LogEvent(ctx, log, slog.LevelInfo, "handler.handled",
		slog.String("status", "ok"),
		slog.String("screen", "result"),
		slog.String("outcome", "ok"),
		slog.Int64("duration_ms", 12),
	)
	line := drainLine(t, aw, buf)
	if line == "" {
		t.Fatal("expected log line")
	}

	tokens := strings.Split(line, " ")
	expected := []string{"ts=", "level=INFO", "component=tg", "event=handler.handled", "status=ok", "rid=rid-abc"}
	for i, prefix := range expected {
		if !strings.HasPrefix(tokens[i], prefix) {
			t.Fatalf("token %d = %s, expected prefix %s (line: %s)", i, tokens[i], prefix, line)
		}
	}
	// Handler name travels on the context, not as an attr.
	if !strings.Contains(line, "handler=callback.tests_run") {
		t.Fatalf("handler missing: %s", line)
	}
	s, o, d := strings.Index(line, "screen="), strings.Index(line, "outcome="), strings.Index(line, "duration_ms=")
	if !(s >= 0 && s < o && o < d) {
		t.Fatalf("screen/outcome/duration_ms out of order: %s", line)
	}
}

func TestHandlerCalcEventJSON(t *testing.T) {
	h, aw, buf := newCapturedHandler(t, formatJSON)
	ctx := WithRID(Background(), "rid-json")
	ctx = WithUpdateMeta(ctx, 11, 22, 33)

	log := slog.New(h).With("component", "service.turnover")
	LogEvent(ctx, log, slog.LevelDebug, "calc.submitted",
		slog.String("screen", "result"),
		slog.Int("tokens", 5),
	)
	line := drainLine(t, aw, buf)
	if !strings.HasPrefix(line, "{") {
		t.Fatalf("expected JSON, got %s", line)
	}
	prefixes := []string{`{"ts":`, `"level":"DEBUG"`, `"component":"service.turnover"`, `"event":"calc.submitted"`, `"screen":"result"`, `"tokens":5`}
	pos := -1
	for _, pref := range prefixes {
		idx := strings.Index(line, pref)
		if idx == -1 || idx < pos {
			t.Fatalf("prefix %s not found in order within %s", pref, line)
		}
		pos = idx
	}
	if !strings.Contains(line, `"ts_unix_nano"`) {
		t.Fatalf("expected ts_unix_nano in JSON output, got %s", line)
	}
	if !strings.Contains(line, `"user_id":22`) {
		t.Fatalf("context user_id missing: %s", line)
	}
}

func TestHandlerDurationKeyNormalization(t *testing.T) {
	h, aw, buf := newCapturedHandler(t, formatKV)
	log := slog.New(h).With("component", "app")
	LogEvent(Background(), log, slog.LevelInfo, "telegram.started",
		slog.String("status", "ok"),
		slog.Duration("startup_duration", 1500*time.Millisecond),
	)
	line := drainLine(t, aw, buf)
	if !strings.Contains(line, "startup_duration_ms=1500") {
		t.Fatalf("duration attr must be renamed and rounded to ms: %s", line)
	}
	if strings.Contains(line, "startup_duration=") {
		t.Fatalf("raw duration key leaked: %s", line)
	}
}

func TestHandlerDropsUnknownOutcome(t *testing.T) {
	h, aw, buf := newCapturedHandler(t, formatKV)
	log := slog.New(h).With("component", "tg")
	LogEvent(Background(), log, slog.LevelInfo, "handler.handled",
		slog.String("status", "ok"),
		slog.String("outcome", "sideways"),
	)
	line := drainLine(t, aw, buf)
	if strings.Contains(line, "outcome=") {
		t.Fatalf("unknown outcome value must be dropped: %s", line)
	}
}

func TestHandlerCompactRID(t *testing.T) {
	rawRID := "123:456:789"

	h, aw, buf := newCapturedHandler(t, formatKV)
	log := slog.New(h).With("component", "app")
	LogEvent(WithRID(Background(), rawRID), log, slog.LevelInfo, "rid.test",
		slog.String("status", "ok"),
	)
	line := drainLine(t, aw, buf)
	if !strings.Contains(line, "rid="+CompactRID(rawRID)) {
		t.Fatalf("expected compact rid, got %s", line)
	}
	if strings.Contains(line, "rid_full=") {
		t.Fatalf("rid_full should be omitted in KV output, got %s", line)
	}

	jh, jaw, jbuf := newCapturedHandler(t, formatJSON)
	jlog := slog.New(jh).With("component", "app")
	LogEvent(WithRID(Background(), rawRID), jlog, slog.LevelInfo, "rid.test",
		slog.String("status", "ok"),
	)
	jline := drainLine(t, jaw, jbuf)
	if !strings.Contains(jline, `"rid":"`+CompactRID(rawRID)+`"`) {
		t.Fatalf("expected compact rid in JSON, got %s", jline)
	}
	if !strings.Contains(jline, `"rid_full":"`+rawRID+`"`) {
		t.Fatalf("expected rid_full in JSON output, got %s", jline)
	}
}
