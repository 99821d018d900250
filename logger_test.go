package bezier

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
)

func TestDefaultLoggerDiscards(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger returned nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should not be enabled")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(custom)
	defer SetLogger(nil)

	if Logger() != custom {
		t.Fatal("Logger didn't return the configured logger")
	}
	Logger().Debug("hello", "k", 1)
	if buf.Len() == 0 {
		t.Error("configured logger received nothing")
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) didn't restore the discarding logger")
	}
}

func TestSetLoggerConcurrent(t *testing.T) {
	defer SetLogger(nil)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(slog.New(nopHandler{}))
			} else {
				Logger().Debug("concurrent")
			}
		}()
	}
	wg.Wait()
}
