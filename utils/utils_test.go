package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoggerBasicFunctions(t *testing.T) {
	User("test user message")
	Info("test info message")
	Warn("test warn message")
	Error("test error message")
	Debug("test debug message")

	if err := Errorf("test error with format: %s", "formatted"); err == nil || err.Error() != "test error with format: formatted" {
		t.Errorf("unexpected Errorf result: %v", err)
	}
}

func TestLoggerOutputs(t *testing.T) {
	var userBuf bytes.Buffer
	SetUserOutput(&userBuf)
	defer SetUserOutput(nil)
	User("test user output")
	if !strings.Contains(userBuf.String(), "test user output") {
		t.Error("User output not captured correctly")
	}

	var internalBuf bytes.Buffer
	SetInternalOutput(&internalBuf)
	defer SetDebug(false)
	Info("test internal output")
	Debug("test debug output")
	if !strings.Contains(internalBuf.String(), "test internal output") {
		t.Error("Internal output not captured correctly")
	}
	if !strings.Contains(internalBuf.String(), "test debug output") {
		t.Error("Debug output not captured at debug level")
	}
}

func TestSetDebug(t *testing.T) {
	SetDebug(true)
	if !DebugEnabled() {
		t.Error("expected debug enabled")
	}
	SetDebug(false)
	if DebugEnabled() {
		t.Error("expected debug disabled")
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := RequestIDFromContext(ctx); ok {
		t.Error("expected no request ID in empty context")
	}

	id := NewRequestID()
	if id == "" {
		t.Fatal("expected non-empty request ID")
	}
	ctx = WithRequestID(ctx, id)
	got, ok := RequestIDFromContext(ctx)
	if !ok || got != id {
		t.Errorf("expected %s, got %s (ok=%v)", id, got, ok)
	}
}

func TestCtxLoggersIncludeRequestID(t *testing.T) {
	var buf bytes.Buffer
	SetInternalOutput(&buf)
	defer SetDebug(false)

	ctx := WithRequestID(context.Background(), "req-123")
	InfoCtx(ctx, "info message", "key", "value")
	WarnCtx(ctx, "warn message")
	ErrorCtx(ctx, "error message")
	DebugCtx(ctx, "debug message")

	out := buf.String()
	for _, want := range []string{"info message", "warn message", "error message", "debug message", "req-123", "value"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log output to contain %q, got %q", want, out)
		}
	}
}

func TestWriteHTTPError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteHTTPError(w, http.StatusBadRequest, "Prompt is required")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "Prompt is required" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestWriteHTTPJSON_Unencodable(t *testing.T) {
	w := httptest.NewRecorder()
	WriteHTTPJSON(w, http.StatusOK, map[string]any{"ch": make(chan int)})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestSafeAsserts(t *testing.T) {
	if s, ok := SafeStringAssert("x"); !ok || s != "x" {
		t.Error("SafeStringAssert failed")
	}
	if _, ok := SafeStringAssert(1); ok {
		t.Error("SafeStringAssert accepted int")
	}
	if _, ok := SafeMapAssert(map[string]any{}); !ok {
		t.Error("SafeMapAssert failed")
	}
	if _, ok := SafeSliceAssert([]any{1}); !ok {
		t.Error("SafeSliceAssert failed")
	}
	if _, ok := SafeSliceAssert("nope"); ok {
		t.Error("SafeSliceAssert accepted string")
	}
}
