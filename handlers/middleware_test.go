package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"quotationeditor/testhelpers"
)

func TestRequestLogger(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	core, logs := observer.New(zapcore.DebugLevel)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/search", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := RequestLogger(zap.New(core))(e); err != nil {
		t.Fatalf("middleware error: %v", err)
	}

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["method"] != http.MethodGet {
		t.Errorf("method = %v", fields["method"])
	}
	if fields["path"] != "/api/catalog/search" {
		t.Errorf("path = %v", fields["path"])
	}
}

func TestRequestLogger_NilLogger(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	if err := RequestLogger(nil)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Errorf("middleware error: %v", err)
	}
}
