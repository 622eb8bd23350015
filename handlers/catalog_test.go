package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quotationeditor/grid"
	"quotationeditor/services"
	"quotationeditor/testhelpers"
)

type failingSearcher struct{}

func (failingSearcher) Search(context.Context, string) ([]grid.Candidate, error) {
	return nil, errors.New("catalog offline")
}

func TestHandleCatalogSearch(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCatalogEntry(t, app, "EL-001", "LED panel", 85, 25)
	testhelpers.CreateTestCatalogEntry(t, app, "PL-001", "Basin mixer", 120, 40)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/search?q=el", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := HandleCatalogSearch(services.NewCatalogSearch(app, nil, 0), nil)(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Query      string           `json:"query"`
		Candidates []grid.Candidate `json:"candidates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Query != "el" {
		t.Errorf("query = %q", body.Query)
	}
	if len(body.Candidates) != 1 || body.Candidates[0].Code != "EL-001" {
		t.Errorf("candidates = %+v", body.Candidates)
	}
	if body.Candidates[0].MaterialPrice != 85 {
		t.Errorf("material price = %v", body.Candidates[0].MaterialPrice)
	}
}

func TestHandleCatalogSearch_EmptyResultIsArray(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/search?q=zzz", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	HandleCatalogSearch(services.NewCatalogSearch(app, nil, 0), nil)(e)
	testhelpers.AssertBodyContains(t, rec.Body.String(), `"candidates":[]`)
}

func TestHandleCatalogSearch_Error(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/search?q=a", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	HandleCatalogSearch(failingSearcher{}, nil)(e)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func newUploadRequest(t *testing.T, target, fileName, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte(content))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandleCatalogImport(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newUploadRequest(t, "/api/catalog/import", "prices.csv",
		"Code,Description,Unit,Material Price,Labor Price\nHV-1,Split unit,SET,1800,350\n")
	rec := httptest.NewRecorder()

	if err := HandleCatalogImport(app, nil)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertBodyContains(t, rec.Body.String(), `"created":1`)

	if _, err := app.FindFirstRecordByData("price_catalog", "code", "HV-1"); err != nil {
		t.Errorf("imported entry not found: %v", err)
	}
}

func TestHandleCatalogImport_ErrorReport(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := newUploadRequest(t, "/api/catalog/import?report=xlsx", "prices.csv",
		"Code,Description\n,Missing code\n")
	rec := httptest.NewRecorder()

	HandleCatalogImport(app, nil)(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "catalog_import_errors.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestHandleCatalogImport_MissingFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/catalog/import", strings.NewReader(""))
	rec := httptest.NewRecorder()

	HandleCatalogImport(app, nil)(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleCatalogTemplate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCatalogEntry(t, app, "EL-001", "LED panel", 85, 25)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/template", nil)
	rec := httptest.NewRecorder()

	if err := HandleCatalogTemplate(app, nil)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "price_catalog.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty body")
	}
}
