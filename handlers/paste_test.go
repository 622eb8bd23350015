package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quotationeditor/grid"
	"quotationeditor/testhelpers"
)

func TestHandlePastePreview_MultiCell(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	text := "EL-001\tLED panel\tPCS\t2\t10\t5\r\nEL-002\tDownlight\n"
	req := httptest.NewRequest(http.MethodPost, "/api/quotations/paste-preview", strings.NewReader(text))
	rec := httptest.NewRecorder()

	if err := HandlePastePreview()(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		MultiCell bool            `json:"multiCell"`
		Items     []grid.LineItem `json:"items"`
		Totals    grid.Totals     `json:"totals"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.MultiCell {
		t.Error("expected multiCell true")
	}
	if len(body.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(body.Items))
	}
	if body.Items[1].Unit != grid.DefaultUnit || body.Items[1].Quantity != grid.DefaultQuantity {
		t.Errorf("defaults not applied: %+v", body.Items[1])
	}
	if body.Totals.ScopeTotal != 25 {
		t.Errorf("scopeTotal = %v, want 25", body.Totals.ScopeTotal)
	}
}

func TestHandlePastePreview_SingleCell(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/quotations/paste-preview", strings.NewReader("just text"))
	rec := httptest.NewRecorder()

	HandlePastePreview()(newTestRequestEvent(app, req, rec))
	testhelpers.AssertBodyContains(t, rec.Body.String(), `"multiCell":false`)
}
