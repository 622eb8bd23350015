package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"quotationeditor/config"
	"quotationeditor/services"
	"quotationeditor/testhelpers"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func noStore() (*services.QuotationStore, error) {
	return nil, errors.New("store not expected")
}

func clipboardText(s string) func() (string, error) {
	return func() (string, error) { return s, nil }
}

func TestPasteCommand_FromClipboard(t *testing.T) {
	cmd := newPasteCommand(testConfig(t), zap.NewNop(), noStore,
		clipboardText("EL-001\tLED panel\tPCS\t2\t85\t25\nEL-002\tDownlight"))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	got := out.String()
	for _, want := range []string{"EL-001", "LED panel", "Downlight", "195.00", "SAR 195.00", "SAR 29.25", "SAR 224.25"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPasteCommand_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.tsv")
	if err := os.WriteFile(path, []byte("PL-001\tBasin mixer\tSET\t1\t120\t40\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newPasteCommand(testConfig(t), zap.NewNop(), noStore, func() (string, error) {
		return "", errors.New("clipboard should not be read")
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--file", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out.String(), "SAR 184.00") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestPasteCommand_NotMultiCell(t *testing.T) {
	cmd := newPasteCommand(testConfig(t), zap.NewNop(), noStore, clipboardText("single value"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); !errors.Is(err, errNotMultiCell) {
		t.Errorf("expected errNotMultiCell, got %v", err)
	}
}

func TestPasteCommand_Save(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewQuotationStore(app, nil, "")

	cmd := newPasteCommand(testConfig(t), zap.NewNop(),
		func() (*services.QuotationStore, error) { return store, nil },
		clipboardText("EL-001\tLED panel\tPCS\t1\t10\t0\n"))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--save"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	text := out.String()
	idx := strings.Index(text, "Saved quotation ")
	if idx < 0 {
		t.Fatalf("no saved line in output:\n%s", text)
	}
	id := strings.TrimSpace(text[idx+len("Saved quotation "):])

	got, err := store.Load(id)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Code != "EL-001" {
		t.Errorf("items = %+v", got.Items)
	}
	if got.Header.Currency != "SAR" {
		t.Errorf("currency = %q", got.Header.Currency)
	}
}
