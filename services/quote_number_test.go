package services

import (
	"testing"
	"time"

	"quotationeditor/testhelpers"
)

func TestFormatQuoteNumber(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		year   int
		seq    int
		expect string
	}{
		{"first", "QT", 2026, 1, "QT-26-0001"},
		{"padded", "QT", 2026, 42, "QT-26-0042"},
		{"wide_sequence", "QT", 2026, 12345, "QT-26-12345"},
		{"year_2000", "Q", 2000, 7, "Q-00-0007"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatQuoteNumber(tt.prefix, tt.year, tt.seq); got != tt.expect {
				t.Errorf("formatQuoteNumber() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestGenerateQuoteNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	got, err := GenerateQuoteNumber(app, "", now)
	if err != nil {
		t.Fatalf("GenerateQuoteNumber() error: %v", err)
	}
	if got != "QT-26-0001" {
		t.Errorf("first number = %q, want QT-26-0001", got)
	}

	testhelpers.CreateTestQuotation(t, app, "QT-26-0001")
	testhelpers.CreateTestQuotation(t, app, "QT-25-0009")
	testhelpers.CreateTestQuotation(t, app, "XY-26-0001")

	got, err = GenerateQuoteNumber(app, "QT", now)
	if err != nil {
		t.Fatalf("GenerateQuoteNumber() error: %v", err)
	}
	if got != "QT-26-0002" {
		t.Errorf("next number = %q, want QT-26-0002", got)
	}

	got, err = GenerateQuoteNumber(app, "XY", now)
	if err != nil {
		t.Fatalf("GenerateQuoteNumber() error: %v", err)
	}
	if got != "XY-26-0002" {
		t.Errorf("custom prefix = %q, want XY-26-0002", got)
	}
}
