package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// DefaultQuotePrefix is used when no prefix is configured.
const DefaultQuotePrefix = "QT"

// formatQuoteNumber constructs the quote number string from components.
func formatQuoteNumber(prefix string, year, sequence int) string {
	return fmt.Sprintf("%s-%02d-%04d", prefix, year%100, sequence)
}

// GenerateQuoteNumber creates the next quote number for the calendar year
// of now.
// Format: {prefix}-{yy}-{sequence}
// - yy: two-digit calendar year
// - sequence: 4-digit zero-padded, per year
func GenerateQuoteNumber(app core.App, prefix string, now time.Time) (string, error) {
	if prefix == "" {
		prefix = DefaultQuotePrefix
	}
	yearPrefix := fmt.Sprintf("%s-%02d-", prefix, now.Year()%100)

	existing, err := app.FindRecordsByFilter(
		"quotations",
		"quote_no ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": yearPrefix + "%"},
	)
	if err != nil {
		return "", fmt.Errorf("quote number: count existing: %w", err)
	}

	return formatQuoteNumber(prefix, now.Year(), len(existing)+1), nil
}
