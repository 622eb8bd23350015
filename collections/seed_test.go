package collections_test

import (
	"testing"

	"quotationeditor/collections"
	"quotationeditor/testhelpers"
)

func TestSeed_CreatesCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	catalogCol, _ := app.FindCollectionByNameOrId("price_catalog")
	entries, err := app.FindAllRecords(catalogCol)
	if err != nil {
		t.Fatalf("query price_catalog error: %v", err)
	}
	if len(entries) < 10 {
		t.Fatalf("expected at least 10 catalog entries, got %d", len(entries))
	}

	rec, err := app.FindFirstRecordByData("price_catalog", "code", "EL-001")
	if err != nil {
		t.Fatalf("EL-001 not seeded: %v", err)
	}
	if rec.GetString("unit") != "PCS" {
		t.Errorf("EL-001 unit = %q, want PCS", rec.GetString("unit"))
	}
	if rec.GetFloat("material_price") != 85 || rec.GetFloat("labor_price") != 25 {
		t.Errorf("EL-001 prices = %v/%v", rec.GetFloat("material_price"), rec.GetFloat("labor_price"))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	catalogCol, _ := app.FindCollectionByNameOrId("price_catalog")
	first, _ := app.FindAllRecords(catalogCol)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}
	second, _ := app.FindAllRecords(catalogCol)

	if len(first) != len(second) {
		t.Errorf("expected %d entries after idempotent seed, got %d", len(first), len(second))
	}
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCatalogEntry(t, app, "OWN-1", "Own entry", 1, 2)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	catalogCol, _ := app.FindCollectionByNameOrId("price_catalog")
	entries, _ := app.FindAllRecords(catalogCol)
	if len(entries) != 1 {
		t.Errorf("expected seed to skip existing catalog, got %d entries", len(entries))
	}
}
