package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type catalogDef struct {
	code          string
	description   string
	unit          string
	materialPrice float64
	laborPrice    float64
	category      string
}

// catalogSeed is a starter price list for maintenance quotations.
var catalogSeed = []catalogDef{
	{"EL-001", "LED panel light 60x60 40W", "PCS", 85, 25, "Electrical"},
	{"EL-002", "LED downlight 12W", "PCS", 32, 15, "Electrical"},
	{"EL-003", "Twin socket outlet 13A", "PCS", 18, 20, "Electrical"},
	{"EL-004", "Cable 2.5mm2 single core", "M", 2.5, 1, "Electrical"},
	{"EL-005", "Distribution board 12 way", "PCS", 420, 180, "Electrical"},
	{"PL-001", "PPR pipe 25mm", "M", 6, 4, "Plumbing"},
	{"PL-002", "Wash basin mixer", "PCS", 140, 45, "Plumbing"},
	{"PL-003", "Floor drain 100mm", "PCS", 35, 30, "Plumbing"},
	{"AC-001", "Split AC service", "SET", 0, 120, "HVAC"},
	{"AC-002", "Refrigerant top-up R410A", "KG", 55, 20, "HVAC"},
	{"CV-001", "Gypsum board partition", "SQM", 48, 35, "Civil"},
	{"CV-002", "Ceramic floor tile 60x60", "SQM", 42, 28, "Civil"},
	{"CV-003", "Emulsion paint two coats", "SQM", 6, 9, "Civil"},
	{"GN-001", "Site cleaning after works", "LS", 0, 250, "General"},
}

// Seed populates the price catalog with starter entries. It is safe to call
// on every startup because it returns early if any catalog records exist.
func Seed(app *pocketbase.PocketBase) error {
	catalogCol, err := app.FindCollectionByNameOrId("price_catalog")
	if err != nil {
		return fmt.Errorf("seed: could not find price_catalog collection: %w", err)
	}
	existing, err := app.FindRecordsByFilter(catalogCol, "id != ''", "", 1, 0)
	if err != nil {
		return fmt.Errorf("seed: could not query price_catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	for _, def := range catalogSeed {
		rec := core.NewRecord(catalogCol)
		rec.Set("code", def.code)
		rec.Set("description", def.description)
		rec.Set("unit", def.unit)
		rec.Set("material_price", def.materialPrice)
		rec.Set("labor_price", def.laborPrice)
		rec.Set("category", def.category)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: save catalog entry %s: %w", def.code, err)
		}
	}

	log.Printf("seed: created %d price catalog entries", len(catalogSeed))
	return nil
}
