package grid

import (
	"testing"
)

func testDefaults() Defaults {
	return Defaults{
		Currency:   "SAR",
		Validity:   "30 days",
		Exclusions: []string{"Civil works", "Permits"},
	}
}

func TestNewModel(t *testing.T) {
	m := NewModel(testDefaults())

	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	it, _ := m.Item(0)
	if it.ID == "" {
		t.Error("new row has no ID")
	}
	if it.Unit != DefaultUnit || it.Quantity != DefaultQuantity {
		t.Errorf("new row = %+v, want unit %q qty %v", it, DefaultUnit, DefaultQuantity)
	}
	if !it.IsBlank() {
		t.Error("new row should be blank")
	}
	h := m.Header()
	if h.Currency != "SAR" || h.Validity != "30 days" {
		t.Errorf("header defaults = %q/%q", h.Currency, h.Validity)
	}
	f := m.Footer()
	if len(f.Exclusions) != InitialExclusions {
		t.Fatalf("exclusions = %d, want %d", len(f.Exclusions), InitialExclusions)
	}
	if f.Exclusions[0] != "Civil works" || f.Exclusions[1] != "Permits" || f.Exclusions[2] != "" {
		t.Errorf("exclusions = %q", f.Exclusions)
	}
}

func TestModel_AddRemoveItem(t *testing.T) {
	m := NewModel(Defaults{})
	first, _ := m.Item(0)

	row := m.AddItem()
	if row != 1 || m.Len() != 2 {
		t.Fatalf("AddItem() = %d, Len() = %d", row, m.Len())
	}
	second, _ := m.Item(1)
	if second.ID == first.ID {
		t.Error("rows share an ID")
	}

	m.RemoveItem(first.ID)
	if m.Len() != 1 {
		t.Fatalf("Len() after remove = %d, want 1", m.Len())
	}
	if it, _ := m.Item(0); it.ID != second.ID {
		t.Errorf("remaining row = %s, want %s", it.ID, second.ID)
	}

	// The last row cannot be removed.
	m.RemoveItem(second.ID)
	if m.Len() != 1 {
		t.Errorf("Len() after removing last row = %d, want 1", m.Len())
	}

	m.RemoveItem("no-such-id")
	if m.Len() != 1 {
		t.Errorf("Len() after removing unknown id = %d, want 1", m.Len())
	}
}

func TestModel_SetItemFieldCoercion(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		value  string
		expect float64
	}{
		{"plain quantity", FieldQuantity, "4", 4},
		{"decimal quantity", FieldQuantity, "2.5", 2.5},
		{"non-numeric quantity", FieldQuantity, "abc", 0},
		{"negative quantity", FieldQuantity, "-3", 0},
		{"thousands separator", FieldMaterialUnitPrice, "1,250.50", 1250.5},
		{"blank material", FieldMaterialUnitPrice, "", 0},
		{"padded labor", FieldLaborPrice, "  75 ", 75},
		{"negative labor", FieldLaborPrice, "-10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(Defaults{})
			it, _ := m.Item(0)
			m.SetItemField(it.ID, tt.field, tt.value)

			got, _ := m.Item(0)
			var v float64
			switch tt.field {
			case FieldQuantity:
				v = got.Quantity
			case FieldMaterialUnitPrice:
				v = got.MaterialUnitPrice
			case FieldLaborPrice:
				v = got.LaborPrice
			}
			if !floatClose(v, tt.expect) {
				t.Errorf("%s = %v, want %v", tt.field, v, tt.expect)
			}
		})
	}
}

func TestModel_SetItemTotal(t *testing.T) {
	tests := []struct {
		name        string
		total       string
		expectLabor float64
	}{
		{"total above material", "30", 10},
		{"total equal to material", "20", 0},
		{"total below material", "15", -5},
		{"non-numeric total", "x", -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(Defaults{})
			it, _ := m.Item(0)
			m.SetItemField(it.ID, FieldQuantity, "2")
			m.SetItemField(it.ID, FieldMaterialUnitPrice, "10")

			m.SetItemTotal(it.ID, tt.total)

			got, _ := m.Item(0)
			if !floatClose(got.LaborPrice, tt.expectLabor) {
				t.Errorf("LaborPrice = %v, want %v", got.LaborPrice, tt.expectLabor)
			}
			if got.Quantity != 2 || got.MaterialUnitPrice != 10 {
				t.Errorf("total edit changed qty/material: %+v", got)
			}
		})
	}
}

func TestModel_SetItemTotalIdempotent(t *testing.T) {
	m := NewModel(Defaults{})
	it, _ := m.Item(0)
	m.SetItemField(it.ID, FieldQuantity, "3")
	m.SetItemField(it.ID, FieldMaterialUnitPrice, "12.5")
	m.SetItemField(it.ID, FieldLaborPrice, "40")

	before, _ := m.Item(0)
	m.SetItemTotal(it.ID, FormatNumber(LineTotal(before)))
	after, _ := m.Item(0)

	if !floatClose(after.LaborPrice, before.LaborPrice) {
		t.Errorf("re-entering the displayed total changed labor %v -> %v", before.LaborPrice, after.LaborPrice)
	}
}

func TestModel_UpdateItemKeepsID(t *testing.T) {
	m := NewModel(Defaults{})
	it, _ := m.Item(0)

	m.UpdateItem(0, func(li *LineItem) {
		li.ID = "overwritten"
		li.Code = "X1"
	})

	got, _ := m.Item(0)
	if got.ID != it.ID {
		t.Errorf("ID = %q, want %q", got.ID, it.ID)
	}
	if got.Code != "X1" {
		t.Errorf("Code = %q, want X1", got.Code)
	}
}

func TestModel_HeaderAdjustmentFooter(t *testing.T) {
	m := NewModel(Defaults{})

	m.SetHeaderField(HeaderBrand, "Acme")
	m.SetHeaderField("bogus", "ignored")
	m.SetAdjustment(AdjustmentTransportation, "10")
	m.SetAdjustment(AdjustmentDiscount, "-5")
	m.SetFooterField(FooterWarrantyPeriod, "12 months")
	m.SetExclusion(2, "Scaffolding")
	m.SetExclusion(9, "out of range")

	if got := m.Header().Brand; got != "Acme" {
		t.Errorf("Brand = %q", got)
	}
	if adj := m.Adjustments(); adj.Transportation != 10 || adj.Discount != 0 {
		t.Errorf("Adjustments = %+v, want transportation 10 discount 0", adj)
	}
	f := m.Footer()
	if f.WarrantyPeriod != "12 months" {
		t.Errorf("WarrantyPeriod = %q", f.WarrantyPeriod)
	}
	if len(f.Exclusions) != InitialExclusions || f.Exclusions[2] != "Scaffolding" {
		t.Errorf("Exclusions = %q", f.Exclusions)
	}

	idx := m.AddExclusion()
	if idx != InitialExclusions || len(m.Footer().Exclusions) != InitialExclusions+1 {
		t.Errorf("AddExclusion() = %d, len = %d", idx, len(m.Footer().Exclusions))
	}

	// Footer returns a copy.
	f.Exclusions[0] = "mutated"
	if m.Footer().Exclusions[0] == "mutated" {
		t.Error("Footer() exposes internal exclusion slice")
	}
}

func TestModel_ReplaceAllItems(t *testing.T) {
	m := NewModel(Defaults{})

	m.ReplaceAllItems([]LineItem{
		{Code: "A", Unit: "PCS", Quantity: 1},
		{ID: "keep", Code: "B", Unit: "M", Quantity: 2},
	})
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	a, _ := m.Item(0)
	if a.ID == "" {
		t.Error("replaced row without ID was not assigned one")
	}
	if b, _ := m.Item(1); b.ID != "keep" {
		t.Errorf("existing ID = %q, want keep", b.ID)
	}

	m.ReplaceAllItems(nil)
	if m.Len() != 1 {
		t.Fatalf("Len() after empty replace = %d, want 1", m.Len())
	}
	if it, _ := m.Item(0); !it.IsBlank() {
		t.Errorf("row after empty replace = %+v, want blank", it)
	}
}

func TestModel_Serialize(t *testing.T) {
	m := NewModel(testDefaults())
	m.SetHeaderField(HeaderQuoteNo, "QT-26-0001")
	m.ReplaceAllItems([]LineItem{
		{Code: "X1", Description: "Widget", Unit: "PCS", Quantity: 2, MaterialUnitPrice: 10, LaborPrice: 5},
		{Unit: "PCS", Quantity: 1},
		{Code: "  ", Description: "", Unit: "PCS", Quantity: 4, MaterialUnitPrice: 9},
		{Description: "Labor only", Unit: "LS", Quantity: 1, LaborPrice: 100},
	})
	m.SetAdjustment(AdjustmentTransportation, "10")

	q := m.Serialize()

	if len(q.Items) != 2 {
		t.Fatalf("serialized %d items, want 2", len(q.Items))
	}
	if q.Items[0].Code != "X1" || q.Items[1].Description != "Labor only" {
		t.Errorf("serialized items = %+v", q.Items)
	}
	if q.Header.QuoteNo != "QT-26-0001" || q.Header.Currency != "SAR" {
		t.Errorf("serialized header = %+v", q.Header)
	}
	if q.Adjustments.Transportation != 10 {
		t.Errorf("serialized adjustments = %+v", q.Adjustments)
	}
	if len(q.Footer.Exclusions) != InitialExclusions {
		t.Errorf("serialized exclusions = %q", q.Footer.Exclusions)
	}
	if m.Len() != 4 {
		t.Errorf("Serialize mutated the model: Len() = %d", m.Len())
	}
}

func TestModel_LoadRoundTrip(t *testing.T) {
	src := NewModel(testDefaults())
	src.ReplaceAllItems([]LineItem{
		{ID: "a", Code: "X1", Description: "Widget", Unit: "PCS", Quantity: 2, MaterialUnitPrice: 10, LaborPrice: 5},
	})
	src.SetFooterField(FooterCompletionDate, "2026-12-01")
	q := src.Serialize()

	dst := NewModel(Defaults{})
	dst.Load(q)

	if dst.Len() != 1 {
		t.Fatalf("Len() = %d", dst.Len())
	}
	if it, _ := dst.Item(0); it != q.Items[0] {
		t.Errorf("loaded item = %+v, want %+v", it, q.Items[0])
	}
	if dst.Footer().CompletionDate != "2026-12-01" {
		t.Errorf("CompletionDate = %q", dst.Footer().CompletionDate)
	}
	if !floatClose(dst.Totals().GrandTotal, 28.75) {
		t.Errorf("GrandTotal = %v, want 28.75", dst.Totals().GrandTotal)
	}

	dst.Load(Quotation{})
	if dst.Len() != 1 || len(dst.Footer().Exclusions) != InitialExclusions {
		t.Errorf("empty load: Len() = %d, exclusions = %d", dst.Len(), len(dst.Footer().Exclusions))
	}
}

func TestModel_CellTextAndSetCell(t *testing.T) {
	m := NewModel(Defaults{})

	tests := []struct {
		cell   Coord
		input  string
		expect string
	}{
		{HeaderCell(HeaderCity), "Riyadh", "Riyadh"},
		{ItemCell(0, FieldCode), "X1", "X1"},
		{ItemCell(0, FieldQuantity), "3", "3"},
		{ItemCell(0, FieldMaterialUnitPrice), "2.50", "2.5"},
		{ItemCell(0, FieldLaborPrice), "1", "1"},
		{ItemCell(0, FieldTotal), "10", "10"},
		{AdjustmentCell(AdjustmentDiscount), "4", "4"},
		{FooterCell(FooterCompletionDate), "soon", "soon"},
		{ExclusionCell(1), "Power", "Power"},
	}

	for _, tt := range tests {
		t.Run(tt.cell.String(), func(t *testing.T) {
			m.SetCell(tt.cell, tt.input)
			if got := m.CellText(tt.cell); got != tt.expect {
				t.Errorf("CellText(%v) = %q, want %q", tt.cell, got, tt.expect)
			}
		})
	}

	// Total 10 with qty 3 and material 2.5 leaves labor at 2.5.
	if it, _ := m.Item(0); !floatClose(it.LaborPrice, 2.5) {
		t.Errorf("LaborPrice = %v, want 2.5", it.LaborPrice)
	}
	if got := m.CellText(ItemCell(7, FieldCode)); got != "" {
		t.Errorf("CellText on missing row = %q", got)
	}
}

func TestModel_Subscribe(t *testing.T) {
	m := NewModel(Defaults{})
	var got []ChangeKind
	unsubscribe := m.Subscribe(func(c Change) {
		got = append(got, c.Kind)
	})

	m.AddItem()
	m.SetHeaderField(HeaderCity, "Jeddah")
	it, _ := m.Item(1)
	m.RemoveItem(it.ID)
	unsubscribe()
	m.AddItem()

	want := []ChangeKind{ChangeItemAdded, ChangeHeader, ChangeItemRemoved}
	if len(got) != len(want) {
		t.Fatalf("changes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestQuotation_Normalized(t *testing.T) {
	q := Quotation{
		Items: []LineItem{
			{ID: "a", Code: "X1", Quantity: -2, MaterialUnitPrice: -10, LaborPrice: -5},
			{ID: "b", Code: "X2", Quantity: 3, MaterialUnitPrice: 4, LaborPrice: 1},
		},
		Adjustments: Adjustments{Transportation: -7, Discount: -3},
		Footer:      Footer{Exclusions: []string{"Permits"}},
	}

	got := q.Normalized()

	a := got.Items[0]
	if a.Quantity != 0 || a.MaterialUnitPrice != 0 {
		t.Errorf("row a = qty %v, material %v, want 0/0", a.Quantity, a.MaterialUnitPrice)
	}
	if a.LaborPrice != -5 {
		t.Errorf("row a labor = %v, want -5 kept", a.LaborPrice)
	}
	if b := got.Items[1]; b.Quantity != 3 || b.MaterialUnitPrice != 4 || b.LaborPrice != 1 {
		t.Errorf("row b changed: %+v", b)
	}
	if got.Adjustments.Transportation != 0 || got.Adjustments.Discount != 0 {
		t.Errorf("adjustments = %+v, want zeros", got.Adjustments)
	}
	if q.Items[0].Quantity != -2 || q.Adjustments.Discount != -3 {
		t.Error("Normalized modified its receiver")
	}

	m := NewModel(Defaults{})
	m.Load(q)
	if adj := m.Adjustments(); adj.Transportation != 0 || adj.Discount != 0 {
		t.Errorf("loaded adjustments = %+v, want zeros", adj)
	}
	if it, _ := m.Item(0); it.Quantity != 0 {
		t.Errorf("loaded quantity = %v, want 0", it.Quantity)
	}
}
