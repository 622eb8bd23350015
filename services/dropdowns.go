package services

// UnitOptions lists the units offered in the catalog import template.
var UnitOptions = []string{
	"PCS",
	"SET",
	"M",
	"SQM",
	"CUM",
	"KG",
	"LTR",
	"ROLL",
	"BOX",
	"PAIR",
	"LOT",
	"LS",
	"DAY",
	"HOUR",
	"TRIP",
}
