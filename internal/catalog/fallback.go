package catalog

import "github.com/shopspring/decimal"

// fallbackProducts is the static CNC tooling catalog served when the
// marketplace API cannot provide a product list.
var fallbackProducts = []Product{
	{ID: "1", Name: "CNC Milling Cutter", Price: decimal.NewFromInt(1250)},
	{ID: "2", Name: "Precision Lathe Chuck", Price: decimal.NewFromInt(980)},
	{ID: "3", Name: "Ball Nose End Mill", Price: decimal.NewFromInt(750)},
	{ID: "4", Name: "Carbide Drill Bit", Price: decimal.NewFromInt(650)},
	{ID: "5", Name: "Tapered End Mill", Price: decimal.NewFromInt(850)},
	{ID: "6", Name: "Coolant Nozzle System", Price: decimal.NewFromInt(1200)},
}

// FallbackProducts returns a copy of the static catalog so callers cannot
// mutate the shared slice.
func FallbackProducts() []Product {
	out := make([]Product, len(fallbackProducts))
	copy(out, fallbackProducts)
	return out
}
