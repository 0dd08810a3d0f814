package engine

import (
	"testing"

	"github.com/arremate/leilao-finder/pkg/types"
)

func bidItems(bids ...float64) []types.Item {
	items := make([]types.Item, len(bids))
	for i, b := range bids {
		items[i] = types.Item{Id: types.ItemId(i + 1), CurrentBid: b}
	}
	return items
}

func TestApplyPriceFilterWindow(t *testing.T) {
	items := bidItems(50000, 100000, 150000)
	got := ApplyPriceFilter(items, "75000", "120000")
	if len(got) != 1 || got[0].CurrentBid != 100000 {
		t.Fatalf("expected only the 100000 bid, got %+v", got)
	}
}

func TestApplyPriceFilterDefaultsArePruned(t *testing.T) {
	items := bidItems(5000, 100000, 2000000)
	got := ApplyPriceFilter(items, types.PriceBounds.DefaultMin, types.PriceBounds.DefaultMax)
	if len(got) != len(items) {
		t.Fatalf("default bounds must not filter, got %d of %d items", len(got), len(items))
	}
}

func TestApplyPriceFilterInclusiveBounds(t *testing.T) {
	items := bidItems(75000, 120000)
	got := ApplyPriceFilter(items, "75000", "120000")
	if len(got) != 2 {
		t.Fatalf("bounds are inclusive, got %d items", len(got))
	}
}

func TestApplyPriceFilterSingleSide(t *testing.T) {
	items := bidItems(50000, 100000, 150000)
	got := ApplyPriceFilter(items, "120000", "")
	if len(got) != 1 || got[0].CurrentBid != 150000 {
		t.Fatalf("expected only the 150000 bid, got %+v", got)
	}
}

func TestApplyPriceFilterDoesNotMutateInput(t *testing.T) {
	items := bidItems(50000, 100000, 150000)
	ApplyPriceFilter(items, "75000", "120000")
	if items[0].CurrentBid != 50000 || len(items) != 3 {
		t.Fatal("input slice was mutated")
	}
}

func TestApplyLocationFilter(t *testing.T) {
	items := []types.Item{
		{Id: 1, Location: "Campinas - SP"},
		{Id: 2, Location: "Niterói - RJ"},
		{Id: 3, Location: "Santos - SP"},
	}

	bySt := ApplyLocationFilter(items, "SP", "")
	if len(bySt) != 2 {
		t.Fatalf("expected 2 SP items, got %d", len(bySt))
	}

	// City matching is case-insensitive, state matching is not.
	byCity := ApplyLocationFilter(items, "", "campinas")
	if len(byCity) != 1 || byCity[0].Id != 1 {
		t.Fatalf("expected Campinas item, got %+v", byCity)
	}

	both := ApplyLocationFilter(items, "RJ", "campinas")
	if len(both) != 0 {
		t.Fatalf("state and city are ANDed, got %+v", both)
	}
}

func TestApplyAuctionMetadataFilters(t *testing.T) {
	items := []types.Item{
		{Id: 1, Format: "Leilão", Origin: "Judicial", Place: "1ª Praça"},
		{Id: 2, Format: "Venda Direta", Origin: "Extrajudicial", Place: "Praça única"},
	}

	// Facets at their defaults are skipped entirely.
	got := ApplyAuctionMetadataFilters(items, types.DefaultFormat, types.DefaultOrigin, types.DefaultPlace)
	if len(got) != 2 {
		t.Fatalf("default metadata must not filter, got %d items", len(got))
	}

	got = ApplyAuctionMetadataFilters(items, "Venda Direta", types.DefaultOrigin, types.DefaultPlace)
	if len(got) != 1 || got[0].Id != 2 {
		t.Fatalf("expected only the Venda Direta item, got %+v", got)
	}

	got = ApplyAuctionMetadataFilters(items, "Todos", "Todas", "Todas")
	if len(got) != 2 {
		t.Fatalf("the all sentinel must not filter, got %d items", len(got))
	}
}

func vehicle(id types.ItemId, vtype, brand, model, color string, year int) types.Item {
	return types.Item{
		Id:          id,
		VehicleInfo: &types.VehicleInfo{Type: vtype, Brand: brand, Model: model, Color: color, Year: year},
	}
}

func TestApplyVehicleFilters(t *testing.T) {
	items := []types.Item{
		vehicle(1, "Sedã", "toyota", "corolla", "preto", 2018),
		vehicle(2, "Hatch", "fiat", "argo", "branco", 2021),
		vehicle(3, "Street", "honda", "cg160", "vermelho", 2020),
	}

	f := types.DefaultFilterState(types.ContentVehicle)
	f.Category = "Carros"
	got := ApplyVehicleFilters(items, &f)
	if len(got) != 2 {
		t.Fatalf("category allow-list expected 2 cars, got %d", len(got))
	}

	f.VehicleTypes = []string{"sedã"}
	got = ApplyVehicleFilters(items, &f)
	if len(got) != 1 || got[0].Id != 1 {
		t.Fatalf("type multi-select is case-insensitive, got %+v", got)
	}

	f = types.DefaultFilterState(types.ContentVehicle)
	f.Brand = "toyota"
	got = ApplyVehicleFilters(items, &f)
	if len(got) != 1 || got[0].Id != 1 {
		t.Fatalf("brand filter expected the toyota, got %+v", got)
	}

	f = types.DefaultFilterState(types.ContentVehicle)
	f.Year = types.RangeValues{Min: "2020", Max: ""}
	got = ApplyVehicleFilters(items, &f)
	if len(got) != 2 {
		t.Fatalf("year range expected 2 items, got %d", len(got))
	}
}

func TestApplyPropertyFilters(t *testing.T) {
	items := []types.Item{
		{Id: 1, PropertyInfo: &types.PropertyInfo{Type: "Apartamento", UsefulAreaM2: 70}},
		{Id: 2, PropertyInfo: &types.PropertyInfo{Type: "Casa", UsefulAreaM2: 180}},
		{Id: 3, PropertyInfo: &types.PropertyInfo{Type: "Galpão", UsefulAreaM2: 600}},
	}

	f := types.DefaultFilterState(types.ContentProperty)
	got := ApplyPropertyFilters(items, &f)
	if len(got) != 3 {
		t.Fatalf("default category must not filter, got %d", len(got))
	}

	f.Category = "Residencial"
	got = ApplyPropertyFilters(items, &f)
	if len(got) != 2 {
		t.Fatalf("Residencial expected 2 items, got %d", len(got))
	}

	f.UsefulArea = types.RangeValues{Min: "100", Max: ""}
	got = ApplyPropertyFilters(items, &f)
	if len(got) != 1 || got[0].Id != 2 {
		t.Fatalf("area range expected the 180m² house, got %+v", got)
	}
}

func TestApplyFiltersSkipsItemsOfOtherDomain(t *testing.T) {
	items := []types.Item{
		vehicle(1, "Sedã", "toyota", "corolla", "preto", 2018),
		{Id: 2, PropertyInfo: &types.PropertyInfo{Type: "Casa", UsefulAreaM2: 120}},
	}
	f := types.DefaultFilterState(types.ContentVehicle)
	f.VehicleTypes = []string{"Sedã"}
	got := ApplyFilters(items, &f)
	if len(got) != 1 || got[0].Id != 1 {
		t.Fatalf("property item leaked through vehicle type filter: %+v", got)
	}
}
