package engine

import (
	"slices"
	"strings"

	"github.com/arremate/leilao-finder/pkg/types"
)

// All filter functions are pure: the input slice is never mutated and a new
// slice is always returned.

// ApplyPriceFilter keeps items whose current bid falls inside the inclusive
// range. A side that is empty, equal to its configured default bound or
// unparseable constrains nothing.
func ApplyPriceFilter(items []types.Item, minValue, maxValue string) []types.Item {
	return applyRange(items, minValue, maxValue, types.PriceBounds, func(item *types.Item) (float64, bool) {
		return item.CurrentBid, true
	})
}

func applyRange(items []types.Item, minValue, maxValue string, bounds types.RangeBounds, getter func(*types.Item) (float64, bool)) []types.Item {
	lower, hasLower := activeBound(minValue, true, bounds)
	upper, hasUpper := activeBound(maxValue, false, bounds)
	if !hasLower && !hasUpper {
		return slices.Clone(items)
	}
	result := make([]types.Item, 0, len(items))
	for _, item := range items {
		v, ok := getter(&item)
		if !ok {
			continue
		}
		if hasLower && v < lower {
			continue
		}
		if hasUpper && v > upper {
			continue
		}
		result = append(result, item)
	}
	return result
}

func activeBound(value string, isMin bool, bounds types.RangeBounds) (float64, bool) {
	if !bounds.SideActive(value, isMin) {
		return 0, false
	}
	return types.ParseBound(value)
}

// ApplyLocationFilter matches the state by substring containment against
// the item's composite location string and the city case-insensitively.
// Both constraints must hold when both are supplied.
func ApplyLocationFilter(items []types.Item, state, city string) []types.Item {
	if state == "" && city == "" {
		return slices.Clone(items)
	}
	cityLower := strings.ToLower(city)
	result := make([]types.Item, 0, len(items))
	for _, item := range items {
		if state != "" && !strings.Contains(item.Location, state) {
			continue
		}
		if city != "" && !strings.Contains(strings.ToLower(item.Location), cityLower) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// ApplyAuctionMetadataFilters exact-matches format, origin and place. A
// facet at its default or at the explicit all sentinel is skipped.
func ApplyAuctionMetadataFilters(items []types.Item, format, origin, place string) []types.Item {
	result := slices.Clone(items)
	if metadataActive(format, types.DefaultFormat) {
		result = filterExact(result, format, func(i *types.Item) string { return i.Format })
	}
	if metadataActive(origin, types.DefaultOrigin) {
		result = filterExact(result, origin, func(i *types.Item) string { return i.Origin })
	}
	if metadataActive(place, types.DefaultPlace) {
		result = filterExact(result, place, func(i *types.Item) string { return i.Place })
	}
	return result
}

func metadataActive(value, defaultValue string) bool {
	return value != "" && value != defaultValue && value != "Todos" && value != "Todas"
}

func filterExact(items []types.Item, want string, getter func(*types.Item) string) []types.Item {
	result := make([]types.Item, 0, len(items))
	for _, item := range items {
		if getter(&item) == want {
			result = append(result, item)
		}
	}
	return result
}

// ApplyPropertyFilters runs the property specific chain: category
// allow-list, selected type multi-select (OR, case-insensitive), then the
// useful-area range.
func ApplyPropertyFilters(items []types.Item, filters *types.FilterState) []types.Item {
	result := applyCategoryAndTypes(items, filters.Category, filters.PropertyTypes, types.ContentProperty,
		func(i *types.Item) (string, bool) {
			if i.PropertyInfo == nil {
				return "", false
			}
			return i.PropertyInfo.Type, true
		})
	return applyRange(result, filters.UsefulArea.Min, filters.UsefulArea.Max, types.UsefulAreaBounds,
		func(i *types.Item) (float64, bool) {
			if i.PropertyInfo == nil {
				return 0, false
			}
			return i.PropertyInfo.UsefulAreaM2, true
		})
}

// ApplyVehicleFilters runs the vehicle specific chain: category allow-list,
// selected types, brand, model and color exact matches and the year range.
func ApplyVehicleFilters(items []types.Item, filters *types.FilterState) []types.Item {
	result := applyCategoryAndTypes(items, filters.Category, filters.VehicleTypes, types.ContentVehicle,
		func(i *types.Item) (string, bool) {
			if i.VehicleInfo == nil {
				return "", false
			}
			return i.VehicleInfo.Type, true
		})
	result = filterVehicleField(result, filters.Brand, types.DefaultBrand, func(v *types.VehicleInfo) string { return v.Brand })
	result = filterVehicleField(result, filters.Model, types.DefaultModel, func(v *types.VehicleInfo) string { return v.Model })
	result = filterVehicleField(result, filters.Color, types.DefaultColor, func(v *types.VehicleInfo) string { return v.Color })
	return applyRange(result, filters.Year.Min, filters.Year.Max, types.YearBounds,
		func(i *types.Item) (float64, bool) {
			if i.VehicleInfo == nil {
				return 0, false
			}
			return float64(i.VehicleInfo.Year), true
		})
}

func filterVehicleField(items []types.Item, want, defaultValue string, getter func(*types.VehicleInfo) string) []types.Item {
	if want == "" || want == defaultValue {
		return items
	}
	result := make([]types.Item, 0, len(items))
	for _, item := range items {
		if item.VehicleInfo == nil {
			continue
		}
		if strings.EqualFold(getter(item.VehicleInfo), want) {
			result = append(result, item)
		}
	}
	return result
}

func applyCategoryAndTypes(items []types.Item, category string, selected []string, contentType types.ContentType, typeOf func(*types.Item) (string, bool)) []types.Item {
	// The default category short-circuits to no filtering at all.
	categoryActive := category != "" && category != types.DefaultCategory
	var allowed []string
	if categoryActive {
		allowed = types.TypeOptionsFor(category, contentType)
	}
	if !categoryActive && len(selected) == 0 {
		return slices.Clone(items)
	}
	result := make([]types.Item, 0, len(items))
	for _, item := range items {
		itemType, ok := typeOf(&item)
		if !ok {
			continue
		}
		if categoryActive && !containsFold(allowed, itemType) {
			continue
		}
		if len(selected) > 0 && !containsFold(selected, itemType) {
			continue
		}
		result = append(result, item)
	}
	return result
}

func containsFold(list []string, value string) bool {
	for _, v := range list {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// ApplyFilters composes the whole chain for the given state, common facets
// first, then the chain of the active content type.
func ApplyFilters(items []types.Item, filters *types.FilterState) []types.Item {
	result := ApplyPriceFilter(items, filters.Price.Min, filters.Price.Max)
	result = ApplyLocationFilter(result, filters.Location.State, filters.Location.City)
	result = ApplyAuctionMetadataFilters(result, filters.Format, filters.Origin, filters.Place)
	if filters.ContentType == types.ContentProperty {
		return ApplyPropertyFilters(result, filters)
	}
	return ApplyVehicleFilters(result, filters)
}
