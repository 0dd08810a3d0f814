package engine

import (
	"slices"
	"sort"

	"github.com/arremate/leilao-finder/pkg/types"
)

// SortItems returns a new, stably sorted slice. An unrecognized option
// (including "nearest" without a reference location) keeps the original
// relative order instead of failing.
func SortItems(items []types.Item, option types.SortOption) []types.Item {
	result := slices.Clone(items)
	switch option {
	case types.SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CurrentBid < result[j].CurrentBid
		})
	case types.SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CurrentBid > result[j].CurrentBid
		})
	case types.SortNewest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].EndDate.After(result[j].EndDate)
		})
	case types.SortHighestDiscount:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Discount() > result[j].Discount()
		})
	}
	return result
}
