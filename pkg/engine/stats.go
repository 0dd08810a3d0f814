package engine

import (
	"math"

	"github.com/arremate/leilao-finder/pkg/types"
)

type ItemsStatistics struct {
	Total    int `json:"total"`
	Websites int `json:"websites"`
	NewItems int `json:"newItems"`
}

// CalculateItemsStatistics derives the header numbers: total count, count
// of distinct source websites and the "new items" estimate. The estimate is
// a display heuristic, a fixed share of the total rounded up (10% for
// vehicles, 20% for properties), not a real is-new flag.
func CalculateItemsStatistics(items []types.Item, contentType types.ContentType) ItemsStatistics {
	websites := make(map[string]struct{}, 8)
	for _, item := range items {
		if item.Website != "" {
			websites[item.Website] = struct{}{}
		}
	}
	share := 0.1
	if contentType == types.ContentProperty {
		share = 0.2
	}
	return ItemsStatistics{
		Total:    len(items),
		Websites: len(websites),
		NewItems: int(math.Ceil(float64(len(items)) * share)),
	}
}
