package source

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/arremate/leilao-finder/pkg/types"
)

var sampleWebsites = []string{
	"megaleiloes.com.br",
	"superbid.net",
	"sodresantoro.com.br",
	"leilaovip.com.br",
	"frazaoleiloes.com.br",
}

var sampleLocations = []string{
	"São Paulo - SP",
	"Campinas - SP",
	"Santos - SP",
	"Rio de Janeiro - RJ",
	"Niterói - RJ",
	"Belo Horizonte - MG",
	"Curitiba - PR",
	"Porto Alegre - RS",
}

// SampleSource generates a deterministic in-memory listing collection with
// an optional simulated fetch latency, standing in for a real supplier.
type SampleSource struct {
	Latency time.Duration
	Count   int
}

func NewSampleSource(count int, latency time.Duration) *SampleSource {
	if count <= 0 {
		count = 240
	}
	return &SampleSource{Count: count, Latency: latency}
}

func (s *SampleSource) ListItems(ctx context.Context, contentType types.ContentType) ([]types.Item, error) {
	if s.Latency > 0 {
		select {
		case <-time.After(s.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	// Seeded per content type so every fetch returns the same collection.
	rng := rand.New(rand.NewSource(int64(len(contentType)) * 7919))
	items := make([]types.Item, s.Count)
	for i := range items {
		items[i] = makeSampleItem(rng, types.ItemId(i+1), contentType)
	}
	return items, nil
}

func (s *SampleSource) GetOptionsForCategory(category string, contentType types.ContentType) []string {
	return types.TypeOptionsFor(category, contentType)
}

func makeSampleItem(rng *rand.Rand, id types.ItemId, contentType types.ContentType) types.Item {
	bid := 15000 + rng.Intn(900000)
	item := types.Item{
		Id:            id,
		CurrentBid:    float64(bid),
		OriginalPrice: float64(bid) * (1.1 + rng.Float64()),
		EndDate:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(rng.Intn(90*24)) * time.Hour),
		Location:      sampleLocations[rng.Intn(len(sampleLocations))],
		Website:       sampleWebsites[rng.Intn(len(sampleWebsites))],
		Format:        pick(rng, types.FormatOptions[1:]),
		Origin:        pick(rng, types.OriginOptions[1:]),
		Place:         pick(rng, types.PlaceOptions[1:]),
	}
	if contentType == types.ContentProperty {
		category := pick(rng, types.PropertyCategories[1:])
		item.PropertyInfo = &types.PropertyInfo{
			Type:         pick(rng, types.TypeOptionsFor(category, types.ContentProperty)),
			UsefulAreaM2: 20 + rng.Float64()*480,
		}
		item.Title = fmt.Sprintf("%s em %s", item.PropertyInfo.Type, item.Location)
	} else {
		category := pick(rng, types.VehicleCategories[1:])
		brand := pick(rng, types.VehicleBrands[1:])
		models := types.ModelsFor(brand)
		item.VehicleInfo = &types.VehicleInfo{
			Type:  pick(rng, types.TypeOptionsFor(category, types.ContentVehicle)),
			Brand: brand,
			Model: pick(rng, models[1:]),
			Color: pick(rng, types.VehicleColors[1:]),
			Year:  2000 + rng.Intn(26),
		}
		item.Title = fmt.Sprintf("%s %s %d", brand, item.VehicleInfo.Model, item.VehicleInfo.Year)
	}
	return item
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
