package urlsync

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/arremate/leilao-finder/pkg/types"
)

// queryParams is the flat wire form of the filter state. Type lists are a
// comma-joined string; type names never contain commas so no escaping is
// needed.
type queryParams struct {
	Page     string `schema:"page"`
	Sort     string `schema:"sort"`
	State    string `schema:"state"`
	City     string `schema:"city"`
	Location string `schema:"location"`
	Category string `schema:"category"`
	Types    string `schema:"types"`
	Brand    string `schema:"brand"`
	Model    string `schema:"model"`
	Color    string `schema:"color"`
	PriceMin string `schema:"priceMin"`
	PriceMax string `schema:"priceMax"`
	YearMin  string `schema:"yearMin"`
	YearMax  string `schema:"yearMax"`
	AreaMin  string `schema:"areaMin"`
	AreaMax  string `schema:"areaMax"`
	Format   string `schema:"format"`
	Origin   string `schema:"origin"`
	Place    string `schema:"place"`
}

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// DecodeQuery reads every recognized query parameter into a fresh filter
// state for the given content type. Malformed or out-of-vocabulary values
// fall back to the facet default; nothing is ever reported as an error. The
// result is meant for one bulk SetFilters call.
func DecodeQuery(query url.Values, contentType types.ContentType) (types.FilterState, types.SortOption, int) {
	state := types.DefaultFilterState(contentType)
	var params queryParams
	// A partially decodable query keeps whatever did decode; the rest
	// stays at the zero value and therefore at the facet default.
	_ = queryDecoder.Decode(&params, query)

	if params.State != "" || params.City != "" {
		state.Location = types.Location{State: params.State, City: params.City}
	} else if params.Location != "" {
		state.Location = legacyLocation(params.Location)
	}
	if params.Category != "" {
		state.Category = params.Category
	}
	if list := splitTypes(params.Types); len(list) > 0 {
		if contentType == types.ContentProperty {
			state.PropertyTypes = list
		} else {
			state.VehicleTypes = list
		}
	}
	if params.Brand != "" {
		state.Brand = params.Brand
	}
	if params.Model != "" {
		state.Model = params.Model
	}
	if params.Color != "" {
		state.Color = params.Color
	}
	state.Price = decodeRange(params.PriceMin, params.PriceMax)
	state.Year = decodeRange(params.YearMin, params.YearMax)
	state.UsefulArea = decodeRange(params.AreaMin, params.AreaMax)
	if types.ValidFormat(params.Format) {
		state.Format = params.Format
	}
	if types.ValidOrigin(params.Origin) {
		state.Origin = params.Origin
	}
	if types.ValidPlace(params.Place) {
		state.Place = params.Place
	}

	sort := types.DefaultSort
	if parsed, ok := types.ParseSortOption(params.Sort); ok {
		sort = parsed
	}
	page := 1
	if n, err := strconv.Atoi(params.Page); err == nil && n > 0 {
		page = n
	}
	return state, sort, page
}

// legacyLocation resolves the pre-split single location parameter: a two
// character all-uppercase value reads as a state code, anything else as a
// city name.
func legacyLocation(value string) types.Location {
	if len(value) == 2 && value == strings.ToUpper(value) && value != strings.ToLower(value) {
		return types.Location{State: value}
	}
	return types.Location{City: value}
}

func splitTypes(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	return list
}

// decodeRange keeps only parseable bounds; a half-garbled range degrades to
// the side that still makes sense.
func decodeRange(minValue, maxValue string) types.RangeValues {
	r := types.RangeValues{}
	if _, ok := types.ParseBound(minValue); ok {
		r.Min = minValue
	}
	if _, ok := types.ParseBound(maxValue); ok {
		r.Max = maxValue
	}
	return r
}

// EncodeQuery writes the state to query parameters, pruning every facet
// that sits at its default so URLs stay minimal. The page is included only
// past the first one and the sort only off its default.
func EncodeQuery(state *types.FilterState, sort types.SortOption, page int) url.Values {
	query := url.Values{}
	set := func(key, value string) {
		if value != "" {
			query.Set(key, value)
		}
	}
	if !state.IsDefault(types.FacetLocation) {
		set("state", state.Location.State)
		set("city", state.Location.City)
	}
	if !state.IsDefault(types.FacetCategory) {
		set("category", state.Category)
	}
	selected := state.VehicleTypes
	if state.ContentType == types.ContentProperty {
		selected = state.PropertyTypes
	}
	if len(selected) > 0 {
		set("types", strings.Join(selected, ","))
	}
	if !state.IsDefault(types.FacetBrand) {
		set("brand", state.Brand)
	}
	if !state.IsDefault(types.FacetModel) {
		set("model", state.Model)
	}
	if !state.IsDefault(types.FacetColor) {
		set("color", state.Color)
	}
	encodeRange(query, "priceMin", "priceMax", state.Price, types.PriceBounds)
	encodeRange(query, "yearMin", "yearMax", state.Year, types.YearBounds)
	encodeRange(query, "areaMin", "areaMax", state.UsefulArea, types.UsefulAreaBounds)
	if !state.IsDefault(types.FacetFormat) {
		set("format", state.Format)
	}
	if !state.IsDefault(types.FacetOrigin) {
		set("origin", state.Origin)
	}
	if !state.IsDefault(types.FacetPlace) {
		set("place", state.Place)
	}
	if sort != types.DefaultSort {
		set("sort", string(sort))
	}
	if page > 1 {
		set("page", strconv.Itoa(page))
	}
	return query
}

func encodeRange(query url.Values, minKey, maxKey string, r types.RangeValues, bounds types.RangeBounds) {
	if bounds.SideActive(r.Min, true) {
		query.Set(minKey, r.Min)
	}
	if bounds.SideActive(r.Max, false) {
		query.Set(maxKey, r.Max)
	}
}
