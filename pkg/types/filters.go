package types

import "slices"

// RangeValues keeps both ends of a numeric range as raw strings. Empty
// string is the distinct "unset" state, so values are only parsed to
// numbers at validation and filtering time.
type RangeValues struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

func (r RangeValues) IsEmpty() bool {
	return r.Min == "" && r.Max == ""
}

type Location struct {
	State string `json:"state"`
	City  string `json:"city"`
}

func (l Location) IsEmpty() bool {
	return l.State == "" && l.City == ""
}

// FacetKey identifies one filter dimension of FilterState.
type FacetKey string

const (
	FacetContentType   FacetKey = "contentType"
	FacetCategory      FacetKey = "category"
	FacetLocation      FacetKey = "location"
	FacetVehicleTypes  FacetKey = "vehicleTypes"
	FacetPropertyTypes FacetKey = "propertyTypes"
	FacetBrand         FacetKey = "brand"
	FacetModel         FacetKey = "model"
	FacetColor         FacetKey = "color"
	FacetPrice         FacetKey = "price"
	FacetYear          FacetKey = "year"
	FacetUsefulArea    FacetKey = "usefulArea"
	FacetFormat        FacetKey = "format"
	FacetOrigin        FacetKey = "origin"
	FacetPlace         FacetKey = "place"
)

// Domain sentinel defaults. These are the values that mean "no filtering"
// for their facet, which is not always the empty string.
const (
	DefaultCategory = "Todos"
	DefaultBrand    = "todas"
	DefaultModel    = "todos"
	DefaultColor    = "todas"
	DefaultFormat   = "Leilão"
	DefaultOrigin   = "Extrajudicial"
	DefaultPlace    = "Praça única"
)

// FilterState is the normalized filter aggregate. It is owned by the store
// and must only be mutated through the store's update entry points.
type FilterState struct {
	ContentType   ContentType `json:"contentType"`
	Category      string      `json:"category"`
	Location      Location    `json:"location"`
	VehicleTypes  []string    `json:"vehicleTypes"`
	PropertyTypes []string    `json:"propertyTypes"`
	Brand         string      `json:"brand"`
	Model         string      `json:"model"`
	Color         string      `json:"color"`
	Price         RangeValues `json:"price"`
	Year          RangeValues `json:"year"`
	UsefulArea    RangeValues `json:"usefulArea"`
	Format        string      `json:"format"`
	Origin        string      `json:"origin"`
	Place         string      `json:"place"`
}

// DefaultFilterState returns every facet at its unfiltered value for the
// given content type.
func DefaultFilterState(contentType ContentType) FilterState {
	return FilterState{
		ContentType:   contentType,
		Category:      DefaultCategory,
		Location:      Location{},
		VehicleTypes:  []string{},
		PropertyTypes: []string{},
		Brand:         DefaultBrand,
		Model:         DefaultModel,
		Color:         DefaultColor,
		Price:         RangeValues{},
		Year:          RangeValues{},
		UsefulArea:    RangeValues{},
		Format:        DefaultFormat,
		Origin:        DefaultOrigin,
		Place:         DefaultPlace,
	}
}

// AllFacets lists every facet key in a stable order, used for iteration in
// the active-filter count and the URL writer.
var AllFacets = []FacetKey{
	FacetContentType,
	FacetCategory,
	FacetLocation,
	FacetVehicleTypes,
	FacetPropertyTypes,
	FacetBrand,
	FacetModel,
	FacetColor,
	FacetPrice,
	FacetYear,
	FacetUsefulArea,
	FacetFormat,
	FacetOrigin,
	FacetPlace,
}

// ResetCascade maps a changed facet to the facets that must be restored to
// their defaults in the same update. The content type cascade is resolved
// separately because it depends on the new value.
var ResetCascade = map[FacetKey][]FacetKey{
	FacetBrand: {FacetModel},
}

// CrossDomainFacets lists the facets exclusive to each content type. When
// the content type switches, the facets of the domain being left are reset
// so no stale filter silently produces zero results.
var CrossDomainFacets = map[ContentType][]FacetKey{
	ContentVehicle:  {FacetVehicleTypes, FacetBrand, FacetModel, FacetColor, FacetYear},
	ContentProperty: {FacetPropertyTypes, FacetUsefulArea},
}

// ResetFacet restores a single facet to its default value in place.
func (f *FilterState) ResetFacet(key FacetKey) {
	switch key {
	case FacetCategory:
		f.Category = DefaultCategory
	case FacetLocation:
		f.Location = Location{}
	case FacetVehicleTypes:
		f.VehicleTypes = []string{}
	case FacetPropertyTypes:
		f.PropertyTypes = []string{}
	case FacetBrand:
		f.Brand = DefaultBrand
	case FacetModel:
		f.Model = DefaultModel
	case FacetColor:
		f.Color = DefaultColor
	case FacetPrice:
		f.Price = RangeValues{}
	case FacetYear:
		f.Year = RangeValues{}
	case FacetUsefulArea:
		f.UsefulArea = RangeValues{}
	case FacetFormat:
		f.Format = DefaultFormat
	case FacetOrigin:
		f.Origin = DefaultOrigin
	case FacetPlace:
		f.Place = DefaultPlace
	}
}

// IsDefault reports whether the facet currently holds its unfiltered value.
// The active-filter badge count and the URL parameter pruning both build on
// this single comparison.
func (f *FilterState) IsDefault(key FacetKey) bool {
	switch key {
	case FacetContentType:
		// The content type is a navigation choice, never an active filter.
		return true
	case FacetCategory:
		return f.Category == DefaultCategory || f.Category == ""
	case FacetLocation:
		return f.Location.IsEmpty()
	case FacetVehicleTypes:
		return len(f.VehicleTypes) == 0
	case FacetPropertyTypes:
		return len(f.PropertyTypes) == 0
	case FacetBrand:
		return f.Brand == DefaultBrand || f.Brand == ""
	case FacetModel:
		return f.Model == DefaultModel || f.Model == ""
	case FacetColor:
		return f.Color == DefaultColor || f.Color == ""
	case FacetPrice:
		return !RangeActive(f.Price, PriceBounds)
	case FacetYear:
		return !RangeActive(f.Year, YearBounds)
	case FacetUsefulArea:
		return !RangeActive(f.UsefulArea, UsefulAreaBounds)
	case FacetFormat:
		return f.Format == DefaultFormat || f.Format == ""
	case FacetOrigin:
		return f.Origin == DefaultOrigin || f.Origin == ""
	case FacetPlace:
		return f.Place == DefaultPlace || f.Place == ""
	}
	return true
}

// ActiveCount counts the facets that differ from their defaults.
func (f *FilterState) ActiveCount() int {
	count := 0
	for _, key := range AllFacets {
		if !f.IsDefault(key) {
			count++
		}
	}
	return count
}

// FacetEqual compares one facet between two states. Type lists compare as
// sets, order is irrelevant.
func FacetEqual(a, b *FilterState, key FacetKey) bool {
	switch key {
	case FacetContentType:
		return a.ContentType == b.ContentType
	case FacetCategory:
		return a.Category == b.Category
	case FacetLocation:
		return a.Location == b.Location
	case FacetVehicleTypes:
		return sameTypeSet(a.VehicleTypes, b.VehicleTypes)
	case FacetPropertyTypes:
		return sameTypeSet(a.PropertyTypes, b.PropertyTypes)
	case FacetBrand:
		return a.Brand == b.Brand
	case FacetModel:
		return a.Model == b.Model
	case FacetColor:
		return a.Color == b.Color
	case FacetPrice:
		return a.Price == b.Price
	case FacetYear:
		return a.Year == b.Year
	case FacetUsefulArea:
		return a.UsefulArea == b.UsefulArea
	case FacetFormat:
		return a.Format == b.Format
	case FacetOrigin:
		return a.Origin == b.Origin
	case FacetPlace:
		return a.Place == b.Place
	}
	return true
}

func sameTypeSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !slices.Contains(b, v) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so snapshots handed to subscribers cannot alias
// the store's slices.
func (f *FilterState) Clone() FilterState {
	c := *f
	c.VehicleTypes = slices.Clone(f.VehicleTypes)
	c.PropertyTypes = slices.Clone(f.PropertyTypes)
	return c
}
