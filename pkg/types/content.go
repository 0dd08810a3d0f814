package types

// ContentType selects which listing domain is being browsed. The two
// domains share the common facets but carry their own type specific ones.
type ContentType string

const (
	ContentProperty ContentType = "property"
	ContentVehicle  ContentType = "vehicle"
)

func (c ContentType) Valid() bool {
	return c == ContentProperty || c == ContentVehicle
}

// Other returns the opposite domain, used to resolve which facets must be
// cleared when the content type switches.
func (c ContentType) Other() ContentType {
	if c == ContentProperty {
		return ContentVehicle
	}
	return ContentProperty
}

type SortOption string

const (
	SortNewest          SortOption = "newest"
	SortPriceAsc        SortOption = "price-asc"
	SortPriceDesc       SortOption = "price-desc"
	SortHighestDiscount SortOption = "highest-discount"
	SortNearest         SortOption = "nearest"
)

const DefaultSort = SortNewest

func ParseSortOption(value string) (SortOption, bool) {
	switch SortOption(value) {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortHighestDiscount, SortNearest:
		return SortOption(value), true
	}
	return DefaultSort, false
}
