package types

import "time"

type ItemId uint32

// VehicleInfo carries the vehicle specific facet values of a listing.
type VehicleInfo struct {
	Type  string `json:"type"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Color string `json:"color"`
	Year  int    `json:"year"`
}

// PropertyInfo carries the property specific facet values of a listing.
type PropertyInfo struct {
	Type         string  `json:"type"`
	UsefulAreaM2 float64 `json:"usefulAreaM2"`
}

// Item is one auction listing as delivered by the data source. Exactly one
// of VehicleInfo and PropertyInfo is set, matching the content type it was
// listed under.
type Item struct {
	Id            ItemId        `json:"id"`
	Title         string        `json:"title"`
	CurrentBid    float64       `json:"currentBid"`
	OriginalPrice float64       `json:"originalPrice,omitempty"`
	EndDate       time.Time     `json:"endDate"`
	Location      string        `json:"location"`
	Website       string        `json:"website"`
	Format        string        `json:"format"`
	Origin        string        `json:"origin"`
	Place         string        `json:"place"`
	ImageUrl      string        `json:"image,omitempty"`
	VehicleInfo   *VehicleInfo  `json:"vehicleInfo,omitempty"`
	PropertyInfo  *PropertyInfo `json:"propertyInfo,omitempty"`
}

func (i *Item) GetContentType() ContentType {
	if i.PropertyInfo != nil {
		return ContentProperty
	}
	return ContentVehicle
}

// Discount returns the relative discount against the original price, zero
// when no original price is known.
func (i *Item) Discount() float64 {
	if i.OriginalPrice <= 0 || i.CurrentBid >= i.OriginalPrice {
		return 0
	}
	return (i.OriginalPrice - i.CurrentBid) / i.OriginalPrice
}
