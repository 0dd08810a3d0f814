package types

import "slices"

// Closed vocabularies for the auction metadata facets. Query values outside
// these sets are ignored on the URL read path.
var (
	FormatOptions = []string{"Todos", "Alienação Particular", "Leilão", "Venda Direta"}
	OriginOptions = []string{"Todas", "Extrajudicial", "Judicial", "Particular", "Público"}
	PlaceOptions  = []string{"Todas", "Praça única", "1ª Praça", "2ª Praça", "3ª Praça"}
)

func ValidFormat(v string) bool { return slices.Contains(FormatOptions, v) }
func ValidOrigin(v string) bool { return slices.Contains(OriginOptions, v) }
func ValidPlace(v string) bool  { return slices.Contains(PlaceOptions, v) }

// Category vocabularies per content type. The first entry is always the
// "all" sentinel.
var PropertyCategories = []string{DefaultCategory, "Residencial", "Comercial", "Rural", "Terrenos"}
var VehicleCategories = []string{DefaultCategory, "Carros", "Motos", "Caminhões"}

// Type allow-lists per category. A category that is absent (or the default)
// gates the type multi-select off entirely.
var propertyTypesByCategory = map[string][]string{
	"Residencial": {"Apartamento", "Casa", "Sobrado", "Kitnet"},
	"Comercial":   {"Sala Comercial", "Loja", "Galpão", "Prédio"},
	"Rural":       {"Fazenda", "Sítio", "Chácara"},
	"Terrenos":    {"Terreno", "Lote"},
}

var vehicleTypesByCategory = map[string][]string{
	"Carros":    {"Hatch", "Sedã", "SUV", "Picape"},
	"Motos":     {"Street", "Trail", "Scooter", "Custom"},
	"Caminhões": {"Baú", "Caçamba", "Tanque"},
}

var VehicleBrands = []string{DefaultBrand, "chevrolet", "fiat", "ford", "honda", "hyundai", "toyota", "volkswagen"}

var vehicleModelsByBrand = map[string][]string{
	"chevrolet":  {DefaultModel, "onix", "s10", "tracker"},
	"fiat":       {DefaultModel, "argo", "strada", "toro"},
	"ford":       {DefaultModel, "ka", "ranger", "territory"},
	"honda":      {DefaultModel, "city", "civic", "hr-v"},
	"hyundai":    {DefaultModel, "creta", "hb20", "tucson"},
	"toyota":     {DefaultModel, "corolla", "hilux", "yaris"},
	"volkswagen": {DefaultModel, "gol", "polo", "t-cross"},
}

var VehicleColors = []string{DefaultColor, "azul", "branco", "cinza", "prata", "preto", "vermelho"}

// CategoriesFor returns the category vocabulary of a content type.
func CategoriesFor(contentType ContentType) []string {
	if contentType == ContentProperty {
		return slices.Clone(PropertyCategories)
	}
	return slices.Clone(VehicleCategories)
}

// TypeOptionsFor returns the sub-type allow-list for a category, empty when
// the category is the default sentinel or unknown.
func TypeOptionsFor(category string, contentType ContentType) []string {
	if category == "" || category == DefaultCategory {
		return []string{}
	}
	var byCategory map[string][]string
	if contentType == ContentProperty {
		byCategory = propertyTypesByCategory
	} else {
		byCategory = vehicleTypesByCategory
	}
	options, ok := byCategory[category]
	if !ok {
		return []string{}
	}
	return slices.Clone(options)
}

// ModelsFor returns the model vocabulary of a brand, just the default
// sentinel for the all-brands sentinel or an unknown brand.
func ModelsFor(brand string) []string {
	models, ok := vehicleModelsByBrand[brand]
	if !ok {
		return []string{DefaultModel}
	}
	return slices.Clone(models)
}
