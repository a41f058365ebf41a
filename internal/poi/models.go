package poi

import (
	"errors"
	"fmt"
)

// Category is the closed set of facility object kinds. It drives marker
// styling and filter grouping; anything outside the set normalizes to Other.
type Category string

const (
	CategoryBuilding   Category = "building"
	CategoryProduction Category = "production"
	CategoryWarehouse  Category = "warehouse"
	CategoryCafeteria  Category = "cafeteria"
	CategoryParking    Category = "parking"
	CategoryOffice     Category = "office"
	CategorySecurity   Category = "security"
	CategoryOther      Category = "other"
)

// Style is the map-widget marker appearance for a category.
type Style struct {
	Preset string
	Color  string
}

// Style maps every category to its marker appearance. The switch is
// exhaustive over the closed set so a new category is a compile-visible edit.
func (c Category) Style() Style {
	switch c {
	case CategoryBuilding:
		return Style{Preset: "islands#blueHomeIcon", Color: "#0066CC"}
	case CategoryProduction:
		return Style{Preset: "islands#redFactoryIcon", Color: "#CC0000"}
	case CategoryWarehouse:
		return Style{Preset: "islands#brownStorageIcon", Color: "#996633"}
	case CategoryCafeteria:
		return Style{Preset: "islands#greenFoodIcon", Color: "#00CC66"}
	case CategoryParking:
		return Style{Preset: "islands#grayCarIcon", Color: "#666666"}
	case CategoryOffice:
		return Style{Preset: "islands#darkBlueBusinessIcon", Color: "#003399"}
	case CategorySecurity:
		return Style{Preset: "islands#orangeGuardIcon", Color: "#CC6600"}
	case CategoryOther:
		return Style{Preset: "islands#blueIcon", Color: "#0066CC"}
	}
	return Style{Preset: "islands#blueIcon", Color: "#0066CC"}
}

// ParseCategory normalizes a stored category value. Unknown values (including
// ones written by older builds) map to Other.
func ParseCategory(s string) Category {
	switch c := Category(s); c {
	case CategoryBuilding, CategoryProduction, CategoryWarehouse, CategoryCafeteria,
		CategoryParking, CategoryOffice, CategorySecurity, CategoryOther:
		return c
	}
	return CategoryOther
}

// PointOfInterest is one named, located facility object shown on the map.
// Coordinates are [lat, lng], WGS-84.
type PointOfInterest struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Coordinates  [2]float64 `json:"coordinates"`
	Category     Category   `json:"type"`
	Floor        string     `json:"floor,omitempty"`
	Capacity     string     `json:"capacity,omitempty"`
	WorkingHours string     `json:"workingHours,omitempty"`
	Photos       []string   `json:"photos,omitempty"`
	CustomIcon   string     `json:"customIcon,omitempty"`
	IconColor    string     `json:"iconColor,omitempty"`
}

var (
	ErrNameRequired     = errors.New("poi: name required")
	ErrCoordsOutOfRange = errors.New("poi: coordinates out of range")
)

// Validate enforces the registry invariants: a name and in-range coordinates.
func (p PointOfInterest) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	lat, lng := p.Coordinates[0], p.Coordinates[1]
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: %v", ErrCoordsOutOfRange, p.Coordinates)
	}
	return nil
}

// DefaultCatalog is the catalog seeded on first run (or after data loss).
// Deterministic: same objects, same order, every time.
func DefaultCatalog() []PointOfInterest {
	return []PointOfInterest{
		{
			ID:          "1",
			Name:        "Главное здание",
			Description: "Административное здание предприятия",
			Coordinates: [2]float64{55.7558, 37.6173},
			Category:    CategoryBuilding,
			Floor:       "1-5",
		},
		{
			ID:          "2",
			Name:        "Производственный цех №1",
			Description: "Основное производство",
			Coordinates: [2]float64{55.7568, 37.6183},
			Category:    CategoryProduction,
			Floor:       "1",
		},
		{
			ID:          "3",
			Name:        "Склад",
			Description: "Складские помещения",
			Coordinates: [2]float64{55.7548, 37.6163},
			Category:    CategoryWarehouse,
			Floor:       "1",
		},
		{
			ID:          "4",
			Name:        "Столовая",
			Description: "Место питания сотрудников",
			Coordinates: [2]float64{55.7563, 37.6178},
			Category:    CategoryCafeteria,
			Floor:       "1",
		},
		{
			ID:          "5",
			Name:        "Парковка",
			Description: "Парковочные места",
			Coordinates: [2]float64{55.7553, 37.6168},
			Category:    CategoryParking,
			Floor:       "0",
		},
	}
}
