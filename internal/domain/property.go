package domain

import "time"

type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "available"
	PropertyRented    PropertyStatus = "rented"
)

type Property struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	OwnerID      string         `gorm:"index" json:"owner_id"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	Price        float64        `gorm:"index" json:"price"`
	Location     string         `gorm:"index" json:"location"`
	PropertyType string         `gorm:"index" json:"property_type"` // villa|mansion|penthouse|beach-house|apartment|luxury-apartment
	Bedrooms     int            `json:"bedrooms"`
	Bathrooms    int            `json:"bathrooms"`
	Photos       []string       `gorm:"serializer:json" json:"photos"`
	Status       PropertyStatus `gorm:"index" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

var propertyTypes = map[string]struct{}{
	"villa": {}, "mansion": {}, "penthouse": {},
	"beach-house": {}, "apartment": {}, "luxury-apartment": {},
}

func ValidPropertyType(t string) bool {
	_, ok := propertyTypes[t]
	return ok
}
