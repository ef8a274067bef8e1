package domain

import "time"

// Listing type values
const (
	ListingTypeBuy  = "BUY"
	ListingTypeSell = "SELL"
	ListingTypeRent = "RENT"
)

// Listing status values
const (
	StatusActive = "ACTIVE"
	StatusSold   = "SOLD"
	StatusRented = "RENTED"
)

// Property type values
const (
	PropertyApartment  = "APARTMENT"
	PropertyHouse      = "HOUSE"
	PropertyVilla      = "VILLA"
	PropertyPlot       = "PLOT"
	PropertyCommercial = "COMMERCIAL"
	PropertyOffice     = "OFFICE"
)

// ValidListingType reports whether t is one of the listing type values.
func ValidListingType(t string) bool {
	return t == ListingTypeBuy || t == ListingTypeSell || t == ListingTypeRent
}

// ValidPropertyType reports whether t is one of the property type values.
func ValidPropertyType(t string) bool {
	switch t {
	case PropertyApartment, PropertyHouse, PropertyVilla, PropertyPlot, PropertyCommercial, PropertyOffice:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the listing status values.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusSold || s == StatusRented
}

// Listing Model
type Listing struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	Price        float64        `gorm:"not null" json:"price"`                   // must be >= 0
	Currency     string         `gorm:"default:INR" json:"currency"`             // ISO currency code
	ListingType  string         `gorm:"not null;index" json:"listingType"`       // BUY, SELL or RENT
	PropertyType string         `gorm:"not null;index" json:"propertyType"`      // APARTMENT, HOUSE, ...
	Bedrooms     *int           `json:"bedrooms"`                                // nil when not applicable
	Bathrooms    *int           `json:"bathrooms"`                               // nil when not applicable
	AreaSqFt     *float64       `json:"areaSqFt"`                                // nil when unknown
	Address      string         `gorm:"not null" json:"address"`
	City         string         `gorm:"not null;index" json:"city"`
	State        string         `gorm:"not null;index" json:"state"`
	Area         string         `json:"area"`                                    // locality within the city
	Country      string         `gorm:"default:India" json:"country"`
	ZipCode      string         `json:"zipCode"`
	Latitude     *float64       `json:"latitude"`
	Longitude    *float64       `json:"longitude"`
	Status       string         `gorm:"default:ACTIVE;index" json:"status"`      // ACTIVE, SOLD or RENTED
	Amenities    []string       `gorm:"serializer:json" json:"amenities"`
	Images       []ListingImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`
	OwnerID      uint           `gorm:"not null;index" json:"ownerId"`           // Foreign key to User
	Owner        User           `gorm:"foreignKey:OwnerID" json:"owner"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// ListingImage is a single image of a listing; Position preserves upload order.
type ListingImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ListingID uint      `gorm:"not null;index" json:"-"`
	URL       string    `gorm:"not null" json:"url"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}
