package model

import (
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/shopspring/decimal"
)

// Property is a row of the properties table. CostPerNight is in cents.
type Property struct {
	ID                int    `json:"id"`
	OwnerID           int    `json:"owner_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url"`
	CoverPhotoURL     string `json:"cover_photo_url"`
	CostPerNight      int    `json:"cost_per_night"`
	Street            string `json:"street"`
	City              string `json:"city"`
	Province          string `json:"province"`
	PostCode          string `json:"post_code"`
	Country           string `json:"country"`
	ParkingSpaces     int    `json:"parking_spaces"`
	NumberOfBathrooms int    `json:"number_of_bathrooms"`
	NumberOfBedrooms  int    `json:"number_of_bedrooms"`
	Active            bool   `json:"active"`
}

// NightlyPrice returns CostPerNight in whole currency units.
func (p Property) NightlyPrice() decimal.Decimal {
	return decimal.New(int64(p.CostPerNight), -2)
}

// PropertyListing is a property with the mean of its review ratings.
// AverageRating is nil when the property has no reviews.
type PropertyListing struct {
	Property
	AverageRating *float64 `json:"average_rating"`
}

// NewProperty is the fixed 14-column record accepted by addProperty.
type NewProperty struct {
	OwnerID           int    `json:"owner_id" validate:"required,gt=0"`
	Title             string `json:"title" validate:"required,max=255"`
	Description       string `json:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" validate:"required,max=255"`
	CoverPhotoURL     string `json:"cover_photo_url" validate:"required,max=255"`
	CostPerNight      int    `json:"cost_per_night" validate:"gte=0"`
	Street            string `json:"street" validate:"required,max=255"`
	City              string `json:"city" validate:"required,max=255"`
	Province          string `json:"province" validate:"required,max=255"`
	PostCode          string `json:"post_code" validate:"required,max=255"`
	Country           string `json:"country" validate:"required,max=255"`
	ParkingSpaces     int    `json:"parking_spaces" validate:"gte=0"`
	NumberOfBathrooms int    `json:"number_of_bathrooms" validate:"gte=0"`
	NumberOfBedrooms  int    `json:"number_of_bedrooms" validate:"gte=0"`
}

func (p *NewProperty) Validate() error {
	return validation.Struct(p)
}
