package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/spf13/cast"
)

// Filter option keys, as they appear in query strings and CLI flags.
const (
	FilterCity                 = "city"
	FilterOwnerID              = "owner_id"
	FilterMinimumPricePerNight = "minimum_price_per_night"
	FilterMaximumPricePerNight = "maximum_price_per_night"
	FilterMinimumRating        = "minimum_rating"
)

// FilterOptions narrows a property search. A nil field is absent; any
// non-nil value, zero included, is applied.
//
// Prices are whole currency units and are compared against cents.
type FilterOptions struct {
	City                 *string `json:"city,omitempty" validate:"omitempty,min=1"`
	OwnerID              *int    `json:"owner_id,omitempty" validate:"omitempty,gt=0"`
	MinimumPricePerNight *int    `json:"minimum_price_per_night,omitempty" validate:"omitempty,gte=0"`
	MaximumPricePerNight *int    `json:"maximum_price_per_night,omitempty" validate:"omitempty,gte=0"`
	MinimumRating        *int    `json:"minimum_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

func (o *FilterOptions) Validate() error {
	if err := validation.Struct(o); err != nil {
		return err
	}

	if o.MinimumPricePerNight != nil && o.MaximumPricePerNight != nil &&
		*o.MinimumPricePerNight > *o.MaximumPricePerNight {
		return validation.CustomValidationErrors{
			{
				Field:   FilterMinimumPricePerNight,
				Message: "must not exceed maximum_price_per_night",
			},
		}
	}

	return nil
}

// IsEmpty reports whether no filter is set.
func (o FilterOptions) IsEmpty() bool {
	return o.City == nil && o.OwnerID == nil && o.MinimumPricePerNight == nil &&
		o.MaximumPricePerNight == nil && o.MinimumRating == nil
}

// ParseFilterOptions converts raw string options into FilterOptions.
// Empty values are treated as absent and unknown keys are ignored.
func ParseFilterOptions(raw map[string]string) (FilterOptions, error) {
	var opts FilterOptions

	for key, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch key {
		case FilterCity:
			city := value
			opts.City = &city
		case FilterOwnerID:
			n, err := parseInt(key, value)
			if err != nil {
				return FilterOptions{}, err
			}
			opts.OwnerID = n
		case FilterMinimumPricePerNight:
			n, err := parseInt(key, value)
			if err != nil {
				return FilterOptions{}, err
			}
			opts.MinimumPricePerNight = n
		case FilterMaximumPricePerNight:
			n, err := parseInt(key, value)
			if err != nil {
				return FilterOptions{}, err
			}
			opts.MaximumPricePerNight = n
		case FilterMinimumRating:
			n, err := parseInt(key, value)
			if err != nil {
				return FilterOptions{}, err
			}
			opts.MinimumRating = n
		}
	}

	return opts, nil
}

var decimalInteger = regexp.MustCompile(`^[+-]?[0-9]+$`)

// parseInt parses value as a base 10 integer. Leading zeros are ignored
// rather than read as an octal prefix, and hex or binary literals are
// rejected.
func parseInt(key, value string) (*int, error) {
	if !decimalInteger.MatchString(value) {
		return nil, fmt.Errorf("invalid %s %q: not a base 10 integer", key, value)
	}

	sign, digits := "", value
	if value[0] == '+' || value[0] == '-' {
		sign, digits = value[:1], value[1:]
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}

	n, err := cast.ToIntE(sign + digits)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return &n, nil
}
