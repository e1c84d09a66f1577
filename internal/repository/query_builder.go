package repository

import (
	"fmt"
	"strings"

	"github.com/deppfellow/lightbnb/internal/model"
)

// DefaultSearchLimit is used when a non-positive limit is given.
const DefaultSearchLimit = 10

const propertyColumns = `properties.id, properties.owner_id, properties.title, properties.description,
	properties.thumbnail_photo_url, properties.cover_photo_url, properties.cost_per_night,
	properties.street, properties.city, properties.province, properties.post_code, properties.country,
	properties.parking_spaces, properties.number_of_bathrooms, properties.number_of_bedrooms, properties.active`

// PropertySearch is a built search statement and its bound parameters, in
// placeholder order.
type PropertySearch struct {
	SQL  string
	Args []any
}

// bind appends v and returns its placeholder.
func (s *PropertySearch) bind(v any) string {
	s.Args = append(s.Args, v)
	return fmt.Sprintf("$%d", len(s.Args))
}

// BuildPropertySearch composes the property search statement for opts.
//
// Each present filter contributes exactly one predicate and one parameter.
// Row predicates are collected and joined with WHERE/AND once all are known;
// the rating filter applies to the aggregate and goes into HAVING.
func BuildPropertySearch(opts model.FilterOptions, limit int) PropertySearch {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var s PropertySearch
	var predicates []string

	if opts.City != nil {
		predicates = append(predicates, "properties.city LIKE "+s.bind("%"+*opts.City+"%"))
	}
	if opts.OwnerID != nil {
		predicates = append(predicates, "properties.owner_id = "+s.bind(*opts.OwnerID))
	}
	if opts.MinimumPricePerNight != nil {
		predicates = append(predicates, "properties.cost_per_night >= "+s.bind(*opts.MinimumPricePerNight*100))
	}
	if opts.MaximumPricePerNight != nil {
		predicates = append(predicates, "properties.cost_per_night <= "+s.bind(*opts.MaximumPricePerNight*100))
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(propertyColumns)
	b.WriteString(", AVG(property_reviews.rating) AS average_rating\n")
	b.WriteString("FROM properties\n")
	b.WriteString("LEFT JOIN property_reviews ON properties.id = property_reviews.property_id\n")

	if len(predicates) > 0 {
		b.WriteString("WHERE ")
		b.WriteString(strings.Join(predicates, " AND "))
		b.WriteString("\n")
	}

	b.WriteString("GROUP BY properties.id\n")

	if opts.MinimumRating != nil {
		b.WriteString("HAVING AVG(property_reviews.rating) >= ")
		b.WriteString(s.bind(*opts.MinimumRating))
		b.WriteString("\n")
	}

	b.WriteString("ORDER BY properties.cost_per_night\n")
	b.WriteString("LIMIT ")
	b.WriteString(s.bind(limit))

	s.SQL = b.String()
	return s
}
