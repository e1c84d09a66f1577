package repository

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/jackc/pgx/v5"
)

// PropertyRepository searches and inserts properties.
type PropertyRepository struct {
	base
}

const insertPropertyQuery = `INSERT INTO properties (
	owner_id, title, description, thumbnail_photo_url, cover_photo_url, cost_per_night,
	street, city, province, post_code, country, parking_spaces, number_of_bathrooms, number_of_bedrooms
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
) RETURNING id, owner_id, title, description, thumbnail_photo_url, cover_photo_url, cost_per_night,
	street, city, province, post_code, country, parking_spaces, number_of_bathrooms, number_of_bedrooms, active`

// GetAllProperties runs the property search for opts. A non-positive limit
// means DefaultSearchLimit.
func (r *PropertyRepository) GetAllProperties(ctx context.Context, opts model.FilterOptions, limit int) ([]model.PropertyListing, error) {
	const op = "getAllProperties"

	search := BuildPropertySearch(opts, limit)
	r.log(ctx).Debug().
		Str("op", op).
		Str("sql", search.SQL).
		Interface("args", search.Args).
		Msg("executing property search")

	rows, err := r.db.Query(ctx, search.SQL, search.Args...)
	if err != nil {
		return nil, r.failRead(ctx, op, err)
	}

	listings, err := pgx.CollectRows(rows, scanPropertyListing)
	if err != nil {
		return nil, r.failRead(ctx, op, err)
	}

	return listings, nil
}

// AddProperty inserts p and returns the stored row.
func (r *PropertyRepository) AddProperty(ctx context.Context, p model.NewProperty) (*model.Property, error) {
	const op = "addProperty"

	var property model.Property
	err := r.db.QueryRow(ctx, insertPropertyQuery,
		p.OwnerID, p.Title, p.Description, p.ThumbnailPhotoURL, p.CoverPhotoURL, p.CostPerNight,
		p.Street, p.City, p.Province, p.PostCode, p.Country,
		p.ParkingSpaces, p.NumberOfBathrooms, p.NumberOfBedrooms,
	).Scan(propertyDest(&property)...)
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}

	r.log(ctx).Info().Str("op", op).Int("property_id", property.ID).Msg("property created")
	return &property, nil
}

// propertyDest lists scan targets in propertyColumns order.
func propertyDest(p *model.Property) []any {
	return []any{
		&p.ID, &p.OwnerID, &p.Title, &p.Description,
		&p.ThumbnailPhotoURL, &p.CoverPhotoURL, &p.CostPerNight,
		&p.Street, &p.City, &p.Province, &p.PostCode, &p.Country,
		&p.ParkingSpaces, &p.NumberOfBathrooms, &p.NumberOfBedrooms, &p.Active,
	}
}

func scanPropertyListing(row pgx.CollectableRow) (model.PropertyListing, error) {
	var l model.PropertyListing
	err := row.Scan(append(propertyDest(&l.Property), &l.AverageRating)...)
	return l, err
}
