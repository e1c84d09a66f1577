package repository

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/jackc/pgx/v5"
)

// ReservationRepository reads a guest's reservations.
type ReservationRepository struct {
	base
}

const getAllReservationsQuery = `SELECT reservations.id, reservations.start_date, reservations.end_date,
	reservations.property_id, reservations.guest_id,
	` + propertyColumns + `, AVG(property_reviews.rating) AS average_rating
FROM reservations
JOIN properties ON reservations.property_id = properties.id
LEFT JOIN property_reviews ON properties.id = property_reviews.property_id
WHERE reservations.guest_id = $1
GROUP BY reservations.id, properties.id
ORDER BY reservations.start_date
LIMIT $2`

// GetAllReservations lists the reservations of one guest together with the
// reserved property and its average rating. A non-positive limit means
// DefaultSearchLimit.
func (r *ReservationRepository) GetAllReservations(ctx context.Context, guestID int, limit int) ([]model.GuestReservation, error) {
	const op = "getAllReservations"

	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	rows, err := r.db.Query(ctx, getAllReservationsQuery, guestID, limit)
	if err != nil {
		return nil, r.failRead(ctx, op, err)
	}

	reservations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.GuestReservation, error) {
		var gr model.GuestReservation
		dest := []any{
			&gr.ID, &gr.StartDate, &gr.EndDate, &gr.PropertyID, &gr.GuestID,
		}
		dest = append(dest, propertyDest(&gr.Property.Property)...)
		dest = append(dest, &gr.Property.AverageRating)
		err := row.Scan(dest...)
		return gr, err
	})
	if err != nil {
		return nil, r.failRead(ctx, op, err)
	}

	return reservations, nil
}
