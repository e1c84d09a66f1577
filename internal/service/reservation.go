package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
)

// ReservationStore lists a guest's reservations.
type ReservationStore interface {
	GetAllReservations(ctx context.Context, guestID int, limit int) ([]model.GuestReservation, error)
}

// ReservationService serves a guest's reservation history.
type ReservationService struct {
	store  ReservationStore
	limits limits
}

// ListForGuest returns the reservations of guestID, oldest first.
func (s *ReservationService) ListForGuest(ctx context.Context, guestID int, limit int) ([]model.GuestReservation, error) {
	if guestID <= 0 {
		return nil, errs.NewBadRequestError("Validation failed", true, nil,
			[]errs.FieldError{{Field: "guest_id", Error: "must be greater than 0"}})
	}

	return s.store.GetAllReservations(ctx, guestID, s.limits.clamp(limit))
}
