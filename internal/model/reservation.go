package model

import "time"

// Reservation is a row of the reservations table.
type Reservation struct {
	ID         int       `json:"id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	PropertyID int       `json:"property_id"`
	GuestID    int       `json:"guest_id"`
}

// GuestReservation is a reservation together with the reserved listing.
type GuestReservation struct {
	Reservation
	Property PropertyListing `json:"property"`
}
