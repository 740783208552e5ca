package models

import "time"

type Review struct {
	ID        int       `json:"id"`
	BookingID int       `json:"booking_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasReview reports whether reviews already holds one written by userID for bookingID.
// Uniqueness is not enforced by the store.
func HasReview(reviews []Review, bookingID int, userID string) bool {
	for _, r := range reviews {
		if r.BookingID == bookingID && r.UserID == userID {
			return true
		}
	}

	return false
}
