package storage

import "errors"

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrHostNotFound      = errors.New("host not found")
	ErrNotEnoughSpots    = errors.New("not enough spots remaining")
	ErrBookingNotPending = errors.New("booking is not pending")
	ErrReviewExists      = errors.New("review already exists")
)
