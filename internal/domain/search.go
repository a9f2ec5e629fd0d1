package domain

import "fmt"

// Search is a hotel-availability query plus its enrichment count. SearchID
// is assigned once at ingestion and never changes; the rest of the record
// is replaced wholesale on every save (last-write-wins per SearchID).
type Search struct {
	SearchID string
	HotelID  string
	CheckIn  Date
	CheckOut Date
	Ages     []int
	Count    int
}

// Validate checks the invariants every record must satisfy before it is
// published or persisted. The first violation wins.
func (s Search) Validate() error {
	if s.HotelID == "" {
		return fmt.Errorf("%w: hotelId must not be empty", ErrValidation)
	}
	if s.CheckIn.IsZero() || s.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkIn and checkOut are required", ErrValidation)
	}
	if !s.CheckIn.Before(s.CheckOut) {
		return fmt.Errorf("%w: Check-in date must be strictly before the check-out date", ErrInvalidCheckIn)
	}
	for _, a := range s.Ages {
		if a < 0 {
			return fmt.Errorf("%w: ages must not contain negative values", ErrValidation)
		}
	}
	if s.Count < 0 {
		return fmt.Errorf("%w: count must not be negative", ErrValidation)
	}
	return nil
}
