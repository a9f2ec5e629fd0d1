package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_search/internal/domain"
)

// CreateSearchRequest carries an already-decoded ingest request. Dates are
// calendar values; the wire format stays at the HTTP boundary.
type CreateSearchRequest struct {
	HotelID  string
	CheckIn  domain.Date
	CheckOut domain.Date
	Ages     []int
}

// IDGenerator produces a fresh opaque identifier per call. Must be safe for
// concurrent use.
type IDGenerator func() string

type IngestService struct {
	bus   domain.SearchPublisher
	newID IDGenerator
}

func NewIngestService(bus domain.SearchPublisher, newID IDGenerator) *IngestService {
	if newID == nil {
		newID = uuid.NewString
	}
	return &IngestService{bus: bus, newID: newID}
}

// CreateSearch validates the request, publishes the initial record with
// count 1 and returns its fresh searchId. On publish failure no id is
// returned; the caller may retry and nothing durable was written locally.
func (s *IngestService) CreateSearch(ctx context.Context, req CreateSearchRequest) (string, error) {
	rec := domain.Search{
		SearchID: s.newID(),
		HotelID:  req.HotelID,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Ages:     append([]int(nil), req.Ages...),
		Count:    1,
	}
	if err := rec.Validate(); err != nil {
		return "", err
	}
	if err := s.bus.Publish(ctx, rec); err != nil {
		return "", err
	}
	log.Info().Str("search_id", rec.SearchID).Msg("search published")
	return rec.SearchID, nil
}
