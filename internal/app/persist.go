package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_search/internal/domain"
)

type PersistService struct {
	repo  domain.SearchRepository
	cache domain.Cache
}

func NewPersistService(repo domain.SearchRepository, cache domain.Cache) *PersistService {
	return &PersistService{repo: repo, cache: cache}
}

// SaveSearch writes an enriched record arriving from the bus. The incoming
// record fully replaces any prior one under the same searchId; counts are
// never merged. Any failure is reported as ErrConsume so the runtime
// adapter leaves the message unacknowledged for redelivery.
func (p *PersistService) SaveSearch(ctx context.Context, rec domain.Search) (domain.Search, error) {
	// Records on the bus are not trusted: re-check the invariants before
	// they reach the store.
	if rec.SearchID == "" {
		return domain.Search{}, fmt.Errorf("%w: record has no searchId", domain.ErrConsume)
	}
	if err := rec.Validate(); err != nil {
		return domain.Search{}, fmt.Errorf("%w: %v", domain.ErrConsume, err)
	}
	stored, err := p.repo.Save(ctx, rec)
	if err != nil {
		return domain.Search{}, fmt.Errorf("%w: %v", domain.ErrConsume, err)
	}
	// The stored copy changed; drop any cached read so queries don't serve
	// the previous count for a full TTL.
	if p.cache != nil {
		if err := p.cache.Del(ctx, searchCacheKey(stored.SearchID)); err != nil {
			log.Warn().Err(err).Str("search_id", stored.SearchID).Msg("cache invalidation failed")
		}
	}
	log.Info().Str("search_id", stored.SearchID).Int("count", stored.Count).Msg("search saved")
	return stored, nil
}
