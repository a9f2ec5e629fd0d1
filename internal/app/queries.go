package app

import (
	"context"
	"fmt"
	"time"

	"hotel_search/internal/domain"
)

// searchIDMaxLen bounds lookups before they reach the store; anything this
// long cannot be an id we issued.
const searchIDMaxLen = 128

func searchCacheKey(id string) string { return "search:" + id }

type QueryService struct {
	repo     domain.SearchRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(repo domain.SearchRepository, cache domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: repo, cache: cache, cacheTTL: ttl}
}

// GetSearch returns the stored record for id. ErrNotFound and
// ErrStoreUnavailable pass through from the repository unchanged.
func (s *QueryService) GetSearch(ctx context.Context, id string) (domain.Search, error) {
	if id == "" {
		return domain.Search{}, fmt.Errorf("%w: searchId must not be empty", domain.ErrValidation)
	}
	if len(id) > searchIDMaxLen {
		return domain.Search{}, fmt.Errorf("%w: searchId exceeds %d characters", domain.ErrValidation, searchIDMaxLen)
	}

	key := searchCacheKey(id)
	var cached domain.Search
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	rec, err := s.repo.FindBySearchID(ctx, id)
	if err != nil {
		return domain.Search{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, rec, int(s.cacheTTL.Seconds()))
	}
	return rec, nil
}
