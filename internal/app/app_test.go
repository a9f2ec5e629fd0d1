package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hotel_search/internal/app"
	"hotel_search/internal/domain"
)

// ---- fakes ----

type fakeBus struct {
	published []domain.Search
	err       error
}

func (b *fakeBus) Publish(ctx context.Context, s domain.Search) error {
	if b.err != nil {
		return b.err
	}
	b.published = append(b.published, s)
	return nil
}

type fakeRepo struct {
	byID    map[string]domain.Search
	saveErr error
	findErr error
	saves   int
}

func (r *fakeRepo) Save(ctx context.Context, s domain.Search) (domain.Search, error) {
	if r.saveErr != nil {
		return domain.Search{}, r.saveErr
	}
	if r.byID == nil {
		r.byID = map[string]domain.Search{}
	}
	r.byID[s.SearchID] = s
	r.saves++
	return s, nil
}

func (r *fakeRepo) FindBySearchID(ctx context.Context, id string) (domain.Search, error) {
	if r.findErr != nil {
		return domain.Search{}, r.findErr
	}
	s, ok := r.byID[id]
	if !ok {
		return domain.Search{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return s, nil
}

type fakeCache struct {
	store map[string]domain.Search
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	*dst.(*domain.Search) = v
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]domain.Search{}
	}
	c.store[key] = v.(domain.Search)
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

func date(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func validRequest(t *testing.T) app.CreateSearchRequest {
	return app.CreateSearchRequest{
		HotelID:  "1234aBc",
		CheckIn:  date(t, "29/12/2023"),
		CheckOut: date(t, "31/12/2023"),
		Ages:     []int{3, 29, 30, 1},
	}
}

// ---- IngestService ----

func TestCreateSearch_PublishesInitialRecord(t *testing.T) {
	bus := &fakeBus{}
	svc := app.NewIngestService(bus, nil)

	id, err := svc.CreateSearch(context.Background(), validRequest(t))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if id == "" {
		t.Fatalf("expected non-empty searchId")
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(bus.published))
	}
	rec := bus.published[0]
	if rec.SearchID != id || rec.Count != 1 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	want := []int{3, 29, 30, 1}
	if len(rec.Ages) != len(want) {
		t.Fatalf("ages length: %v", rec.Ages)
	}
	for i := range want {
		if rec.Ages[i] != want[i] {
			t.Fatalf("ages order not preserved: %v", rec.Ages)
		}
	}
}

func TestCreateSearch_DistinctIDs(t *testing.T) {
	bus := &fakeBus{}
	svc := app.NewIngestService(bus, nil)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := svc.CreateSearch(context.Background(), validRequest(t))
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate searchId %s", id)
		}
		seen[id] = true
	}
}

func TestCreateSearch_ValidationOrder(t *testing.T) {
	bus := &fakeBus{}
	svc := app.NewIngestService(bus, nil)

	cases := []struct {
		name   string
		mutate func(*app.CreateSearchRequest)
		want   error
	}{
		{"empty hotelId", func(r *app.CreateSearchRequest) { r.HotelID = "" }, domain.ErrValidation},
		{"missing checkOut", func(r *app.CreateSearchRequest) { r.CheckOut = domain.Date{} }, domain.ErrValidation},
		{"equal dates", func(r *app.CreateSearchRequest) { r.CheckOut = r.CheckIn }, domain.ErrInvalidCheckIn},
		{"reversed dates", func(r *app.CreateSearchRequest) { r.CheckIn, r.CheckOut = r.CheckOut, r.CheckIn }, domain.ErrInvalidCheckIn},
		{"negative age", func(r *app.CreateSearchRequest) { r.Ages = []int{-2} }, domain.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(t)
			tc.mutate(&req)
			id, err := svc.CreateSearch(context.Background(), req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			if id != "" {
				t.Fatalf("no id must be returned on failure, got %q", id)
			}
		})
	}
	if len(bus.published) != 0 {
		t.Fatalf("rejected requests must not publish, got %d", len(bus.published))
	}
}

func TestCreateSearch_EmptyAgesAccepted(t *testing.T) {
	bus := &fakeBus{}
	svc := app.NewIngestService(bus, nil)

	req := validRequest(t)
	req.Ages = nil
	if _, err := svc.CreateSearch(context.Background(), req); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestCreateSearch_PublishFailure(t *testing.T) {
	bus := &fakeBus{err: fmt.Errorf("%w: broker down", domain.ErrPublish)}
	svc := app.NewIngestService(bus, nil)

	id, err := svc.CreateSearch(context.Background(), validRequest(t))
	if !errors.Is(err, domain.ErrPublish) {
		t.Fatalf("want ErrPublish, got %v", err)
	}
	if id != "" {
		t.Fatalf("no id must be returned when publish fails, got %q", id)
	}
}

// ---- PersistService ----

func enriched(t *testing.T) domain.Search {
	return domain.Search{
		SearchID: "x-1",
		HotelID:  "1234aBc",
		CheckIn:  date(t, "29/12/2023"),
		CheckOut: date(t, "31/12/2023"),
		Ages:     []int{3, 29, 30, 1},
		Count:    100,
	}
}

func TestSaveSearch_WritesAndInvalidatesCache(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{store: map[string]domain.Search{"search:x-1": {SearchID: "x-1", Count: 1}}}
	svc := app.NewPersistService(repo, cache)

	stored, err := svc.SaveSearch(context.Background(), enriched(t))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if stored.Count != 100 {
		t.Fatalf("unexpected stored record: %+v", stored)
	}
	if len(cache.dels) != 1 || cache.dels[0] != "search:x-1" {
		t.Fatalf("expected cache invalidation for x-1, got %v", cache.dels)
	}
}

func TestSaveSearch_LastWriteWins(t *testing.T) {
	repo := &fakeRepo{}
	svc := app.NewPersistService(repo, nil)

	first := enriched(t)
	first.Count = 50
	if _, err := svc.SaveSearch(context.Background(), first); err != nil {
		t.Fatalf("err: %v", err)
	}
	second := enriched(t)
	if _, err := svc.SaveSearch(context.Background(), second); err != nil {
		t.Fatalf("err: %v", err)
	}
	if got := repo.byID["x-1"].Count; got != 100 {
		t.Fatalf("last write must win, count=%d", got)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected one logical record, got %d", len(repo.byID))
	}
}

func TestSaveSearch_InvalidRecordRejected(t *testing.T) {
	repo := &fakeRepo{}
	svc := app.NewPersistService(repo, nil)

	rec := enriched(t)
	rec.CheckIn, rec.CheckOut = rec.CheckOut, rec.CheckIn
	if _, err := svc.SaveSearch(context.Background(), rec); !errors.Is(err, domain.ErrConsume) {
		t.Fatalf("want ErrConsume, got %v", err)
	}
	if repo.saves != 0 {
		t.Fatalf("invalid record must not reach the store")
	}
}

func TestSaveSearch_StoreFailure(t *testing.T) {
	repo := &fakeRepo{saveErr: fmt.Errorf("%w: connection reset", domain.ErrStoreUnavailable)}
	svc := app.NewPersistService(repo, nil)

	if _, err := svc.SaveSearch(context.Background(), enriched(t)); !errors.Is(err, domain.ErrConsume) {
		t.Fatalf("want ErrConsume, got %v", err)
	}
}

// ---- QueryService ----

func TestGetSearch_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{byID: map[string]domain.Search{"x-1": enriched(t)}}
	cache := &fakeCache{}
	svc := app.NewQueryService(repo, cache, 10*time.Minute)

	got, err := svc.GetSearch(context.Background(), "x-1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got.Count != 100 {
		t.Fatalf("unexpected record: %+v", got)
	}

	// Mutate the repo to prove the second read is served from cache.
	mutated := enriched(t)
	mutated.Count = 999
	repo.byID["x-1"] = mutated

	got2, err := svc.GetSearch(context.Background(), "x-1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got2.Count != 100 {
		t.Fatalf("expected cached count 100, got %d", got2.Count)
	}
}

func TestGetSearch_EmptyID(t *testing.T) {
	repo := &fakeRepo{findErr: errors.New("must not be called")}
	svc := app.NewQueryService(repo, nil, time.Minute)

	if _, err := svc.GetSearch(context.Background(), ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestGetSearch_OversizedID(t *testing.T) {
	repo := &fakeRepo{findErr: errors.New("must not be called")}
	svc := app.NewQueryService(repo, nil, time.Minute)

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := svc.GetSearch(context.Background(), string(long)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestGetSearch_NotFoundPassesThrough(t *testing.T) {
	repo := &fakeRepo{}
	svc := app.NewQueryService(repo, nil, time.Minute)

	if _, err := svc.GetSearch(context.Background(), "unknown-xyz"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetSearch_StoreUnavailablePassesThrough(t *testing.T) {
	repo := &fakeRepo{findErr: fmt.Errorf("%w: timeout", domain.ErrStoreUnavailable)}
	svc := app.NewQueryService(repo, nil, time.Minute)

	if _, err := svc.GetSearch(context.Background(), "x-1"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable, got %v", err)
	}
}
