package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_search/internal/app"
	"hotel_search/internal/domain"
)

type Handlers struct {
	Ingest *app.IngestService
	Query  *app.QueryService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/search", h.createSearch)
	s.mux.Get("/search/{searchId}", h.getSearch)
}

// ---- wire DTOs ----

type searchRequest struct {
	HotelID  string       `json:"hotelId" validate:"required"`
	CheckIn  *domain.Date `json:"checkIn" validate:"required"`
	CheckOut *domain.Date `json:"checkOut" validate:"required"`
	Ages     *[]int       `json:"ages" validate:"required"`
}

type searchCreatedResponse struct {
	SearchID string `json:"searchId"`
}

type searchDetailResponse struct {
	SearchID string     `json:"searchId"`
	Search   searchBody `json:"search"`
	Count    int        `json:"count"`
}

type searchBody struct {
	HotelID  string      `json:"hotelId"`
	CheckIn  domain.Date `json:"checkIn"`
	CheckOut domain.Date `json:"checkOut"`
	Ages     []int       `json:"ages"`
}

// ---- handlers ----

func (h *Handlers) createSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	id, err := h.Ingest.CreateSearch(r.Context(), app.CreateSearchRequest{
		HotelID:  req.HotelID,
		CheckIn:  *req.CheckIn,
		CheckOut: *req.CheckOut,
		Ages:     *req.Ages,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(searchCreatedResponse{SearchID: id}); err != nil {
		log.Error().Err(err).Msg("failed to write createSearch body")
	}
}

func (h *Handlers) getSearch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "searchId")

	rec, err := h.Query.GetSearch(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	ages := rec.Ages
	if ages == nil {
		ages = []int{}
	}
	resp := searchDetailResponse{
		SearchID: rec.SearchID,
		Search: searchBody{
			HotelID:  rec.HotelID,
			CheckIn:  rec.CheckIn,
			CheckOut: rec.CheckOut,
			Ages:     ages,
		},
		Count: rec.Count,
	}

	etag, body := calcETagAndBody(resp)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getSearch body")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}
