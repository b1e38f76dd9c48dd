package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meliview/meli_api/internal/cache"
	"github.com/meliview/meli_api/internal/models"
	"github.com/meliview/meli_api/pkg/meli"
)

// LookupService runs the lookup pipeline: fetch, normalize, record in
// history. Failed fetches never touch the history.
type LookupService struct {
	client  *meli.Client
	history *cache.HistoryCache
}

// NewLookupService constructs a LookupService.
func NewLookupService(client *meli.Client, history *cache.HistoryCache) *LookupService {
	return &LookupService{client: client, history: history}
}

// Lookup fetches the item identified by rawCode, normalizes it and upserts
// it into the history. Every failure is reported as a structured LookupError.
func (s *LookupService) Lookup(ctx context.Context, rawCode string) (models.ProductRecord, *LookupError) {
	code := NormalizeCode(rawCode)
	if code == "" {
		return models.ProductRecord{}, &LookupError{Kind: ErrorKindInput, Code: code}
	}

	payload, raw, err := s.client.GetItem(ctx, code)
	if err != nil {
		lerr := classifyFetchError(code, err)
		log.Warn().
			Str("code", code).
			Str("kind", string(lerr.Kind)).
			Err(err).
			Msg("item lookup failed")
		return models.ProductRecord{}, lerr
	}

	record := Normalize(code, payload, raw, time.Now())
	s.history.Upsert(record)

	log.Info().
		Str("code", record.ID).
		Str("title", record.Title).
		Int("history_len", s.history.Len()).
		Msg("item recorded in history")

	return record, nil
}

// classifyFetchError maps client errors onto the lookup error taxonomy.
// Anything unrecognized becomes an unexpected error rather than propagating.
func classifyFetchError(code string, err error) *LookupError {
	switch {
	case errors.Is(err, meli.ErrItemNotFound):
		return &LookupError{Kind: ErrorKindNotFound, Code: code, cause: err}
	case errors.Is(err, meli.ErrAccessDenied):
		return &LookupError{Kind: ErrorKindAccessDenied, Code: code, cause: err}
	case errors.Is(err, meli.ErrTimeout):
		return &LookupError{Kind: ErrorKindTimeout, Code: code, cause: err}
	case errors.Is(err, meli.ErrConnection):
		return &LookupError{Kind: ErrorKindConnection, Code: code, cause: err}
	}

	var apiErr *meli.APIError
	if errors.As(err, &apiErr) {
		return &LookupError{Kind: ErrorKindUpstream, Code: code, Status: apiErr.StatusCode, cause: err}
	}
	return &LookupError{Kind: ErrorKindUnexpected, Code: code, cause: err}
}
