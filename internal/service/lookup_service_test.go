package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meliview/meli_api/internal/cache"
	"github.com/meliview/meli_api/internal/models"
	"github.com/meliview/meli_api/internal/service"
	"github.com/meliview/meli_api/pkg/meli"
)

func newLookupFixture(t *testing.T, handler http.Handler) (*service.LookupService, *cache.HistoryCache) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := meli.NewClient(meli.Config{BaseURL: srv.URL})
	history := cache.NewHistoryCache(10)
	return service.NewLookupService(client, history), history
}

func TestLookupSuccessRecordsHistory(t *testing.T) {
	svc, history := newLookupFixture(t, http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/items/MLB123", req.URL.Path, "code is normalized before the fetch")
		wrt.Write([]byte(`{"id":"MLB123","title":"Widget","price":9.5,"currency_id":"BRL","condition":"new","available_quantity":3,"pictures":[{"url":"http://x/1.jpg"}]}`))
	}))

	rec, lerr := svc.Lookup(context.Background(), " mlb-123 ")

	require.Nil(t, lerr)
	assert.Equal(t, "MLB123", rec.ID)
	assert.Equal(t, models.ConditionNew, rec.Condition)
	assert.Equal(t, 1, history.Len())

	stored, ok := history.Lookup("MLB123")
	require.True(t, ok)
	assert.Equal(t, "Widget", stored.Title)
}

func TestLookupEmptyCodeIsInputError(t *testing.T) {
	svc, history := newLookupFixture(t, http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		t.Error("no fetch should happen for an empty code")
	}))

	for _, raw := range []string{"", "   ", " - -"} {
		_, lerr := svc.Lookup(context.Background(), raw)
		require.NotNil(t, lerr)
		assert.Equal(t, service.ErrorKindInput, lerr.Kind)
	}
	assert.Zero(t, history.Len())
}

func TestLookupNotFoundDoesNotTouchHistory(t *testing.T) {
	svc, history := newLookupFixture(t, http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		wrt.WriteHeader(http.StatusNotFound)
	}))

	_, lerr := svc.Lookup(context.Background(), "MLB404")

	require.NotNil(t, lerr)
	assert.Equal(t, service.ErrorKindNotFound, lerr.Kind)
	assert.Equal(t, "MLB404", lerr.Code)
	assert.Zero(t, history.Len())
}

func TestLookupErrorClassification(t *testing.T) {
	tests := map[string]struct {
		status     int
		wantKind   service.ErrorKind
		wantStatus int
	}{
		"access denied":  {status: http.StatusForbidden, wantKind: service.ErrorKindAccessDenied},
		"upstream error": {status: http.StatusServiceUnavailable, wantKind: service.ErrorKindUpstream, wantStatus: http.StatusServiceUnavailable},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			svc, history := newLookupFixture(t, http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				wrt.WriteHeader(tt.status)
			}))

			_, lerr := svc.Lookup(context.Background(), "MLB1")

			require.NotNil(t, lerr)
			assert.Equal(t, tt.wantKind, lerr.Kind)
			assert.Equal(t, tt.wantStatus, lerr.Status)
			assert.Zero(t, history.Len())
		})
	}
}

func TestLookupAfter401RefreshMutatesHistoryOnce(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/items/MLB1", func(wrt http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer fresh" {
			wrt.WriteHeader(http.StatusUnauthorized)
			return
		}
		wrt.Write([]byte(`{"id":"MLB1","title":"Widget"}`))
	})
	mux.HandleFunc("/oauth/token", func(wrt http.ResponseWriter, req *http.Request) {
		wrt.Write([]byte(`{"access_token":"fresh"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := meli.NewClient(meli.Config{BaseURL: srv.URL, ClientID: "id", ClientSecret: "sec"})
	history := cache.NewHistoryCache(10)
	svc := service.NewLookupService(client, history)

	rec, lerr := svc.Lookup(context.Background(), "MLB1")

	require.Nil(t, lerr)
	assert.Equal(t, "Widget", rec.Title)
	assert.Equal(t, 1, history.Len())
}

func TestLookupRefetchReplacesHistoryEntry(t *testing.T) {
	titles := []string{"first payload", "second payload"}
	call := 0
	svc, history := newLookupFixture(t, http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		wrt.Write([]byte(`{"id":"MLB1","title":"` + titles[call] + `"}`))
		call++
	}))

	_, lerr := svc.Lookup(context.Background(), "MLB1")
	require.Nil(t, lerr)
	_, lerr = svc.Lookup(context.Background(), "MLB1")
	require.Nil(t, lerr)

	require.Equal(t, 1, history.Len())
	all := history.All()
	assert.Equal(t, "second payload", all[0].Title)
}
