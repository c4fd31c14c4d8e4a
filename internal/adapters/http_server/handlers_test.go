package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "milecompare/internal/adapters/http_server"
	"milecompare/internal/app"
	"milecompare/internal/domain"
	"milecompare/internal/pipeline"
	"milecompare/internal/reference"
	"milecompare/internal/registry"
)

type stubSource struct {
	offers []domain.RawOffer
	err    error
}

func (s stubSource) SearchOffers(ctx context.Context, q domain.OfferQuery) ([]domain.RawOffer, error) {
	return s.offers, s.err
}

func newServer(src domain.OfferSource) http.Handler {
	reg := registry.New(reference.DefaultCharts()...)
	srv := httpserver.New(5 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{
		Search:   app.NewSearchService(src, nil, pipeline.New(reg), time.Second, time.Minute),
		Charts:   app.NewChartQueries(reg),
		Commands: app.NewChartCommands(reg),
	})
	return srv.Mux()
}

func futureDate() string {
	return time.Date(time.Now().Year()+1, time.November, 10, 0, 0, 0, 0, time.UTC).Format(pipeline.DateLayout)
}

func do(t *testing.T, h http.Handler, method, path, body string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestSearch_OK_WithETag(t *testing.T) {
	h := newServer(stubSource{offers: []domain.RawOffer{
		{CarrierID: "NH", FlightNumber: "NH21", Departure: "08:00", Price: 21000, Provenance: domain.ProvenanceReal},
	}})
	body := `{"origin":"hnd","destination":"itm","date":"` + futureDate() + `","passengerCount":1}`

	rr := do(t, h, http.MethodPost, "/v1/search", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)

	var res domain.SearchResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "HND", res.Route.Origin)
	assert.Equal(t, 514, res.Route.DistanceKm)
	require.NotEmpty(t, res.Offers)
	assert.Equal(t, "NH21", res.Offers[0].FlightNumber)

	rr = do(t, h, http.MethodPost, "/v1/search", body, "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, rr.Code)
}

func TestSearch_UpstreamFailureStill200(t *testing.T) {
	h := newServer(stubSource{err: errors.New("boom")})
	body := `{"origin":"NRT","destination":"LAX","date":"` + futureDate() + `"}`

	rr := do(t, h, http.MethodPost, "/v1/search", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var res domain.SearchResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.True(t, res.Estimated)
	assert.Len(t, res.Offers, 4)
}

func TestSearch_ValidationProblem(t *testing.T) {
	h := newServer(stubSource{})

	for name, body := range map[string]string{
		"same endpoints": `{"origin":"HND","destination":"HND","date":"` + futureDate() + `"}`,
		"past date":      `{"origin":"HND","destination":"ITM","date":"2001-01-01"}`,
		"single no prog": `{"origin":"HND","destination":"ITM","date":"` + futureDate() + `","comparisonMode":"single"}`,
		"not json":       `origin=HND`,
	} {
		rr := do(t, h, http.MethodPost, "/v1/search", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, name)
		assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"), name)
	}
}

func TestCharts_Lifecycle(t *testing.T) {
	h := newServer(stubSource{})

	rr := do(t, h, http.MethodGet, "/v1/charts/ANA?date=2026-11-10", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var c domain.MileChart
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))
	assert.Equal(t, 1, c.Version)

	chart := `{"program":"ANA","version":2,"effectiveFrom":"2027-04-01","note":"revision",
		"international":{"north_america":{"off":45000,"regular":55000,"peak":60000}}}`
	rr = do(t, h, http.MethodPost, "/v1/charts", chart)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/v1/charts", chart)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, h, http.MethodPost, "/v1/charts", `{"program":"ANA","version":3,"effectiveFrom":"2027-04-01"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/v1/charts/ANA?date=2027-05-01", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))
	assert.Equal(t, 2, c.Version)

	rr = do(t, h, http.MethodPost, "/v1/charts/ANA/updates", `{"kind":"announcement","note":"new saver fares"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/v1/charts/ANA/updates", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var out struct {
		Items []domain.ChartUpdate `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out.Items, 3)
	assert.Equal(t, domain.UpdateAnnouncement, out.Items[2].Kind)
	assert.Equal(t, 2, out.Items[2].Version)
}

func TestCharts_UnknownProgram404(t *testing.T) {
	h := newServer(stubSource{})
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/v1/charts/XYZ", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/v1/charts/XYZ/updates", "").Code)
}

func TestHealthz(t *testing.T) {
	rr := do(t, newServer(stubSource{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}
