//go:build integration || !unit

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	server "milecompare/internal/adapters/http_server"
	"milecompare/internal/adapters/offers"
	redisad "milecompare/internal/adapters/redis"
	"milecompare/internal/app"
	"milecompare/internal/domain"
	"milecompare/internal/pipeline"
	"milecompare/internal/reference"
	"milecompare/internal/registry"
)

// ---------- fake upstream offer API ----------

type upstream struct {
	hits  atomic.Int32
	delay time.Duration
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.hits.Add(1)
	if u.delay > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(u.delay):
		}
	}
	route := r.URL.Query().Get("origin") + "-" + r.URL.Query().Get("destination")
	w.Header().Set("Content-Type", "application/json")
	switch route {
	case "HND-ITM":
		// five NH departures; only the cheapest survives normalisation
		_, _ = w.Write([]byte(`{"offers":[
			{"carrierCode":"NH","flightNumber":"NH15","departure":"07:00","price":30000},
			{"carrierCode":"NH","flightNumber":"NH17","departure":"09:00","price":28000},
			{"carrierCode":"NH","flightNumber":"NH19","departure":"11:00","price":31000},
			{"carrierCode":"NH","flightNumber":"NH21","departure":"13:00","price":29000},
			{"carrierCode":"NH","flightNumber":"NH23","departure":"15:00","price":27000}
		]}`))
	case "NRT-LAX":
		_, _ = w.Write([]byte(`[{"airline":{"name":"All Nippon Airways"},"flight_no":"NH6","departure":"17:00","price":{"total":"182,000"}}]`))
	default:
		_, _ = w.Write([]byte(`[]`))
	}
}

// ---------- wiring identical to cmd/api, minus env ----------

func newAPI(t *testing.T, up *upstream, upstreamTimeout time.Duration) *httptest.Server {
	t.Helper()
	upSrv := httptest.NewServer(up)
	t.Cleanup(upSrv.Close)

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })

	source, err := offers.New(upSrv.URL, "test-key", 100)
	if err != nil {
		t.Fatalf("offers client: %v", err)
	}
	reg := registry.New(reference.DefaultCharts()...)
	srv := server.New(upstreamTimeout + 5*time.Second)
	srv.MountHandlers(&server.Handlers{
		Search:   app.NewSearchService(source, cache, pipeline.New(reg), upstreamTimeout, time.Minute),
		Charts:   app.NewChartQueries(reg),
		Commands: app.NewChartCommands(reg),
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func futureDate() string {
	return time.Date(time.Now().Year()+1, time.November, 10, 0, 0, 0, 0, time.UTC).Format(pipeline.DateLayout)
}

func search(t *testing.T, ts *httptest.Server, body string) domain.SearchResult {
	t.Helper()
	res, err := http.Post(ts.URL+"/v1/search", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var out domain.SearchResult
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func req(origin, dest, mode string, programs ...string) string {
	ps, _ := json.Marshal(programs)
	return fmt.Sprintf(`{"origin":%q,"destination":%q,"date":%q,"passengerCount":1,"comparisonMode":%q,"targetPrograms":%s}`,
		origin, dest, futureDate(), mode, ps)
}

// ---------- the tests ----------

func TestEndToEnd_DomesticSingleProgram(t *testing.T) {
	up := &upstream{}
	ts := newAPI(t, up, 2*time.Second)

	out := search(t, ts, req("HND", "ITM", "single", "ANA"))
	if out.Route.DistanceKm != 514 {
		t.Fatalf("distance: %d", out.Route.DistanceKm)
	}
	if len(out.Offers) != 1 {
		t.Fatalf("expected the single surviving NH offer, got %d", len(out.Offers))
	}
	v := out.Offers[0]
	if v.Program != domain.ProgramANA || v.RequiredAmount.Regular != 7000 || v.Price != 27000 {
		t.Fatalf("unexpected view: %+v", v)
	}

	// identical search is served from the redis cache
	_ = search(t, ts, req("HND", "ITM", "single", "ANA"))
	if n := up.hits.Load(); n != 1 {
		t.Fatalf("upstream hits: %d", n)
	}
}

func TestEndToEnd_International(t *testing.T) {
	ts := newAPI(t, &upstream{}, 2*time.Second)

	out := search(t, ts, req("NRT", "LAX", "single", "ANA"))
	if len(out.Offers) != 1 {
		t.Fatalf("offers: %d", len(out.Offers))
	}
	v := out.Offers[0]
	if v.RequiredAmount.Regular != 50000 || v.Price != 182000 || v.Fees == 0 {
		t.Fatalf("unexpected view: %+v", v)
	}
	if out.Estimated {
		t.Fatalf("real upstream data must not be flagged estimated")
	}
}

func TestEndToEnd_PartnerViews(t *testing.T) {
	ts := newAPI(t, &upstream{}, 2*time.Second)

	out := search(t, ts, req("HND", "ITM", "multiple", "ANA", "UA"))
	got := map[domain.Program]int{}
	for _, v := range out.Offers {
		if v.FlightNumber == "NH23" {
			got[v.Program] = v.RequiredAmount.Regular
		}
	}
	if got[domain.ProgramANA] != 7000 || got[domain.ProgramUnited] != 10000 {
		t.Fatalf("partner views: %+v", got)
	}
}

func TestEndToEnd_UpstreamTimeoutFallback(t *testing.T) {
	up := &upstream{delay: time.Second}
	ts := newAPI(t, up, 100*time.Millisecond)

	out := search(t, ts, req("NRT", "LAX", "all"))
	if !out.Estimated || len(out.Offers) != 4 {
		t.Fatalf("expected the four-offer fallback set, got %d (estimated=%v)", len(out.Offers), out.Estimated)
	}
	for _, v := range out.Offers {
		if v.Provenance != domain.ProvenanceSynthetic {
			t.Fatalf("unexpected provenance: %+v", v)
		}
	}
}
