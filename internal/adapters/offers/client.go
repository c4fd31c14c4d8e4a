// internal/adapters/offers/client.go
package offers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"milecompare/internal/adapters/observability"
	"milecompare/internal/domain"
)

const service = "offers"

// Client fetches raw flight offers from the upstream offer API. Each search
// is a single attempt; callers bound it with a context deadline and fall back
// on any error.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

var _ domain.OfferSource = (*Client)(nil)

func New(base, key string, rps int) (*Client, error) {
	if strings.TrimSpace(base) == "" {
		return nil, fmt.Errorf("offers base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

var (
	ErrUnauthorized = fmt.Errorf("%w: unauthorized", domain.ErrUpstream)
	ErrRateLimited  = fmt.Errorf("%w: rate limited", domain.ErrUpstream)
)

func (c *Client) SearchOffers(ctx context.Context, q domain.OfferQuery) ([]domain.RawOffer, error) {
	v := url.Values{}
	v.Set("origin", q.Origin)
	v.Set("destination", q.Destination)
	v.Set("date", q.Date.Format("2006-01-02"))
	v.Set("adults", strconv.Itoa(max(q.Passengers, 1)))
	if q.ReturnDate != nil {
		v.Set("returnDate", q.ReturnDate.Format("2006-01-02"))
	}

	var body json.RawMessage
	if err := c.get(ctx, c.base+"/offers?"+v.Encode(), &body); err != nil {
		return nil, err
	}
	items, err := decodeItems(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return mapOffers(items), nil
}

// get performs one rate-limited GET and decodes JSON into out.
func (c *Client) get(ctx context.Context, u string, out any) error {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if c.key != "" {
		req.Header.Set("X-API-Key", c.key)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "milecompare/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(service, "/offers", 0, time.Since(start))
		// network error or context canceled
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal(service, "/offers", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", domain.ErrUpstream)
			}
			return fmt.Errorf("%w: decode: %v", domain.ErrUpstream, err)
		}
		return nil

	case http.StatusNoContent:
		// success, no offers
		_, _ = io.Copy(io.Discard, resp.Body)
		return json.Unmarshal([]byte("[]"), out)

	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized

	case http.StatusTooManyRequests:
		return ErrRateLimited

	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(b)))
	}
}
