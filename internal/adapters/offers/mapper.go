package offers

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"milecompare/internal/domain"
)

/********** alias registries (single source of truth) **********/

var offerAliases = map[string][]string{
	"carrier": {
		"carrier", "carrierCode", "carrier_code", "airline", "airlineCode", "airline_code",
		"carrier.code", "carrier.name", "airline.code", "airline.name", "marketingCarrier", "operatingCarrier",
	},
	"flight":    {"flightNumber", "flight_number", "flightNo", "flight_no", "flight", "number"},
	"departure": {"departure", "departureTime", "departure_time", "departure.time", "departure.at", "depTime", "dep"},
	"arrival":   {"arrival", "arrivalTime", "arrival_time", "arrival.time", "arrival.at", "arrTime", "arr"},
	"price":     {"price", "price.total", "price.amount", "fare", "fare.total", "amount", "totalPrice", "total_price"},
	"seats":     {"seats", "seatsAvailable", "seats_available", "availableSeats", "numberOfBookableSeats"},
}

// wrapper keys an upstream may nest the offer list under
var listKeys = []string{"data", "offers", "results", "flights"}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// firstString: first non-empty string (or number rendered as string) for an alias set.
func firstString(m map[string]any, key string) string {
	for _, p := range offerAliases[key] {
		switch v := lookupAny(m, p).(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// firstNumber: number from an alias set (float64/int/string like "21,000" or "¥21000").
func firstNumber(m map[string]any, key string) (float64, bool) {
	for _, p := range offerAliases[key] {
		switch v := lookupAny(m, p).(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			s := strings.Map(func(r rune) rune {
				if (r >= '0' && r <= '9') || r == '.' {
					return r
				}
				if r == ',' || r == '¥' || r == '円' || r == ' ' {
					return -1
				}
				return r
			}, strings.TrimSpace(v))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// clockTime reduces "08:05", "8:05", "08:05:00" or an RFC 3339 timestamp to HH:MM.
func clockTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("15:04")
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04", "15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	return s
}

/********** offer list mapper **********/

// decodeItems accepts a bare array or an object wrapping one.
func decodeItems(body json.RawMessage) ([]map[string]any, error) {
	var arr []map[string]any
	if err := json.Unmarshal(body, &arr); err == nil {
		return arr, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, err
	}
	for _, k := range listKeys {
		if raw, ok := obj[k]; ok {
			if err := json.Unmarshal(raw, &arr); err != nil {
				return nil, err
			}
			return arr, nil
		}
	}
	return nil, errors.New("no offer list in response")
}

// mapOffers converts upstream records to RawOffers. Records without a carrier
// or a positive price are dropped.
func mapOffers(in []map[string]any) []domain.RawOffer {
	out := make([]domain.RawOffer, 0, len(in))
	for i, m := range in {
		carrier := firstString(m, "carrier")
		price, ok := firstNumber(m, "price")
		if carrier == "" || !ok || price <= 0 {
			log.Debug().Int("index", i).Str("carrier", carrier).Msg("upstream offer dropped")
			continue
		}
		o := domain.RawOffer{
			CarrierID:    carrier,
			FlightNumber: strings.ReplaceAll(firstString(m, "flight"), " ", ""),
			Departure:    clockTime(firstString(m, "departure")),
			Arrival:      clockTime(firstString(m, "arrival")),
			Price:        int(math.Round(price)),
			Source:       service,
			Provenance:   domain.ProvenanceReal,
		}
		if n, ok := firstNumber(m, "seats"); ok && n > 0 {
			o.Seats = int(n)
		}
		out = append(out, o)
	}
	return out
}
