package app

import (
	"fmt"
	"strings"
	"time"

	"milecompare/internal/domain"
	"milecompare/internal/pipeline"
	"milecompare/internal/reference"
)

const maxPassengers = 9

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrValidation}, args...)...)
}

func airportCode(field, v string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(v))
	if code == "" {
		return "", invalid("%s is required", field)
	}
	if len(code) != 3 {
		return "", invalid("%s must be a 3-letter airport code", field)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", invalid("%s must be a 3-letter airport code", field)
		}
	}
	return code, nil
}

// ValidateSearch checks a request and turns it into a SearchContext. today is
// the first bookable date.
func ValidateSearch(req domain.SearchRequest, today time.Time) (domain.SearchContext, error) {
	var sc domain.SearchContext
	var err error

	if sc.Origin, err = airportCode("origin", req.Origin); err != nil {
		return sc, err
	}
	if sc.Destination, err = airportCode("destination", req.Destination); err != nil {
		return sc, err
	}
	if sc.Origin == sc.Destination {
		return sc, invalid("origin and destination must differ")
	}

	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	sc.Date, err = time.Parse(pipeline.DateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return sc, invalid("date must be YYYY-MM-DD")
	}
	if sc.Date.Before(today) {
		return sc, invalid("date %s is in the past", req.Date)
	}
	if req.ReturnDate != nil && strings.TrimSpace(*req.ReturnDate) != "" {
		rd, err := time.Parse(pipeline.DateLayout, strings.TrimSpace(*req.ReturnDate))
		if err != nil {
			return sc, invalid("returnDate must be YYYY-MM-DD")
		}
		if rd.Before(sc.Date) {
			return sc, invalid("returnDate is before date")
		}
		sc.ReturnDate = &rd
	}

	switch {
	case req.PassengerCount == 0:
		sc.Passengers = 1
	case req.PassengerCount < 0 || req.PassengerCount > maxPassengers:
		return sc, invalid("passengerCount must be between 1 and %d", maxPassengers)
	default:
		sc.Passengers = req.PassengerCount
	}

	sc.Mode = req.ComparisonMode
	if sc.Mode == "" {
		sc.Mode = domain.ModeAll
	}
	switch sc.Mode {
	case domain.ModeAll:
	case domain.ModeSingle, domain.ModeMultiple:
		if sc.Programs, err = resolvePrograms(req.TargetPrograms); err != nil {
			return sc, err
		}
		if len(sc.Programs) == 0 {
			return sc, invalid("targetPrograms is required for %s mode", sc.Mode)
		}
		if sc.Mode == domain.ModeSingle && len(sc.Programs) != 1 {
			return sc, invalid("single mode takes exactly one program, got %d", len(sc.Programs))
		}
	default:
		return sc, invalid("unknown comparisonMode %q", req.ComparisonMode)
	}

	switch req.SortBy {
	case "":
		sc.SortBy = domain.SortByValue
	case domain.SortByValue, domain.SortByDeparture:
		sc.SortBy = req.SortBy
	default:
		return sc, invalid("unknown sortBy %q", req.SortBy)
	}

	sc.ShowAllTimeSlots = req.ShowAllTimeSlots
	sc.Season = pipeline.SeasonFor(sc.Date)
	return sc, nil
}

// resolvePrograms maps identifiers to programs, dropping duplicates in order.
func resolvePrograms(ids []string) ([]domain.Program, error) {
	seen := make(map[domain.Program]bool, len(ids))
	var out []domain.Program
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			continue
		}
		p, ok := reference.ResolveProgram(id)
		if !ok {
			return nil, invalid("unsupported program %q", id)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}
