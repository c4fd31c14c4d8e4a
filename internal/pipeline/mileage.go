package pipeline

import (
	"context"
	"time"

	"milecompare/internal/domain"
	"milecompare/internal/reference"
)

const japanHub = "HND"

// RouteInfo is resolved once per request and shared by every stage.
type RouteInfo struct {
	Origin      string
	Destination string
	DistanceKm  int
	Domestic    bool
	Region      domain.Region // international only
}

func NewRouteInfo(origin, dest string, km int) RouteInfo {
	ri := RouteInfo{Origin: origin, Destination: dest, DistanceKm: km}
	originJP, destJP := reference.IsDomestic(origin), reference.IsDomestic(dest)
	switch {
	case originJP && destJP:
		ri.Domestic = true
	case originJP:
		ri.Region = reference.RegionOf(dest)
	case destJP:
		ri.Region = reference.RegionOf(origin)
	default:
		ri.Region = reference.RegionOf(fartherFromJapan(origin, dest))
	}
	return ri
}

// fartherFromJapan picks the endpoint that prices a route with no Japanese
// endpoint, so A-B and B-A fall in one region. An airport without coordinates
// counts as farthest; equal distances go to the lower code.
func fartherFromJapan(a, b string) string {
	if b < a {
		a, b = b, a
	}
	hub, _ := reference.LookupAirport(japanHub)
	pa, okA := reference.LookupAirport(a)
	pb, okB := reference.LookupAirport(b)
	switch {
	case !okA:
		return a
	case !okB:
		return b
	}
	if haversine(hub.Lat, hub.Lon, pb.Lat, pb.Lon) > haversine(hub.Lat, hub.Lon, pa.Lat, pa.Lon) {
		return b
	}
	return a
}

// MileageCalculator answers "how many units does program p need for this
// route on this date" from the chart registry.
type MileageCalculator struct {
	charts domain.ChartRegistry
}

func NewMileageCalculator(charts domain.ChartRegistry) *MileageCalculator {
	return &MileageCalculator{charts: charts}
}

func (m *MileageCalculator) Requirement(ctx context.Context, p domain.Program, route RouteInfo, date time.Time) domain.Requirement {
	req := domain.Requirement{Program: p, Status: domain.RequirementNotApplicable}
	if !route.Domestic {
		req.Region = route.Region
	}

	switch {
	case p == domain.ProgramUnsupported || p == "":
		req.Status = domain.RequirementUnsupported
		return req
	case reference.Baseline(p) == 0:
		req.Status = domain.RequirementNoProgram
		return req
	}

	chart, ok := m.charts.Chart(ctx, p, date)
	if !ok {
		return req
	}

	if route.Domestic {
		if chart.Domestic == nil {
			return req
		}
		zone := chart.Domestic.Zone(route.DistanceKm)
		req.Zone = zone
		req.Amounts = chart.Domestic.Amounts[zone-1]
		req.Status = domain.RequirementApplicable
		return req
	}

	if route.Region == domain.RegionUnknown || route.Region == "" {
		return req
	}
	amounts, ok := chart.International[route.Region]
	if !ok || amounts.IsZero() {
		return req
	}
	req.Amounts = amounts
	req.Status = domain.RequirementApplicable
	return req
}
