package reference

import (
	"time"

	"milecompare/internal/domain"
)

// ChartsEffective is the effective date of the built-in (version 1) charts.
var ChartsEffective = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

func sa(off, regular, peak int) domain.SeasonAmounts {
	return domain.SeasonAmounts{Off: off, Regular: regular, Peak: peak}
}

func flat(n int) domain.SeasonAmounts { return sa(n, n, n) }

// DefaultCharts returns fresh copies of the built-in charts; the registry is
// seeded with these at startup.
func DefaultCharts() []domain.MileChart {
	return []domain.MileChart{
		{
			Program: domain.ProgramANA, Version: 1, EffectiveFrom: ChartsEffective,
			Domestic: &domain.ZoneTable{
				Breakpoints: []int{300, 600, 1000, 2000},
				Amounts: []domain.SeasonAmounts{
					sa(5000, 6000, 7500),
					sa(6000, 7000, 9000),
					sa(7500, 9000, 10500),
					sa(9000, 11000, 13000),
					sa(10000, 12500, 14500),
				},
			},
			International: map[domain.Region]domain.SeasonAmounts{
				domain.RegionKorea:         sa(12000, 15000, 18000),
				domain.RegionEastAsia:      sa(17000, 20000, 23000),
				domain.RegionSoutheastAsia: sa(30000, 35000, 38000),
				domain.RegionHawaii:        sa(35000, 40000, 43000),
				domain.RegionNorthAmerica:  sa(40000, 50000, 55000),
				domain.RegionEurope:        sa(45000, 55000, 60000),
				domain.RegionOceania:       sa(37000, 45000, 50000),
			},
		},
		{
			Program: domain.ProgramJAL, Version: 1, EffectiveFrom: ChartsEffective,
			Domestic: &domain.ZoneTable{
				Breakpoints: []int{300, 600, 1000, 2000},
				Amounts: []domain.SeasonAmounts{
					sa(4000, 6000, 7500),
					sa(5000, 7500, 9000),
					sa(6500, 9000, 11000),
					sa(8000, 10500, 12500),
					sa(9500, 12000, 14000),
				},
			},
			International: map[domain.Region]domain.SeasonAmounts{
				domain.RegionKorea:         sa(13000, 15000, 18000),
				domain.RegionEastAsia:      sa(17000, 20000, 24000),
				domain.RegionSoutheastAsia: sa(30000, 35000, 40000),
				domain.RegionHawaii:        sa(35000, 40000, 45000),
				domain.RegionNorthAmerica:  sa(40000, 50000, 54000),
				domain.RegionEurope:        sa(45000, 55000, 62000),
				domain.RegionOceania:       sa(40000, 45000, 50000),
			},
		},
		{
			Program: domain.ProgramUnited, Version: 1, EffectiveFrom: ChartsEffective,
			Domestic: &domain.ZoneTable{
				Breakpoints: []int{1300},
				Amounts:     []domain.SeasonAmounts{flat(10000), flat(13000)},
			},
			International: map[domain.Region]domain.SeasonAmounts{
				domain.RegionKorea:         flat(16000),
				domain.RegionEastAsia:      flat(20000),
				domain.RegionSoutheastAsia: flat(30000),
				domain.RegionHawaii:        flat(32500),
				domain.RegionNorthAmerica:  flat(35000),
				domain.RegionEurope:        flat(60000),
				domain.RegionOceania:       flat(40000),
			},
		},
		{
			Program: domain.ProgramAA, Version: 1, EffectiveFrom: ChartsEffective,
			Domestic: &domain.ZoneTable{
				Breakpoints: []int{1000},
				Amounts:     []domain.SeasonAmounts{flat(7500), flat(12500)},
			},
			International: map[domain.Region]domain.SeasonAmounts{
				domain.RegionKorea:         flat(15000),
				domain.RegionEastAsia:      flat(20000),
				domain.RegionSoutheastAsia: flat(30000),
				domain.RegionHawaii:        flat(35000),
				domain.RegionNorthAmerica:  sa(30000, 35000, 35000),
				domain.RegionEurope:        flat(60000),
				domain.RegionOceania:       flat(40000),
			},
		},
		{
			Program: domain.ProgramDelta, Version: 1, EffectiveFrom: ChartsEffective,
			International: map[domain.Region]domain.SeasonAmounts{
				domain.RegionKorea:         sa(15000, 20000, 25000),
				domain.RegionEastAsia:      sa(20000, 25000, 35000),
				domain.RegionSoutheastAsia: sa(30000, 35000, 45000),
				domain.RegionHawaii:        sa(30000, 40000, 55000),
				domain.RegionNorthAmerica:  sa(35000, 45000, 60000),
				domain.RegionEurope:        sa(55000, 65000, 80000),
				domain.RegionOceania:       sa(40000, 50000, 65000),
			},
		},
	}
}
