package reference

import "milecompare/internal/domain"

// Fuel surcharges (JPY per passenger, one way) payable on award tickets.
// Domestic awards carry none; missing entries are 0.
var surcharges = map[domain.Program]map[domain.Region]int{
	domain.ProgramANA: {
		domain.RegionKorea:         2000,
		domain.RegionEastAsia:      5000,
		domain.RegionSoutheastAsia: 12000,
		domain.RegionHawaii:        14000,
		domain.RegionNorthAmerica:  24000,
		domain.RegionEurope:        28000,
		domain.RegionOceania:       18000,
	},
	domain.ProgramJAL: {
		domain.RegionKorea:         1800,
		domain.RegionEastAsia:      4800,
		domain.RegionSoutheastAsia: 11000,
		domain.RegionHawaii:        13000,
		domain.RegionNorthAmerica:  22000,
		domain.RegionEurope:        27000,
		domain.RegionOceania:       17000,
	},
	domain.ProgramAA: {
		domain.RegionEurope: 20000,
	},
	domain.ProgramDelta: {
		domain.RegionKorea:         5000,
		domain.RegionEastAsia:      5000,
		domain.RegionSoutheastAsia: 5000,
		domain.RegionHawaii:        5000,
		domain.RegionNorthAmerica:  5000,
		domain.RegionEurope:        5000,
		domain.RegionOceania:       5000,
	},
}

func FuelSurcharge(p domain.Program, r domain.Region) int {
	if r == "" {
		return 0
	}
	return surcharges[p][r]
}
