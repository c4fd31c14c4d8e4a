package reference

import (
	"strings"

	"milecompare/internal/domain"
)

var programs = map[domain.Program]domain.LoyaltyProgram{
	domain.ProgramANA: {
		Key: domain.ProgramANA, Name: "ANA Mileage Club", Unit: "miles", Baseline: 2.0,
		Flagship: domain.CarrierANA, DomesticCarrier: domain.CarrierANA,
		Domestic: true, International: true,
	},
	domain.ProgramJAL: {
		Key: domain.ProgramJAL, Name: "JAL Mileage Bank", Unit: "miles", Baseline: 2.0,
		Flagship: domain.CarrierJAL, DomesticCarrier: domain.CarrierJAL,
		Domestic: true, International: true,
	},
	domain.ProgramUnited: {
		Key: domain.ProgramUnited, Name: "United MileagePlus", Unit: "miles", Baseline: 1.6,
		Flagship: domain.CarrierUnited, DomesticCarrier: domain.CarrierANA,
		Domestic: true, International: true,
	},
	domain.ProgramAA: {
		Key: domain.ProgramAA, Name: "American AAdvantage", Unit: "miles", Baseline: 1.6,
		Flagship: domain.CarrierAmerican, DomesticCarrier: domain.CarrierJAL,
		Domestic: true, International: true,
	},
	domain.ProgramDelta: {
		Key: domain.ProgramDelta, Name: "Delta SkyMiles", Unit: "miles", Baseline: 1.3,
		Flagship:      domain.CarrierDelta,
		International: true,
	},
	domain.ProgramNone: {
		Key: domain.ProgramNone, Name: "No mileage program", Unit: "",
	},
}

// LookupProgram returns the static description of p. Unsupported and unknown
// keys report false.
func LookupProgram(p domain.Program) (domain.LoyaltyProgram, bool) {
	lp, ok := programs[p]
	return lp, ok
}

// Baseline is the program's reference value per unit (0 = no program).
func Baseline(p domain.Program) float64 {
	return programs[p].Baseline
}

type carrierInfo struct {
	Name    string
	NameJA  string
	Program domain.Program // natural (operating) program
}

var carriers = map[domain.Carrier]carrierInfo{
	domain.CarrierANA:          {"ANA", "全日空", domain.ProgramANA},
	domain.CarrierJAL:          {"JAL", "日本航空", domain.ProgramJAL},
	domain.CarrierUnited:       {"United Airlines", "ユナイテッド航空", domain.ProgramUnited},
	domain.CarrierAmerican:     {"American Airlines", "アメリカン航空", domain.ProgramAA},
	domain.CarrierDelta:        {"Delta Air Lines", "デルタ航空", domain.ProgramDelta},
	domain.CarrierAirDo:        {"AIRDO", "エア・ドゥ", domain.ProgramANA},
	domain.CarrierSolaseed:     {"Solaseed Air", "ソラシドエア", domain.ProgramANA},
	domain.CarrierStarFlyer:    {"StarFlyer", "スターフライヤー", domain.ProgramANA},
	domain.CarrierSkymark:      {"Skymark", "スカイマーク", domain.ProgramNone},
	domain.CarrierPeach:        {"Peach", "ピーチ", domain.ProgramNone},
	domain.CarrierJetstarJapan: {"Jetstar Japan", "ジェットスター・ジャパン", domain.ProgramNone},
}

/********** alias registries (single source of truth) **********/

var carrierAliases = map[domain.Carrier][]string{
	domain.CarrierANA:          {"NH", "ANA", "All Nippon Airways", "全日空", "全日本空輸"},
	domain.CarrierJAL:          {"JL", "JAL", "Japan Airlines", "日本航空"},
	domain.CarrierUnited:       {"UA", "United", "United Airlines", "ユナイテッド航空"},
	domain.CarrierAmerican:     {"AA", "American", "American Airlines", "アメリカン航空"},
	domain.CarrierDelta:        {"DL", "Delta", "Delta Air Lines", "デルタ航空"},
	domain.CarrierAirDo:        {"HD", "AIRDO", "Air Do", "エア・ドゥ"},
	domain.CarrierSolaseed:     {"6J", "Solaseed", "Solaseed Air", "ソラシドエア"},
	domain.CarrierStarFlyer:    {"7G", "StarFlyer", "Star Flyer", "スターフライヤー"},
	domain.CarrierSkymark:      {"BC", "Skymark", "Skymark Airlines", "スカイマーク"},
	domain.CarrierPeach:        {"MM", "Peach", "Peach Aviation", "ピーチ", "ピーチ・アビエーション"},
	domain.CarrierJetstarJapan: {"GK", "Jetstar", "Jetstar Japan", "ジェットスター", "ジェットスター・ジャパン"},
}

// program names that are not also carrier identifiers
var programAliases = map[domain.Program][]string{
	domain.ProgramANA:    {"ANA Mileage Club", "AMC", "ANAマイレージクラブ"},
	domain.ProgramJAL:    {"JAL Mileage Bank", "JMB", "JALマイレージバンク"},
	domain.ProgramUnited: {"MileagePlus", "United MileagePlus"},
	domain.ProgramAA:     {"AAdvantage", "American AAdvantage"},
	domain.ProgramDelta:  {"SkyMiles", "Delta SkyMiles"},
}

var (
	carrierIndex = buildIndex(carrierAliases)
	programIndex = buildIndex(programAliases)
)

func buildIndex[K comparable](aliases map[K][]string) map[string]K {
	idx := make(map[string]K, len(aliases)*4)
	for k, names := range aliases {
		for _, n := range names {
			idx[aliasKey(n)] = k
		}
	}
	return idx
}

// aliasKey folds case and whitespace so "all  nippon airways" matches.
func aliasKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ResolveCarrier maps any known code or name to its canonical carrier.
// Anything else is CarrierUnsupported.
func ResolveCarrier(id string) domain.Carrier {
	if c, ok := carrierIndex[aliasKey(id)]; ok {
		return c
	}
	return domain.CarrierUnsupported
}

// NaturalProgram is the program a carrier's own flights credit to.
func NaturalProgram(c domain.Carrier) domain.Program {
	if ci, ok := carriers[c]; ok {
		return ci.Program
	}
	return domain.ProgramUnsupported
}

func CarrierName(c domain.Carrier) string {
	if ci, ok := carriers[c]; ok {
		return ci.Name
	}
	return string(c)
}

// ResolveProgram maps a requested program identifier (program name, carrier
// code or carrier name) to a redeemable program.
func ResolveProgram(id string) (domain.Program, bool) {
	k := aliasKey(id)
	if p, ok := programIndex[k]; ok {
		return p, true
	}
	if c, ok := carrierIndex[k]; ok {
		if p := NaturalProgram(c); p.Redeemable() {
			return p, true
		}
	}
	return "", false
}

// partnerships: operating program -> programs whose miles also redeem on it
var partnerships = map[domain.Program][]domain.Program{
	domain.ProgramANA:    {domain.ProgramUnited},
	domain.ProgramUnited: {domain.ProgramANA},
	domain.ProgramJAL:    {domain.ProgramAA},
	domain.ProgramAA:     {domain.ProgramJAL},
}

// Partners returns the programs (other than operating itself) that can redeem
// seats on flights crediting to operating.
func Partners(operating domain.Program) []domain.Program {
	return partnerships[operating]
}

// CanRedeem reports whether miles of requested buy seats crediting to operating.
func CanRedeem(requested, operating domain.Program) bool {
	if !requested.Redeemable() || !operating.Redeemable() {
		return false
	}
	if requested == operating {
		return true
	}
	for _, p := range partnerships[operating] {
		if p == requested {
			return true
		}
	}
	return false
}

// ExpectedRoster lists the carriers a domestic result is expected to show.
func ExpectedRoster() []domain.Carrier {
	return []domain.Carrier{
		domain.CarrierANA,
		domain.CarrierJAL,
		domain.CarrierSkymark,
		domain.CarrierPeach,
		domain.CarrierJetstarJapan,
	}
}
