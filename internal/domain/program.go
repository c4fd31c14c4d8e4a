package domain

// Carrier is the canonical identity of an operating airline. Upstream records
// refer to carriers by IATA code, English name or Japanese name; all of them
// are resolved to one of these values through the reference alias table.
type Carrier string

const (
	CarrierANA          Carrier = "NH"
	CarrierJAL          Carrier = "JL"
	CarrierUnited       Carrier = "UA"
	CarrierAmerican     Carrier = "AA"
	CarrierDelta        Carrier = "DL"
	CarrierAirDo        Carrier = "HD"
	CarrierSolaseed     Carrier = "6J"
	CarrierStarFlyer    Carrier = "7G"
	CarrierSkymark      Carrier = "BC"
	CarrierPeach        Carrier = "MM"
	CarrierJetstarJapan Carrier = "GK"

	// CarrierUnsupported is what unrecognised identifiers resolve to. It never
	// stands in for a real carrier.
	CarrierUnsupported Carrier = "UNSUPPORTED"
)

// Program is the canonical key of a loyalty (mileage) program.
type Program string

const (
	ProgramANA    Program = "ANA"
	ProgramJAL    Program = "JAL"
	ProgramUnited Program = "UA"
	ProgramAA     Program = "AA"
	ProgramDelta  Program = "DL"

	// ProgramNone marks carriers without a redeemable program (baseline 0).
	ProgramNone Program = "NONE"
	// ProgramUnsupported marks offers whose carrier could not be identified.
	ProgramUnsupported Program = "UNSUPPORTED"
)

// Redeemable reports whether miles of p can be spent at all.
func (p Program) Redeemable() bool {
	return p != ProgramNone && p != ProgramUnsupported && p != ""
}

// LoyaltyProgram is the static description of one program.
type LoyaltyProgram struct {
	Key      Program
	Name     string
	Unit     string  // currency name shown to users, e.g. "miles"
	Baseline float64 // JPY per unit; 0 means "no program"

	// Flagship operates synthetic offers on international routes,
	// DomesticCarrier on domestic ones.
	Flagship        Carrier
	DomesticCarrier Carrier

	Domestic      bool // has a domestic (Japan) redemption chart
	International bool // has an international redemption chart
}
