// Package types defines the core types for landed cost computation.
// These types are the shared vocabulary of every engine package.
package types

// Currency is a currency label. No conversion is ever performed; every
// figure of one engine instance is expressed in the same currency.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyCHF Currency = "CHF"
	CurrencyEUR Currency = "EUR"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// SKU identifies a finished product
type SKU string

// ComponentID identifies a purchased component
type ComponentID string

// SiteID identifies a physical site (supplier, plant, business unit)
type SiteID string

// Country is a country name as it appears in the reference data
type Country string

// ScenarioDate identifies a tariff scenario
type ScenarioDate string

// ComponentClass is the tariff classification of a component
type ComponentClass string

// FinalAssemblyClass is the pseudo component class under which the import
// tariff on a finished good is keyed, by assembly country and scenario date.
const FinalAssemblyClass ComponentClass = "FinalAssembly"

// SiteRole describes what a site does in the network
type SiteRole string

const (
	RoleOrigin   SiteRole = "origin"
	RoleAssembly SiteRole = "assembly"
	RoleOther    SiteRole = "other"
)

// TariffSource records where a resolved tariff rate came from
type TariffSource string

const (
	// SourceOverride is an analyst supplied rate
	SourceOverride TariffSource = "override"

	// SourceScenario is a base rate of the active scenario
	SourceScenario TariffSource = "scenario"

	// SourceDefault is the template default rate (opt-in tier)
	SourceDefault TariffSource = "default"

	// SourceNone means no rate exists; the rate is zero and flagged as a data gap
	SourceNone TariffSource = "none"

	// SourceDomestic means the goods never cross a border; no duty applies
	SourceDomestic TariffSource = "domestic"
)

// String returns the string representation
func (s TariffSource) String() string {
	return string(s)
}

// IsDataGap reports whether the rate is zero only because no data exists
func (s TariffSource) IsDataGap() bool {
	return s == SourceNone
}

// LegKind distinguishes the two kinds of logistics legs
type LegKind string

const (
	// LegInbound carries a component from its origin to the assembly site
	LegInbound LegKind = "inbound"

	// LegOutbound carries the finished good to the destination market
	LegOutbound LegKind = "outbound"
)
