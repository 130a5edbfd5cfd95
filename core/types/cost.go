// Package types - Cost result types
package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Ratio is a fraction that may be undefined (division by zero)
type Ratio struct {
	Value   decimal.Decimal
	Defined bool
}

// NewRatio divides num by den, returning an undefined ratio when den is zero
func NewRatio(num, den decimal.Decimal) Ratio {
	if den.IsZero() {
		return Ratio{}
	}
	return Ratio{Value: num.Div(den), Defined: true}
}

// String renders the ratio as a percentage
func (r Ratio) String() string {
	if !r.Defined {
		return "undefined"
	}
	return r.Value.Mul(hundred).StringFixed(1) + "%"
}

// MarshalJSON renders the fraction, or "undefined"
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined {
		return json.Marshal("undefined")
	}
	return json.Marshal(r.Value.String())
}

// TariffResolution is a resolved ad-valorem rate with its provenance
type TariffResolution struct {
	// ComponentID is empty for the final-assembly resolution
	ComponentID ComponentID `json:"component_id,omitempty"`

	// Class is the component class (or FinalAssemblyClass)
	Class ComponentClass `json:"class"`

	// Origin is the country of origin the rate applies to
	Origin Country `json:"origin"`

	// ScenarioDate is the scenario the rate was resolved against
	ScenarioDate ScenarioDate `json:"scenario_date"`

	// RatePct is the rate in percent
	RatePct decimal.Decimal `json:"rate_pct"`

	// Source is where the rate came from
	Source TariffSource `json:"source"`
}

// Rate returns the rate as a fraction
func (r TariffResolution) Rate() decimal.Decimal {
	return r.RatePct.Div(hundred)
}

// IsDataGap reports whether the zero rate is due to missing data
func (r TariffResolution) IsDataGap() bool {
	return r.Source.IsDataGap()
}

// LogisticsLeg is the per-unit cost of one shipment leg
type LogisticsLeg struct {
	// Kind is inbound (component) or outbound (finished good)
	Kind LegKind `json:"kind"`

	// ComponentID is empty for the outbound leg
	ComponentID ComponentID `json:"component_id,omitempty"`

	From Country `json:"from"`
	To   Country `json:"to"`

	// WeightKg is the shipped weight per finished unit
	WeightKg decimal.Decimal `json:"weight_kg"`

	// CostPerKg is the lane rate used
	CostPerKg decimal.Decimal `json:"cost_per_kg"`

	// VariableCost is CostPerKg * WeightKg
	VariableCost decimal.Decimal `json:"variable_cost"`

	// FixedFeeShare is the amortized fixed fee (zero unless fees are included)
	FixedFeeShare decimal.Decimal `json:"fixed_fee_share"`

	// Cost is VariableCost + FixedFeeShare
	Cost decimal.Decimal `json:"cost"`

	// LeadTimeDays is the lane transit time
	LeadTimeDays decimal.Decimal `json:"lead_time_days"`

	// Domestic is set when the leg never leaves the country and costs nothing
	Domestic bool `json:"domestic,omitempty"`
}

// LogisticsBreakdown is the logistics cost of one SKU at one assembly site
type LogisticsBreakdown struct {
	Inbound  []LogisticsLeg `json:"inbound"`
	Outbound LogisticsLeg   `json:"outbound"`

	InboundCost  decimal.Decimal `json:"inbound_cost"`
	OutboundCost decimal.Decimal `json:"outbound_cost"`
	Total        decimal.Decimal `json:"total"`

	// LeadTimeDays is the sum of lead times across the legs used
	LeadTimeDays decimal.Decimal `json:"lead_time_days"`

	// CriticalPathDays is the slowest inbound leg plus the outbound leg
	CriticalPathDays decimal.Decimal `json:"critical_path_days"`

	// FixedFeesIncluded records the fee toggle the breakdown was computed with
	FixedFeesIncluded bool `json:"fixed_fees_included"`
}

// CostBreakdown is the landed cost of one SKU at one assembly site
type CostBreakdown struct {
	SKU             SKU          `json:"sku"`
	AssemblySite    SiteID       `json:"assembly_site"`
	AssemblyCountry Country      `json:"assembly_country"`
	Destination     Country      `json:"destination"`
	ScenarioDate    ScenarioDate `json:"scenario_date"`

	Material          decimal.Decimal `json:"material"`
	InboundLogistics  decimal.Decimal `json:"inbound_logistics"`
	OutboundLogistics decimal.Decimal `json:"outbound_logistics"`
	Logistics         decimal.Decimal `json:"logistics"`

	ComponentTariffs    decimal.Decimal `json:"component_tariffs"`
	FinalAssemblyTariff decimal.Decimal `json:"final_assembly_tariff"`
	Tariffs             decimal.Decimal `json:"tariffs"`

	// CustomsValue is the base the final-assembly tariff was applied to
	CustomsValue decimal.Decimal `json:"customs_value"`

	Conversion decimal.Decimal `json:"conversion"`
	Total      decimal.Decimal `json:"total"`

	ListPrice decimal.Decimal `json:"list_price"`
	MarginAbs decimal.Decimal `json:"margin_abs"`
	MarginPct Ratio           `json:"margin_pct"`

	LeadTimeDays     decimal.Decimal `json:"lead_time_days"`
	CriticalPathDays decimal.Decimal `json:"critical_path_days"`
}

// Coordinate is a map position
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Flow is one edge of the supply map, labelled with its cost contribution
type Flow struct {
	SKU SKU `json:"sku"`

	// Label is the component ID, or "Finished Good"
	Label string `json:"label"`

	FromSite    SiteID   `json:"from_site"`
	ToSite      SiteID   `json:"to_site"`
	FromCountry Country  `json:"from_country"`
	ToCountry   Country  `json:"to_country"`
	FromRole    SiteRole `json:"from_role,omitempty"`
	ToRole      SiteRole `json:"to_role,omitempty"`

	TariffRatePct decimal.Decimal `json:"tariff_rate_pct"`
	TariffSource  TariffSource    `json:"tariff_source"`

	// CostValue is the cost this flow contributes to the landed cost
	CostValue decimal.Decimal `json:"cost_value"`

	// CostShare is CostValue / landed cost
	CostShare Ratio `json:"cost_share"`

	From *Coordinate `json:"from_coord,omitempty"`
	To   *Coordinate `json:"to_coord,omitempty"`
}
