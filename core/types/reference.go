// Package types - Reference data entities
package types

import "github.com/shopspring/decimal"

// Product is a finished SKU sold into a target market
type Product struct {
	// SKU identifies the product
	SKU SKU `json:"sku"`

	// Description is a human-readable name
	Description string `json:"description,omitempty"`

	// ListPrice is the selling price per unit
	ListPrice decimal.Decimal `json:"list_price"`

	// TargetMarket is the destination country of the finished good
	TargetMarket Country `json:"target_market"`

	// UnitWeightKg is the shipped weight of one finished unit (zero = derive from BOM)
	UnitWeightKg decimal.Decimal `json:"unit_weight_kg"`
}

// BOMLine is one component requirement of a SKU
type BOMLine struct {
	// SKU is the parent product
	SKU SKU `json:"sku"`

	// ComponentID is the required component
	ComponentID ComponentID `json:"component_id"`

	// QuantityPerUnit is the number of components per finished unit
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`

	// Yield is the fraction of input that ends up in the unit, in (0,1]
	Yield decimal.Decimal `json:"yield"`
}

// Component is a purchased part
type Component struct {
	// ID identifies the component
	ID ComponentID `json:"id"`

	// Description is a human-readable name
	Description string `json:"description,omitempty"`

	// Class is the tariff classification
	Class ComponentClass `json:"class"`

	// UnitWeightKg is the weight of one component
	UnitWeightKg decimal.Decimal `json:"unit_weight_kg"`

	// BasePrice is the unit purchase price
	BasePrice decimal.Decimal `json:"base_price"`

	// OriginSiteID is the site the component ships from
	OriginSiteID SiteID `json:"origin_site_id"`
}

// Site is a physical location in the network
type Site struct {
	ID      SiteID   `json:"id"`
	Country Country  `json:"country"`
	City    string   `json:"city,omitempty"`
	Role    SiteRole `json:"role"`
}

// AssemblyOption states that a SKU can be assembled at a site, and at what cost.
// Absence of an option means the SKU cannot be built there.
type AssemblyOption struct {
	SKU                SKU             `json:"sku"`
	SiteID             SiteID          `json:"site_id"`
	BaseConversionCost decimal.Decimal `json:"base_conversion_cost"`
}

// LogisticsLane is a priced shipping route between two countries
type LogisticsLane struct {
	// From is the shipping country
	From Country `json:"from"`

	// To is the receiving country
	To Country `json:"to"`

	// CostPerKg is the variable freight cost
	CostPerKg decimal.Decimal `json:"cost_per_kg"`

	// LeadTimeDays is the transit time
	LeadTimeDays decimal.Decimal `json:"lead_time_days"`

	// FixedPerShipment is the fixed fee per shipment (optional, zero when absent)
	FixedPerShipment decimal.Decimal `json:"fixed_per_shipment"`
}

// TariffScenario is a selectable tariff regime
type TariffScenario struct {
	Date  ScenarioDate `json:"date"`
	Label string       `json:"label"`
}

// BaseTariffRate is the ad-valorem rate of a class/origin pair in one scenario
type BaseTariffRate struct {
	Class   ComponentClass  `json:"class"`
	Origin  Country         `json:"origin"`
	Date    ScenarioDate    `json:"date"`
	RatePct decimal.Decimal `json:"rate_pct"`
}

// TariffOverride is one row of the analyst override template.
// A nil UserRatePct means no override is set for the pair.
type TariffOverride struct {
	Class          ComponentClass   `json:"class"`
	Origin         Country          `json:"origin"`
	DefaultRatePct *decimal.Decimal `json:"default_rate_pct,omitempty"`
	UserRatePct    *decimal.Decimal `json:"user_rate_pct,omitempty"`
}

// Key returns the override key of the row
func (o TariffOverride) Key() OverrideKey {
	return OverrideKey{Class: o.Class, Origin: o.Origin}
}

// MapNode places a site on the map
type MapNode struct {
	SiteID  SiteID   `json:"site_id"`
	Country Country  `json:"country"`
	City    string   `json:"city,omitempty"`
	Role    SiteRole `json:"role"`
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
}
