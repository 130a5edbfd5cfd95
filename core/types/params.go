// Package types - Analyst parameter set
package types

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// OverrideKey identifies a tariff override by class and origin country
type OverrideKey struct {
	Class  ComponentClass `json:"class"`
	Origin Country        `json:"origin"`
}

// String returns a stable string form
func (k OverrideKey) String() string {
	return string(k.Class) + "/" + string(k.Origin)
}

// Overrides maps class/origin pairs to analyst rates in percent.
// A missing key is the null override: fall back to the scenario rate.
type Overrides map[OverrideKey]decimal.Decimal

// Get returns the override rate for a pair, if one is set
func (o Overrides) Get(class ComponentClass, origin Country) (decimal.Decimal, bool) {
	if o == nil {
		return decimal.Zero, false
	}
	rate, ok := o[OverrideKey{Class: class, Origin: origin}]
	return rate, ok
}

// Keys returns the keys in stable order
func (o Overrides) Keys() []OverrideKey {
	keys := make([]OverrideKey, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// Clone returns an independent copy
func (o Overrides) Clone() Overrides {
	out := make(Overrides, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// OverridesFromTemplate collects every template row that carries a user rate
func OverridesFromTemplate(rows []TariffOverride) Overrides {
	out := make(Overrides)
	for _, row := range rows {
		if row.UserRatePct != nil {
			out[row.Key()] = *row.UserRatePct
		}
	}
	return out
}

// ParameterSet is the complete set of analyst-controlled inputs.
// Every engine computation is a pure function of (reference data, ParameterSet).
type ParameterSet struct {
	// ScenarioDate selects the tariff scenario
	ScenarioDate ScenarioDate `json:"scenario_date"`

	// AssemblySite is the selected final-assembly site
	AssemblySite SiteID `json:"assembly_site"`

	// Routing reroutes a component to ship from another origin site
	Routing map[ComponentID]SiteID `json:"routing,omitempty"`

	// IncludeFixedFees amortizes fixed shipment fees into per-unit logistics
	IncludeFixedFees bool `json:"include_fixed_fees"`

	// Overrides are the analyst tariff overrides
	Overrides Overrides `json:"-"`

	// SKUs limits evaluation to these products (empty = all)
	SKUs []SKU `json:"skus,omitempty"`
}

// Validate checks that the parameter set can be evaluated at all
func (p ParameterSet) Validate() error {
	if p.ScenarioDate == "" {
		return fmt.Errorf("scenario date is required")
	}
	if p.AssemblySite == "" {
		return fmt.Errorf("assembly site is required")
	}
	for key, rate := range p.Overrides {
		if rate.IsNegative() {
			return fmt.Errorf("override %s is negative: %s", key, rate)
		}
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate shared state
func (p ParameterSet) Clone() ParameterSet {
	out := p
	out.Overrides = p.Overrides.Clone()
	if p.Routing != nil {
		out.Routing = make(map[ComponentID]SiteID, len(p.Routing))
		for k, v := range p.Routing {
			out.Routing[k] = v
		}
	}
	if p.SKUs != nil {
		out.SKUs = append([]SKU(nil), p.SKUs...)
	}
	return out
}

// ResetOverrides clears every override and nothing else
func (p *ParameterSet) ResetOverrides() {
	p.Overrides = make(Overrides)
}

// OriginFor returns the rerouted origin of a component, if any
func (p ParameterSet) OriginFor(id ComponentID) (SiteID, bool) {
	site, ok := p.Routing[id]
	return site, ok && site != ""
}

// Equal reports whether two parameter sets describe the same inputs
func (p ParameterSet) Equal(other ParameterSet) bool {
	if p.ScenarioDate != other.ScenarioDate ||
		p.AssemblySite != other.AssemblySite ||
		p.IncludeFixedFees != other.IncludeFixedFees {
		return false
	}
	if len(p.Routing) != len(other.Routing) {
		return false
	}
	for k, v := range p.Routing {
		if other.Routing[k] != v {
			return false
		}
	}
	if len(p.Overrides) != len(other.Overrides) {
		return false
	}
	for k, v := range p.Overrides {
		ov, ok := other.Overrides[k]
		if !ok || !ov.Equal(v) {
			return false
		}
	}
	if len(p.SKUs) != len(other.SKUs) {
		return false
	}
	for i := range p.SKUs {
		if p.SKUs[i] != other.SKUs[i] {
			return false
		}
	}
	return true
}
