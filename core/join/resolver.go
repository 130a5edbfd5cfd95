// Package join resolves BOM lines against the reference catalog.
// A resolved line carries everything the tariff, logistics and cost
// stages need, so none of them touch the catalog again for component data.
package join

import (
	"fmt"

	"github.com/shopspring/decimal"

	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

var one = decimal.NewFromInt(1)

// Reference is the slice of the catalog the join needs
type Reference interface {
	Component(id types.ComponentID) (types.Component, bool)
	Site(id types.SiteID) (types.Site, bool)
}

// ResolvedLine is a BOM line with its component and origin site joined in
type ResolvedLine struct {
	SKU         types.SKU            `json:"sku"`
	ComponentID types.ComponentID    `json:"component_id"`
	Class       types.ComponentClass `json:"class"`

	Quantity decimal.Decimal `json:"quantity"`
	Yield    decimal.Decimal `json:"yield"`

	OriginSite    types.SiteID   `json:"origin_site"`
	OriginCountry types.Country  `json:"origin_country"`
	OriginRole    types.SiteRole `json:"origin_role"`

	UnitWeightKg decimal.Decimal `json:"unit_weight_kg"`
	BasePrice    decimal.Decimal `json:"base_price"`

	// Rerouted is set when a routing override replaced the catalog origin
	Rerouted bool `json:"rerouted,omitempty"`
}

// EffectiveQuantity is the input quantity per finished unit after scrap: qty / yield
func (l ResolvedLine) EffectiveQuantity() decimal.Decimal {
	return l.Quantity.Div(l.Yield)
}

// MaterialCost is (basePrice * qty) / yield
func (l ResolvedLine) MaterialCost() decimal.Decimal {
	return l.BasePrice.Mul(l.Quantity).Div(l.Yield)
}

// ShippedWeightKg is the weight moved per finished unit, scrap included
func (l ResolvedLine) ShippedWeightKg() decimal.Decimal {
	return l.UnitWeightKg.Mul(l.Quantity).Div(l.Yield)
}

// Resolve joins BOM lines to components and origin sites, in line order.
// routing maps a component to a replacement origin site. The first missing
// join target or invalid yield fails the whole set: a partial BOM would
// understate the landed cost.
func Resolve(lines []types.BOMLine, ref Reference, routing map[types.ComponentID]types.SiteID) ([]ResolvedLine, error) {
	out := make([]ResolvedLine, 0, len(lines))
	for _, line := range lines {
		component, ok := ref.Component(line.ComponentID)
		if !ok {
			return nil, errors.MissingReference("component", string(line.ComponentID)).
				WithContext("sku", string(line.SKU))
		}

		originID := component.OriginSiteID
		rerouted := false
		if site, ok := routing[line.ComponentID]; ok && site != "" && site != originID {
			originID = site
			rerouted = true
		}

		site, ok := ref.Site(originID)
		if !ok {
			return nil, errors.MissingReference("site", string(originID)).
				WithContext("sku", string(line.SKU)).
				WithContext("component", string(line.ComponentID))
		}

		if !line.Yield.IsPositive() || line.Yield.GreaterThan(one) {
			return nil, errors.InvalidData(fmt.Sprintf("yield %s of %s/%s outside (0,1]", line.Yield, line.SKU, line.ComponentID)).
				WithContext("sku", string(line.SKU))
		}
		if line.QuantityPerUnit.IsNegative() {
			return nil, errors.InvalidData(fmt.Sprintf("negative quantity %s of %s/%s", line.QuantityPerUnit, line.SKU, line.ComponentID)).
				WithContext("sku", string(line.SKU))
		}

		out = append(out, ResolvedLine{
			SKU:           line.SKU,
			ComponentID:   line.ComponentID,
			Class:         component.Class,
			Quantity:      line.QuantityPerUnit,
			Yield:         line.Yield,
			OriginSite:    site.ID,
			OriginCountry: site.Country,
			OriginRole:    site.Role,
			UnitWeightKg:  component.UnitWeightKg,
			BasePrice:     component.BasePrice,
			Rerouted:      rerouted,
		})
	}
	return out, nil
}
