package engine

import (
	"strings"

	"github.com/shopspring/decimal"

	"landed-cost/core/join"
	"landed-cost/core/types"
)

// FinishedGoodLabel labels the assembly-to-market flow
const FinishedGoodLabel = "Finished Good"

// MarketSiteID names the synthetic node a finished good is shipped to
func MarketSiteID(destination types.Country) types.SiteID {
	name := strings.ToUpper(strings.ReplaceAll(string(destination), " ", "_"))
	return types.SiteID("MARKET_" + name)
}

// buildFlows lists one flow per component and one for the finished good.
// Flows contributing nothing are omitted.
func (e *Engine) buildFlows(res *SKUResult, lines []join.ResolvedLine, site types.Site) []types.Flow {
	total := res.Breakdown.Total
	var flows []types.Flow

	for i, line := range lines {
		material := line.MaterialCost()
		rate := res.Tariffs[i]
		value := material.Add(res.Logistics.Inbound[i].Cost).Add(material.Mul(rate.Rate()))
		if !value.IsPositive() {
			continue
		}
		flows = append(flows, types.Flow{
			SKU:           res.SKU,
			Label:         string(line.ComponentID),
			FromSite:      line.OriginSite,
			ToSite:        site.ID,
			FromCountry:   line.OriginCountry,
			ToCountry:     site.Country,
			FromRole:      line.OriginRole,
			ToRole:        site.Role,
			TariffRatePct: rate.RatePct,
			TariffSource:  rate.Source,
			CostValue:     value,
			CostShare:     types.NewRatio(value, total),
			From:          e.coordinate(line.OriginSite),
			To:            e.coordinate(site.ID),
		})
	}

	destination := res.Breakdown.Destination
	value := res.Breakdown.OutboundLogistics.Add(res.Breakdown.FinalAssemblyTariff)
	if value.IsPositive() {
		market := MarketSiteID(destination)
		flows = append(flows, types.Flow{
			SKU:           res.SKU,
			Label:         FinishedGoodLabel,
			FromSite:      site.ID,
			ToSite:        market,
			FromCountry:   site.Country,
			ToCountry:     destination,
			FromRole:      site.Role,
			ToRole:        types.RoleOther,
			TariffRatePct: res.FinalAssembly.RatePct,
			TariffSource:  res.FinalAssembly.Source,
			CostValue:     value,
			CostShare:     types.NewRatio(value, total),
			From:          e.coordinate(site.ID),
			To:            e.coordinate(market),
		})
	}
	return flows
}

func (e *Engine) coordinate(id types.SiteID) *types.Coordinate {
	node, ok := e.store.MapNode(id)
	if !ok {
		return nil
	}
	return &types.Coordinate{Lat: node.Lat, Lon: node.Lon}
}

// FlowTotal sums the cost value of a set of flows
func FlowTotal(flows []types.Flow) decimal.Decimal {
	total := decimal.Zero
	for _, f := range flows {
		total = total.Add(f.CostValue)
	}
	return total
}
