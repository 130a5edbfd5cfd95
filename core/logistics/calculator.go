// Package logistics computes per-unit freight cost of multi-leg shipments.
//
// Fixed shipment fees are amortized as fee / ReferenceBatchSize per leg. This
// is a flat approximation of spreading one shipment over a reference batch,
// not a shipment-count or consolidation model.
package logistics

import (
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"landed-cost/core/join"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

// DefaultReferenceBatchSize is the unit count a fixed fee is spread over
const DefaultReferenceBatchSize = 10000

// LaneTable looks up lanes by country pair
type LaneTable interface {
	Lane(from, to types.Country) (types.LogisticsLane, bool)
}

// Request describes one SKU shipped to one assembly site
type Request struct {
	// Lines are the resolved BOM lines, each shipped from its origin
	Lines []join.ResolvedLine

	// AssemblyCountry receives every inbound leg
	AssemblyCountry types.Country

	// Destination receives the finished good
	Destination types.Country

	// FinishedWeightKg is the shipped weight of one finished unit
	FinishedWeightKg decimal.Decimal

	// IncludeFixedFees adds amortized fixed fees to each leg with a fee
	IncludeFixedFees bool
}

// Calculator computes logistics breakdowns
type Calculator struct {
	lanes     LaneTable
	batchSize decimal.Decimal
}

// NewCalculator creates a calculator. A non-positive batch size falls back
// to DefaultReferenceBatchSize.
func NewCalculator(lanes LaneTable, batchSize int64) *Calculator {
	if batchSize <= 0 {
		batchSize = DefaultReferenceBatchSize
	}
	return &Calculator{
		lanes:     lanes,
		batchSize: decimal.NewFromInt(batchSize),
	}
}

// Compute prices every inbound leg and the outbound leg. Every missing lane
// is reported; a missing lane is never priced at zero.
//
// An inbound leg from inside the assembly country with no lane defined is
// domestic and free. The outbound leg is free whenever assembly happens in
// the destination country.
func (c *Calculator) Compute(req Request) (types.LogisticsBreakdown, error) {
	out := types.LogisticsBreakdown{
		Inbound:           make([]types.LogisticsLeg, 0, len(req.Lines)),
		InboundCost:       decimal.Zero,
		FixedFeesIncluded: req.IncludeFixedFees,
	}

	var errs error
	slowest := decimal.Zero

	for _, line := range req.Lines {
		leg, err := c.leg(types.LegInbound, line.OriginCountry, req.AssemblyCountry, line.ShippedWeightKg(), req.IncludeFixedFees, false)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		leg.ComponentID = line.ComponentID
		out.Inbound = append(out.Inbound, leg)
		out.InboundCost = out.InboundCost.Add(leg.Cost)
		out.LeadTimeDays = out.LeadTimeDays.Add(leg.LeadTimeDays)
		if leg.LeadTimeDays.GreaterThan(slowest) {
			slowest = leg.LeadTimeDays
		}
	}

	outbound, err := c.leg(types.LegOutbound, req.AssemblyCountry, req.Destination, req.FinishedWeightKg, req.IncludeFixedFees, true)
	if err != nil {
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return types.LogisticsBreakdown{}, errs
	}

	out.Outbound = outbound
	out.OutboundCost = outbound.Cost
	out.Total = out.InboundCost.Add(out.OutboundCost)
	out.LeadTimeDays = out.LeadTimeDays.Add(outbound.LeadTimeDays)
	out.CriticalPathDays = slowest.Add(outbound.LeadTimeDays)
	return out, nil
}

func (c *Calculator) leg(kind types.LegKind, from, to types.Country, weight decimal.Decimal, fees, freeWhenDomestic bool) (types.LogisticsLeg, error) {
	leg := types.LogisticsLeg{
		Kind:          kind,
		From:          from,
		To:            to,
		WeightKg:      weight,
		CostPerKg:     decimal.Zero,
		VariableCost:  decimal.Zero,
		FixedFeeShare: decimal.Zero,
		Cost:          decimal.Zero,
		LeadTimeDays:  decimal.Zero,
	}

	if from == to && freeWhenDomestic {
		leg.Domestic = true
		return leg, nil
	}

	lane, ok := c.lanes.Lane(from, to)
	if !ok {
		if from == to {
			leg.Domestic = true
			return leg, nil
		}
		return leg, errors.MissingLane(string(from), string(to)).WithContext("leg", string(kind))
	}

	leg.CostPerKg = lane.CostPerKg
	leg.VariableCost = lane.CostPerKg.Mul(weight)
	if fees && !lane.FixedPerShipment.IsZero() {
		leg.FixedFeeShare = lane.FixedPerShipment.Div(c.batchSize)
	}
	leg.Cost = leg.VariableCost.Add(leg.FixedFeeShare)
	leg.LeadTimeDays = lane.LeadTimeDays
	return leg, nil
}
