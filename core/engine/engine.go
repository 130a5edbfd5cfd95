// Package engine provides the landed cost recomputation entry point.
// CLI and any other presentation layer are thin wrappers around this engine.
//
// There is no cached state: every call runs the full pipeline
// (join -> tariff + logistics -> aggregation) against the parameter set it
// is given, so a parameter change is handled by simply calling again.
package engine

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"landed-cost/core/catalog"
	"landed-cost/core/cost"
	"landed-cost/core/determinism"
	"landed-cost/core/guards"
	"landed-cost/core/join"
	"landed-cost/core/logistics"
	"landed-cost/core/tariff"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
	"landed-cost/internal/logging"
)

// Options configures the engine
type Options struct {
	// Currency labels every figure
	Currency types.Currency

	// ReferenceBatchSize is the unit count fixed fees are spread over
	ReferenceBatchSize int64

	// CustomsBase is the subtotal the final-assembly tariff applies to
	CustomsBase cost.CustomsBase

	// DefaultDestination is used for products without a target market
	DefaultDestination types.Country

	// TariffPolicy configures optional rate tiers
	TariffPolicy tariff.Policy
}

// DefaultOptions returns the standard engine options
func DefaultOptions() Options {
	return Options{
		Currency:           types.CurrencyUSD,
		ReferenceBatchSize: logistics.DefaultReferenceBatchSize,
		CustomsBase:        cost.DefaultCustomsBase,
		DefaultDestination: "United States",
	}
}

// Engine evaluates parameter sets against a read-only reference store.
// An Engine holds no mutable state and may be shared across sessions.
type Engine struct {
	store      *catalog.Store
	opts       Options
	tariffs    *tariff.Resolver
	logistics  *logistics.Calculator
	aggregator *cost.Aggregator
}

// New creates an engine over a store
func New(store *catalog.Store, opts Options) *Engine {
	if opts.Currency == "" {
		opts.Currency = types.CurrencyUSD
	}
	if opts.ReferenceBatchSize <= 0 {
		opts.ReferenceBatchSize = logistics.DefaultReferenceBatchSize
	}
	if opts.CustomsBase == "" {
		opts.CustomsBase = cost.DefaultCustomsBase
	}
	return &Engine{
		store:      store,
		opts:       opts,
		tariffs:    tariff.NewResolver(store, opts.TariffPolicy),
		logistics:  logistics.NewCalculator(store, opts.ReferenceBatchSize),
		aggregator: cost.NewAggregator(opts.CustomsBase),
	}
}

// Store returns the reference store
func (e *Engine) Store() *catalog.Store {
	return e.store
}

// Options returns the engine options
func (e *Engine) Options() Options {
	return e.opts
}

// SKUResult is the full computation for one SKU
type SKUResult struct {
	SKU           types.SKU                `json:"sku"`
	Breakdown     types.CostBreakdown      `json:"breakdown"`
	Logistics     types.LogisticsBreakdown `json:"logistics"`
	Tariffs       []types.TariffResolution `json:"tariffs"`
	FinalAssembly types.TariffResolution   `json:"final_assembly"`
	Flows         []types.Flow             `json:"flows,omitempty"`
}

// SKUFailure is a per-SKU error. It never aborts other SKUs.
type SKUFailure struct {
	SKU types.SKU
	Err error
}

// MarshalJSON renders the failure with its error type
func (f SKUFailure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SKU     types.SKU   `json:"sku"`
		Type    errors.Type `json:"type"`
		Message string      `json:"message"`
	}{f.SKU, errors.TypeOf(f.Err), f.Err.Error()})
}

// Result is everything one recomputation produces
type Result struct {
	Params   types.ParameterSet `json:"params"`
	Currency types.Currency     `json:"currency"`

	// Results are the successfully computed SKUs, in SKU order
	Results []SKUResult `json:"results"`

	// Failures are the SKUs that could not be computed
	Failures []SKUFailure `json:"failures,omitempty"`

	// DataGaps are tariff resolutions that fell through to zero for lack of data
	DataGaps []types.TariffResolution `json:"data_gaps,omitempty"`

	// Fingerprint is a content hash of every breakdown and failure
	Fingerprint string `json:"fingerprint"`
}

// Err combines every per-SKU failure into one error, or nil
func (r *Result) Err() error {
	var err error
	for _, f := range r.Failures {
		err = multierr.Append(err, f.Err)
	}
	return err
}

// Find returns the result for a SKU
func (r *Result) Find(sku types.SKU) (*SKUResult, bool) {
	for i := range r.Results {
		if r.Results[i].SKU == sku {
			return &r.Results[i], true
		}
	}
	return nil, false
}

// Failure returns the failure for a SKU
func (r *Result) Failure(sku types.SKU) (error, bool) {
	for _, f := range r.Failures {
		if f.SKU == sku {
			return f.Err, true
		}
	}
	return nil, false
}

// Recompute runs the whole pipeline for a parameter set. The only error
// returned is an invalid parameter set; per-SKU problems are reported in
// the result alongside the SKUs that succeeded.
func (e *Engine) Recompute(params types.ParameterSet) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(errors.TypeInput, "invalid parameter set", err)
	}
	if len(e.store.Scenarios()) > 0 {
		if _, ok := e.store.Scenario(params.ScenarioDate); !ok {
			return nil, errors.Newf(errors.TypeInput, "unknown scenario date %s", params.ScenarioDate)
		}
	}

	params = params.Clone()
	if len(params.SKUs) > 0 {
		params.SKUs = determinism.Unique(params.SKUs)
	}
	result := &Result{
		Params:   params,
		Currency: e.opts.Currency,
	}

	skus := params.SKUs
	if len(skus) == 0 {
		skus = e.store.SKUs()
	}

	logging.Debug("recompute",
		logging.Scenario(params.ScenarioDate),
		logging.Site(params.AssemblySite),
		zap.Int("skus", len(skus)),
		zap.Bool("fixed_fees", params.IncludeFixedFees),
		zap.Int("overrides", len(params.Overrides)),
	)

	for _, sku := range skus {
		res, err := e.computeSKU(sku, params)
		if err != nil {
			logging.Warn("sku computation failed", logging.SKU(sku), logging.Site(params.AssemblySite), zap.Error(err))
			result.Failures = append(result.Failures, SKUFailure{SKU: sku, Err: err})
			continue
		}
		for _, gap := range res.gaps() {
			logging.Warn("tariff data gap",
				logging.SKU(sku),
				logging.Scenario(params.ScenarioDate),
				zap.String("class", string(gap.Class)),
				zap.String("origin", string(gap.Origin)),
			)
			result.DataGaps = append(result.DataGaps, gap)
		}
		result.Results = append(result.Results, *res)
	}

	hash, err := determinism.Fingerprint(fingerprintInput(result))
	if err != nil {
		return nil, errors.Internal("fingerprint result", err)
	}
	result.Fingerprint = hash.Hex()

	return result, nil
}

func (e *Engine) computeSKU(sku types.SKU, params types.ParameterSet) (*SKUResult, error) {
	product, ok := e.store.Product(sku)
	if !ok {
		return nil, errors.MissingReference("product", string(sku))
	}
	site, ok := e.store.Site(params.AssemblySite)
	if !ok {
		return nil, errors.MissingReference("site", string(params.AssemblySite)).WithContext("sku", string(sku))
	}
	option, ok := e.store.AssemblyOption(sku, site.ID)
	if !ok {
		return nil, errors.NoAssemblyOption(string(sku), string(site.ID))
	}

	bom := e.store.BOM(sku)
	if len(bom) == 0 {
		return nil, errors.MissingReference("bom", string(sku))
	}
	lines, err := join.Resolve(bom, e.store, params.Routing)
	if err != nil {
		return nil, err
	}

	destination := product.TargetMarket
	if destination == "" {
		destination = e.opts.DefaultDestination
	}

	breakdown, err := e.logistics.Compute(logistics.Request{
		Lines:            lines,
		AssemblyCountry:  site.Country,
		Destination:      destination,
		FinishedWeightKg: finishedWeight(product, lines),
		IncludeFixedFees: params.IncludeFixedFees,
	})
	if err != nil {
		return nil, err
	}

	componentTariffs := e.tariffs.ResolveComponents(lines, params.ScenarioDate, params.Overrides)
	finalTariff := e.tariffs.ResolveFinalAssembly(site.Country, destination, params.ScenarioDate, params.Overrides)

	landed, err := e.aggregator.Compute(cost.Input{
		Product:             product,
		AssemblySite:        site,
		Destination:         destination,
		ScenarioDate:        params.ScenarioDate,
		Lines:               lines,
		Option:              &option,
		Logistics:           breakdown,
		ComponentTariffs:    componentTariffs,
		FinalAssemblyTariff: finalTariff,
	})
	if err != nil {
		return nil, err
	}

	res := &SKUResult{
		SKU:           sku,
		Breakdown:     landed,
		Logistics:     breakdown,
		Tariffs:       componentTariffs,
		FinalAssembly: finalTariff,
	}
	res.Flows = e.buildFlows(res, lines, site)

	if err := multierr.Append(guards.CheckBreakdown(landed), guards.CheckFlows(landed, res.Flows)); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *SKUResult) gaps() []types.TariffResolution {
	var out []types.TariffResolution
	for _, t := range r.Tariffs {
		if t.IsDataGap() {
			out = append(out, t)
		}
	}
	if r.FinalAssembly.IsDataGap() {
		out = append(out, r.FinalAssembly)
	}
	return out
}

// finishedWeight is the product weight, or the shipped BOM weight when unset
func finishedWeight(p types.Product, lines []join.ResolvedLine) decimal.Decimal {
	if p.UnitWeightKg.IsPositive() {
		return p.UnitWeightKg
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.ShippedWeightKg())
	}
	return total
}

func fingerprintInput(r *Result) interface{} {
	breakdowns := make([]types.CostBreakdown, len(r.Results))
	for i, res := range r.Results {
		breakdowns[i] = res.Breakdown
	}
	return struct {
		Breakdowns []types.CostBreakdown `json:"breakdowns"`
		Failures   []SKUFailure          `json:"failures"`
	}{breakdowns, r.Failures}
}
