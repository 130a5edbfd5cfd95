package engine

import (
	"github.com/shopspring/decimal"

	"landed-cost/core/types"
)

// SiteComparison is the recomputation at one candidate assembly site
type SiteComparison struct {
	Site   types.SiteID `json:"site"`
	Result *Result      `json:"result"`
}

// Comparison evaluates the same parameters at every assembly site
type Comparison struct {
	Sites []SiteComparison `json:"sites"`

	// Best is the cheapest buildable site per SKU. Ties keep the first site in ID order.
	Best map[types.SKU]types.SiteID `json:"best"`
}

// CompareSites recomputes the parameter set once per assembly site.
// SKUs that cannot be built at a site show up as failures in that site's result.
func (e *Engine) CompareSites(params types.ParameterSet) (*Comparison, error) {
	sites := e.store.AssemblySites()
	cmp := &Comparison{
		Sites: make([]SiteComparison, 0, len(sites)),
		Best:  make(map[types.SKU]types.SiteID),
	}

	lowest := make(map[types.SKU]decimal.Decimal)
	for _, site := range sites {
		p := params.Clone()
		p.AssemblySite = site
		res, err := e.Recompute(p)
		if err != nil {
			return nil, err
		}
		cmp.Sites = append(cmp.Sites, SiteComparison{Site: site, Result: res})

		for _, r := range res.Results {
			best, seen := lowest[r.SKU]
			if !seen || r.Breakdown.Total.LessThan(best) {
				lowest[r.SKU] = r.Breakdown.Total
				cmp.Best[r.SKU] = site
			}
		}
	}
	return cmp, nil
}

// At returns the result for one site
func (c *Comparison) At(site types.SiteID) (*Result, bool) {
	for _, s := range c.Sites {
		if s.Site == site {
			return s.Result, true
		}
	}
	return nil, false
}
