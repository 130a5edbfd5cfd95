// Package scenario reads analyst scenario files written in HCL.
//
// A scenario file describes a parameter set:
//
//	scenario_date      = "2025-04-01"
//	assembly_site      = "PLANT_MX_NL"
//	include_fixed_fees = true
//	skus               = ["ACTUATOR_AX100"]
//
//	route "MOTOR_01" {
//	  origin_site = "SUP_DE_ST"
//	}
//
//	override "Motor" "China" {
//	  rate_pct = 5
//	}
//
// Every attribute is optional; unset attributes leave the base parameters alone.
package scenario

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

type fileSchema struct {
	ScenarioDate     *string         `hcl:"scenario_date,optional"`
	AssemblySite     *string         `hcl:"assembly_site,optional"`
	IncludeFixedFees *bool           `hcl:"include_fixed_fees,optional"`
	SKUs             []string        `hcl:"skus,optional"`
	Routes           []routeBlock    `hcl:"route,block"`
	Overrides        []overrideBlock `hcl:"override,block"`
}

type routeBlock struct {
	Component  string `hcl:"component,label"`
	OriginSite string `hcl:"origin_site"`
}

type overrideBlock struct {
	Class   string         `hcl:"class,label"`
	Origin  string         `hcl:"origin,label"`
	RatePct hcl.Expression `hcl:"rate_pct"`
}

// File is a parsed scenario file. Nil and empty fields were not set.
type File struct {
	Path string

	ScenarioDate     types.ScenarioDate
	AssemblySite     types.SiteID
	IncludeFixedFees *bool
	SKUs             []types.SKU
	Routing          map[types.ComponentID]types.SiteID
	Overrides        types.Overrides
}

// ParseFile reads a scenario file from disk
func ParseFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Input(fmt.Sprintf("read scenario %s: %v", path, err))
	}
	return Parse(src, path)
}

// Parse decodes scenario source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing(filename, diags)
	}

	var schema fileSchema
	if diags := gohcl.DecodeBody(f.Body, nil, &schema); diags.HasErrors() {
		return nil, errors.Parsing(filename, diags)
	}

	out := &File{
		Path:             filename,
		IncludeFixedFees: schema.IncludeFixedFees,
		Routing:          make(map[types.ComponentID]types.SiteID),
		Overrides:        make(types.Overrides),
	}
	if schema.ScenarioDate != nil {
		out.ScenarioDate = types.ScenarioDate(*schema.ScenarioDate)
	}
	if schema.AssemblySite != nil {
		out.AssemblySite = types.SiteID(*schema.AssemblySite)
	}
	for _, sku := range schema.SKUs {
		out.SKUs = append(out.SKUs, types.SKU(sku))
	}

	for _, r := range schema.Routes {
		id := types.ComponentID(r.Component)
		if _, dup := out.Routing[id]; dup {
			return nil, errors.Parsing(fmt.Sprintf("%s: duplicate route for %s", filename, id), nil)
		}
		out.Routing[id] = types.SiteID(r.OriginSite)
	}

	for _, o := range schema.Overrides {
		key := types.OverrideKey{Class: types.ComponentClass(o.Class), Origin: types.Country(o.Origin)}
		if _, dup := out.Overrides[key]; dup {
			return nil, errors.Parsing(fmt.Sprintf("%s: duplicate override for %s", filename, key), nil)
		}
		rate, err := rateValue(o.RatePct)
		if err != nil {
			return nil, errors.Parsing(fmt.Sprintf("%s: override %s", filename, key), err)
		}
		if rate.IsNegative() {
			return nil, errors.Parsing(fmt.Sprintf("%s: override %s is negative", filename, key), nil)
		}
		out.Overrides[key] = rate
	}

	return out, nil
}

// rateValue evaluates a literal rate. Quoted numbers are accepted so rates
// keep their exact decimal spelling.
func rateValue(expr hcl.Expression) (decimal.Decimal, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return decimal.Zero, diags
	}
	if val.IsNull() || !val.IsKnown() {
		return decimal.Zero, fmt.Errorf("rate_pct must be set")
	}

	switch val.Type() {
	case cty.Number:
		return decimal.NewFromString(val.AsBigFloat().Text('f', -1))
	case cty.String:
		return decimal.NewFromString(val.AsString())
	default:
		return decimal.Zero, fmt.Errorf("rate_pct must be a number, got %s", val.Type().FriendlyName())
	}
}

// Apply layers the file over base parameters and returns the result.
// Routes and overrides are merged key by key; set attributes replace.
func (f *File) Apply(base types.ParameterSet) types.ParameterSet {
	p := base.Clone()
	if f.ScenarioDate != "" {
		p.ScenarioDate = f.ScenarioDate
	}
	if f.AssemblySite != "" {
		p.AssemblySite = f.AssemblySite
	}
	if f.IncludeFixedFees != nil {
		p.IncludeFixedFees = *f.IncludeFixedFees
	}
	if len(f.SKUs) > 0 {
		p.SKUs = append([]types.SKU(nil), f.SKUs...)
	}
	if len(f.Routing) > 0 && p.Routing == nil {
		p.Routing = make(map[types.ComponentID]types.SiteID, len(f.Routing))
	}
	for id, site := range f.Routing {
		p.Routing[id] = site
	}
	for key, rate := range f.Overrides {
		p.Overrides[key] = rate
	}
	return p
}
