package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"landed-cost/core/catalog"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

// File names of the relations inside a CSV dataset directory
const (
	ProductsFile        = "products.csv"
	BOMFile             = "bom.csv"
	ComponentsFile      = "components.csv"
	SitesFile           = "sites.csv"
	AssemblyOptionsFile = "assembly_options.csv"
	LanesFile           = "logistics_lanes.csv"
	ScenariosFile       = "tariff_scenarios.csv"
	BaseRatesFile       = "base_tariff_rates.csv"
	OverridesFile       = "tariff_overrides_template.csv"
	MapNodesFile        = "map_nodes.csv"
)

// CSVLoader reads a directory with one CSV file per relation.
// Columns are matched by header name, so column order is free and
// unknown columns are ignored.
type CSVLoader struct {
	Dir string
}

// Load reads every relation file
func (l *CSVLoader) Load() (catalog.Tables, error) {
	var t catalog.Tables
	var err error

	if t.Products, err = readRequired(l.Dir, ProductsFile, parseProduct); err != nil {
		return t, err
	}
	if t.BOM, err = readRequired(l.Dir, BOMFile, parseBOMLine); err != nil {
		return t, err
	}
	if t.Components, err = readRequired(l.Dir, ComponentsFile, parseComponent); err != nil {
		return t, err
	}
	if t.Sites, err = readRequired(l.Dir, SitesFile, parseSite); err != nil {
		return t, err
	}
	if t.AssemblyOptions, err = readRequired(l.Dir, AssemblyOptionsFile, parseAssemblyOption); err != nil {
		return t, err
	}
	if t.LogisticsLanes, err = readRequired(l.Dir, LanesFile, parseLane); err != nil {
		return t, err
	}
	if t.BaseTariffRates, err = readRequired(l.Dir, BaseRatesFile, parseBaseRate); err != nil {
		return t, err
	}
	if t.TariffScenarios, err = readOptional(l.Dir, ScenariosFile, parseScenario); err != nil {
		return t, err
	}
	if t.TariffOverridesTemplate, err = readOptional(l.Dir, OverridesFile, parseOverride); err != nil {
		return t, err
	}
	if t.MapNodes, err = readOptional(l.Dir, MapNodesFile, parseMapNode); err != nil {
		return t, err
	}

	if len(t.TariffScenarios) == 0 {
		t.TariffScenarios = scenariosFromRates(t.BaseTariffRates)
	}
	return t, nil
}

// record is one CSV data row addressed by column name
type record struct {
	file   string
	line   int
	header map[string]int
	values []string
}

// rowParser converts a record; ok=false skips the row
type rowParser[T any] func(r record) (row T, ok bool, err error)

func readRequired[T any](dir, name string, parse rowParser[T]) ([]T, error) {
	rows, found, err := readFile(dir, name, parse)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Input(fmt.Sprintf("dataset %s: required file %s is missing", dir, name))
	}
	return rows, nil
}

func readOptional[T any](dir, name string, parse rowParser[T]) ([]T, error) {
	rows, _, err := readFile(dir, name, parse)
	return rows, err
}

func readFile[T any](dir, name string, parse rowParser[T]) ([]T, bool, error) {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Input(fmt.Sprintf("open %s: %v", path, err))
	}
	defer f.Close()

	rows, err := readRows(f, name, parse)
	return rows, true, err
}

func readRows[T any](in io.Reader, name string, parse rowParser[T]) ([]T, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Parsing(fmt.Sprintf("%s: missing header", name), nil)
	}
	if err != nil {
		return nil, errors.Parsing(fmt.Sprintf("%s: read header", name), err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	var out []T
	for {
		values, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Parsing(name, err)
		}
		if blank(values) {
			continue
		}
		line, _ := reader.FieldPos(0)
		row, ok, err := parse(record{file: name, line: line, header: columns, values: values})
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func blank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (r record) errorf(format string, args ...interface{}) error {
	return errors.Parsing(fmt.Sprintf("%s line %d: %s", r.file, r.line, fmt.Sprintf(format, args...)), nil)
}

// str returns the trimmed cell, or "" when the column or cell is absent
func (r record) str(col string) string {
	i, ok := r.header[col]
	if !ok || i >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[i])
}

func (r record) require(col string) (string, error) {
	if _, ok := r.header[col]; !ok {
		return "", r.errorf("missing column %q", col)
	}
	v := r.str(col)
	if v == "" {
		return "", r.errorf("empty %s", col)
	}
	return v, nil
}

func (r record) requireDecimal(col string) (decimal.Decimal, error) {
	v, err := r.require(col)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, r.errorf("%s: %q is not a number", col, v)
	}
	return d, nil
}

// optionalDecimal returns nil for an absent or empty cell
func (r record) optionalDecimal(col string) (*decimal.Decimal, error) {
	v := r.str(col)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, r.errorf("%s: %q is not a number", col, v)
	}
	return &d, nil
}

func (r record) decimalOr(col string, fallback decimal.Decimal) (decimal.Decimal, error) {
	d, err := r.optionalDecimal(col)
	if err != nil || d == nil {
		return fallback, err
	}
	return *d, nil
}

func (r record) float(col string) (float64, error) {
	v, err := r.require(col)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, r.errorf("%s: %q is not a number", col, v)
	}
	return f, nil
}

func parseProduct(r record) (types.Product, bool, error) {
	var p types.Product
	sku, err := r.require("sku")
	if err != nil {
		return p, false, err
	}
	price, err := r.requireDecimal("list_price")
	if err != nil {
		return p, false, err
	}
	weight, err := r.decimalOr("unit_weight_kg", decimal.Zero)
	if err != nil {
		return p, false, err
	}
	return types.Product{
		SKU:          types.SKU(sku),
		Description:  r.str("description"),
		ListPrice:    price,
		TargetMarket: types.Country(r.str("target_market")),
		UnitWeightKg: weight,
	}, true, nil
}

func parseBOMLine(r record) (types.BOMLine, bool, error) {
	var b types.BOMLine
	sku, err := r.require("sku")
	if err != nil {
		return b, false, err
	}
	comp, err := r.require("component_id")
	if err != nil {
		return b, false, err
	}
	qty, err := r.requireDecimal("quantity_per_unit")
	if err != nil {
		return b, false, err
	}
	yield, err := r.decimalOr("yield", decimal.NewFromInt(1))
	if err != nil {
		return b, false, err
	}
	return types.BOMLine{SKU: types.SKU(sku), ComponentID: types.ComponentID(comp), QuantityPerUnit: qty, Yield: yield}, true, nil
}

func parseComponent(r record) (types.Component, bool, error) {
	var c types.Component
	id, err := r.require("id")
	if err != nil {
		return c, false, err
	}
	class, err := r.require("class")
	if err != nil {
		return c, false, err
	}
	weight, err := r.requireDecimal("unit_weight_kg")
	if err != nil {
		return c, false, err
	}
	price, err := r.requireDecimal("base_price")
	if err != nil {
		return c, false, err
	}
	origin, err := r.require("origin_site_id")
	if err != nil {
		return c, false, err
	}
	return types.Component{
		ID:           types.ComponentID(id),
		Description:  r.str("description"),
		Class:        types.ComponentClass(class),
		UnitWeightKg: weight,
		BasePrice:    price,
		OriginSiteID: types.SiteID(origin),
	}, true, nil
}

func parseRole(s string) types.SiteRole {
	switch role := types.SiteRole(strings.ToLower(s)); role {
	case types.RoleOrigin, types.RoleAssembly:
		return role
	default:
		return types.RoleOther
	}
}

func parseSite(r record) (types.Site, bool, error) {
	var s types.Site
	id, err := r.require("id")
	if err != nil {
		return s, false, err
	}
	country, err := r.require("country")
	if err != nil {
		return s, false, err
	}
	return types.Site{ID: types.SiteID(id), Country: types.Country(country), City: r.str("city"), Role: parseRole(r.str("role"))}, true, nil
}

func parseAssemblyOption(r record) (types.AssemblyOption, bool, error) {
	var o types.AssemblyOption
	sku, err := r.require("sku")
	if err != nil {
		return o, false, err
	}
	site, err := r.require("site_id")
	if err != nil {
		return o, false, err
	}
	conv, err := r.requireDecimal("base_conversion_cost")
	if err != nil {
		return o, false, err
	}
	return types.AssemblyOption{SKU: types.SKU(sku), SiteID: types.SiteID(site), BaseConversionCost: conv}, true, nil
}

func parseLane(r record) (types.LogisticsLane, bool, error) {
	var l types.LogisticsLane
	from, err := r.require("from")
	if err != nil {
		return l, false, err
	}
	to, err := r.require("to")
	if err != nil {
		return l, false, err
	}
	perKg, err := r.requireDecimal("cost_per_kg")
	if err != nil {
		return l, false, err
	}
	lead, err := r.requireDecimal("lead_time_days")
	if err != nil {
		return l, false, err
	}
	fixed, err := r.decimalOr("fixed_per_shipment", decimal.Zero)
	if err != nil {
		return l, false, err
	}
	return types.LogisticsLane{
		From:             types.Country(from),
		To:               types.Country(to),
		CostPerKg:        perKg,
		LeadTimeDays:     lead,
		FixedPerShipment: fixed,
	}, true, nil
}

func parseScenario(r record) (types.TariffScenario, bool, error) {
	date, err := r.require("date")
	if err != nil {
		return types.TariffScenario{}, false, err
	}
	label := r.str("label")
	if label == "" {
		label = date
	}
	return types.TariffScenario{Date: types.ScenarioDate(date), Label: label}, true, nil
}

// parseBaseRate skips rows with an empty rate: a missing rate is not a zero rate
func parseBaseRate(r record) (types.BaseTariffRate, bool, error) {
	var b types.BaseTariffRate
	class, err := r.require("class")
	if err != nil {
		return b, false, err
	}
	origin, err := r.require("origin")
	if err != nil {
		return b, false, err
	}
	date, err := r.require("date")
	if err != nil {
		return b, false, err
	}
	rate, err := r.optionalDecimal("rate_pct")
	if err != nil || rate == nil {
		return b, false, err
	}
	return types.BaseTariffRate{
		Class:   types.ComponentClass(class),
		Origin:  types.Country(origin),
		Date:    types.ScenarioDate(date),
		RatePct: *rate,
	}, true, nil
}

func parseOverride(r record) (types.TariffOverride, bool, error) {
	var o types.TariffOverride
	class, err := r.require("class")
	if err != nil {
		return o, false, err
	}
	origin, err := r.require("origin")
	if err != nil {
		return o, false, err
	}
	def, err := r.optionalDecimal("default_rate_pct")
	if err != nil {
		return o, false, err
	}
	user, err := r.optionalDecimal("user_rate_pct")
	if err != nil {
		return o, false, err
	}
	return types.TariffOverride{
		Class:          types.ComponentClass(class),
		Origin:         types.Country(origin),
		DefaultRatePct: def,
		UserRatePct:    user,
	}, true, nil
}

func parseMapNode(r record) (types.MapNode, bool, error) {
	var n types.MapNode
	id, err := r.require("site_id")
	if err != nil {
		return n, false, err
	}
	lat, err := r.float("lat")
	if err != nil {
		return n, false, err
	}
	lon, err := r.float("lon")
	if err != nil {
		return n, false, err
	}
	return types.MapNode{
		SiteID:  types.SiteID(id),
		Country: types.Country(r.str("country")),
		City:    r.str("city"),
		Role:    parseRole(r.str("role")),
		Lat:     lat,
		Lon:     lon,
	}, true, nil
}

// scenariosFromRates derives one scenario per distinct rate date
func scenariosFromRates(rates []types.BaseTariffRate) []types.TariffScenario {
	seen := make(map[types.ScenarioDate]bool)
	var out []types.TariffScenario
	for _, r := range rates {
		if !seen[r.Date] {
			seen[r.Date] = true
			out = append(out, types.TariffScenario{Date: r.Date, Label: string(r.Date)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
