// Package catalog - Reference Data Store
// An in-memory, read-only snapshot of the joined reference catalog. Built
// once per session and shared read-only by every engine computation.
package catalog

import (
	"github.com/shopspring/decimal"

	"landed-cost/core/determinism"
	"landed-cost/core/types"
)

// Tables holds the ten reference relations as delivered by a loader
type Tables struct {
	Products                []types.Product        `json:"products"`
	BOM                     []types.BOMLine        `json:"bom"`
	Components              []types.Component      `json:"components"`
	Sites                   []types.Site           `json:"sites"`
	AssemblyOptions         []types.AssemblyOption `json:"assembly_options"`
	LogisticsLanes          []types.LogisticsLane  `json:"logistics_lanes"`
	TariffScenarios         []types.TariffScenario `json:"tariff_scenarios"`
	BaseTariffRates         []types.BaseTariffRate `json:"base_tariff_rates"`
	TariffOverridesTemplate []types.TariffOverride `json:"tariff_overrides_template"`
	MapNodes                []types.MapNode        `json:"map_nodes"`
}

type optionKey struct {
	sku  types.SKU
	site types.SiteID
}

type laneKey struct {
	from types.Country
	to   types.Country
}

type rateKey struct {
	class  types.ComponentClass
	origin types.Country
	date   types.ScenarioDate
}

// Store is the indexed reference catalog. It is never mutated after NewStore;
// analyst overrides live in the ParameterSet, not here.
type Store struct {
	tables Tables

	products   map[types.SKU]types.Product
	bom        map[types.SKU][]types.BOMLine
	components map[types.ComponentID]types.Component
	sites      map[types.SiteID]types.Site
	options    map[optionKey]types.AssemblyOption
	lanes      map[laneKey]types.LogisticsLane
	scenarios  map[types.ScenarioDate]types.TariffScenario
	rates      map[rateKey]decimal.Decimal
	defaults   map[types.OverrideKey]decimal.Decimal
	nodes      map[types.SiteID]types.MapNode
}

// NewStore indexes the relations. When a key repeats, the first row wins;
// Validate reports the repetition.
func NewStore(t Tables) *Store {
	s := &Store{
		tables:     t,
		products:   make(map[types.SKU]types.Product, len(t.Products)),
		bom:        make(map[types.SKU][]types.BOMLine),
		components: make(map[types.ComponentID]types.Component, len(t.Components)),
		sites:      make(map[types.SiteID]types.Site, len(t.Sites)),
		options:    make(map[optionKey]types.AssemblyOption, len(t.AssemblyOptions)),
		lanes:      make(map[laneKey]types.LogisticsLane, len(t.LogisticsLanes)),
		scenarios:  make(map[types.ScenarioDate]types.TariffScenario, len(t.TariffScenarios)),
		rates:      make(map[rateKey]decimal.Decimal, len(t.BaseTariffRates)),
		defaults:   make(map[types.OverrideKey]decimal.Decimal),
		nodes:      make(map[types.SiteID]types.MapNode, len(t.MapNodes)),
	}

	for _, p := range t.Products {
		if _, ok := s.products[p.SKU]; !ok {
			s.products[p.SKU] = p
		}
	}
	for _, line := range t.BOM {
		s.bom[line.SKU] = append(s.bom[line.SKU], line)
	}
	for _, c := range t.Components {
		if _, ok := s.components[c.ID]; !ok {
			s.components[c.ID] = c
		}
	}
	for _, site := range t.Sites {
		if _, ok := s.sites[site.ID]; !ok {
			s.sites[site.ID] = site
		}
	}
	for _, o := range t.AssemblyOptions {
		k := optionKey{o.SKU, o.SiteID}
		if _, ok := s.options[k]; !ok {
			s.options[k] = o
		}
	}
	for _, l := range t.LogisticsLanes {
		k := laneKey{l.From, l.To}
		if _, ok := s.lanes[k]; !ok {
			s.lanes[k] = l
		}
	}
	for _, sc := range t.TariffScenarios {
		if _, ok := s.scenarios[sc.Date]; !ok {
			s.scenarios[sc.Date] = sc
		}
	}
	for _, r := range t.BaseTariffRates {
		k := rateKey{r.Class, r.Origin, r.Date}
		if _, ok := s.rates[k]; !ok {
			s.rates[k] = r.RatePct
		}
	}
	for _, o := range t.TariffOverridesTemplate {
		if o.DefaultRatePct == nil {
			continue
		}
		if _, ok := s.defaults[o.Key()]; !ok {
			s.defaults[o.Key()] = *o.DefaultRatePct
		}
	}
	for _, n := range t.MapNodes {
		if _, ok := s.nodes[n.SiteID]; !ok {
			s.nodes[n.SiteID] = n
		}
	}

	return s
}

// Tables returns the relations the store was built from
func (s *Store) Tables() Tables {
	return s.tables
}

// Product returns a product by SKU
func (s *Store) Product(sku types.SKU) (types.Product, bool) {
	p, ok := s.products[sku]
	return p, ok
}

// SKUs returns every product SKU in sorted order
func (s *Store) SKUs() []types.SKU {
	return determinism.SortedKeys(s.products)
}

// BOM returns the BOM lines of a SKU in their original order
func (s *Store) BOM(sku types.SKU) []types.BOMLine {
	return s.bom[sku]
}

// Component returns a component by ID
func (s *Store) Component(id types.ComponentID) (types.Component, bool) {
	c, ok := s.components[id]
	return c, ok
}

// Site returns a site by ID
func (s *Store) Site(id types.SiteID) (types.Site, bool) {
	site, ok := s.sites[id]
	return site, ok
}

// AssemblyOption returns the option for a SKU at a site; absence means not buildable
func (s *Store) AssemblyOption(sku types.SKU, site types.SiteID) (types.AssemblyOption, bool) {
	o, ok := s.options[optionKey{sku, site}]
	return o, ok
}

// Lane returns the lane for a country pair. Lanes are directional.
func (s *Store) Lane(from, to types.Country) (types.LogisticsLane, bool) {
	l, ok := s.lanes[laneKey{from, to}]
	return l, ok
}

// BaseRate returns the scenario rate in percent for a class/origin pair
func (s *Store) BaseRate(class types.ComponentClass, origin types.Country, date types.ScenarioDate) (decimal.Decimal, bool) {
	r, ok := s.rates[rateKey{class, origin, date}]
	return r, ok
}

// TemplateDefault returns the override template default rate for a pair
func (s *Store) TemplateDefault(class types.ComponentClass, origin types.Country) (decimal.Decimal, bool) {
	r, ok := s.defaults[types.OverrideKey{Class: class, Origin: origin}]
	return r, ok
}

// Scenario returns a tariff scenario by date
func (s *Store) Scenario(date types.ScenarioDate) (types.TariffScenario, bool) {
	sc, ok := s.scenarios[date]
	return sc, ok
}

// Scenarios returns every scenario ordered by date
func (s *Store) Scenarios() []types.TariffScenario {
	out := make([]types.TariffScenario, 0, len(s.scenarios))
	for _, date := range determinism.SortedKeys(s.scenarios) {
		out = append(out, s.scenarios[date])
	}
	return out
}

// AssemblySites returns every site that appears in an assembly option
func (s *Store) AssemblySites() []types.SiteID {
	ids := make([]types.SiteID, 0, len(s.options))
	for k := range s.options {
		ids = append(ids, k.site)
	}
	return determinism.Dedupe(ids)
}

// BuildableSites returns the sites a SKU can be assembled at
func (s *Store) BuildableSites(sku types.SKU) []types.SiteID {
	var ids []types.SiteID
	for k := range s.options {
		if k.sku == sku {
			ids = append(ids, k.site)
		}
	}
	determinism.SortSlice(ids, func(a, b types.SiteID) bool { return a < b })
	return ids
}

// MapNode returns the map placement of a site
func (s *Store) MapNode(id types.SiteID) (types.MapNode, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// TemplateOverrides returns the overrides preset in the template
func (s *Store) TemplateOverrides() types.Overrides {
	return types.OverridesFromTemplate(s.tables.TariffOverridesTemplate)
}
