// Package catalog - Catalog validation
// Reports reference rows that break an invariant. Validation never blocks
// loading: per-SKU problems also surface as per-SKU errors during computation.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"landed-cost/internal/errors"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(*Store) []error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateUniqueAssemblyOptions,
		validateBOMYield,
		validateBOMReferences,
		validateComponentOrigins,
		validateNonNegativeRates,
		validateLaneCosts,
	}
}

// Validate checks a store against validation rules
func (s *Store) Validate(rules []ValidationRule) []error {
	var errs []error
	for _, rule := range rules {
		errs = append(errs, rule(s)...)
	}
	return errs
}

// validateUniqueAssemblyOptions ensures at most one option per SKU/site pair
func validateUniqueAssemblyOptions(s *Store) []error {
	var errs []error
	seen := make(map[optionKey]bool)
	for _, o := range s.tables.AssemblyOptions {
		k := optionKey{o.SKU, o.SiteID}
		if seen[k] {
			errs = append(errs, errors.InvalidData(fmt.Sprintf("duplicate assembly option %s@%s", o.SKU, o.SiteID)))
		}
		seen[k] = true
	}
	return errs
}

// validateBOMYield ensures every yield is in (0,1]
func validateBOMYield(s *Store) []error {
	var errs []error
	for _, line := range s.tables.BOM {
		if !line.Yield.IsPositive() || line.Yield.GreaterThan(one) {
			errs = append(errs, errors.InvalidData(fmt.Sprintf("bom %s/%s: yield %s outside (0,1]", line.SKU, line.ComponentID, line.Yield)))
		}
	}
	return errs
}

// validateBOMReferences ensures BOM lines point at known products and components
func validateBOMReferences(s *Store) []error {
	var errs []error
	for _, line := range s.tables.BOM {
		if _, ok := s.products[line.SKU]; !ok {
			errs = append(errs, errors.MissingReference("product", string(line.SKU)))
		}
		if _, ok := s.components[line.ComponentID]; !ok {
			errs = append(errs, errors.MissingReference("component", string(line.ComponentID)))
		}
	}
	return errs
}

// validateComponentOrigins ensures every component resolves to a site
func validateComponentOrigins(s *Store) []error {
	var errs []error
	for _, c := range s.tables.Components {
		if _, ok := s.sites[c.OriginSiteID]; !ok {
			errs = append(errs, errors.MissingReference("site", string(c.OriginSiteID)).WithContext("component", string(c.ID)))
		}
	}
	return errs
}

// validateNonNegativeRates ensures tariff rates are never negative
func validateNonNegativeRates(s *Store) []error {
	var errs []error
	for _, r := range s.tables.BaseTariffRates {
		if r.RatePct.IsNegative() {
			errs = append(errs, errors.InvalidData(fmt.Sprintf("negative tariff rate %s for %s/%s on %s", r.RatePct, r.Class, r.Origin, r.Date)))
		}
	}
	return errs
}

// validateLaneCosts ensures lanes carry non-negative costs
func validateLaneCosts(s *Store) []error {
	var errs []error
	for _, l := range s.tables.LogisticsLanes {
		if l.CostPerKg.IsNegative() || l.FixedPerShipment.IsNegative() || l.LeadTimeDays.IsNegative() {
			errs = append(errs, errors.InvalidData(fmt.Sprintf("lane %s->%s has negative values", l.From, l.To)))
		}
	}
	return errs
}

var one = decimal.NewFromInt(1)
