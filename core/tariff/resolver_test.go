package tariff

import (
	"testing"

	"landed-cost/core/catalog/catalogtest"
	"landed-cost/core/join"
	"landed-cost/core/types"
)

func TestResolveRatePriority(t *testing.T) {
	store := catalogtest.DemoStore()
	overrides := types.Overrides{
		{Class: "Motor", Origin: catalogtest.China}: catalogtest.D("5"),
	}

	tests := []struct {
		name     string
		class    types.ComponentClass
		origin   types.Country
		date     types.ScenarioDate
		over     types.Overrides
		policy   Policy
		wantRate string
		wantSrc  types.TariffSource
	}{
		{"override wins at baseline", "Motor", catalogtest.China, catalogtest.Baseline, overrides, Policy{}, "5", types.SourceOverride},
		{"override wins at shock", "Motor", catalogtest.China, catalogtest.TariffShock, overrides, Policy{}, "5", types.SourceOverride},
		{"override wins on unknown date", "Motor", catalogtest.China, "1999-01-01", overrides, Policy{}, "5", types.SourceOverride},
		{"scenario rate without override", "Motor", catalogtest.China, catalogtest.TariffShock, nil, Policy{}, "25", types.SourceScenario},
		{"scenario zero is a real zero", "Electronics", catalogtest.Serbia, catalogtest.Baseline, nil, Policy{}, "0", types.SourceScenario},
		{"no data is flagged", "Housing", catalogtest.Serbia, catalogtest.Baseline, nil, Policy{}, "0", types.SourceNone},
		{"template default when enabled", "Housing", catalogtest.Serbia, catalogtest.Baseline, nil, Policy{UseTemplateDefaults: true}, "5", types.SourceDefault},
		{"scenario beats template default", "Motor", catalogtest.China, catalogtest.TariffShock, nil, Policy{UseTemplateDefaults: true}, "25", types.SourceScenario},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResolveRate(tt.class, tt.origin, tt.date, tt.over, store, tt.policy)
			if !res.RatePct.Equal(catalogtest.D(tt.wantRate)) {
				t.Errorf("rate = %s, want %s", res.RatePct, tt.wantRate)
			}
			if res.Source != tt.wantSrc {
				t.Errorf("source = %s, want %s", res.Source, tt.wantSrc)
			}
			if res.IsDataGap() != (tt.wantSrc == types.SourceNone) {
				t.Errorf("IsDataGap = %v for source %s", res.IsDataGap(), res.Source)
			}
		})
	}
}

func TestResolveRateIgnoresNegativeOverride(t *testing.T) {
	store := catalogtest.DemoStore()
	over := types.Overrides{{Class: "Motor", Origin: catalogtest.China}: catalogtest.D("-3")}

	res := ResolveRate("Motor", catalogtest.China, catalogtest.Baseline, over, store, Policy{})
	if res.Source != types.SourceScenario || !res.RatePct.Equal(catalogtest.D("7.5")) {
		t.Errorf("got %s from %s", res.RatePct, res.Source)
	}
}

func TestResolveComponentsCarriesComponentID(t *testing.T) {
	store := catalogtest.DemoStore()
	lines, err := join.Resolve(store.BOM(catalogtest.AX200), store, nil)
	if err != nil {
		t.Fatal(err)
	}

	res := NewResolver(store, Policy{}).ResolveComponents(lines, catalogtest.TariffShock, nil)
	if len(res) != 3 {
		t.Fatalf("expected 3 resolutions, got %d", len(res))
	}
	if res[2].ComponentID != "HOUSING_02" || !res[2].IsDataGap() {
		t.Errorf("housing should be a data gap, got %+v", res[2])
	}
	if !res[1].Rate().Equal(catalogtest.D("0.15")) {
		t.Errorf("gearbox fraction = %s, want 0.15", res[1].Rate())
	}
}

func TestResolveFinalAssembly(t *testing.T) {
	r := NewResolver(catalogtest.DemoStore(), Policy{})

	domestic := r.ResolveFinalAssembly(catalogtest.UnitedStates, catalogtest.UnitedStates, catalogtest.TariffShock, nil)
	if domestic.Source != types.SourceDomestic || !domestic.RatePct.IsZero() {
		t.Errorf("domestic assembly = %+v", domestic)
	}

	mx := r.ResolveFinalAssembly(catalogtest.Mexico, catalogtest.UnitedStates, catalogtest.TariffShock, nil)
	if mx.Class != types.FinalAssemblyClass || mx.Source != types.SourceScenario || !mx.RatePct.Equal(catalogtest.D("25")) {
		t.Errorf("mexico assembly = %+v", mx)
	}

	over := types.Overrides{{Class: types.FinalAssemblyClass, Origin: catalogtest.Mexico}: catalogtest.D("0")}
	mxOver := r.ResolveFinalAssembly(catalogtest.Mexico, catalogtest.UnitedStates, catalogtest.TariffShock, over)
	if mxOver.Source != types.SourceOverride || !mxOver.RatePct.IsZero() {
		t.Errorf("overridden mexico assembly = %+v", mxOver)
	}
}
