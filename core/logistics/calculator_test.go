package logistics

import (
	"testing"

	"landed-cost/core/catalog"
	"landed-cost/core/catalog/catalogtest"
	"landed-cost/core/join"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

func resolved(t *testing.T, store *catalog.Store, sku types.SKU) []join.ResolvedLine {
	t.Helper()
	lines, err := join.Resolve(store.BOM(sku), store, nil)
	if err != nil {
		t.Fatalf("resolve %s: %v", sku, err)
	}
	return lines
}

func TestComputeSwissAssembly(t *testing.T) {
	store := catalogtest.DemoStore()
	calc := NewCalculator(store, 10000)
	lines := resolved(t, store, catalogtest.AX100)

	tests := []struct {
		name     string
		fees     bool
		inbound  string
		outbound string
		total    string
	}{
		{"variable only", false, "2.375", "2.4", "4.775"},
		{"with fixed fees", true, "2.425", "2.5", "4.925"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Compute(Request{
				Lines:            lines,
				AssemblyCountry:  catalogtest.Switzerland,
				Destination:      catalogtest.UnitedStates,
				FinishedWeightKg: catalogtest.D("1.2"),
				IncludeFixedFees: tt.fees,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.InboundCost.Equal(catalogtest.D(tt.inbound)) {
				t.Errorf("inbound = %s, want %s", got.InboundCost, tt.inbound)
			}
			if !got.OutboundCost.Equal(catalogtest.D(tt.outbound)) {
				t.Errorf("outbound = %s, want %s", got.OutboundCost, tt.outbound)
			}
			if !got.Total.Equal(catalogtest.D(tt.total)) {
				t.Errorf("total = %s, want %s", got.Total, tt.total)
			}
			if !got.LeadTimeDays.Equal(catalogtest.D("44")) {
				t.Errorf("lead time = %s, want 44", got.LeadTimeDays)
			}
			if !got.CriticalPathDays.Equal(catalogtest.D("40")) {
				t.Errorf("critical path = %s, want 40", got.CriticalPathDays)
			}
			if got.FixedFeesIncluded != tt.fees {
				t.Errorf("FixedFeesIncluded = %v", got.FixedFeesIncluded)
			}
		})
	}
}

func TestComputeDomesticAssemblyHasFreeOutboundLeg(t *testing.T) {
	store := catalogtest.DemoStore()
	got, err := NewCalculator(store, 10000).Compute(Request{
		Lines:            resolved(t, store, catalogtest.AX100),
		AssemblyCountry:  catalogtest.UnitedStates,
		Destination:      catalogtest.UnitedStates,
		FinishedWeightKg: catalogtest.D("1.2"),
		IncludeFixedFees: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Outbound.Domestic || !got.OutboundCost.IsZero() || !got.Outbound.LeadTimeDays.IsZero() {
		t.Errorf("outbound leg should be free and domestic, got %+v", got.Outbound)
	}
	// 1.5 + 400/10000, 0.75
	if !got.InboundCost.Equal(catalogtest.D("2.29")) {
		t.Errorf("inbound = %s, want 2.29", got.InboundCost)
	}
	if !got.CriticalPathDays.Equal(catalogtest.D("25")) {
		t.Errorf("critical path = %s, want 25", got.CriticalPathDays)
	}
}

func TestComputeBatchSizeScalesFeeShare(t *testing.T) {
	store := catalogtest.DemoStore()
	got, err := NewCalculator(store, 1000).Compute(Request{
		Lines:            resolved(t, store, catalogtest.AX100)[:1],
		AssemblyCountry:  catalogtest.Switzerland,
		Destination:      catalogtest.Switzerland,
		IncludeFixedFees: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Inbound[0].FixedFeeShare.Equal(catalogtest.D("0.5")) {
		t.Errorf("fee share = %s, want 0.5", got.Inbound[0].FixedFeeShare)
	}
}

func TestComputeMissingLane(t *testing.T) {
	tables := catalogtest.DemoTables()
	var lanes []types.LogisticsLane
	for _, l := range tables.LogisticsLanes {
		if l.From == catalogtest.China && l.To == catalogtest.Mexico {
			continue
		}
		lanes = append(lanes, l)
	}
	tables.LogisticsLanes = lanes
	store := catalog.NewStore(tables)

	_, err := NewCalculator(store, 0).Compute(Request{
		Lines:            resolved(t, store, catalogtest.AX100),
		AssemblyCountry:  catalogtest.Mexico,
		Destination:      catalogtest.UnitedStates,
		FinishedWeightKg: catalogtest.D("1.2"),
	})
	if err == nil {
		t.Fatal("expected missing lane error")
	}
	if !errors.IsType(err, errors.TypeMissingLane) {
		t.Errorf("expected %s, got %v", errors.TypeMissingLane, err)
	}
}

func TestComputeDomesticInboundWithoutLaneIsFree(t *testing.T) {
	store := catalogtest.DemoStore()
	lines := resolved(t, store, catalogtest.AX100)
	lines[0].OriginCountry = catalogtest.Switzerland

	got, err := NewCalculator(store, 0).Compute(Request{
		Lines:           lines,
		AssemblyCountry: catalogtest.Switzerland,
		Destination:     catalogtest.Switzerland,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Inbound[0].Domestic || !got.Inbound[0].Cost.IsZero() {
		t.Errorf("domestic inbound leg = %+v", got.Inbound[0])
	}
}
