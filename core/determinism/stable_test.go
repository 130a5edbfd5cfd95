package determinism

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSortedKeysIsOrdered(t *testing.T) {
	m := map[string]int{"PLANT_US_MI": 1, "BU_CH_MUR": 2, "PLANT_MX_NL": 3}
	keys := SortedKeys(m)
	want := []string{"BU_CH_MUR", "PLANT_MX_NL", "PLANT_US_MI"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestUniqueKeepsFirstSeenOrder(t *testing.T) {
	got := Unique([]string{"US", "MX", "US", "CH", "MX"})
	if len(got) != 3 || got[0] != "US" || got[1] != "MX" || got[2] != "CH" {
		t.Errorf("Unique = %v", got)
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"MX", "US", "MX", "CH"})
	if len(got) != 3 || got[0] != "CH" || got[1] != "MX" || got[2] != "US" {
		t.Errorf("Dedupe = %v", got)
	}
}

func TestFingerprintStableAcrossMapOrder(t *testing.T) {
	type row struct {
		SKU   string          `json:"sku"`
		Total decimal.Decimal `json:"total"`
	}
	a := map[string]row{
		"AX100": {"AX100", decimal.RequireFromString("41.25")},
		"AX200": {"AX200", decimal.RequireFromString("77.10")},
	}
	b := map[string]row{
		"AX200": {"AX200", decimal.RequireFromString("77.10")},
		"AX100": {"AX100", decimal.RequireFromString("41.25")},
	}

	ha, err := Fingerprint(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := Fingerprint(b)
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Errorf("fingerprints differ: %s vs %s", ha, hb)
	}

	b["AX100"] = row{"AX100", decimal.RequireFromString("41.26")}
	hc, _ := Fingerprint(b)
	if hc == ha {
		t.Error("fingerprint did not change with content")
	}
}
