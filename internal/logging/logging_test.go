package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONOutputCarriesDomainFields(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(Config{Level: "debug", Format: "json"}, &buf)
	defer InitializeDefault()

	Warn("tariff data gap", SKU("ACTUATOR_AX100"), Site("PLANT_MX_NL"), Scenario("2025-04-01"))
	Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "tariff data gap" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["sku"] != "ACTUATOR_AX100" || entry["assembly_site"] != "PLANT_MX_NL" || entry["scenario_date"] != "2025-04-01" {
		t.Errorf("missing domain fields: %v", entry)
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(Config{Level: "warn", Format: "json"}, &buf)
	defer InitializeDefault()

	Debug("recompute")
	Info("loaded")
	Sync()

	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(Config{Level: "chatty", Format: "json"}, &buf)
	defer InitializeDefault()

	Debug("hidden")
	Info("shown")
	Sync()

	if !bytes.Contains(buf.Bytes(), []byte("shown")) || bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Errorf("unexpected output %q", buf.String())
	}
}
