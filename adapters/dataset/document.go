package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"

	"landed-cost/core/catalog"
	"landed-cost/internal/errors"
)

// DocumentLoader reads every relation from one JSON or HJSON document
type DocumentLoader struct {
	Path string
}

// Load reads and parses the document
func (l *DocumentLoader) Load() (catalog.Tables, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return catalog.Tables{}, errors.Input(fmt.Sprintf("read dataset %s: %v", l.Path, err))
	}
	t, err := ParseDocument(data)
	if err != nil {
		return t, errors.Wrap(errors.TypeParsing, l.Path, err)
	}
	return t, nil
}

// ParseDocument parses a dataset document. The HJSON text is normalized to
// plain JSON first, then decoded strictly so misspelled keys are reported.
func ParseDocument(data []byte) (catalog.Tables, error) {
	var t catalog.Tables

	// Numbers stay json.Number so decimals keep every digit
	opts := hjson.DefaultDecoderOptions()
	opts.UseJSONNumber = true

	var raw interface{}
	if err := hjson.UnmarshalWithOptions(data, &raw, opts); err != nil {
		return t, errors.Parsing("dataset document is not valid HJSON", err)
	}
	defaultYield(raw)

	normalized, err := json.Marshal(raw)
	if err != nil {
		return t, errors.Parsing("normalize dataset document", err)
	}

	dec := json.NewDecoder(bytes.NewReader(normalized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return t, errors.Parsing("decode dataset document", err)
	}

	for i := range t.TariffScenarios {
		if t.TariffScenarios[i].Label == "" {
			t.TariffScenarios[i].Label = string(t.TariffScenarios[i].Date)
		}
	}
	if len(t.TariffScenarios) == 0 {
		t.TariffScenarios = scenariosFromRates(t.BaseTariffRates)
	}
	return t, nil
}

// defaultYield fills in yield 1 on BOM rows that omit it. An explicit zero
// is kept so validation can report it.
func defaultYield(raw interface{}) {
	doc, ok := raw.(map[string]interface{})
	if !ok {
		return
	}
	lines, ok := doc["bom"].([]interface{})
	if !ok {
		return
	}
	for _, line := range lines {
		if m, ok := line.(map[string]interface{}); ok {
			if _, set := m["yield"]; !set {
				m["yield"] = 1
			}
		}
	}
}
