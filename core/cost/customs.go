// Package cost - Customs base policy
package cost

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CustomsBase selects the subtotal the final-assembly tariff is levied on.
// Which value customs assesses is a policy choice, so it is configurable.
type CustomsBase string

const (
	// CustomsFull is material + all logistics (inbound and outbound) + conversion
	CustomsFull CustomsBase = "full"

	// CustomsInbound is material + inbound logistics + conversion, excluding
	// freight to the destination market
	CustomsInbound CustomsBase = "inbound"

	// CustomsMaterialConversion is material + conversion only
	CustomsMaterialConversion CustomsBase = "material_conversion"
)

// DefaultCustomsBase is used when nothing is configured
const DefaultCustomsBase = CustomsFull

// ParseCustomsBase parses a configured customs base
func ParseCustomsBase(s string) (CustomsBase, error) {
	switch b := CustomsBase(s); b {
	case CustomsFull, CustomsInbound, CustomsMaterialConversion:
		return b, nil
	case "":
		return DefaultCustomsBase, nil
	default:
		return "", fmt.Errorf("unknown customs base %q", s)
	}
}

// Value returns the customs value under this base
func (b CustomsBase) Value(material, inbound, outbound, conversion decimal.Decimal) decimal.Decimal {
	switch b {
	case CustomsInbound:
		return material.Add(inbound).Add(conversion)
	case CustomsMaterialConversion:
		return material.Add(conversion)
	default:
		return material.Add(inbound).Add(outbound).Add(conversion)
	}
}
