// Package money provides an exact minor-unit currency amount.
package money

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Centavos is a currency amount in minor units (1/100 of the display unit).
// Totals computed in Centavos never diverge from the sum sent to the backend.
type Centavos int64

// Mul returns the amount multiplied by a quantity.
func (c Centavos) Mul(qty int) Centavos {
	return c * Centavos(qty)
}

// String formats the amount as a plain decimal, e.g. "125.50".
func (c Centavos) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON encodes the amount as a JSON number with two decimal places.
func (c Centavos) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings, the two
// shapes the backend emits for prices.
func (c *Centavos) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse converts a decimal string like "125.5" into Centavos. Fractions beyond
// two places are rejected rather than rounded.
func Parse(s string) (Centavos, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has sub-centavo precision", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var total int64
	for _, part := range []string{whole, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("invalid amount %q", s)
			}
			total = total*10 + int64(r-'0')
		}
	}
	if neg {
		total = -total
	}
	return Centavos(total), nil
}

var _ json.Marshaler = Centavos(0)
var _ json.Unmarshaler = (*Centavos)(nil)
