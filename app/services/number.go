package services

import "github.com/shopspring/decimal"

// Number is a decimal that encodes as a bare JSON number, so chart
// consumers receive 40.5 rather than "40.5". Decoding accepts both forms.
type Number struct {
	decimal.Decimal
}

func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d}
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}
