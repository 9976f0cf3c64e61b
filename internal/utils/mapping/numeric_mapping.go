package mapping

import (
	"fmt"

	"github.com/finchbooks/finch/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FractionOfDenom maps a stored denominator back to its decimal-place count.
// Denominators are always powers of ten in this schema.
func FractionOfDenom(denom int64) (int32, error) {
	if denom <= 0 {
		return 0, fmt.Errorf("invalid amount denominator %d", denom)
	}
	fraction := int32(0)
	for denom > 1 {
		if denom%10 != 0 {
			return 0, fmt.Errorf("amount denominator %d is not a power of ten", denom)
		}
		denom /= 10
		fraction++
	}
	return fraction, nil
}

// ToDomainNumeric rebuilds an exact quantity from its stored rational pair.
func ToDomainNumeric(num, denom int64) (domain.Numeric, error) {
	fraction, err := FractionOfDenom(denom)
	if err != nil {
		return domain.Numeric{}, err
	}
	return domain.NewNumericFromDecimal(decimal.New(num, -fraction), fraction)
}
