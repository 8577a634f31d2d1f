package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eduledger-api/internal/domain"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
)

// UnlimitedIndividuals marca el plan sin límite de individuos incluidos.
const UnlimitedIndividuals = -1

// tierLimits tabla fija plan → individuos incluidos en la cuota base.
var tierLimits = map[string]int{
	entity.TierSmall:  100,
	entity.TierMedium: 500,
	entity.TierLarge:  UnlimitedIndividuals,
}

// TierLimit devuelve el límite de individuos incluidos para un plan.
func TierLimit(tier string) (int, error) {
	limit, ok := tierLimits[tier]
	if !ok {
		return 0, domain.ErrInvalidInput
	}
	return limit, nil
}

// PeriodCharge es el desglose del cargo de un tenant para un período.
// Total = Base + Extra.
type PeriodCharge struct {
	Base       decimal.Decimal
	ExtraUnits int
	Extra      decimal.Decimal
	Total      decimal.Decimal
}

// ComputePeriodCharge calcula el cargo del período (servicio de dominio).
// extraUnits = max(0, count - límiteDelPlan); Extra = extraUnits * rate.
// En el plan sin límite nunca hay excedente.
func ComputePeriodCharge(tier string, baseFee decimal.Decimal, count int, rate decimal.Decimal) (PeriodCharge, error) {
	limit, err := TierLimit(tier)
	if err != nil {
		return PeriodCharge{}, err
	}
	extraUnits := 0
	if limit != UnlimitedIndividuals && count > limit {
		extraUnits = count - limit
	}
	extra := decimal.NewFromInt(int64(extraUnits)).Mul(rate)
	return PeriodCharge{
		Base:       baseFee,
		ExtraUnits: extraUnits,
		Extra:      extra,
		Total:      baseFee.Add(extra),
	}, nil
}
