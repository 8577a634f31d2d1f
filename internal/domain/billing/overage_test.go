package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eduledger-api/internal/domain"
	"github.com/jhoicas/eduledger-api/internal/domain/billing"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// Escenario de referencia: plan SMALL (límite 100), base 1000, 115 activos,
// tarifa 10/unidad → total = 1000 + 15×10 = 1150.
func TestComputePeriodCharge_SmallConExcedente(t *testing.T) {
	charge, err := billing.ComputePeriodCharge(entity.TierSmall, dec("1000"), 115, dec("10"))
	require.NoError(t, err)

	assert.Equal(t, 15, charge.ExtraUnits)
	assert.True(t, charge.Extra.Equal(dec("150")), "excedente debe ser 15×10 = 150")
	assert.True(t, charge.Total.Equal(dec("1150")), "total debe ser base + excedente")
}

// En el límite exacto no hay excedente (C = L).
func TestComputePeriodCharge_EnElLimiteSinExcedente(t *testing.T) {
	charge, err := billing.ComputePeriodCharge(entity.TierSmall, dec("1000"), 100, dec("10"))
	require.NoError(t, err)

	assert.Equal(t, 0, charge.ExtraUnits)
	assert.True(t, charge.Total.Equal(dec("1000")))
}

// Con cero individuos el cargo es solo la cuota base.
func TestComputePeriodCharge_CeroIndividuos(t *testing.T) {
	charge, err := billing.ComputePeriodCharge(entity.TierMedium, dec("2500"), 0, dec("10"))
	require.NoError(t, err)

	assert.Equal(t, 0, charge.ExtraUnits)
	assert.True(t, charge.Total.Equal(dec("2500")))
}

// El plan LARGE es ilimitado: nunca genera excedente, sin importar el conteo.
func TestComputePeriodCharge_LargeIlimitado(t *testing.T) {
	charge, err := billing.ComputePeriodCharge(entity.TierLarge, dec("9000"), 100000, dec("10"))
	require.NoError(t, err)

	assert.Equal(t, 0, charge.ExtraUnits)
	assert.True(t, charge.Total.Equal(dec("9000")))
}

// Plan desconocido → entrada inválida.
func TestComputePeriodCharge_PlanDesconocido(t *testing.T) {
	_, err := billing.ComputePeriodCharge("GIGANTE", dec("1000"), 10, dec("10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTierLimit_TablaFija(t *testing.T) {
	small, err := billing.TierLimit(entity.TierSmall)
	require.NoError(t, err)
	assert.Equal(t, 100, small)

	large, err := billing.TierLimit(entity.TierLarge)
	require.NoError(t, err)
	assert.Equal(t, billing.UnlimitedIndividuals, large)
}
