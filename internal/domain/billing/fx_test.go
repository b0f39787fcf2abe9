package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/propiedades-pro/internal/domain/billing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Escenario del libro: factura de 100 GBP con base USD a tasa 1.27.
func TestBaseAmount_ConversionGBPUSD(t *testing.T) {
	base := billing.BaseAmount(dec("100"), dec("1.27"))
	assert.True(t, dec("127.00").Equal(base), "base esperado 127.00, obtuve %s", base)

	diff := billing.FxDifference(base, dec("100"))
	assert.True(t, dec("27.00").Equal(diff), "diferencia esperada 27.00, obtuve %s", diff)
}

// Misma moneda: tasa 1 y diferencia cero.
func TestBaseAmount_MismaMoneda(t *testing.T) {
	base := billing.BaseAmount(dec("850.50"), billing.RateOne)
	assert.True(t, dec("850.50").Equal(base))
	assert.True(t, billing.FxDifference(base, dec("850.50")).IsZero())
}

// El redondeo es a 2 decimales sobre el producto, no sobre los factores.
func TestBaseAmount_Redondeo(t *testing.T) {
	base := billing.BaseAmount(dec("33.33"), dec("1.2345"))
	// 33.33 × 1.2345 = 41.145885 → 41.15
	assert.True(t, dec("41.15").Equal(base), "obtuve %s", base)
}

// Revaluación posterior a 1.30: nuevo base 130.00, ganancia 3.00, lado Debit.
func TestGainLoss_RevaluacionConGanancia(t *testing.T) {
	oldBase := billing.BaseAmount(dec("100"), dec("1.27"))
	newBase := billing.BaseAmount(dec("100"), dec("1.30"))
	gl := billing.GainLoss(newBase, oldBase)

	assert.True(t, dec("130.00").Equal(newBase))
	assert.True(t, dec("3.00").Equal(gl))
	assert.Equal(t, "Debit", billing.RevaluationSide(gl))
}

// Ganancia cero (tasa sin cambio) asienta por el lado Debit; pérdida por Credit.
func TestRevaluationSide_Signo(t *testing.T) {
	assert.Equal(t, "Debit", billing.RevaluationSide(decimal.Zero))
	assert.Equal(t, "Credit", billing.RevaluationSide(dec("-0.01")))
}

// Estado de pago derivado del agregado de asignaciones.
func TestInvoicePaidStatus(t *testing.T) {
	total := dec("127.00")
	assert.Equal(t, "", billing.InvoicePaidStatus(decimal.Zero, total))
	assert.Equal(t, "PartiallyPaid", billing.InvoicePaidStatus(dec("50"), total))
	assert.Equal(t, "Paid", billing.InvoicePaidStatus(dec("127.00"), total))
	assert.Equal(t, "Paid", billing.InvoicePaidStatus(dec("200"), total), "sobrepago también es Paid")
}
