// Package billing contiene la aritmética monetaria del libro multi-moneda.
//
// Toda la matemática usa decimales de punto fijo: montos a 2 decimales para
// presentación y tasas con al menos 4 decimales almacenados, para acotar el
// error de redondeo acumulado entre revaluaciones sucesivas.
package billing

import "github.com/shopspring/decimal"

// RateOne tasa implícita cuando no hay conversión (misma moneda o tasa ausente en creación).
var RateOne = decimal.NewFromInt(1)

// BaseAmount calcula el monto en moneda base: document_amount × rate, a 2 decimales.
func BaseAmount(documentAmount, rate decimal.Decimal) decimal.Decimal {
	return documentAmount.Mul(rate).Round(2)
}

// FxDifference calcula fx_difference_amount = base_amount − document_amount.
// Se recalcula idéntico en cada cambio de tasa.
func FxDifference(baseAmount, documentAmount decimal.Decimal) decimal.Decimal {
	return baseAmount.Sub(documentAmount).Round(2)
}

// GainLoss diferencia entre la nueva y la vieja valuación base de una revaluación.
func GainLoss(newBase, oldBase decimal.Decimal) decimal.Decimal {
	return newBase.Sub(oldBase).Round(2)
}

// RevaluationSide lado contable del asiento de revaluación: Debit si la
// ganancia/pérdida es >= 0, Credit si es negativa.
func RevaluationSide(gainLoss decimal.Decimal) string {
	if gainLoss.IsNegative() {
		return "Credit"
	}
	return "Debit"
}

// InvoicePaidStatus deriva el estado de pago de una factura a partir de la suma
// de TODAS sus asignaciones: Paid cuando la suma alcanza o supera el total,
// PartiallyPaid cuando existen asignaciones insuficientes, "" cuando no hay ninguna.
// Re-derivar del agregado (y no de un contador incremental) hace la operación
// idempotente ante escrituras parciales intercaladas.
func InvoicePaidStatus(totalAllocated, totalAmount decimal.Decimal) string {
	if totalAllocated.IsZero() {
		return ""
	}
	if totalAllocated.GreaterThanOrEqual(totalAmount) {
		return "Paid"
	}
	return "PartiallyPaid"
}
