package inventory

import "github.com/shopspring/decimal"

// Umbral bajo el cual una alerta se considera crítica (porcentaje).
var criticalThreshold = decimal.NewFromInt(50)

// Percentage nivel de stock respecto del mínimo: actual / mínimo * 100.
// Con mínimo <= 0 devuelve 0 para no dividir por cero.
func Percentage(current, min decimal.Decimal) decimal.Decimal {
	if min.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return current.Div(min).Mul(decimal.NewFromInt(100)).Round(2)
}

// Critical indica si el nivel es crítico (porcentaje < 50). Solo afecta orden
// y presentación, nunca transiciones de estado.
func Critical(current, min decimal.Decimal) bool {
	return Percentage(current, min).LessThan(criticalThreshold)
}
