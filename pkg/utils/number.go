package utils

import "github.com/shopspring/decimal"

// MinorToMajor converte valores em unidades menores (centavos, kobo) para a unidade principal
func MinorToMajor(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}

// FormatPercent arredonda para uma casa decimal (empate vai para o dígito par) e descarta o sinal
func FormatPercent(d decimal.Decimal) string {
	return d.RoundBank(1).Abs().StringFixed(1)
}
