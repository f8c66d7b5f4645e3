package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueWindow agrega a receita de transações bem-sucedidas em duas janelas de 7 dias
type RevenueWindow struct {
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
}

// WeekRange representa o intervalo de datas consultado no provedor (datas inclusivas)
type WeekRange struct {
	From time.Time
	To   time.Time
}

// WeekRanges calcula a semana corrente (segunda-feira até hoje) e a semana anterior.
func WeekRanges(today time.Time) (current WeekRange, previous WeekRange) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	// time.Weekday começa no domingo, a semana aqui começa na segunda
	offset := (int(day.Weekday()) + 6) % 7
	currentWeekStart := day.AddDate(0, 0, -offset)
	previousWeekStart := currentWeekStart.AddDate(0, 0, -7)

	current = WeekRange{From: currentWeekStart, To: day}
	previous = WeekRange{From: previousWeekStart, To: currentWeekStart.AddDate(0, 0, -1)}

	return current, previous
}
