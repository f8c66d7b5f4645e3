package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
)

// Janela máxima de busca da ocorrência anterior. Cobre expressões semanais.
const occurrenceLookback = 8 * 24 * time.Hour

func parseSchedule(expr string) (cron.Schedule, error) {
	return cron.ParseStandard(expr)
}

// previousOccurrence retorna a ocorrência mais recente da agenda que não é posterior a now
func previousOccurrence(schedule cron.Schedule, now time.Time) (time.Time, bool) {
	if schedule == nil {
		return time.Time{}, false
	}

	now = now.UTC()

	var previous time.Time
	found := false
	for next := schedule.Next(now.Add(-occurrenceLookback)); !next.After(now); next = schedule.Next(next) {
		if next.IsZero() {
			break
		}
		previous = next
		found = true
	}

	return previous, found
}

// withinGrace indica se uma execução atrasada para occurrence ainda é permitida
func withinGrace(occurrence, now time.Time, grace time.Duration) bool {
	if now.Before(occurrence) {
		return false
	}
	return now.Sub(occurrence) <= grace
}
