package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekRanges(t *testing.T) {
	tests := []struct {
		name             string
		today            time.Time
		expectedCurrent  WeekRange
		expectedPrevious WeekRange
	}{
		{
			name:  "Quarta-feira",
			today: time.Date(2025, 2, 19, 15, 30, 0, 0, time.UTC),
			expectedCurrent: WeekRange{
				From: time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 2, 19, 0, 0, 0, 0, time.UTC),
			},
			expectedPrevious: WeekRange{
				From: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 2, 16, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "Segunda-feira é o início da semana corrente",
			today: time.Date(2025, 2, 17, 9, 0, 0, 0, time.UTC),
			expectedCurrent: WeekRange{
				From: time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC),
			},
			expectedPrevious: WeekRange{
				From: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 2, 16, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "Domingo pertence à semana iniciada na segunda anterior",
			today: time.Date(2025, 2, 23, 23, 59, 0, 0, time.UTC),
			expectedCurrent: WeekRange{
				From: time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 2, 23, 0, 0, 0, 0, time.UTC),
			},
			expectedPrevious: WeekRange{
				From: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 2, 16, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "Virada de ano",
			today: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			expectedCurrent: WeekRange{
				From: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			expectedPrevious: WeekRange{
				From: time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, previous := WeekRanges(tt.today)
			assert.Equal(t, tt.expectedCurrent, current)
			assert.Equal(t, tt.expectedPrevious, previous)
		})
	}
}
