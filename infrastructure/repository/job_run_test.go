package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/database"
	"github.com/vfg2006/weekly-growth-advisor/internal/config"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
)

func newSQLiteRepository(t *testing.T) JobRunRepository {
	t.Helper()

	ctx := context.Background()
	conn, err := database.NewConnection(ctx, config.Database{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "runs.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, database.Migrate(ctx, conn))

	return NewJobRunRepository(conn)
}

func TestJobRunRepository(t *testing.T) {
	implementations := map[string]func(t *testing.T) JobRunRepository{
		"sqlite":  newSQLiteRepository,
		"memória": func(t *testing.T) JobRunRepository { return NewMemoryJobRunRepository() },
	}

	for name, build := range implementations {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := build(t)

			scheduledFor := time.Date(2025, 2, 17, 9, 0, 0, 0, time.UTC)

			first := &domain.JobRun{
				ID:           "run-1",
				JobID:        config.WeeklyInsightJobID,
				Trigger:      domain.TriggerCron,
				Status:       domain.JobRunRunning,
				ScheduledFor: scheduledFor.AddDate(0, 0, -7),
				StartedAt:    scheduledFor.AddDate(0, 0, -7),
			}
			second := &domain.JobRun{
				ID:           "run-2",
				JobID:        config.WeeklyInsightJobID,
				Trigger:      domain.TriggerCatchUp,
				Status:       domain.JobRunRunning,
				ScheduledFor: scheduledFor,
				StartedAt:    scheduledFor.Add(20 * time.Minute),
			}

			latest, err := repo.Latest(ctx, config.WeeklyInsightJobID)
			require.NoError(t, err)
			assert.Nil(t, latest)

			require.NoError(t, repo.Create(ctx, first))
			require.NoError(t, repo.Create(ctx, second))

			second.Finish(domain.JobRunFailed, domain.ErrDeliveryFailed, scheduledFor.Add(23*time.Minute))
			require.NoError(t, repo.Finish(ctx, second))

			latest, err = repo.Latest(ctx, config.WeeklyInsightJobID)
			require.NoError(t, err)
			require.NotNil(t, latest)

			assert.Equal(t, "run-2", latest.ID)
			assert.Equal(t, domain.TriggerCatchUp, latest.Trigger)
			assert.Equal(t, domain.JobRunFailed, latest.Status)
			assert.Equal(t, "delivery failed", latest.Error)
			assert.True(t, scheduledFor.Equal(latest.ScheduledFor))
			require.NotNil(t, latest.FinishedAt)
			assert.True(t, scheduledFor.Add(23*time.Minute).Equal(*latest.FinishedAt))

			runs, err := repo.List(ctx, config.WeeklyInsightJobID, 10)
			require.NoError(t, err)
			require.Len(t, runs, 2)
			assert.Equal(t, "run-1", runs[1].ID)
			assert.Nil(t, runs[1].FinishedAt)

			others, err := repo.List(ctx, "outro_job", 10)
			require.NoError(t, err)
			assert.Empty(t, others)
		})
	}
}

func TestJobRunRepository_FinishUnknown(t *testing.T) {
	repo := newSQLiteRepository(t)

	err := repo.Finish(context.Background(), &domain.JobRun{ID: "inexistente", Status: domain.JobRunSuccess})
	assert.ErrorContains(t, err, "inexistente")
}
