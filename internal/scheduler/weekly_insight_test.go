package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	telexmocks "github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/telex/mocks"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/repository"
	"github.com/vfg2006/weekly-growth-advisor/internal/config"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
	insightmocks "github.com/vfg2006/weekly-growth-advisor/internal/usecases/insighting/mocks"
	"go.uber.org/mock/gomock"
)

const testWebhookURL = "https://ping.telex.im/v1/webhooks/abc"

// Segunda-feira, 17 de fevereiro de 2025, horário do disparo
var mondayFire = time.Date(2025, 2, 17, 9, 0, 0, 0, time.UTC)

type weeklyFixture struct {
	service   *WeeklyInsightService
	insighter *insightmocks.MockInsighter
	notifier  *telexmocks.MockNotifier
	runRepo   repository.JobRunRepository
}

func newWeeklyFixture(t *testing.T, now time.Time, mutate func(cfg *config.Config)) *weeklyFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{
		WeeklyInsight: config.WeeklyInsight{
			JobID:        config.WeeklyInsightJobID,
			CronSchedule: "0 9 * * 1",
			MisfireGrace: time.Hour,
			Enabled:      true,
		},
		Telex: config.Telex{WebhookURL: testWebhookURL},
	}
	if mutate != nil {
		mutate(cfg)
	}

	insighter := insightmocks.NewMockInsighter(ctrl)
	notifier := telexmocks.NewMockNotifier(ctrl)
	runRepo := repository.NewMemoryJobRunRepository()

	service := NewWeeklyInsightService(insighter, notifier, runRepo, cfg).
		WithClock(func() time.Time { return now })

	schedule, err := parseSchedule(cfg.WeeklyInsight.CronSchedule)
	require.NoError(t, err)
	service.schedule = schedule

	return &weeklyFixture{
		service:   service,
		insighter: insighter,
		notifier:  notifier,
		runRepo:   runRepo,
	}
}

func sampleInsight() *domain.BusinessInsight {
	return &domain.BusinessInsight{
		Metric:         domain.RevenueMetric,
		Observation:    "Revenue increased by 9.1% this week.",
		Recommendation: "Continue current strategy while testing new marketing channels.",
		Classification: domain.Increased,
		GeneratedAt:    mondayFire,
	}
}

func scheduledDestination() domain.Destination {
	return domain.Destination{Name: "telex", URL: testWebhookURL, Shape: domain.ScheduledShape}
}

func TestWeeklyInsightService_StartReplacesRegistration(t *testing.T) {
	f := newWeeklyFixture(t, mondayFire, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Equal(t, StateUnstarted, f.service.State())

	require.NoError(t, f.service.Start(ctx))
	require.NoError(t, f.service.Start(ctx))

	assert.Len(t, f.service.scheduler.Jobs(), 1)
	assert.Equal(t, StateRunning, f.service.State())

	f.service.Stop()
	assert.Equal(t, StateStopped, f.service.State())
}

func TestWeeklyInsightService_StartInvalidCron(t *testing.T) {
	f := newWeeklyFixture(t, mondayFire, func(cfg *config.Config) {
		cfg.WeeklyInsight.CronSchedule = "toda segunda"
	})

	err := f.service.Start(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRegistration))
	assert.Equal(t, StateUnstarted, f.service.State())
	assert.Empty(t, f.service.scheduler.Jobs())
}

func TestWeeklyInsightService_StartDisabled(t *testing.T) {
	f := newWeeklyFixture(t, mondayFire, func(cfg *config.Config) {
		cfg.WeeklyInsight.Enabled = false
	})

	require.NoError(t, f.service.Start(context.Background()))

	assert.Equal(t, StateUnstarted, f.service.State())
	assert.Empty(t, f.service.scheduler.Jobs())
}

func TestWeeklyInsightService_RunOnce(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(f *weeklyFixture)
		wantErr    error
		wantStatus domain.JobRunStatus
	}{
		{
			name: "gera e entrega o insight",
			setup: func(f *weeklyFixture) {
				f.insighter.EXPECT().GenerateInsight(gomock.Any()).Return(sampleInsight(), nil)
				f.notifier.EXPECT().Deliver(gomock.Any(), sampleInsight(), scheduledDestination()).Return(nil)
			},
			wantStatus: domain.JobRunSuccess,
		},
		{
			name: "falha na entrega após retentativas",
			setup: func(f *weeklyFixture) {
				f.insighter.EXPECT().GenerateInsight(gomock.Any()).Return(sampleInsight(), nil)
				f.notifier.EXPECT().
					Deliver(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(domain.NewInsightError(domain.ErrDeliveryFailed, "", "telex after 3 attempts", errors.New("status 502")))
			},
			wantErr:    domain.ErrDeliveryFailed,
			wantStatus: domain.JobRunFailed,
		},
		{
			name: "falha no provedor não tenta entregar",
			setup: func(f *weeklyFixture) {
				f.insighter.EXPECT().
					GenerateInsight(gomock.Any()).
					Return(nil, domain.NewInsightError(domain.ErrUpstream, "UPS_001", "current week", errors.New("timeout")))
			},
			wantErr:    domain.ErrUpstream,
			wantStatus: domain.JobRunFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWeeklyFixture(t, mondayFire.Add(5*time.Minute), nil)
			tt.setup(f)

			jobRun, err := f.service.RunOnce(context.Background(), domain.TriggerCron)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				require.NoError(t, err)
			}

			require.NotNil(t, jobRun)
			assert.Equal(t, tt.wantStatus, jobRun.Status)
			assert.True(t, mondayFire.Equal(jobRun.ScheduledFor))

			latest, err := f.runRepo.Latest(context.Background(), config.WeeklyInsightJobID)
			require.NoError(t, err)
			require.NotNil(t, latest)
			assert.Equal(t, jobRun.ID, latest.ID)
			assert.Equal(t, tt.wantStatus, latest.Status)
			assert.NotNil(t, latest.FinishedAt)
		})
	}
}

func TestWeeklyInsightService_RunOnceManualUsesNow(t *testing.T) {
	now := mondayFire.AddDate(0, 0, 2)
	f := newWeeklyFixture(t, now, nil)

	f.insighter.EXPECT().GenerateInsight(gomock.Any()).Return(sampleInsight(), nil)
	f.notifier.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	jobRun, err := f.service.RunOnce(context.Background(), domain.TriggerManual)
	require.NoError(t, err)

	assert.Equal(t, domain.TriggerManual, jobRun.Trigger)
	assert.True(t, now.Equal(jobRun.ScheduledFor))
}

func TestWeeklyInsightService_NoOverlap(t *testing.T) {
	f := newWeeklyFixture(t, mondayFire, nil)
	f.service.syncRunning = true

	jobRun, err := f.service.RunOnce(context.Background(), domain.TriggerCron)

	assert.Nil(t, jobRun)
	assert.ErrorIs(t, err, ErrRunInProgress)
	assert.False(t, f.service.TriggerManualSync())
}

func TestWeeklyInsightService_ManualTriggerReservesBeforeReturning(t *testing.T) {
	f := newWeeklyFixture(t, mondayFire, nil)

	release := make(chan struct{})
	f.insighter.EXPECT().
		GenerateInsight(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (*domain.BusinessInsight, error) {
			<-release
			return sampleInsight(), nil
		}).
		Times(1)
	f.notifier.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	require.True(t, f.service.TriggerManualSync())

	// A execução manual ainda pode não ter começado, mas a reserva já existe
	jobRun, err := f.service.RunOnce(context.Background(), domain.TriggerCron)
	assert.Nil(t, jobRun)
	assert.ErrorIs(t, err, ErrRunInProgress)
	assert.False(t, f.service.TriggerManualSync())

	close(release)

	require.Eventually(t, func() bool {
		latest, err := f.runRepo.Latest(context.Background(), config.WeeklyInsightJobID)
		return err == nil && latest != nil && latest.Status == domain.JobRunSuccess
	}, 2*time.Second, 10*time.Millisecond)

	latest, err := f.runRepo.Latest(context.Background(), config.WeeklyInsightJobID)
	require.NoError(t, err)
	assert.Equal(t, domain.TriggerManual, latest.Trigger)
}

func TestWeeklyInsightService_FireWithinGrace(t *testing.T) {
	f := newWeeklyFixture(t, mondayFire.Add(20*time.Minute), nil)

	f.insighter.EXPECT().GenerateInsight(gomock.Any()).Return(sampleInsight(), nil)
	f.notifier.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	f.service.fire()

	latest, err := f.runRepo.Latest(context.Background(), config.WeeklyInsightJobID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, domain.TriggerCron, latest.Trigger)
	assert.Equal(t, domain.JobRunSuccess, latest.Status)
	assert.True(t, mondayFire.Equal(latest.ScheduledFor))
}

func TestWeeklyInsightService_FireBeyondGraceIsSkipped(t *testing.T) {
	// Sem expectativas: nenhum insight deve ser gerado
	f := newWeeklyFixture(t, mondayFire.Add(2*time.Hour), nil)

	f.service.fire()

	latest, err := f.runRepo.Latest(context.Background(), config.WeeklyInsightJobID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, domain.JobRunSkipped, latest.Status)
	assert.True(t, mondayFire.Equal(latest.ScheduledFor))
}

func TestWeeklyInsightService_CatchUp(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		seed    *domain.JobRun
		wantRun bool
	}{
		{
			name:    "ocorrência perdida dentro da janela",
			now:     mondayFire.Add(30 * time.Minute),
			wantRun: true,
		},
		{
			name: "ocorrência já executada",
			now:  mondayFire.Add(30 * time.Minute),
			seed: &domain.JobRun{
				ID:           "ja-executado",
				JobID:        config.WeeklyInsightJobID,
				Trigger:      domain.TriggerCron,
				Status:       domain.JobRunSuccess,
				ScheduledFor: mondayFire,
				StartedAt:    mondayFire,
			},
			wantRun: false,
		},
		{
			name: "apenas a semana anterior foi executada",
			now:  mondayFire.Add(10 * time.Minute),
			seed: &domain.JobRun{
				ID:           "semana-anterior",
				JobID:        config.WeeklyInsightJobID,
				Trigger:      domain.TriggerCron,
				Status:       domain.JobRunSuccess,
				ScheduledFor: mondayFire.AddDate(0, 0, -7),
				StartedAt:    mondayFire.AddDate(0, 0, -7),
			},
			wantRun: true,
		},
		{
			name:    "fora da janela de misfire",
			now:     mondayFire.Add(3 * time.Hour),
			wantRun: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWeeklyFixture(t, tt.now, nil)
			ctx := context.Background()

			if tt.seed != nil {
				require.NoError(t, f.runRepo.Create(ctx, tt.seed))
			}

			if tt.wantRun {
				f.insighter.EXPECT().GenerateInsight(gomock.Any()).Return(sampleInsight(), nil)
				f.notifier.EXPECT().Deliver(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			assert.Equal(t, tt.wantRun, f.service.catchUpIfMissed(ctx))

			if tt.wantRun {
				latest, err := f.runRepo.Latest(ctx, config.WeeklyInsightJobID)
				require.NoError(t, err)
				assert.Equal(t, domain.TriggerCatchUp, latest.Trigger)
				assert.True(t, mondayFire.Equal(latest.ScheduledFor))
			}
		})
	}
}

func TestWeeklyInsightService_GetStatus(t *testing.T) {
	f := newWeeklyFixture(t, mondayFire, nil)

	status := f.service.GetStatus(context.Background())

	assert.Equal(t, config.WeeklyInsightJobID, status["job_id"])
	assert.Equal(t, "0 9 * * 1", status["cron"])
	assert.Equal(t, StateUnstarted, status["state"])
	assert.Equal(t, false, status["run_in_progress"])
	assert.NotContains(t, status, "last_run")
}
