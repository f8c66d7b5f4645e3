package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/telex"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/repository"
	"github.com/vfg2006/weekly-growth-advisor/internal/config"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
	"github.com/vfg2006/weekly-growth-advisor/internal/observability/metrics"
	"github.com/vfg2006/weekly-growth-advisor/internal/usecases/insighting"
	"github.com/vfg2006/weekly-growth-advisor/pkg/utils"
)

// ErrRunInProgress indica que já existe uma execução do job semanal em andamento
var ErrRunInProgress = errors.New("weekly insight run already in progress")

// State representa o ciclo de vida do agendador
type State string

const (
	StateUnstarted State = "unstarted"
	StateRunning   State = "running"
	StateStopped   State = "stopped"
)

// WeeklyInsightConfig representa a configuração do job semanal
type WeeklyInsightConfig struct {
	JobID        string
	CronSchedule string
	MisfireGrace time.Duration
	CatchUp      bool
	Enabled      bool
}

// WeeklyInsightService gera e entrega o insight semanal de receita
type WeeklyInsightService struct {
	scheduler   *gocron.Scheduler
	config      WeeklyInsightConfig
	insighter   insighting.Insighter
	notifier    telex.Notifier
	runRepo     repository.JobRunRepository
	destination domain.Destination
	now         func() time.Time

	stateMu  sync.RWMutex
	state    State
	schedule cron.Schedule
	runCtx   context.Context

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewWeeklyInsightService cria o agendador. O job só é registrado em Start.
func NewWeeklyInsightService(
	insighter insighting.Insighter,
	notifier telex.Notifier,
	runRepo repository.JobRunRepository,
	appConfig *config.Config,
) *WeeklyInsightService {
	jobConfig := WeeklyInsightConfig{
		JobID:        appConfig.WeeklyInsight.JobID,
		CronSchedule: appConfig.WeeklyInsight.CronSchedule,
		MisfireGrace: appConfig.WeeklyInsight.MisfireGrace,
		CatchUp:      appConfig.WeeklyInsight.CatchUp,
		Enabled:      appConfig.WeeklyInsight.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"job_id":        jobConfig.JobID,
		"cron_schedule": jobConfig.CronSchedule,
		"misfire_grace": jobConfig.MisfireGrace.String(),
		"catch_up":      jobConfig.CatchUp,
		"enabled":       jobConfig.Enabled,
	}).Info("Configuração do agendador de insight semanal carregada")

	return &WeeklyInsightService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    jobConfig,
		insighter: insighter,
		notifier:  notifier,
		runRepo:   runRepo,
		destination: domain.Destination{
			Name:  "telex",
			URL:   appConfig.Telex.WebhookURL,
			Shape: domain.ScheduledShape,
		},
		now:    time.Now,
		state:  StateUnstarted,
		runCtx: context.Background(),
	}
}

// WithClock substitui o relógio usado para misfire e registro das execuções
func (s *WeeklyInsightService) WithClock(now func() time.Time) *WeeklyInsightService {
	s.now = now
	return s
}

// Start registra o job (substituindo um registro anterior com o mesmo id) e inicia o agendador.
// Falha no registro é retornada como ErrRegistration.
func (s *WeeklyInsightService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Insight semanal desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de insight semanal")

	schedule, err := parseSchedule(s.config.CronSchedule)
	if err != nil {
		return domain.NewInsightError(domain.ErrRegistration, "", fmt.Sprintf("cron %q", s.config.CronSchedule), err)
	}

	if err := s.scheduler.RemoveByTag(s.config.JobID); err == nil {
		logrus.WithField("job_id", s.config.JobID).Info("Registro anterior do job substituído")
	}

	_, err = s.scheduler.
		Cron(s.config.CronSchedule).
		Tag(s.config.JobID).
		SingletonMode().
		Do(s.fire)
	if err != nil {
		return domain.NewInsightError(domain.ErrRegistration, "", s.config.JobID, err)
	}

	s.stateMu.Lock()
	s.schedule = schedule
	s.runCtx = ctx
	alreadyRunning := s.state == StateRunning
	s.state = StateRunning
	s.stateMu.Unlock()

	if !alreadyRunning {
		s.scheduler.StartAsync()

		// Configurar o cancelamento do agendador quando o contexto for cancelado
		go func() {
			<-ctx.Done()
			logrus.Info("Parando agendador de insight semanal")
			s.Stop()
		}()
	}

	if s.config.CatchUp {
		go s.catchUpIfMissed(ctx)
	}

	return nil
}

// Stop interrompe o agendador. Execuções em andamento não são canceladas aqui.
func (s *WeeklyInsightService) Stop() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if s.state != StateRunning {
		return
	}

	s.scheduler.Stop()
	s.state = StateStopped
}

func (s *WeeklyInsightService) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// fire é chamado pelo gocron. Ocorrências fora da janela de misfire são puladas.
func (s *WeeklyInsightService) fire() {
	ctx, schedule := s.currentContext()
	now := s.now().UTC()

	occurrence, ok := previousOccurrence(schedule, now)
	if !ok {
		occurrence = now
	}

	if !withinGrace(occurrence, now, s.config.MisfireGrace) {
		logrus.WithFields(logrus.Fields{
			"job_id":        s.config.JobID,
			"scheduled_for": occurrence,
			"delay":         now.Sub(occurrence).String(),
		}).Warn("Execução do insight semanal fora da janela de misfire, ignorando")
		s.recordSkipped(ctx, domain.TriggerCron, occurrence, now)
		return
	}

	s.execute(ctx, domain.TriggerCron, occurrence)
}

// catchUpIfMissed executa a ocorrência mais recente se ela estiver na janela de misfire
// e ainda não houver execução registrada para ela.
func (s *WeeklyInsightService) catchUpIfMissed(ctx context.Context) bool {
	_, schedule := s.currentContext()
	now := s.now().UTC()

	occurrence, ok := previousOccurrence(schedule, now)
	if !ok || !withinGrace(occurrence, now, s.config.MisfireGrace) {
		return false
	}

	latest, err := s.runRepo.Latest(ctx, s.config.JobID)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao consultar execuções anteriores, catch-up ignorado")
		return false
	}

	if latest != nil && !latest.ScheduledFor.Before(occurrence) {
		return false
	}

	logrus.WithFields(logrus.Fields{
		"job_id":        s.config.JobID,
		"scheduled_for": occurrence,
	}).Info("Execução perdida dentro da janela de misfire, executando catch-up")

	s.execute(ctx, domain.TriggerCatchUp, occurrence)
	return true
}

// RunOnce executa o pipeline completo uma vez. Falhas são registradas e retornadas.
func (s *WeeklyInsightService) RunOnce(ctx context.Context, trigger domain.JobTrigger) (*domain.JobRun, error) {
	scheduledFor := s.now().UTC()
	if trigger != domain.TriggerManual {
		_, schedule := s.currentContext()
		if schedule != nil {
			if occurrence, ok := previousOccurrence(schedule, scheduledFor); ok {
				scheduledFor = occurrence
			}
		}
	}

	return s.run(ctx, trigger, scheduledFor)
}

// TriggerManualSync inicia manualmente uma execução em segundo plano.
// Retorna false se já houver uma execução em andamento. A reserva acontece antes do retorno,
// então uma chamada concorrente já enxerga a execução como em andamento.
func (s *WeeklyInsightService) TriggerManualSync() bool {
	startTime, ok := s.tryClaim()
	if !ok {
		logrus.Info("Insight semanal já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando execução manual do insight semanal")

	ctx, _ := s.currentContext()
	go func() {
		if _, err := s.runClaimed(ctx, domain.TriggerManual, startTime, startTime); err != nil {
			logrus.WithError(err).WithField("trigger", domain.TriggerManual).Error("Execução do insight semanal finalizada com erro")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *WeeklyInsightService) GetStatus(ctx context.Context) map[string]any {
	s.syncMutex.Lock()
	running := s.syncRunning
	startedAt := s.lastSyncStartedAt
	completedAt := s.lastSyncCompletedAt
	s.syncMutex.Unlock()

	status := map[string]any{
		"job_id":                 s.config.JobID,
		"enabled":                s.config.Enabled,
		"cron":                   s.config.CronSchedule,
		"misfire_grace":          s.config.MisfireGrace.String(),
		"catch_up":               s.config.CatchUp,
		"state":                  s.State(),
		"run_in_progress":        running,
		"last_sync_started_at":   startedAt,
		"last_sync_completed_at": completedAt,
	}

	_, nextRun := s.scheduler.NextRun()
	if !nextRun.IsZero() {
		status["next_run"] = nextRun.UTC()
	}

	latest, err := s.runRepo.Latest(ctx, s.config.JobID)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao consultar última execução do insight semanal")
	} else if latest != nil {
		status["last_run"] = latest
	}

	return status
}

// execute descarta o erro. O job nunca derruba o agendador.
func (s *WeeklyInsightService) execute(ctx context.Context, trigger domain.JobTrigger, scheduledFor time.Time) {
	if _, err := s.run(ctx, trigger, scheduledFor); err != nil && !errors.Is(err, ErrRunInProgress) {
		logrus.WithError(err).WithField("trigger", trigger).Error("Execução do insight semanal finalizada com erro")
	}
}

func (s *WeeklyInsightService) run(ctx context.Context, trigger domain.JobTrigger, scheduledFor time.Time) (*domain.JobRun, error) {
	startTime, ok := s.tryClaim()
	if !ok {
		logrus.Info("Insight semanal já em andamento, ignorando")
		return nil, ErrRunInProgress
	}

	return s.runClaimed(ctx, trigger, scheduledFor, startTime)
}

// tryClaim marca a execução como em andamento. Retorna false se outra já detém a reserva.
func (s *WeeklyInsightService) tryClaim() (time.Time, bool) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return time.Time{}, false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now().UTC()

	return s.lastSyncStartedAt, true
}

// runClaimed executa o pipeline com a reserva já obtida e a libera ao final
func (s *WeeklyInsightService) runClaimed(ctx context.Context, trigger domain.JobTrigger, scheduledFor, startTime time.Time) (*domain.JobRun, error) {
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now().UTC()
		s.syncMutex.Unlock()
	}()

	jobRun := &domain.JobRun{
		ID:           newRunID(startTime),
		JobID:        s.config.JobID,
		Trigger:      trigger,
		Status:       domain.JobRunRunning,
		ScheduledFor: scheduledFor.UTC(),
		StartedAt:    startTime,
	}

	// Falha no ledger não impede a entrega
	if err := s.runRepo.Create(ctx, jobRun); err != nil {
		logrus.WithError(err).Warn("Erro ao registrar início da execução do insight semanal")
	}

	err := s.generateAndDeliver(ctx)

	status := domain.JobRunSuccess
	result := metrics.ResultSuccess
	if err != nil {
		status = domain.JobRunFailed
		result = metrics.ResultError
	}

	jobRun.Finish(status, err, s.now().UTC())
	if finishErr := s.runRepo.Finish(ctx, jobRun); finishErr != nil {
		logrus.WithError(finishErr).Warn("Erro ao registrar fim da execução do insight semanal")
	}

	metrics.ObserveSchedulerRun(string(trigger), result, jobRun.FinishedAt.Sub(startTime))

	logrus.WithFields(logrus.Fields{
		"job_id":   s.config.JobID,
		"run_id":   jobRun.ID,
		"trigger":  trigger,
		"status":   status,
		"duration": jobRun.FinishedAt.Sub(startTime).String(),
	}).Info("Execução do insight semanal concluída")

	return jobRun, err
}

func (s *WeeklyInsightService) generateAndDeliver(ctx context.Context) error {
	insight, err := s.insighter.GenerateInsight(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to generate weekly insight")
		return err
	}

	logrus.Infof("Generated insight for %s: %s", insight.Metric, insight.Observation)
	metrics.IncInsightGenerated("scheduled", string(insight.Classification))

	if err := s.notifier.Deliver(ctx, insight, s.destination); err != nil {
		logrus.WithError(err).Error("Failed to send weekly insight")
		return err
	}

	return nil
}

func (s *WeeklyInsightService) recordSkipped(ctx context.Context, trigger domain.JobTrigger, scheduledFor, now time.Time) {
	jobRun := &domain.JobRun{
		ID:           newRunID(now),
		JobID:        s.config.JobID,
		Trigger:      trigger,
		ScheduledFor: scheduledFor,
		StartedAt:    now,
	}
	jobRun.Finish(domain.JobRunSkipped, nil, now)

	if err := s.runRepo.Create(ctx, jobRun); err != nil {
		logrus.WithError(err).Warn("Erro ao registrar execução ignorada do insight semanal")
	}

	metrics.ObserveSchedulerRun(string(trigger), metrics.ResultSkipped, 0)
}

func newRunID(now time.Time) string {
	id, err := utils.GenerateID()
	if err != nil {
		return fmt.Sprintf("run-%d", now.UnixNano())
	}
	return id
}

func (s *WeeklyInsightService) currentContext() (context.Context, cron.Schedule) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.runCtx, s.schedule
}
