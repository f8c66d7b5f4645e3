package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/database"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
)

const (
	jobRunsTable   = "job_runs"
	jobRunsColumns = "id, job_id, trigger_type, status, scheduled_for, started_at, finished_at, error"
)

//go:generate mockgen -source=job_run.go -destination=mocks/job_run.go -package=mocks

type JobRunRepository interface {
	Create(ctx context.Context, run *domain.JobRun) error
	Finish(ctx context.Context, run *domain.JobRun) error
	Latest(ctx context.Context, jobID string) (*domain.JobRun, error)
	List(ctx context.Context, jobID string, limit uint64) ([]*domain.JobRun, error)
}

type jobRunRepository struct {
	conn database.Conn
}

func NewJobRunRepository(conn database.Conn) JobRunRepository {
	return &jobRunRepository{
		conn: conn,
	}
}

func (r *jobRunRepository) Create(ctx context.Context, run *domain.JobRun) error {
	query, args, err := squirrel.
		Insert(jobRunsTable).
		Columns("id", "job_id", "trigger_type", "status", "scheduled_for", "started_at", "finished_at", "error").
		Values(
			run.ID,
			run.JobID,
			string(run.Trigger),
			string(run.Status),
			run.ScheduledFor.UTC(),
			run.StartedAt.UTC(),
			nullTime(run.FinishedAt),
			run.Error,
		).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao registrar execução %s: %w", run.ID, err)
	}

	return nil
}

func (r *jobRunRepository) Finish(ctx context.Context, run *domain.JobRun) error {
	query, args, err := squirrel.
		Update(jobRunsTable).
		Set("status", string(run.Status)).
		Set("finished_at", nullTime(run.FinishedAt)).
		Set("error", run.Error).
		Where(squirrel.Eq{"id": run.ID}).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao finalizar execução %s: %w", run.ID, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("execução %s não encontrada", run.ID)
	}

	return nil
}

func (r *jobRunRepository) Latest(ctx context.Context, jobID string) (*domain.JobRun, error) {
	runs, err := r.List(ctx, jobID, 1)
	if err != nil {
		return nil, err
	}

	if len(runs) == 0 {
		return nil, nil
	}

	return runs[0], nil
}

func (r *jobRunRepository) List(ctx context.Context, jobID string, limit uint64) ([]*domain.JobRun, error) {
	query, args, err := squirrel.
		Select(jobRunsColumns).
		From(jobRunsTable).
		Where(squirrel.Eq{"job_id": jobID}).
		OrderBy("started_at DESC").
		Limit(limit).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.JobRun, 0)
	for rows.Next() {
		run, err := scanJobRun(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear execução: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return runs, nil
}

func scanJobRun(rows *sql.Rows) (*domain.JobRun, error) {
	var (
		run        domain.JobRun
		trigger    string
		status     string
		finishedAt sql.NullTime
	)

	err := rows.Scan(
		&run.ID,
		&run.JobID,
		&trigger,
		&status,
		&run.ScheduledFor,
		&run.StartedAt,
		&finishedAt,
		&run.Error,
	)
	if err != nil {
		return nil, err
	}

	run.Trigger = domain.JobTrigger(trigger)
	run.Status = domain.JobRunStatus(status)
	run.ScheduledFor = run.ScheduledFor.UTC()
	run.StartedAt = run.StartedAt.UTC()
	if finishedAt.Valid {
		t := finishedAt.Time.UTC()
		run.FinishedAt = &t
	}

	return &run, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
