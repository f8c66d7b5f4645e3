package domain

import "time"

type JobTrigger string

const (
	TriggerCron    JobTrigger = "cron"
	TriggerCatchUp JobTrigger = "catchup"
	TriggerManual  JobTrigger = "manual"
)

type JobRunStatus string

const (
	JobRunRunning JobRunStatus = "running"
	JobRunSuccess JobRunStatus = "success"
	JobRunFailed  JobRunStatus = "failed"
	JobRunSkipped JobRunStatus = "skipped"
)

// JobRun registra o resultado de uma execução do job semanal.
// Não guarda o conteúdo do insight.
type JobRun struct {
	ID           string       `json:"id"`
	JobID        string       `json:"job_id"`
	Trigger      JobTrigger   `json:"trigger"`
	Status       JobRunStatus `json:"status"`
	ScheduledFor time.Time    `json:"scheduled_for"`
	StartedAt    time.Time    `json:"started_at"`
	FinishedAt   *time.Time   `json:"finished_at,omitempty"`
	Error        string       `json:"error,omitempty"`
}

func (r *JobRun) Finish(status JobRunStatus, err error, at time.Time) {
	r.Status = status
	r.FinishedAt = &at
	if err != nil {
		r.Error = err.Error()
	}
}
