package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
)

// memoryJobRunRepository é usado com DATABASE_DRIVER=none. Perde o histórico ao reiniciar.
type memoryJobRunRepository struct {
	mu   sync.RWMutex
	runs map[string]domain.JobRun
}

func NewMemoryJobRunRepository() JobRunRepository {
	return &memoryJobRunRepository{
		runs: make(map[string]domain.JobRun),
	}
}

func (r *memoryJobRunRepository) Create(ctx context.Context, run *domain.JobRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runs[run.ID]; exists {
		return fmt.Errorf("execução %s já registrada", run.ID)
	}
	r.runs[run.ID] = *run
	return nil
}

func (r *memoryJobRunRepository) Finish(ctx context.Context, run *domain.JobRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.runs[run.ID]
	if !exists {
		return fmt.Errorf("execução %s não encontrada", run.ID)
	}

	stored.Status = run.Status
	stored.FinishedAt = run.FinishedAt
	stored.Error = run.Error
	r.runs[run.ID] = stored
	return nil
}

func (r *memoryJobRunRepository) Latest(ctx context.Context, jobID string) (*domain.JobRun, error) {
	runs, err := r.List(ctx, jobID, 1)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return runs[0], nil
}

func (r *memoryJobRunRepository) List(ctx context.Context, jobID string, limit uint64) ([]*domain.JobRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]*domain.JobRun, 0)
	for _, run := range r.runs {
		if run.JobID != jobID {
			continue
		}
		run := run
		runs = append(runs, &run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if limit > 0 && uint64(len(runs)) > limit {
		runs = runs[:limit]
	}

	return runs, nil
}
