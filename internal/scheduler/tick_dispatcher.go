package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/weekly-growth-advisor/infrastructure/integrator/telex"
	"github.com/vfg2006/weekly-growth-advisor/internal/config"
	"github.com/vfg2006/weekly-growth-advisor/internal/domain"
	"github.com/vfg2006/weekly-growth-advisor/internal/observability/metrics"
	"github.com/vfg2006/weekly-growth-advisor/internal/usecases/insighting"
)

// TickTask é uma solicitação de /tick aceita e ainda não processada
type TickTask struct {
	Destination domain.Destination
	ChannelID   string
	ReceivedAt  time.Time
}

// TickDispatcher processa as solicitações de /tick fora do ciclo da requisição
// usando uma fila limitada e um pool fixo de workers.
type TickDispatcher struct {
	mu        sync.Mutex
	insighter insighting.Insighter
	notifier  telex.Notifier
	workers   int
	queueSize int

	queue     chan TickTask
	accepting bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewTickDispatcher(insighter insighting.Insighter, notifier telex.Notifier, cfg *config.Config) *TickDispatcher {
	workers := cfg.Tick.Workers
	if workers <= 0 {
		workers = 2
	}

	queueSize := cfg.Tick.QueueSize
	if queueSize <= 0 {
		queueSize = 32
	}

	return &TickDispatcher{
		insighter: insighter,
		notifier:  notifier,
		workers:   workers,
		queueSize: queueSize,
	}
}

// Start inicia os workers. Chamadas repetidas são ignoradas.
func (d *TickDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.queue != nil {
		return
	}

	workerCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.queue = make(chan TickTask, d.queueSize)
	d.accepting = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.workerLoop(workerCtx, d.queue, i)
	}

	logrus.WithFields(logrus.Fields{
		"workers":    d.workers,
		"queue_size": d.queueSize,
	}).Info("Dispatcher de tick iniciado")
}

// Submit enfileira a tarefa sem bloquear
func (d *TickDispatcher) Submit(task TickTask) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.accepting || d.queue == nil {
		return domain.ErrSchedulerStopped
	}

	select {
	case d.queue <- task:
		return nil
	default:
		logrus.WithField("channel_id", task.ChannelID).Warn("Fila de tick cheia, solicitação descartada")
		return domain.ErrQueueFull
	}
}

// Stop interrompe a entrada de tarefas e aguarda o esvaziamento da fila até o prazo de ctx.
// Se o prazo expirar, as tarefas em andamento são canceladas.
func (d *TickDispatcher) Stop(ctx context.Context) {
	d.mu.Lock()
	if d.queue == nil || !d.accepting {
		d.mu.Unlock()
		return
	}
	d.accepting = false
	close(d.queue)
	cancel := d.cancel
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logrus.Info("Dispatcher de tick finalizado")
	case <-ctx.Done():
		logrus.Warn("Prazo de finalização do dispatcher de tick expirado, cancelando tarefas")
		cancel()
		<-done
	}

	cancel()
}

func (d *TickDispatcher) workerLoop(ctx context.Context, queue <-chan TickTask, idx int) {
	defer d.wg.Done()

	for task := range queue {
		d.process(ctx, task, idx)
	}
}

// process nunca propaga erro: o cliente já recebeu 202
func (d *TickDispatcher) process(ctx context.Context, task TickTask, idx int) {
	logger := logrus.WithFields(logrus.Fields{
		"worker":      idx,
		"channel_id":  task.ChannelID,
		"destination": task.Destination.Name,
	})

	insight, err := d.insighter.GenerateInsight(ctx)
	if err != nil {
		logger.WithError(err).Error("Failed to generate insight for tick")
		return
	}

	metrics.IncInsightGenerated("tick", string(insight.Classification))

	if err := d.notifier.Deliver(ctx, insight, task.Destination); err != nil {
		logger.WithError(err).Error("Failed to send tick insight")
		return
	}

	logger.WithField("latency", time.Since(task.ReceivedAt).String()).Info("Tick insight delivered")
}
