// Package scheduler runs the background worker: lead sync pushes and the
// daily brief digest.
package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	briefsvc "fieldsales_backend/internal/brief"
	"fieldsales_backend/internal/email"
	"fieldsales_backend/internal/pipeline/domain"
	pipelinesvc "fieldsales_backend/internal/pipeline/service"
	"fieldsales_backend/platform/apperr"
	"fieldsales_backend/platform/config"
	"fieldsales_backend/platform/logger"
)

// Config combines what the worker needs from configuration.
type Config interface {
	config.SchedulerConfig
	config.EmailConfig
}

// Worker processes background tasks.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	pipeline  *pipelinesvc.Service
	brief     *briefsvc.Service
	sender    email.Sender
	recipient string
	log       *logger.Logger
}

// NewWorker builds the asynq server, registers task handlers, and schedules
// the daily brief cron entry.
func NewWorker(cfg Config, pipeline *pipelinesvc.Service, brief *briefsvc.Service, sender email.Sender, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}
	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	w := &Worker{
		server:    server,
		mux:       asynq.NewServeMux(),
		pipeline:  pipeline,
		brief:     brief,
		sender:    sender,
		recipient: cfg.GetBriefRecipient(),
		log:       log,
	}
	w.mux.HandleFunc(TaskLeadSync, w.handleLeadSync)
	w.mux.HandleFunc(TaskDailyBrief, w.handleDailyBrief)
	w.mux.HandleFunc(TaskSyncSweep, w.handleSyncSweep)

	hour := cfg.GetDailyBriefHour()
	if hour < 0 || hour > 23 {
		hour = 7
	}
	w.scheduler = asynq.NewScheduler(opt, nil)
	cronspec := fmt.Sprintf("0 %d * * *", hour)
	if _, err := w.scheduler.Register(cronspec, NewDailyBriefTask(), asynq.Queue(queue)); err != nil {
		return nil, fmt.Errorf("register daily brief: %w", err)
	}
	if _, err := w.scheduler.Register("15 * * * *", NewSyncSweepTask(), asynq.Queue(queue)); err != nil {
		return nil, fmt.Errorf("register sync sweep: %w", err)
	}

	return w, nil
}

func (w *Worker) handleLeadSync(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadSyncPayload(task)
	if err != nil {
		return err
	}

	id := domain.ParseLeadID(payload.LeadID)
	if id.IsZero() {
		w.log.Warn("lead sync task with empty lead id")
		return nil
	}

	if err := w.pipeline.SyncLead(ctx, id); err != nil {
		w.log.Warn("lead sync attempt failed", "lead_id", payload.LeadID, "error", err)
		return err
	}
	return nil
}

func (w *Worker) handleSyncSweep(ctx context.Context, task *asynq.Task) error {
	synced, err := w.pipeline.SyncLocalLeads(ctx)
	if err != nil {
		if apperr.Is(err, apperr.KindUnavailable) {
			w.log.Warn("sync sweep skipped", "error", err)
			return nil
		}
		w.log.Warn("sync sweep incomplete", "synced", synced, "error", err)
		return err
	}
	if synced > 0 {
		w.log.Info("sync sweep complete", "synced", synced)
	}
	return nil
}

func (w *Worker) handleDailyBrief(ctx context.Context, task *asynq.Task) error {
	brief, source, err := w.brief.Generate(ctx)
	if err != nil {
		return err
	}
	w.log.Info("daily brief generated", "source", source)

	if w.recipient == "" {
		return nil
	}
	if err := w.sender.SendDailyBrief(ctx, w.recipient, brief); err != nil {
		w.log.Error("daily brief delivery failed", "error", err)
		return err
	}
	return nil
}

// Run starts the scheduler and the task server, blocking until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.scheduler.Shutdown()
		w.server.Shutdown()
	}()

	go func() {
		if err := w.scheduler.Run(); err != nil {
			w.log.Error("brief scheduler stopped", "error", err)
		}
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("worker stopped", "error", err)
	}
}
