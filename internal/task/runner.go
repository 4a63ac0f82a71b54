package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks.
	// One worker keeps jobs of a batch strictly sequential.
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// StuckTaskAge defines how long a task can be in processing state
	// before it's considered stuck and reset
	StuckTaskAge time.Duration

	// StuckTaskCheckInterval defines how often to check for stuck tasks
	// If zero, defaults to 5 minutes
	StuckTaskCheckInterval time.Duration
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:            1,
		QueueSize:              100,
		StuckTaskAge:           30 * time.Minute,
		StuckTaskCheckInterval: 5 * time.Minute,
	}
}

// TaskRunner manages background task processing. Tasks carry a fire time;
// the runner holds each task until its timer elapses, then hands it to a
// worker. Pending tasks are persisted so scheduled work survives restarts.
type TaskRunner struct {
	store      TaskStore
	taskChan   chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     TaskRunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)
	resolver   Resolver
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(store TaskStore, config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	// Apply default check interval if not specified
	if config.StuckTaskCheckInterval == 0 {
		config.StuckTaskCheckInterval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &TaskRunner{
		store:      store,
		taskChan:   make(chan Task, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		wg:         sync.WaitGroup{},
		config:     config,
		logger:     logger,
		errHandler: func(task Task, err error) {
			// Default error handler just logs the error
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// SetResolver registers the resolver used to reconstruct executable tasks
// from persisted records during recovery.
func (r *TaskRunner) SetResolver(resolver Resolver) {
	r.resolver = resolver
}

// Submit persists a new task and arranges for it to run at its fire time.
// Tasks whose fire time has passed (or is zero) are queued immediately.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	// Save task to database first
	if err := r.store.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	r.dispatch(task)
	return nil
}

// dispatch queues the task now or after its remaining delay.
func (r *TaskRunner) dispatch(task Task) {
	delay := time.Until(task.RunAt())
	if delay <= 0 {
		r.enqueue(task)
		return
	}

	r.logger.Debug("holding task until fire time",
		"task_id", task.ID(),
		"task_type", task.Type(),
		"delay", delay)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-r.ctx.Done():
			// Runner shutting down; the persisted pending row is picked up
			// again by Recover on the next start.
			return
		case <-timer.C:
			r.enqueue(task)
		}
	}()
}

// enqueue puts the task on the worker channel, logging when the queue is full.
func (r *TaskRunner) enqueue(task Task) {
	select {
	case r.taskChan <- task:
		r.logger.Debug("task enqueued",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"queue_len", len(r.taskChan),
			"queue_cap", cap(r.taskChan))
	default:
		// Queue is full, log error; the pending row remains for recovery
		r.logger.Error("failed to enqueue task, queue is full",
			"task_id", task.ID(),
			"task_type", task.Type())
	}
}

// Start initializes the worker pool and begins processing tasks
func (r *TaskRunner) Start() error {
	// Recover unfinished tasks from previous runs
	if err := r.Recover(); err != nil {
		return fmt.Errorf("failed to recover tasks: %w", err)
	}

	// Start worker goroutines
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	// Start goroutine to check for stuck tasks periodically
	r.wg.Add(1)
	go r.stuckTaskMonitor()

	return nil
}

// Stop gracefully shuts down the task runner
func (r *TaskRunner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
	close(r.taskChan)
}

// Recover loads unfinished tasks from the database and re-dispatches them.
// Scheduled tasks whose fire time is still in the future keep their
// remaining delay; overdue tasks run immediately. Execution is
// reconstructed through the registered resolver, giving at-least-once
// semantics for scheduled work across restarts.
func (r *TaskRunner) Recover() error {
	ctx := context.Background()

	// Get tasks that were in "pending" state
	pendingRecords, err := r.store.GetPendingTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending tasks: %w", err)
	}

	// Get tasks that were in "processing" state (potentially interrupted by a crash)
	processingRecords, err := r.store.GetProcessingTasks(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to get processing tasks: %w", err)
	}

	r.logger.Info("recovering unfinished tasks",
		"pending_count", len(pendingRecords),
		"processing_count", len(processingRecords))

	for _, record := range pendingRecords {
		r.recoverRecord(ctx, record, false)
	}

	for _, record := range processingRecords {
		r.recoverRecord(ctx, record, true)
	}

	return nil
}

// recoverRecord resolves a persisted record into an executable task and
// re-dispatches it, resetting interrupted tasks back to pending first.
func (r *TaskRunner) recoverRecord(ctx context.Context, record *TaskRecord, resetStatus bool) {
	if r.resolver == nil {
		r.logger.Error("no resolver registered, cannot recover task",
			"task_id", record.ID,
			"task_type", record.Type)
		return
	}

	task, err := r.resolver.ResolveTask(record)
	if err != nil {
		r.logger.Error("failed to resolve recovered task",
			"task_id", record.ID,
			"task_type", record.Type,
			"error", err)
		if updateErr := r.store.UpdateTaskStatus(ctx, record.ID, TaskStatusFailed, err.Error()); updateErr != nil {
			r.logger.Error("failed to mark unresolvable task as failed",
				"task_id", record.ID,
				"error", updateErr)
		}
		return
	}

	if resetStatus {
		if err := r.store.UpdateTaskStatus(ctx, record.ID, TaskStatusPending, "Reset after recovery"); err != nil {
			r.logger.Error("failed to reset processing task status",
				"task_id", record.ID,
				"task_type", record.Type,
				"error", err)
			return
		}
	}

	r.dispatch(task)
}

// worker processes tasks from the queue
func (r *TaskRunner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			// Context cancelled, stop worker
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case task, ok := <-r.taskChan:
			if !ok {
				// Channel closed, stop worker
				r.logger.Debug("task channel closed, stopping worker", "worker_id", id)
				return
			}

			// Process the task
			r.processTask(task, id)
		}
	}
}

// processTask handles execution of a single task
func (r *TaskRunner) processTask(task Task, workerID int) {
	ctx := context.Background()
	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	// Update task status to processing
	if err := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusProcessing, ""); err != nil {
		logger.Error("failed to update task status to processing", "error", err)
		return
	}

	logger.Info("processing task")

	// Execute task
	err := task.Execute(ctx)

	if err != nil {
		// Task failed
		logger.Error("task execution failed", "error", err)
		if updateErr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusFailed, err.Error()); updateErr != nil {
			logger.Error("failed to update task status to failed", "error", updateErr)
		}

		// Call error handler
		r.errHandler(task, err)
	} else {
		// Task completed successfully
		logger.Info("task completed successfully")
		if updateErr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusCompleted, ""); updateErr != nil {
			logger.Error("failed to update task status to completed", "error", updateErr)
		}
	}
}

// stuckTaskMonitor periodically checks for tasks that have been in "processing"
// state for too long and resets them
func (r *TaskRunner) stuckTaskMonitor() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.StuckTaskCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			// Context cancelled, stop monitor
			return

		case <-ticker.C:
			ctx := context.Background()

			// Find tasks that have been in "processing" state for too long
			stuckRecords, err := r.store.GetProcessingTasks(ctx, r.config.StuckTaskAge)
			if err != nil {
				r.logger.Error("failed to check for stuck tasks", "error", err)
				continue
			}

			if len(stuckRecords) > 0 {
				r.logger.Info("found stuck tasks", "count", len(stuckRecords))

				for _, record := range stuckRecords {
					r.recoverRecord(ctx, record, true)
				}
			}
		}
	}
}
