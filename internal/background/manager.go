package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tabashir-engine/internal/config"
	"tabashir-engine/internal/logging"
	"tabashir-engine/internal/store"
	"tabashir-engine/pkg/models"
	"tabashir-engine/pkg/utils"
)

const (
	DefaultMaxWorkers   = 4
	DefaultMaxQueueSize = 100

	MaxWorkers   = 1000
	MaxQueueSize = 10000
)

// JobReader fetches the current row of a posting. Tasks re-read the row
// before translating because the queue may lag behind edits.
type JobReader interface {
	GetByID(ctx context.Context, id int64) (models.JobPosting, error)
}

// Translator performs the translate-and-persist workflow for one posting.
type Translator interface {
	TranslateJob(ctx context.Context, job models.JobPosting) (models.JobPosting, error)
}

// DeadLetterSink records postings whose background translation failed.
type DeadLetterSink interface {
	PushDeadLetter(ctx context.Context, jobID int64, reason string) error
}

// TaskManager defines the interface for managing background translation work.
type TaskManager interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error

	// SubmitTranslationTask queues a posting for background translation.
	// Returns the process ID of the accepted task.
	SubmitTranslationTask(ctx context.Context, jobID int64) (string, error)

	GetTaskResult(ctx context.Context, processID string) (*TaskResult, error)
	ListTasks(ctx context.Context) ([]*TaskResult, error)
	IsHealthy() bool
}

// TaskManagerImpl implements the TaskManager interface.
type TaskManagerImpl struct {
	config     *config.Config
	store      TaskStore
	jobs       JobReader
	translator Translator
	deadLetter DeadLetterSink
	logger     logging.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.RWMutex
	running  bool
	taskChan chan *taskExecution

	maxWorkers   int
	maxQueueSize int
}

type taskExecution struct {
	processID string
	jobID     int64
}

// NewTaskManager creates a task manager. deadLetter may be nil when Redis
// is unavailable; failures are then only logged.
func NewTaskManager(cfg *config.Config, jobs JobReader, translator Translator, deadLetter DeadLetterSink) *TaskManagerImpl {
	logger := logging.GetGlobalLogger()

	maxWorkers := cfg.BackgroundTasks.MaxWorkers
	if maxWorkers <= 0 || maxWorkers > MaxWorkers {
		maxWorkers = DefaultMaxWorkers
	}

	maxQueueSize := cfg.BackgroundTasks.QueueSize
	if maxQueueSize <= 0 || maxQueueSize > MaxQueueSize {
		maxQueueSize = DefaultMaxQueueSize
	}

	return &TaskManagerImpl{
		config:       cfg,
		store:        NewInMemoryTaskStore(),
		jobs:         jobs,
		translator:   translator,
		deadLetter:   deadLetter,
		logger:       logger,
		taskChan:     make(chan *taskExecution, maxQueueSize),
		maxWorkers:   maxWorkers,
		maxQueueSize: maxQueueSize,
	}
}

// Start launches the worker and cleanup goroutines.
func (tm *TaskManagerImpl) Start(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.running {
		return fmt.Errorf("task manager already running")
	}

	tm.ctx, tm.cancel = context.WithCancel(ctx)
	tm.running = true

	for i := 0; i < tm.maxWorkers; i++ {
		tm.wg.Add(1)
		go tm.worker(i)
	}

	tm.wg.Add(1)
	go tm.cleanupRoutine()

	tm.logger.WithFields(map[string]interface{}{
		"max_workers":    tm.maxWorkers,
		"max_queue_size": tm.maxQueueSize,
	}).Info("Task manager started")
	return nil
}

// Stop stops the task manager gracefully, waiting for in-flight tasks
// until ctx expires.
func (tm *TaskManagerImpl) Stop(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if !tm.running {
		return nil
	}

	tm.logger.Info("Stopping task manager")

	tm.cancel()
	close(tm.taskChan)

	done := make(chan struct{})
	go func() {
		tm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		tm.logger.Info("Task manager stopped gracefully")
	case <-ctx.Done():
		tm.logger.Warn("Task manager shutdown timed out")
	}

	tm.running = false
	return nil
}

// SubmitTranslationTask queues a posting for background translation. The
// task runs on the manager's own context so the HTTP request ending does
// not cancel it. The read lock keeps the send ordered before Stop closes
// the task channel.
func (tm *TaskManagerImpl) SubmitTranslationTask(ctx context.Context, jobID int64) (string, error) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	if !tm.running || tm.ctx.Err() != nil {
		return "", fmt.Errorf("task manager is not healthy")
	}

	processID := fmt.Sprintf("translate-%d-%d", jobID, time.Now().UnixNano())
	result := &TaskResult{
		ProcessID: processID,
		Type:      TaskTypeTranslation,
		Status:    TaskStatusAccepted,
		CreatedAt: time.Now(),
		Metadata: map[string]interface{}{
			"job_id": jobID,
		},
	}

	if err := tm.store.Store(ctx, result); err != nil {
		return "", fmt.Errorf("failed to store task result: %w", err)
	}

	select {
	case tm.taskChan <- &taskExecution{processID: processID, jobID: jobID}:
		return processID, nil
	case <-ctx.Done():
		return "", ctx.Err()
	default:
		return "", fmt.Errorf("task queue is full")
	}
}

// GetTaskResult retrieves the result of a task by process ID.
func (tm *TaskManagerImpl) GetTaskResult(ctx context.Context, processID string) (*TaskResult, error) {
	return tm.store.Get(ctx, processID)
}

// ListTasks lists all tracked tasks for monitoring.
func (tm *TaskManagerImpl) ListTasks(ctx context.Context) ([]*TaskResult, error) {
	return tm.store.List(ctx)
}

// IsHealthy checks if the task manager is running.
func (tm *TaskManagerImpl) IsHealthy() bool {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.running && tm.ctx.Err() == nil
}

func (tm *TaskManagerImpl) worker(workerID int) {
	defer tm.wg.Done()

	for {
		select {
		case <-tm.ctx.Done():
			return
		case task, ok := <-tm.taskChan:
			if !ok {
				return
			}
			tm.processTask(workerID, task)
		}
	}
}

func (tm *TaskManagerImpl) processTask(workerID int, task *taskExecution) {
	startTime := time.Now()

	tm.logger.WithFields(map[string]interface{}{
		"worker_id":  workerID,
		"process_id": task.processID,
		"job_id":     task.jobID,
	}).Info("Processing translation task")

	tm.updateStatus(task.processID, TaskStatusProcessing)

	taskCtx, cancel := context.WithTimeout(tm.ctx, tm.config.BackgroundTasks.TaskTimeout)
	err := tm.executeTranslation(taskCtx, task.jobID)
	cancel()

	processingTime := time.Since(startTime)

	result, getErr := tm.store.Get(context.Background(), task.processID)
	if getErr != nil {
		result = &TaskResult{
			ProcessID: task.processID,
			Type:      TaskTypeTranslation,
			CreatedAt: startTime,
			Metadata:  map[string]interface{}{"job_id": task.jobID},
		}
	}

	completedAt := time.Now()
	result.ProcessingTime = &processingTime
	result.CompletedAt = &completedAt

	if err != nil {
		result.Status = TaskStatusFailure
		result.Error = err.Error()

		tm.logger.WithFields(map[string]interface{}{
			"worker_id":       workerID,
			"process_id":      task.processID,
			"job_id":          task.jobID,
			"processing_time": utils.FormatDuration(processingTime),
			"error":           err.Error(),
		}).Error("Translation task failed")

		if tm.deadLetter != nil {
			if dlErr := tm.deadLetter.PushDeadLetter(context.Background(), task.jobID, err.Error()); dlErr != nil {
				tm.logger.WithField("job_id", task.jobID).Warn("Failed to record dead-letter entry")
			}
		}
	} else {
		result.Status = TaskStatusSuccess

		tm.logger.WithFields(map[string]interface{}{
			"worker_id":       workerID,
			"process_id":      task.processID,
			"job_id":          task.jobID,
			"processing_time": utils.FormatDuration(processingTime),
		}).Info("Translation task completed")
	}

	if err := tm.store.Update(context.Background(), result); err != nil {
		tm.logger.WithField("process_id", task.processID).Error("Failed to store task result")
	}
}

// executeTranslation re-reads the posting and runs the translation
// workflow. A posting deleted or already translated since submission is a
// no-op success.
func (tm *TaskManagerImpl) executeTranslation(ctx context.Context, jobID int64) error {
	job, err := tm.jobs.GetByID(ctx, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load job %d: %w", jobID, err)
	}

	if job.TranslationStatus.IsCompleted() {
		return nil
	}

	if _, err := tm.translator.TranslateJob(ctx, job); err != nil {
		return fmt.Errorf("translation failed for job %d: %w", jobID, err)
	}
	return nil
}

func (tm *TaskManagerImpl) updateStatus(processID string, status TaskStatus) {
	result, err := tm.store.Get(context.Background(), processID)
	if err != nil {
		return
	}
	result.Status = status
	if err := tm.store.Update(context.Background(), result); err != nil {
		tm.logger.WithField("process_id", processID).Error("Failed to update task status")
	}
}

func (tm *TaskManagerImpl) cleanupRoutine() {
	defer tm.wg.Done()

	interval := tm.config.BackgroundTasks.CleanupInterval
	if interval <= 0 {
		interval = time.Hour
	}
	maxAge := tm.config.BackgroundTasks.MaxTaskAge
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-tm.ctx.Done():
			return
		case <-ticker.C:
			if err := tm.store.Cleanup(context.Background(), maxAge); err != nil {
				tm.logger.Error("Failed to clean up old task results")
			}
		}
	}
}
