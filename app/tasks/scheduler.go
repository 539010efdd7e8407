package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"edgarcomb/app/cfg"
	"edgarcomb/app/client"
	"edgarcomb/app/database"
	"edgarcomb/app/watch"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	watchRepo         database.WatchRepository
	filingRepo        database.FilingRepository
	configCache       *watch.ConfigCache
	httpClient        *http.Client
	client            *client.Client
	filterer          *watch.Filterer
	documentExtractor *watch.DocumentExtractor
	userAgent         string
	interval          time.Duration
	workerCount       int
	ctx               context.Context
	cancel            context.CancelFunc
	wg                sync.WaitGroup
	taskQueue         chan TaskInterface
}

func NewScheduler(configCache *watch.ConfigCache, watchRepo database.WatchRepository,
	filingRepo database.FilingRepository, httpClient *http.Client, c *client.Client,
	filterer *watch.Filterer, documentExtractor *watch.DocumentExtractor) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		watchRepo:         watchRepo,
		filingRepo:        filingRepo,
		configCache:       configCache,
		httpClient:        httpClient,
		client:            c,
		filterer:          filterer,
		documentExtractor: documentExtractor,
		userAgent:         cfg.UserAgent,
		interval:          time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount:       cfg.WorkerCount,
		ctx:               ctx,
		cancel:            cancel,
		taskQueue:         make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueStartupTasks() {
	watchConfigs := s.configCache.GetConfigs()
	if len(watchConfigs) == 0 {
		slog.Debug("No watch configurations found")
		return
	}

	slog.Debug("Processing watch configurations", "count", len(watchConfigs))

	for _, watchConfig := range watchConfigs {
		syncTask := NewSyncWatchConfigTask(watchConfig.Name, watchConfig, s.watchRepo)
		if err := s.EnqueueTask(syncTask); err != nil {
			slog.Warn("Failed to enqueue SyncWatchConfigTask", "watch", watchConfig.Name, "error", err)
			continue
		}

		if !watchConfig.Settings.Enabled {
			slog.Debug("Watch disabled, skipping ProcessWatchTask", "watch", watchConfig.Name)
			continue
		}

		processTask := NewProcessWatchTask(watchConfig.Name, watchConfig, s.client, s.filterer, s.watchRepo, s.filingRepo)
		if err := s.EnqueueTask(processTask); err != nil {
			slog.Warn("Failed to enqueue ProcessWatchTask", "watch", watchConfig.Name, "error", err)
		}
	}
}

func (s *Scheduler) enqueueTasks() {
	watchConfigs := s.configCache.GetEnabledConfigs()
	if len(watchConfigs) == 0 {
		slog.Debug("No enabled watch configurations found")
		return
	}

	slog.Debug("Processing enabled watch configurations for task scheduling", "count", len(watchConfigs))

	for _, watchConfig := range watchConfigs {
		w, err := s.watchRepo.GetWatch(watchConfig.Name)
		if err != nil {
			slog.Warn("Failed to get watch from database, skipping", "watch", watchConfig.Name, "error", err)
			continue
		}
		if w == nil {
			slog.Warn("Watch not found in database, skipping", "watch", watchConfig.Name)
			continue
		}

		now := time.Now().UTC()
		if w.NextFetchAt != nil && w.NextFetchAt.After(now) {
			slog.Debug("Watch not due for refresh yet", "watch", watchConfig.Name, "next_fetch_at", w.NextFetchAt)
		} else {
			processTask := NewProcessWatchTask(watchConfig.Name, watchConfig, s.client, s.filterer, s.watchRepo, s.filingRepo)
			if err := s.EnqueueTask(processTask); err != nil {
				slog.Warn("Failed to enqueue ProcessWatchTask", "watch", watchConfig.Name, "error", err)
			}
		}

		if watchConfig.Settings.ExtractDocuments {
			extractTask := NewExtractDocumentsTask(watchConfig.Name, watchConfig, s.httpClient, s.documentExtractor, s.filingRepo, s.userAgent)
			if err := s.EnqueueTask(extractTask); err != nil {
				slog.Warn("Failed to enqueue ExtractDocumentsTask", "watch", watchConfig.Name, "error", err)
			}
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "watch", task.GetWatchName(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
