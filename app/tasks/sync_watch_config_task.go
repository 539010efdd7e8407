package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"edgarcomb/app/database"
	"edgarcomb/app/watch"
)

type SyncWatchConfigTask struct {
	Task
	WatchConfig *watch.Config
	watchRepo   database.WatchRepository
}

func NewSyncWatchConfigTask(watchName string, watchConfig *watch.Config, watchRepo database.WatchRepository) *SyncWatchConfigTask {
	return &SyncWatchConfigTask{
		Task:        NewTask(TaskTypeSyncWatchConfig, watchName),
		WatchConfig: watchConfig,
		watchRepo:   watchRepo,
	}
}

func (t *SyncWatchConfigTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := t.watchRepo.UpsertWatch(t.WatchConfig.Name)
	if err != nil {
		slog.Error("Task failed", "type", "SyncWatchConfig", "watch", t.WatchName, "error", err)
		return fmt.Errorf("failed to sync watch config to database: %w", err)
	}

	slog.Info("Task completed",
		"type", "SyncWatchConfig",
		"watch", t.WatchName,
		"duration", t.GetDuration())

	return nil
}
