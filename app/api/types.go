package api

import (
	"edgarcomb/app/client"
	"edgarcomb/app/database"
	"edgarcomb/app/tasks"
	"edgarcomb/app/watch"
)

type Handler struct {
	watchRepo   database.WatchRepository
	filingRepo  database.FilingRepository
	configCache *watch.ConfigCache
	client      *client.Client
	filterer    *watch.Filterer
	scheduler   tasks.TaskSchedulerInterface
}
