package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	WatchesDir        string
	Port              string
	BaseUrl           string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Upstream service configuration
	EdgarBaseUrl    string
	EdgarArchiveUrl string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
