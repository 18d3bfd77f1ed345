package cfg

import "time"

const (
	CacheBackendSQLite = "sqlite"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

type Cfg struct {
	// Content API configuration
	ContentAPIURL   string
	ContentTypesDir string
	RequestTimeout  int

	// Snapshot cache configuration
	CacheBackend string
	DBPath       string
	RedisAddr    string
	SnapshotTTL  int

	// Application configuration
	Port              string
	BaseUrl           string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Maintenance window
	MaintenanceEndsAt   string
	MaintenanceInterval int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}

func (c *Cfg) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c *Cfg) SnapshotTTLDuration() time.Duration {
	return time.Duration(c.SnapshotTTL) * time.Second
}

func (c *Cfg) SchedulerIntervalDuration() time.Duration {
	return time.Duration(c.SchedulerInterval) * time.Second
}

func (c *Cfg) MaintenanceIntervalDuration() time.Duration {
	return time.Duration(c.MaintenanceInterval) * time.Second
}
