package cfg

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Content API configuration
	ContentAPIURL   string `long:"content-api-url" env:"CONTENT_API_URL" description:"Base URL of the content API (e.g., https://api.example.com/v1)" required:"true"`
	ContentTypesDir string `long:"content-types-dir" env:"CONTENT_TYPES_DIR" default:"./content-types" description:"Directory containing per content type source files"`
	RequestTimeout  int    `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"30" description:"Content API request timeout in seconds"`

	// Snapshot cache configuration
	CacheBackend string `long:"cache-backend" env:"CACHE_BACKEND" default:"sqlite" choice:"sqlite" choice:"redis" choice:"none" description:"Where fetched collections are cached"`
	DBPath       string `long:"db-path" env:"DB_PATH" default:"./data/snapshots.db" description:"SQLite database file for the sqlite cache backend"`
	RedisAddr    string `long:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379" description:"Redis address for the redis cache backend"`
	SnapshotTTL  int    `long:"snapshot-ttl" env:"SNAPSHOT_TTL" default:"60" description:"Seconds a fetched collection is served without refetching (0 disables)"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl           string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://content.example.com)"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for snapshot refresh"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"30" description:"Scheduler interval in seconds"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Maintenance window
	MaintenanceEndsAt   string `long:"maintenance-ends-at" env:"MAINTENANCE_ENDS_AT" description:"RFC 3339 end of the current maintenance window (empty when none)"`
	MaintenanceInterval int    `long:"maintenance-interval" env:"MAINTENANCE_INTERVAL" default:"60" description:"Seconds between maintenance countdown updates"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Content Resolver/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load parses the command line and environment. It returns (nil, nil) when
// --help was requested.
func Load() (*Cfg, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		ContentAPIURL:       raw.ContentAPIURL,
		ContentTypesDir:     raw.ContentTypesDir,
		RequestTimeout:      raw.RequestTimeout,
		CacheBackend:        raw.CacheBackend,
		DBPath:              raw.DBPath,
		RedisAddr:           raw.RedisAddr,
		SnapshotTTL:         raw.SnapshotTTL,
		Port:                raw.Port,
		BaseUrl:             raw.BaseUrl,
		WorkerCount:         raw.WorkerCount,
		SchedulerInterval:   raw.SchedulerInterval,
		APIAccessKey:        raw.APIAccessKey,
		MaintenanceEndsAt:   raw.MaintenanceEndsAt,
		MaintenanceInterval: raw.MaintenanceInterval,
		UserAgent:           raw.UserAgent,
		Timezone:            raw.Timezone,
		Debug:               raw.Debug,
		Version:             GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// LogLevel is Debug with --debug and Info otherwise.
func (c *Cfg) LogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func validate(cfg *Cfg) error {
	positiveFields := map[string]int{
		"request timeout":      cfg.RequestTimeout,
		"worker count":         cfg.WorkerCount,
		"scheduler interval":   cfg.SchedulerInterval,
		"maintenance interval": cfg.MaintenanceInterval,
	}

	for fieldName, fieldValue := range positiveFields {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	if cfg.SnapshotTTL < 0 {
		return fmt.Errorf("snapshot ttl must be non-negative")
	}

	if cfg.MaintenanceEndsAt != "" {
		if _, err := time.Parse(time.RFC3339, cfg.MaintenanceEndsAt); err != nil {
			slog.Warn("Maintenance end is not RFC 3339, countdown will be vague", "value", cfg.MaintenanceEndsAt)
		}
	}

	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			slog.Debug("Timezone configured", "timezone", timezone)
		}
	}
	return nil
}
