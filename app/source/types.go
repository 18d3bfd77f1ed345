package source

import (
	"context"
	"time"

	"github.com/hwg121/eProject-sub001/app/content"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatFeed Format = "feed"
)

// Configuration types

type Config struct {
	Type           content.Type   // Derived from filename (without .yml extension)
	Endpoint       string         `yaml:"endpoint"`
	Format         Format         `yaml:"format"`
	FallbackPolicy string         `yaml:"fallback_policy"`
	SlugField      string         `yaml:"slug_field"`
	TitleField     string         `yaml:"title_field"`
	Settings       ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`          // refresh snapshots in the background
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	Timeout         int  `yaml:"timeout"`          // seconds
}

func (c *Config) Declaration() content.Declaration {
	return content.Declaration{
		Policy:     content.FallbackPolicy(c.FallbackPolicy),
		SlugField:  c.SlugField,
		TitleField: c.TitleField,
	}
}

func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Settings.Timeout) * time.Second
}

func (c *Config) RefreshDuration() time.Duration {
	return time.Duration(c.Settings.RefreshInterval) * time.Second
}

type ConfigProvider interface {
	GetConfig(t content.Type) (*Config, error)
}

// Snapshot is a fetched collection envelope, stored as JSON.
type Snapshot struct {
	Type      content.Type
	Payload   []byte
	FetchedAt time.Time
}

// SnapshotStore returns (nil, nil) from GetSnapshot when nothing is stored.
type SnapshotStore interface {
	GetSnapshot(ctx context.Context, t content.Type) (*Snapshot, error)
	PutSnapshot(ctx context.Context, snapshot Snapshot) error
}

// NopSnapshotStore stores nothing; every lookup misses.
type NopSnapshotStore struct{}

func (NopSnapshotStore) GetSnapshot(ctx context.Context, t content.Type) (*Snapshot, error) {
	return nil, nil
}

func (NopSnapshotStore) PutSnapshot(ctx context.Context, snapshot Snapshot) error {
	return nil
}
