package api

import (
	"context"

	"github.com/hwg121/eProject-sub001/app/content"
	"github.com/hwg121/eProject-sub001/app/maintenance"
	"github.com/hwg121/eProject-sub001/app/source"
	"github.com/hwg121/eProject-sub001/app/tasks"
)

type ResolverInterface interface {
	Resolve(ctx context.Context, t content.Type, slug string) (content.Resolution, error)
}

var _ ResolverInterface = (*content.Service)(nil)

type ConfigCatalog interface {
	GetConfigs() map[content.Type]*source.Config
	GetConfigCount() int
}

var _ ConfigCatalog = (*source.Registry)(nil)

type BannerInterface interface {
	Active() bool
	EndsAt() string
	Text() string
}

var _ BannerInterface = (*maintenance.Banner)(nil)

type Handler struct {
	resolver  ResolverInterface
	configs   ConfigCatalog
	banner    BannerInterface
	scheduler tasks.TaskSchedulerInterface
}
