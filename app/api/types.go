package api

import (
	"context"
	"time"

	"github.com/tradepulse/tradepulse/app/news"
	"github.com/tradepulse/tradepulse/app/notify"
	"github.com/tradepulse/tradepulse/app/pipeline"
	"github.com/tradepulse/tradepulse/app/tasks"
	"github.com/tradepulse/tradepulse/app/watchlist"
)

type PipelineInterface interface {
	Run(ctx context.Context) error
	Stats() pipeline.Stats
	LastScanAt() time.Time
	SendTest(ctx context.Context, symbol string) (notify.Report, error)
}

var _ PipelineInterface = (*pipeline.Pipeline)(nil)

type Handler struct {
	pipeline    PipelineInterface
	scheduler   tasks.TaskSchedulerInterface
	watchlist   *watchlist.Watchlist
	configCache *news.ConfigCache
}
