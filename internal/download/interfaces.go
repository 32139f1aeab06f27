package download

import (
	"context"

	"github.com/areavii/av-downloader/internal/config"
	"github.com/areavii/av-downloader/internal/model"
)

// Downloader runs a single queue item to completion.
type Downloader interface {
	Download(ctx context.Context, item *model.QueueItem, settings config.Snapshot, onProgress func(model.Progress)) (*Result, error)
}

// Resolver turns a flat playlist entry into full info with formats.
type Resolver interface {
	Resolve(ctx context.Context, info *model.VideoInfo) (*model.VideoInfo, error)
}

// HistoryRecorder stores completed downloads.
type HistoryRecorder interface {
	Add(info *model.VideoInfo) (model.HistoryEntry, error)
}
