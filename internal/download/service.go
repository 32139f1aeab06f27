package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/areavii/av-downloader/internal/config"
	"github.com/areavii/av-downloader/internal/model"
)

// Download tuning
const (
	DefaultMaxRetries       = 1
	DefaultRetryDelay       = 2 * time.Second
	DefaultProgressInterval = 500 * time.Millisecond
)

// Result describes a finished download
type Result struct {
	OutputPath string
}

type runFunc func(ctx context.Context, dl *ytdlp.Command, url string) (*ytdlp.Result, error)

// Service downloads single items through yt-dlp
type Service struct {
	maxRetries       int
	retryDelay       time.Duration
	progressInterval time.Duration
	run              runFunc
}

// NewService creates a new download service
func NewService() *Service {
	return &Service{
		maxRetries:       DefaultMaxRetries,
		retryDelay:       DefaultRetryDelay,
		progressInterval: DefaultProgressInterval,
		run: func(ctx context.Context, dl *ytdlp.Command, url string) (*ytdlp.Result, error) {
			return dl.Run(ctx, url)
		},
	}
}

// Download fetches item with the options derived from settings. Cancelling
// ctx kills the yt-dlp process.
func (s *Service) Download(ctx context.Context, item *model.QueueItem, settings config.Snapshot, onProgress func(model.Progress)) (*Result, error) {
	url := item.Info.SourceURL()
	if url == "" {
		return nil, fmt.Errorf("download %q: no URL", item.GetDisplayTitle())
	}

	opts := OptionsFor(item, settings)
	dl := opts.Command()

	dl.ProgressFunc(s.progressInterval, func(update ytdlp.ProgressUpdate) {
		if onProgress != nil {
			onProgress(progressFromUpdate(&update))
		}
	})

	log.Printf("Downloading %s as %s (%s)", url, item.Format.Label(), opts.Format)

	res, err := s.downloadWithRetry(ctx, dl, url, item.ID)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if res != nil {
		info, err := res.GetExtractedInfo()
		if err == nil && len(info) > 0 && info[0].Filename != nil {
			result.OutputPath = *info[0].Filename
		}
	}
	return result, nil
}

// downloadWithRetry attempts download with retry logic
func (s *Service) downloadWithRetry(ctx context.Context, dl *ytdlp.Command, url, itemID string) (*ytdlp.Result, error) {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			log.Printf("Retrying download for item %s, attempt %d", itemID, attempt+1)
		}

		res, err := s.run(ctx, dl, url)
		if err == nil {
			return res, nil
		}

		lastErr = err
		log.Printf("Download attempt %d failed for item %s: %v", attempt+1, itemID, err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("download failed: %w", lastErr)
}

// progressFromUpdate converts a go-ytdlp progress update
func progressFromUpdate(update *ytdlp.ProgressUpdate) model.Progress {
	p := model.Progress{
		Percent: -1,
		ETASec:  -1,
		Stage:   model.StageDownloading,
	}

	if update.Status == ytdlp.ProgressStatusPostProcessing || update.Status == ytdlp.ProgressStatusFinished {
		p.Percent = 100
		p.Stage = model.StagePostProcessing
		return p
	}

	if update.TotalBytes > 0 {
		percent := float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
		p.Percent = min(int(percent), 100)
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			p.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}

	if update.TotalBytes > 0 {
		if eta := update.ETA(); eta > 0 {
			p.ETASec = int(eta.Seconds())
		}
	}

	return p
}

// IsCancelled reports whether err came from a cancelled download
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}
