package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/areavii/av-downloader/internal/config"
	"github.com/areavii/av-downloader/internal/model"
)

// Runner errors
var (
	ErrBusy         = errors.New("a download is already running")
	ErrQueueEmpty   = errors.New("download queue is empty")
	ErrNoOutputPath = errors.New("no download folder configured")
)

// Callbacks receive runner events from the drain goroutine
type Callbacks struct {
	OnItemStarted  func(item *model.QueueItem)
	OnProgress     func(item *model.QueueItem, progress model.Progress)
	OnItemFinished func(item *model.QueueItem, err error)
	OnAllFinished  func(stopped bool)
}

// Runner drains a queue one item at a time
type Runner struct {
	downloader Downloader
	resolver   Resolver
	history    HistoryRecorder

	mu        sync.Mutex
	running   bool
	stopping  bool
	cancel    context.CancelFunc
	queue     *Queue
	done      chan struct{}
	callbacks Callbacks
}

// NewRunner creates a runner. resolver and history may be nil.
func NewRunner(downloader Downloader, resolver Resolver, history HistoryRecorder) *Runner {
	return &Runner{
		downloader: downloader,
		resolver:   resolver,
		history:    history,
	}
}

// SetCallbacks replaces the event callbacks
func (r *Runner) SetCallbacks(cb Callbacks) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks = cb
}

// IsRunning reports whether a drain is in progress. A stopped drain counts
// until its worker has exited.
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Start drains queue in the background
func (r *Runner) Start(queue *Queue, settings config.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return ErrBusy
	}
	if queue == nil || queue.Len() == 0 {
		return ErrQueueEmpty
	}
	if strings.TrimSpace(settings.OutputPath) == "" {
		return ErrNoOutputPath
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	r.running = true
	r.cancel = cancel
	r.queue = queue
	r.done = done

	go r.drain(ctx, cancel, queue, settings, r.callbacks, done)
	return nil
}

// Stop clears the queue and cancels the running download. Start keeps
// returning ErrBusy until the drain goroutine has exited.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running || r.stopping {
		r.mu.Unlock()
		return
	}
	r.stopping = true
	queue, cancel := r.queue, r.cancel
	r.mu.Unlock()

	log.Printf("Stopping downloads")
	queue.Clear()
	cancel()
}

// Wait blocks until the current drain has finished
func (r *Runner) Wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (r *Runner) drain(ctx context.Context, cancel context.CancelFunc, queue *Queue, settings config.Snapshot, cb Callbacks, done chan struct{}) {
	stopped := false
	defer func() {
		cancel()
		r.mu.Lock()
		if r.done == done {
			r.running = false
			r.stopping = false
			r.cancel = nil
			r.queue = nil
		}
		r.mu.Unlock()

		if cb.OnAllFinished != nil {
			cb.OnAllFinished(stopped)
		}
		close(done)
	}()

	for {
		if ctx.Err() != nil {
			stopped = true
			return
		}
		item, ok := queue.Pop()
		if !ok {
			return
		}
		r.runItem(ctx, item, settings, cb)
	}
}

func (r *Runner) runItem(ctx context.Context, item *model.QueueItem, settings config.Snapshot, cb Callbacks) {
	item.Status = model.TaskStatusResolving
	item.StartedAt = time.Now()
	if cb.OnItemStarted != nil {
		cb.OnItemStarted(item)
	}

	err := r.download(ctx, item, settings, cb)

	item.FinishedAt = time.Now()
	switch {
	case err == nil:
		item.Status = model.TaskStatusCompleted
	case ctx.Err() != nil:
		item.Status = model.TaskStatusStopped
		err = context.Canceled
	default:
		item.Status = model.TaskStatusError
		item.LastError = err.Error()
		log.Printf("Download failed for %s: %v", item.GetDisplayTitle(), err)
	}

	if cb.OnItemFinished != nil {
		cb.OnItemFinished(item, err)
	}
}

func (r *Runner) download(ctx context.Context, item *model.QueueItem, settings config.Snapshot, cb Callbacks) error {
	if item.Info == nil {
		return fmt.Errorf("item %s has no info", item.ID)
	}
	if item.Info.NeedsResolve() && r.resolver != nil {
		full, err := r.resolver.Resolve(ctx, item.Info)
		if err != nil {
			return err
		}
		item.Info = full.Clone()
	}

	item.Status = model.TaskStatusDownloading
	res, err := r.downloader.Download(ctx, item, settings, func(p model.Progress) {
		if p.Stage == model.StagePostProcessing {
			item.Status = model.TaskStatusPostProcessing
		}
		if cb.OnProgress != nil {
			cb.OnProgress(item, p)
		}
	})
	if err != nil {
		return err
	}
	if res != nil {
		item.OutputPath = res.OutputPath
	}

	if cb.OnProgress != nil {
		cb.OnProgress(item, model.Progress{Percent: 100, ETASec: -1, Stage: model.StageFinished})
	}

	if r.history != nil {
		if _, err := r.history.Add(item.Info); err != nil {
			log.Printf("Failed to record history for %s: %v", item.GetDisplayTitle(), err)
		}
	}
	return nil
}
