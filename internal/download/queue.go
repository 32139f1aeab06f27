package download

import (
	"sync"

	"github.com/google/uuid"

	"github.com/areavii/av-downloader/internal/model"
)

// Queue is an order-preserving list of pending downloads
type Queue struct {
	mu    sync.Mutex
	items []*model.QueueItem
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// NewItemID returns a time-ordered unique ID for a queue item
func NewItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewItems stamps each info with the current quality and format
func NewItems(infos []*model.VideoInfo, quality string, format model.OutputFormat) []*model.QueueItem {
	items := make([]*model.QueueItem, 0, len(infos))
	for _, info := range infos {
		if info == nil {
			continue
		}
		items = append(items, model.NewQueueItem(NewItemID(), info, quality, format))
	}
	return items
}

// Add appends items to the back of the queue
func (q *Queue) Add(items ...*model.QueueItem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, item := range items {
		if item != nil {
			q.items = append(q.items, item)
		}
	}
}

// Pop removes and returns the front item
func (q *Queue) Pop() (*model.QueueItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	item := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return item, true
}

// Remove deletes the item with id, reporting whether it was queued
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, item := range q.items {
		if item.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every pending item
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}

// Items returns a snapshot of the pending items in order
func (q *Queue) Items() []*model.QueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*model.QueueItem, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of pending items
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
