package model

// TaskStatus represents the lifecycle of a queued download
type TaskStatus string

const (
	// TaskStatusPending means the item waits in the queue
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusResolving means full metadata is being fetched for a flat playlist entry
	TaskStatusResolving TaskStatus = "Resolving"

	// TaskStatusDownloading means the transfer is in progress
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusPostProcessing means yt-dlp is merging or converting the result
	TaskStatusPostProcessing TaskStatus = "PostProcessing"

	// TaskStatusStopped means the download was stopped by user
	TaskStatusStopped TaskStatus = "Stopped"

	// TaskStatusCompleted means the item finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the item failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the item is being worked on
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusResolving || ts == TaskStatusDownloading || ts == TaskStatusPostProcessing
}

// IsFinished returns true if the item is in a finished state (completed, stopped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}
