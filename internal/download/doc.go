package download

// Package download implements the download pipeline built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp): yt-dlp option selection per queue item,
// the single-item worker with progress propagation, the pending queue, and the
// runner that drains it one item at a time.
