// Package model defines the domain data shared across the app: decoded yt-dlp
// metadata, output formats, queued downloads, progress snapshots and history
// records. Everything here is plain data plus pure derivations, so it can be
// exercised without a window or a yt-dlp binary.
package model
