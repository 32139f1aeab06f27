package platform

// Package platform contains OS integration and external tooling glue:
// metadata extraction through yt-dlp, native YouTube playlist enumeration,
// thumbnail fetching, and filesystem helpers.
