package platform

import (
	"context"
	"fmt"
	"log"

	"github.com/lrstanley/go-ytdlp"

	"github.com/areavii/av-downloader/internal/model"
)

// Extractor turns a URL into yt-dlp's info dictionary
type Extractor interface {
	// Extract runs a metadata-only extraction. flat lists playlist entries
	// without resolving each of them.
	Extract(ctx context.Context, url string, flat bool) (*model.VideoInfo, error)
}

// YTDLPExtractor runs the yt-dlp binary through go-ytdlp
type YTDLPExtractor struct{}

// NewYTDLPExtractor creates a new extractor
func NewYTDLPExtractor() *YTDLPExtractor {
	return &YTDLPExtractor{}
}

// Extract dumps the info dictionary for url as a single JSON document
func (e *YTDLPExtractor) Extract(ctx context.Context, url string, flat bool) (*model.VideoInfo, error) {
	dl := ytdlp.New().
		SkipDownload().
		DumpSingleJSON().
		Quiet().
		NoWarnings()

	if flat {
		dl = dl.FlatPlaylist()
	} else {
		dl = dl.NoPlaylist()
	}

	res, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp extraction failed: %w", err)
	}

	info, err := model.ParseVideoInfo([]byte(res.Stdout))
	if err != nil {
		return nil, err
	}
	return info, nil
}

// EnsureYTDLP downloads a yt-dlp binary into the cache when none is available
func EnsureYTDLP(ctx context.Context) error {
	resolved, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{})
	if err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	log.Printf("Using yt-dlp %s at %s", resolved.Version, resolved.Executable)
	return nil
}
