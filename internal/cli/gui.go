package cli

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"

	"github.com/areavii/av-downloader/internal/config"
	"github.com/areavii/av-downloader/internal/download"
	"github.com/areavii/av-downloader/internal/platform"
	"github.com/areavii/av-downloader/internal/ui"
)

// InstallTimeout bounds the first-run yt-dlp download
const InstallTimeout = 5 * time.Minute

// runGUI wires the services into the window and runs the event loop
func runGUI(opts *Options, version string) error {
	log.Printf("%s v%s starting...", AppName, version)

	store, err := historyStore(opts)
	if err != nil {
		return err
	}

	myApp := newApp()
	myApp.Settings().SetTheme(ui.NewAppTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	if dir := settings.GetOutputPath(); dir != "" {
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			log.Printf("Failed to ensure downloads dir: %v", err)
		}
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), InstallTimeout)
		defer cancel()
		if err := platform.EnsureYTDLP(ctx); err != nil {
			log.Printf("yt-dlp is not available: %v", err)
		}
	}()

	infoSvc := platform.NewInfoService()
	runner := download.NewRunner(download.NewService(), infoSvc, store)

	ui.NewRootUI(myWindow, settings, ui.Services{
		Info:       infoSvc,
		Thumbnails: platform.NewThumbnailService(),
		Runner:     runner,
		History:    store,
	})

	myWindow.ShowAndRun()
	return nil
}
