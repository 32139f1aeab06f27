// Package cli is the command-line entry point. Without a subcommand it opens the window.
package cli

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/areavii/av-downloader/internal/history"
)

// Application identity
const (
	AppID   = "com.areavii.av-downloader"
	AppName = "av-downloader"
)

// Options are the persistent flags shared by every command
type Options struct {
	HistoryFile string
	Verbose     bool
}

// newApp creates the Fyne app whose preferences hold the settings
var newApp = func() fyne.App {
	return app.NewWithID(AppID)
}

// launchGUI opens the main window and blocks until it is closed
var launchGUI = runGUI

// NewRootCommand builds the command tree
func NewRootCommand(version string) *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Desktop video downloader built on yt-dlp",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.Verbose {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return launchGUI(opts, version)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.HistoryFile, "history-file", "", "path to history.json (default: per-user config directory)")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log source locations")

	rootCmd.AddCommand(
		newHistoryCmd(opts),
		newConfigCmd(),
		newVersionCmd(version),
	)
	return rootCmd
}

// Execute runs the command line
func Execute(version string) error {
	if err := NewRootCommand(version).Execute(); err != nil {
		return fmt.Errorf("%s: %w", AppName, err)
	}
	return nil
}

// historyStore opens the history file named by the flags, or the default one
func historyStore(opts *Options) (*history.Store, error) {
	if opts.HistoryFile != "" {
		return history.NewStore(opts.HistoryFile), nil
	}
	path, err := history.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate history file: %w", err)
	}
	return history.NewStore(path), nil
}
