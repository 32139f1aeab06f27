package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// newHistoryCmd builds `history list` and `history clear`
func newHistoryCmd(opts *Options) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect or clear the download history",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print completed downloads, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(opts)
			if err != nil {
				return err
			}
			entries, err := store.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No downloads recorded yet.")
				return nil
			}

			bold := color.New(color.Bold)
			cyan := color.New(color.FgCyan)
			green := color.New(color.FgGreen)

			bold.Fprintf(out, "%-19s  %s\n", "Date", "Title")
			for _, entry := range entries {
				cyan.Fprintf(out, "%-19s", entry.Date)
				fmt.Fprintf(out, "  %s\n", entry.Title)
				green.Fprintf(out, "%21s%s\n", "", entry.URL)
			}
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the history file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(opts)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	historyCmd.AddCommand(listCmd, clearCmd)
	return historyCmd
}
