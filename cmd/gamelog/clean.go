package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gamelog/cleaner"
	"gamelog/clip"
)

var (
	cleanApplyFlag bool
	cleanCopyFlag  bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <dir>",
	Short: "Normalize release-style file names under a directory",
	Long:  `Walks a directory tree and proposes cleaned file names: bracketed tags stripped, dot and underscore runs turned into spaces. Without --apply only the proposals are printed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		changes, err := cleaner.Scan(args[0])
		if err != nil {
			return fmt.Errorf("scan %s: %w", args[0], err)
		}
		if len(changes) == 0 {
			fmt.Println("Nothing to clean")
			return nil
		}

		listing := cleaner.FormatList(changes)
		fmt.Print(listing)

		if cleanCopyFlag {
			if err := clip.Copy(listing); err != nil {
				fmt.Fprintf(os.Stderr, "warning: clipboard copy failed: %v\n", err)
			} else {
				fmt.Printf("Copied %d proposals to the clipboard\n", len(changes))
			}
		}

		if !cleanApplyFlag {
			fmt.Printf("%d proposals (re-run with --apply to rename)\n", len(changes))
			return nil
		}

		skipped, err := cleaner.Apply(changes)
		if err != nil {
			return err
		}
		fmt.Printf("Renamed %d files\n", len(changes)-len(skipped))
		for _, c := range skipped {
			fmt.Fprintf(os.Stderr, "skipped %s: target %q already exists\n", c.Original, c.Cleaned)
		}
		return nil
	},
}

func initCleanCmd() {
	cleanCmd.Flags().BoolVar(&cleanApplyFlag, "apply", false, "Perform the renames instead of only listing them")
	cleanCmd.Flags().BoolVar(&cleanCopyFlag, "copy", false, "Copy the proposal list to the clipboard")
}
