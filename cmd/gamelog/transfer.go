package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gamelog/app"
)

var importYesFlag bool

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the whole collection to a JSON document",
	Long:  `Serializes every group and game to a JSON document. With no file argument the document is written to stdout.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		doc, err := svc.ExportAll()
		if err != nil {
			if errors.Is(err, app.ErrEmptyCollection) {
				return errors.New("nothing to export: the collection has no games")
			}
			return err
		}
		if len(args) == 0 {
			fmt.Println(string(doc))
			return nil
		}
		if err := os.WriteFile(args[0], doc, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Printf("Exported to %s\n", args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the whole collection from a JSON document",
	Long:  `Validates the document's shape, asks for confirmation with the group and game counts, then replaces the current collection. Out-of-domain field values are preserved and listed as diagnostics.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

		svc, err := openService()
		if err != nil {
			return err
		}

		groups, games, err := svc.PreviewImport(data)
		if err != nil {
			if errors.Is(err, app.ErrBadDocument) {
				return errors.New("malformed document: expected an array of groups with id, name and games")
			}
			return err
		}

		if !importYesFlag {
			fmt.Printf("This replaces the entire collection with %d groups and %d games. Continue? [y/N] ", groups, games)
			if !confirm(os.Stdin) {
				fmt.Println("Import cancelled")
				return nil
			}
		}

		result, err := svc.ImportAll(data)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d groups and %d games\n", result.Groups, result.Games)
		for _, d := range result.Diagnostics {
			fmt.Fprintf(os.Stderr, "warning: %s\n", d)
		}
		return nil
	},
}

func confirm(in *os.File) bool {
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func initTransferCmd() {
	importCmd.Flags().BoolVar(&importYesFlag, "yes", false, "Skip the confirmation prompt")
}
