package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gamelog/app"
	"gamelog/config"
	"gamelog/store"
	"gamelog/tui"
)

const version = "0.1.0"

var (
	cfgFile     string
	dataDirFlag string
)

var rootCmd = &cobra.Command{
	Use:     "gamelog",
	Short:   "Track your game backlog, ratings and completions from the terminal.",
	Version: fmt.Sprintf("v%s", version),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		program := tea.NewProgram(tui.NewModel(svc, ""), tea.WithAltScreen())
		_, err = program.Run()
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gamelog",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

// openService resolves configuration, opens the document store and loads the
// collection.
func openService() (*app.Service, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dataDir := cfg.DataDir
	if dataDirFlag != "" {
		dataDir = dataDirFlag
	}

	svc := app.NewService(store.NewFileStore(dataDir), cfg.PageSize)
	if err := svc.Bootstrap(); err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	return svc, nil
}

func initCmd() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the config file (defaults to the platform config directory)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Directory holding the JSON documents (overrides the config file)")

	initGroupsCmd()
	initGamesCmd()
	initTransferCmd()
	initCleanCmd()
	rootCmd.AddCommand(versionCmd, groupsCmd, gamesCmd, exportCmd, importCmd, cleanCmd)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
