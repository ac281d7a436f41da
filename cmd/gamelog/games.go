package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"gamelog/app"
	"gamelog/model"
)

var (
	sortFlag string
	descFlag bool
	pageFlag int
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Manage the games of the active group",
}

var listGamesCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of the active group",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		if sortFlag != "" {
			field, err := parseSortField(sortFlag)
			if err != nil {
				return err
			}
			svc.SortBy(field)
			if descFlag {
				svc.SortBy(field)
			}
		}
		if pageFlag > 0 {
			svc.GoToPage(pageFlag - 1)
		}

		group := svc.ActiveGroup()
		view := svc.View()
		fmt.Printf("%s — page %d/%d\n", group.Name, view.Page+1, svc.TotalPages())
		for _, g := range svc.VisibleGames() {
			fmt.Printf("%s  %-40s %-12s %3s/10  %s%s\n",
				g.ID, truncate(g.Title, 40), g.Status, g.Note, g.Difficulty, domainMarks(g))
		}
		return nil
	},
}

var addGameCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a game to the active group",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		game, err := svc.AddGame()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			if err := svc.UpdateGame(game.ID, model.FieldTitle, args[0]); err != nil {
				return err
			}
			game.Title = args[0]
		}
		fmt.Printf("Added %q (%s)\n", game.Title, game.ID)
		return nil
	},
}

var setGameCmd = &cobra.Command{
	Use:   "set <game-id> <field> <value>",
	Short: "Set one field of a game (title, status, note, difficulty)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		id, field, value := args[0], args[1], args[2]
		if err := svc.UpdateGame(id, field, value); err != nil {
			if errors.Is(err, app.ErrInvalidField) {
				return fmt.Errorf("%s %q is invalid (valid: %s)", field, value, domainHint(field))
			}
			if errors.Is(err, app.ErrGameNotFound) {
				return fmt.Errorf("game not found in the active group: %s", id)
			}
			return err
		}
		fmt.Printf("%s set to %s\n", field, value)
		return nil
	},
}

var rmGameCmd = &cobra.Command{
	Use:   "rm <game-id>",
	Short: "Delete a game from the active group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		if err := svc.DeleteGame(args[0]); err != nil {
			if errors.Is(err, app.ErrGameNotFound) {
				return fmt.Errorf("game not found in the active group: %s", args[0])
			}
			return err
		}
		fmt.Println("Game deleted")
		return nil
	},
}

func parseSortField(s string) (app.SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return app.SortTitle, nil
	case "status":
		return app.SortStatus, nil
	case "note":
		return app.SortNote, nil
	case "difficulty":
		return app.SortDifficulty, nil
	default:
		return app.SortNone, fmt.Errorf("unknown sort field %q (valid: title, status, note, difficulty)", s)
	}
}

// domainMarks appends a warning for fields holding values outside their
// enumeration, typically imported from an older document.
func domainMarks(g model.Game) string {
	var marks []string
	if !g.Status.Valid() {
		marks = append(marks, "status!")
	}
	if !g.Note.Valid() {
		marks = append(marks, "note!")
	}
	if !g.Difficulty.Valid() {
		marks = append(marks, "difficulty!")
	}
	if len(marks) == 0 {
		return ""
	}
	return "  [" + strings.Join(marks, " ") + "]"
}

func domainHint(field string) string {
	switch field {
	case model.FieldStatus:
		return joinStatuses()
	case model.FieldNote:
		return "0..10"
	case model.FieldDifficulty:
		return "F..S+"
	default:
		return "title, status, note, difficulty"
	}
}

func joinStatuses() string {
	var out []string
	for _, s := range model.Statuses() {
		out = append(out, string(s))
	}
	return strings.Join(out, ", ")
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}

func initGamesCmd() {
	listGamesCmd.Flags().StringVar(&sortFlag, "sort", "", "Sort by field: title, status, note, difficulty")
	listGamesCmd.Flags().BoolVar(&descFlag, "desc", false, "Sort descending")
	listGamesCmd.Flags().IntVar(&pageFlag, "page", 0, "Page number (1-based)")
	gamesCmd.AddCommand(listGamesCmd, addGameCmd, setGameCmd, rmGameCmd)
}
