package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gamelog/app"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage the named groups of the collection",
}

var listGroupsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		activeID := svc.ActiveGroupID()
		for _, g := range svc.Groups() {
			marker := " "
			if g.ID == activeID {
				marker = "*"
			}
			fmt.Printf("%s %s  %s (%d games)\n", marker, g.ID, g.Name, len(g.Games))
		}
		return nil
	},
}

var addGroupCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new group and make it active",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		group, err := svc.AddGroup()
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		if name != "" {
			if err := svc.RenameGroup(group.ID, name); err != nil {
				return err
			}
			group.Name = name
		}
		fmt.Printf("Created group %q (%s)\n", group.Name, group.ID)
		return nil
	},
}

var renameGroupCmd = &cobra.Command{
	Use:   "rename <group-id> <new-name>",
	Short: "Rename a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		if err := svc.RenameGroup(args[0], args[1]); err != nil {
			if errors.Is(err, app.ErrGroupNotFound) {
				return fmt.Errorf("group not found: %s", args[0])
			}
			return err
		}
		fmt.Printf("Group renamed to %q\n", args[1])
		return nil
	},
}

var rmGroupCmd = &cobra.Command{
	Use:   "rm <group-id>",
	Short: "Delete a group and all its games",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		if err := svc.DeleteGroup(args[0]); err != nil {
			if errors.Is(err, app.ErrLastGroup) {
				return errors.New("the last group cannot be deleted")
			}
			if errors.Is(err, app.ErrGroupNotFound) {
				return fmt.Errorf("group not found: %s", args[0])
			}
			return err
		}
		fmt.Println("Group deleted")
		return nil
	},
}

var activateGroupCmd = &cobra.Command{
	Use:   "activate <group-id>",
	Short: "Make a group the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		if err := svc.ActivateGroup(args[0]); err != nil {
			return err
		}
		if svc.ActiveGroupID() != args[0] {
			return fmt.Errorf("group not found: %s", args[0])
		}
		fmt.Printf("Active group: %s\n", svc.ActiveGroup().Name)
		return nil
	},
}

func initGroupsCmd() {
	addGroupCmd.Flags().String("name", "", "Name for the new group (defaults to a generated one)")
	groupsCmd.AddCommand(listGroupsCmd, addGroupCmd, renameGroupCmd, rmGroupCmd, activateGroupCmd)
}
