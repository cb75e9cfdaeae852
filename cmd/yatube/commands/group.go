package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yatube/yatube/cmd/yatube/output"
	"github.com/yatube/yatube/pkg/yatube/groups"
)

var groupDescription string

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage groups",
	Long: `Groups have no editor on the site, they are managed from here.

Subcommands:
  create  - Create a group
  list    - List groups with their post counts
  delete  - Delete a group, its posts stay without a group`,
}

var groupCreateCmd = &cobra.Command{
	Use:   "create TITLE SLUG",
	Short: "Create a group",
	Long: `Create a group.

Examples:
  yatube group create "Cats" cats --description "Everything about cats"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(loadConfig(cmd))
		if err != nil {
			return err
		}
		group, err := groups.NewService(db).Create(args[0], args[1], groupDescription)
		if err != nil {
			return fmt.Errorf("cannot create group: %w", err)
		}
		output.Success("Created group %q at /group/%s/", group.Title, group.Slug)
		return nil
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(loadConfig(cmd))
		if err != nil {
			return err
		}
		stats, err := groups.NewService(db).List()
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			output.Warning("No groups yet")
			return nil
		}

		output.Section("Groups")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tTITLE\tPOSTS")
		for _, s := range stats {
			fmt.Fprintf(w, "%s\t%s\t%d\n", s.Slug, s.Title, s.PostCount)
		}
		return w.Flush()
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete SLUG",
	Short: "Delete a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(loadConfig(cmd))
		if err != nil {
			return err
		}
		if err := groups.NewService(db).Delete(args[0]); err != nil {
			return fmt.Errorf("cannot delete group %s: %w", args[0], err)
		}
		output.Success("Deleted group %s", args[0])
		return nil
	},
}

func init() {
	groupCreateCmd.Flags().StringVar(&groupDescription, "description", "", "Group description")
	groupCmd.AddCommand(groupCreateCmd, groupListCmd, groupDeleteCmd)
	rootCmd.AddCommand(groupCmd)
}
