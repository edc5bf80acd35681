package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/store"
)

var groupCmd = &cobra.Command{
	Use:     "group",
	Aliases: []string{"g"},
	Short:   "Manage groups",
	Long:    `Create and list groups. Groups partition tasks; every task belongs to exactly one.`,
}

var groupAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a new group",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGroupAdd,
}

var groupListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all groups",
	RunE:    runGroupList,
}

var groupUseCmd = &cobra.Command{
	Use:   "use [group]",
	Short: "Set the group new tasks go to by default",
	Long: `Set the default group used by 'task add' and 'task list'.

Examples:
  taskdeck group use home
  taskdeck group use general`,
	Args: cobra.ExactArgs(1),
	RunE: runGroupUse,
}

func init() {
	groupCmd.AddCommand(groupAddCmd)
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupUseCmd)
}

func runGroupAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("group name must not be empty")
	}

	st, err := newStore()
	if err != nil {
		return err
	}

	g, err := st.AddGroup(context.Background(), name)
	if err != nil {
		return opFailed(st, store.OpAddGroup)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created group: %s (id: %s)\n", g.Name, g.ID)
	return nil
}

func runGroupList(cmd *cobra.Command, args []string) error {
	st, err := newStore()
	if err != nil {
		return err
	}
	snap := st.Snapshot()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-36s  %-20s  %s\n", "ID", "Name", "Open/Total")
	fmt.Fprintln(out, strings.Repeat("─", 72))

	for _, g := range snap.Groups {
		tasks := snap.TasksInGroup(g.ID)
		open := 0
		for _, t := range tasks {
			if t.Status != model.StatusDone {
				open++
			}
		}
		marker := "  "
		if g.ID == cfg.DefaultGroup {
			marker = "❯ "
		}
		fmt.Fprintf(out, "%s%-36s  %-20s  %d/%d\n", marker, g.ID, truncate(g.Name, 20), open, len(tasks))
	}

	fmt.Fprintln(out, strings.Repeat("─", 72))
	fmt.Fprintf(out, "  %d groups\n\n", len(snap.Groups))
	return nil
}

func runGroupUse(cmd *cobra.Command, args []string) error {
	st, err := newStore()
	if err != nil {
		return err
	}

	g, err := resolveGroup(st.Groups(), args[0])
	if err != nil {
		return err
	}

	cfg.DefaultGroup = g.ID
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "📁 Switched to: %s\n", g.Name)
	return nil
}
