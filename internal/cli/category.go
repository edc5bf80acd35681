package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/store"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
	Long: `Create, rename, recolor and delete categories.

Colors: red, yellow, green, blue, indigo, purple, pink.`,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a new category",
	Long: `Create a new category.

Examples:
  taskdeck category add Work --color blue
  taskdeck category add "Side project" -c bg-pink-500`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCategoryAdd,
}

var categoryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all categories",
	RunE:    runCategoryList,
}

var categoryUpdateCmd = &cobra.Command{
	Use:   "update [category]",
	Short: "Rename or recolor a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryUpdate,
}

var categoryDeleteCmd = &cobra.Command{
	Use:     "delete [category]",
	Aliases: []string{"rm"},
	Short:   "Delete a category",
	Long:    `Delete a category. Its tasks are kept and become uncategorized.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runCategoryDelete,
}

var (
	categoryColor   string
	categoryNewName string
	categoryNewCol  string
	categoryYes     bool
)

func init() {
	categoryAddCmd.Flags().StringVarP(&categoryColor, "color", "c", model.ColorBlue.Name(), "Color name or palette value")

	categoryUpdateCmd.Flags().StringVarP(&categoryNewName, "name", "n", "", "New name")
	categoryUpdateCmd.Flags().StringVarP(&categoryNewCol, "color", "c", "", "New color")

	categoryDeleteCmd.Flags().BoolVarP(&categoryYes, "yes", "y", false, "Skip the confirmation prompt")

	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryUpdateCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("category name must not be empty")
	}
	color, err := model.ParseColor(categoryColor)
	if err != nil {
		return err
	}

	st, err := newStore()
	if err != nil {
		return err
	}

	c, err := st.AddCategory(context.Background(), name, color)
	if err != nil {
		return opFailed(st, store.OpAddCategory)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created category: %s (%s, id: %s)\n", c.Name, c.Color.Name(), shortID(c.ID))
	return nil
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	st, err := newStore()
	if err != nil {
		return err
	}
	snap := st.Snapshot()
	out := cmd.OutOrStdout()

	if len(snap.Categories) == 0 {
		fmt.Fprintln(out, "No categories found. Add one with: taskdeck category add <name> --color blue")
		return nil
	}

	stats := model.ComputeStats(snap.Tasks, snap.Categories)
	counts := make(map[string]int, len(stats.ByCategory))
	for _, cc := range stats.ByCategory {
		counts[cc.ID] = cc.Count
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-8s  %-24s  %-8s  %s\n", "ID", "Name", "Color", "Tasks")
	fmt.Fprintln(out, strings.Repeat("─", 56))
	for _, c := range snap.Categories {
		fmt.Fprintf(out, "  %-8s  %-24s  %-8s  %d\n", shortID(c.ID), truncate(c.Name, 24), c.Color.Name(), counts[c.ID])
	}
	fmt.Fprintln(out, strings.Repeat("─", 56))
	fmt.Fprintf(out, "  %d categories, %d uncategorized tasks\n\n", len(snap.Categories), stats.Uncategorized)
	return nil
}

func runCategoryUpdate(cmd *cobra.Command, args []string) error {
	st, err := newStore()
	if err != nil {
		return err
	}

	c, err := resolveCategory(st.Categories(), args[0])
	if err != nil {
		return err
	}

	var u model.CategoryUpdate
	if cmd.Flags().Changed("name") {
		u.Name = model.Ptr(categoryNewName)
	}
	if cmd.Flags().Changed("color") {
		color, err := model.ParseColor(categoryNewCol)
		if err != nil {
			return err
		}
		u.Color = &color
	}
	if u.Name == nil && u.Color == nil {
		return fmt.Errorf("nothing to update, pass --name or --color")
	}
	if err := u.Validate(); err != nil {
		return err
	}

	updated, err := st.UpdateCategory(context.Background(), c.ID, u)
	if err != nil {
		return opFailed(st, store.OpUpdateCategory)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated category: %s (%s)\n", updated.Name, updated.Color.Name())
	return nil
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	st, err := newStore()
	if err != nil {
		return err
	}
	snap := st.Snapshot()

	c, err := resolveCategory(snap.Categories, args[0])
	if err != nil {
		return err
	}

	affected := 0
	for _, t := range snap.Tasks {
		if t.CategoryID == c.ID {
			affected++
		}
	}

	if cfg.ConfirmDelete && !categoryYes {
		fmt.Fprintf(cmd.OutOrStdout(), "About to delete category \"%s\" (%d tasks become uncategorized)\n", c.Name, affected)
		if !confirm(cmd, "Are you sure?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if err := st.DeleteCategory(context.Background(), c.ID); err != nil {
		return opFailed(st, store.OpDeleteCategory)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted category: %s (%d tasks uncategorized)\n", c.Name, affected)
	return nil
}
