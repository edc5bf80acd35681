package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/store"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task to a group.

Examples:
  taskdeck task add "Buy groceries"
  taskdeck task add "Quarterly report" -p high -c work
  taskdeck task add "Plan trip" --group home --date 2026-07-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List the tasks of one group, or of every group with --all.

Examples:
  taskdeck task list
  taskdeck task list --group home --status todo
  taskdeck task list --all`,
	RunE: runTaskList,
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Change fields of a task",
	Long: `Change fields of a task. Only the flags you pass are sent.

Examples:
  taskdeck task update abc123 --status inprogress
  taskdeck task update abc123 --title "New title" --priority low
  taskdeck task update abc123 --category ""     # remove the category`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskUpdate,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as done",
	Long: `Mark a task as completed.

Examples:
  taskdeck task done abc123
  taskdeck task done abc123 --undo`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskDone,
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskDelete,
}

var addOpts struct {
	group, status, priority, category, date, description string
}

var listOpts struct {
	group, status, category string
	all                     bool
}

var updateOpts struct {
	title, description, status, priority, category, date string
}

var (
	doneUndo  bool
	deleteYes bool
)

func init() {
	taskAddCmd.Flags().StringVarP(&addOpts.group, "group", "g", "", "Group to add the task to (default from config)")
	taskAddCmd.Flags().StringVarP(&addOpts.priority, "priority", "p", string(model.PriorityMedium), "Priority (low, medium, high)")
	taskAddCmd.Flags().StringVarP(&addOpts.status, "status", "s", string(model.StatusTodo), "Status (todo, inprogress, done)")
	taskAddCmd.Flags().StringVarP(&addOpts.category, "category", "c", "", "Category id or name")
	taskAddCmd.Flags().StringVarP(&addOpts.date, "date", "d", "", "Date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringVarP(&addOpts.description, "description", "D", "", "Description")

	taskListCmd.Flags().StringVarP(&listOpts.group, "group", "g", "", "Group to list (default from config)")
	taskListCmd.Flags().BoolVarP(&listOpts.all, "all", "a", false, "List every group")
	taskListCmd.Flags().StringVarP(&listOpts.status, "status", "s", "", "Only tasks with this status")
	taskListCmd.Flags().StringVarP(&listOpts.category, "category", "c", "", "Only tasks in this category")

	taskUpdateCmd.Flags().StringVarP(&updateOpts.title, "title", "t", "", "New title")
	taskUpdateCmd.Flags().StringVarP(&updateOpts.description, "description", "D", "", "New description")
	taskUpdateCmd.Flags().StringVarP(&updateOpts.status, "status", "s", "", "New status")
	taskUpdateCmd.Flags().StringVarP(&updateOpts.priority, "priority", "p", "", "New priority")
	taskUpdateCmd.Flags().StringVarP(&updateOpts.category, "category", "c", "", "New category id or name, empty to remove")
	taskUpdateCmd.Flags().StringVarP(&updateOpts.date, "date", "d", "", "New date (YYYY-MM-DD), empty to remove")

	taskDoneCmd.Flags().BoolVar(&doneUndo, "undo", false, "Move the task back to To Do")

	taskDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	title, err := model.ValidateTitle(strings.Join(args, " "))
	if err != nil {
		return err
	}

	st, err := newStore()
	if err != nil {
		return err
	}
	snap := st.Snapshot()

	groupRef := cfg.DefaultGroup
	if cmd.Flags().Changed("group") {
		groupRef = addOpts.group
	}
	group, err := resolveGroup(snap.Groups, groupRef)
	if err != nil {
		return err
	}

	in := model.NewTask{
		Title:       title,
		Description: addOpts.description,
		Status:      model.Status(addOpts.status),
		Priority:    model.Priority(addOpts.priority),
		Date:        addOpts.date,
		GroupID:     group.ID,
	}
	if addOpts.category != "" {
		cat, err := resolveCategory(snap.Categories, addOpts.category)
		if err != nil {
			return err
		}
		in.CategoryID = cat.ID
	}
	in = in.WithDefaults()
	if err := in.Validate(); err != nil {
		return err
	}

	task, err := st.AddTask(context.Background(), in)
	if err != nil {
		return opFailed(st, store.OpAddTask)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added to [%s]: \"%s\" (%s, id: %s)\n",
		group.Name, task.Title, task.Priority.Label(), shortID(task.ID))
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	st, err := newStore()
	if err != nil {
		return err
	}
	snap := st.Snapshot()
	out := cmd.OutOrStdout()

	var categoryID string
	if listOpts.category != "" {
		cat, err := resolveCategory(snap.Categories, listOpts.category)
		if err != nil {
			return err
		}
		categoryID = cat.ID
	}

	groups := snap.Groups
	if !listOpts.all {
		ref := cfg.DefaultGroup
		if cmd.Flags().Changed("group") {
			ref = listOpts.group
		}
		g, err := resolveGroup(snap.Groups, ref)
		if err != nil {
			return err
		}
		groups = []model.Group{g}
	}

	shown := 0
	for _, g := range groups {
		var tasks []model.Task
		for _, t := range snap.TasksInGroup(g.ID) {
			if listOpts.status != "" && string(t.Status) != listOpts.status {
				continue
			}
			if categoryID != "" && t.CategoryID != categoryID {
				continue
			}
			tasks = append(tasks, t)
		}
		if len(tasks) == 0 && listOpts.all {
			continue
		}
		printTasks(out, g.Name, tasks, snap.Categories)
		shown += len(tasks)
	}

	if shown == 0 {
		fmt.Fprintln(out, "No tasks found. Add one with: taskdeck task add \"Your task\"")
	}
	return nil
}

func printTasks(w io.Writer, groupName string, tasks []model.Task, categories []model.Category) {
	open := 0
	for _, t := range tasks {
		if t.Status != model.StatusDone {
			open++
		}
	}

	fmt.Fprintf(w, "\n📁 %s (%d open)\n", groupName, open)
	fmt.Fprintln(w, strings.Repeat("─", 78))
	for _, t := range tasks {
		printTask(w, t, categories)
	}
	fmt.Fprintln(w)
}

func printTask(w io.Writer, t model.Task, categories []model.Category) {
	icon := "[ ]"
	switch t.Status {
	case model.StatusInProgress:
		icon = "[~]"
	case model.StatusDone:
		icon = "[x]"
	}

	priority := "  " + t.Priority.Label()
	if t.Priority == model.PriorityHigh {
		priority = "▲ " + t.Priority.Label()
	}

	fmt.Fprintf(w, "  %s  %-8s  %-36s  %-8s  %-14s  %s\n",
		icon, shortID(t.ID), truncate(t.Title, 36), priority,
		truncate(model.CategoryName(categories, t.CategoryID), 14), t.Date)
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	st, err := newStore()
	if err != nil {
		return err
	}
	snap := st.Snapshot()

	task, err := resolveTask(snap.Tasks, args[0])
	if err != nil {
		return err
	}

	var u model.TaskUpdate
	flags := cmd.Flags()
	if flags.Changed("title") {
		u.Title = model.Ptr(updateOpts.title)
	}
	if flags.Changed("description") {
		u.Description = model.Ptr(updateOpts.description)
	}
	if flags.Changed("status") {
		u.Status = model.Ptr(model.Status(updateOpts.status))
	}
	if flags.Changed("priority") {
		u.Priority = model.Ptr(model.Priority(updateOpts.priority))
	}
	if flags.Changed("category") {
		id := ""
		if updateOpts.category != "" {
			cat, err := resolveCategory(snap.Categories, updateOpts.category)
			if err != nil {
				return err
			}
			id = cat.ID
		}
		u.CategoryID = model.Ptr(id)
	}
	if flags.Changed("date") {
		u.Date = model.Ptr(updateOpts.date)
	}

	if u.IsEmpty() {
		return fmt.Errorf("nothing to update, pass at least one field flag")
	}
	if err := u.Validate(); err != nil {
		return err
	}

	updated, err := st.UpdateTask(context.Background(), task.ID, u)
	if err != nil {
		return opFailed(st, store.OpUpdateTask)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated: \"%s\" [%s, %s, %s]\n",
		updated.Title, updated.Status.Label(), updated.Priority.Label(),
		model.CategoryName(st.Categories(), updated.CategoryID))
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	st, err := newStore()
	if err != nil {
		return err
	}

	task, err := resolveTask(st.Tasks(), args[0])
	if err != nil {
		return err
	}

	status := model.StatusDone
	if doneUndo {
		status = model.StatusTodo
	}

	updated, err := st.UpdateTask(context.Background(), task.ID, model.TaskUpdate{Status: &status})
	if err != nil {
		return opFailed(st, store.OpUpdateTask)
	}

	if status == model.StatusDone {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Completed: \"%s\"\n", updated.Title)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "○ Reopened: \"%s\"\n", updated.Title)
	}
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	st, err := newStore()
	if err != nil {
		return err
	}

	task, err := resolveTask(st.Tasks(), args[0])
	if err != nil {
		return err
	}

	if cfg.ConfirmDelete && !deleteYes {
		fmt.Fprintf(cmd.OutOrStdout(), "About to delete: \"%s\" (ID: %s)\n", task.Title, task.ID)
		if !confirm(cmd, "Are you sure?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if err := st.DeleteTask(context.Background(), task.ID); err != nil {
		return opFailed(st, store.OpDeleteTask)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted: \"%s\"\n", task.Title)
	return nil
}
