package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/taskdeck/internal/model"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"stats"},
	Short:   "Show task counts by status and category",
	RunE:    runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	st, err := newStore()
	if err != nil {
		return err
	}
	snap := st.Snapshot()

	printStats(cmd.OutOrStdout(), model.ComputeStats(snap.Tasks, snap.Categories))
	return nil
}

func printStats(w io.Writer, s model.Stats) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Total tasks: %d\n", s.Total)
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "  %-14s %5d  %s\n", model.StatusTodo.Label(), s.Todo, bar(s.Todo, s.Total))
	fmt.Fprintf(w, "  %-14s %5d  %s\n", model.StatusInProgress.Label(), s.InProgress, bar(s.InProgress, s.Total))
	fmt.Fprintf(w, "  %-14s %5d  %s\n", model.StatusDone.Label(), s.Done, bar(s.Done, s.Total))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  By category")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	for _, cc := range s.ByCategory {
		fmt.Fprintf(w, "  %-14s %5d  %s\n", truncate(cc.Name, 14), cc.Count, bar(cc.Count, s.Total))
	}
	fmt.Fprintf(w, "  %-14s %5d  %s\n", model.UncategorizedName, s.Uncategorized, bar(s.Uncategorized, s.Total))
	fmt.Fprintln(w)
}

// bar renders n out of total as a 20 cell bar
func bar(n, total int) string {
	const width = 20
	if total == 0 {
		return strings.Repeat("░", width)
	}
	filled := n * width / total
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
