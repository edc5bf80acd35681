package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/existflow/taskdeck/internal/api"
	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/notify"
	"github.com/existflow/taskdeck/internal/store"
)

// buildStore creates a store over the configured API without loading it.
// Extra sinks receive the store's notifications next to the log.
func buildStore(sinks ...notify.Sink) *store.Store {
	client := api.NewClient(apiURL(), api.WithTimeout(cfg.RequestTimeout))

	all := append(notify.Multi{notify.NewLogSink(logger.Component("notify"))}, sinks...)
	opts := []store.Option{store.WithNotifier(all)}
	if cfg.SerializeOps {
		opts = append(opts, store.WithSerializedOps())
	}
	return store.New(client, opts...)
}

// newStore builds a store and loads it, failing when the server cannot
// be reached. One-shot commands use it; the TUI loads on its own.
func newStore(sinks ...notify.Sink) (*store.Store, error) {
	st := buildStore(sinks...)
	if err := st.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("cannot reach %s: %s", apiURL(), st.Err())
	}
	return st, nil
}

// opFailed turns the store's recorded failure for kind into an error
func opFailed(st *store.Store, kind store.OpKind) error {
	if msg := st.Op(kind).Error; msg != "" {
		return errors.New(msg)
	}
	return errors.New(kind.DefaultError())
}

// resolveTask finds a task by full id or unique id prefix
func resolveTask(tasks []model.Task, ref string) (model.Task, error) {
	var found []model.Task
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return model.Task{}, fmt.Errorf("task not found: %s", ref)
	case 1:
		return found[0], nil
	default:
		return model.Task{}, fmt.Errorf("task id %q is ambiguous (%d matches)", ref, len(found))
	}
}

// resolveCategory finds a category by id, unique id prefix or name
func resolveCategory(categories []model.Category, ref string) (model.Category, error) {
	var found []model.Category
	for _, c := range categories {
		if c.ID == ref || strings.EqualFold(c.Name, ref) {
			return c, nil
		}
		if strings.HasPrefix(c.ID, ref) {
			found = append(found, c)
		}
	}
	switch len(found) {
	case 0:
		return model.Category{}, fmt.Errorf("category not found: %s", ref)
	case 1:
		return found[0], nil
	default:
		return model.Category{}, fmt.Errorf("category %q is ambiguous (%d matches)", ref, len(found))
	}
}

// resolveGroup finds a group by id or name
func resolveGroup(groups []model.Group, ref string) (model.Group, error) {
	for _, g := range groups {
		if g.ID == ref || strings.EqualFold(g.Name, ref) {
			return g, nil
		}
	}
	return model.Group{}, fmt.Errorf("group not found: %s", ref)
}

// confirm asks a yes/no question on the command's input
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "...")
}
