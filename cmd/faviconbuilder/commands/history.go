package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/faviconbuilder/internal/eventstore"
	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/faviconbuilder/internal/logfields"
)

// HistoryCmd lists recent generations from the --history-db store.
type HistoryCmd struct {
	Limit int  `short:"n" help:"Number of generations to list" default:"20"`
	JSON  bool `help:"Print JSON instead of a table"`
	Prune int  `help:"Delete all but the newest N events before listing" default:"-1"`
}

func (h *HistoryCmd) Run(global *Global, root *CLI) error {
	if root.HistoryDB == "" {
		return errors.ValidationError("--history-db is required").Build()
	}
	store, err := eventstore.NewSQLiteStore(root.HistoryDB)
	if err != nil {
		return errors.EventStoreError("open history database").
			WithCause(err).
			WithContext(logfields.KeyPath, root.HistoryDB).
			Build()
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if h.Prune >= 0 {
		removed, err := store.Prune(ctx, h.Prune)
		if err != nil {
			return err
		}
		global.logger().Info("Pruned generation history", slog.Int64("removed", removed), slog.Int("kept", h.Prune))
	}

	summaries, err := eventstore.History(ctx, store, h.Limit)
	if err != nil {
		return errors.EventStoreError("read history").WithCause(err).Build()
	}

	out := global.out()
	if h.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	counts, err := store.CountByOutcome(ctx)
	if err != nil {
		return err
	}
	outcomes := slices.Sorted(maps.Keys(counts))
	parts := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		if o != "" {
			parts = append(parts, fmt.Sprintf("%s=%d", o, counts[o]))
		}
	}
	_, _ = fmt.Fprintf(out, "recorded: %s\n\n", strings.Join(parts, " "))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STARTED\tOUTCOME\tDURATION\tASSETS\tOUTPUT\tINVOCATION")
	for _, s := range summaries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			s.StartedAt.Local().Format(time.DateTime),
			s.Outcome,
			s.Duration.Round(time.Millisecond),
			s.Assets,
			s.OutputPath,
			s.InvocationID)
	}
	return tw.Flush()
}
