package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	appcfg "github.com/park285/chess-match-tracker/internal/config"
	"github.com/park285/chess-match-tracker/internal/store"
	"github.com/park285/chess-match-tracker/internal/tracker"
	"github.com/park285/chess-match-tracker/internal/trackerbuilder"
	"github.com/park285/chess-match-tracker/internal/util"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := trackerbuilder.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store error: %v", err)
	}
	defer st.Close()

	if err := inspect(ctx, st, cfg.StoreBackend, os.Stdout); err != nil {
		log.Fatalf("load error: %v", err)
	}
}

// inspect prints raw record sizes and the derived scoreboard without writing to st.
func inspect(ctx context.Context, st store.Store, backend string, out io.Writer) error {
	for _, key := range []string{tracker.KeyMatches, tracker.KeyOpponents} {
		raw, err := st.Get(ctx, key)
		switch {
		case err != nil:
			fmt.Fprintf(out, "%s: read error: %v\n", key, err)
		case raw == nil:
			fmt.Fprintf(out, "%s: not written yet\n", key)
		default:
			fmt.Fprintf(out, "%s: %d bytes\n", key, len(raw))
		}
	}

	// Read-only: a seeded or repaired registry would otherwise be written back
	ctrl, err := tracker.NewController(ctx, readOnly{st})
	if err != nil {
		return err
	}
	pending := 0
	for _, m := range ctrl.Matches() {
		if m.Pending() {
			pending++
		}
	}
	fmt.Fprintf(out, "backend=%s matches=%d pending=%d opponents=%d total_points=%s\n",
		backend, len(ctrl.Matches()), pending, len(ctrl.Opponents()), util.FormatPoints(ctrl.TotalUserPoints()))
	for _, s := range ctrl.Stats() {
		fmt.Fprintf(out, "  %s %s-%s (W%d D%d L%d)\n",
			util.PadRight(s.Name, 16), util.FormatPoints(s.TotalPoints), util.FormatPoints(s.OpponentPoints), s.Wins, s.Draws, s.Losses)
	}
	return nil
}
