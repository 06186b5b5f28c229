package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/park285/chess-match-tracker/internal/store"
	"github.com/park285/chess-match-tracker/internal/tracker"
)

func TestInspectEmptyStoreWritesNothing(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	var out bytes.Buffer
	if err := inspect(ctx, st, "memory", &out); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, key := range []string{tracker.KeyMatches, tracker.KeyOpponents} {
		if raw, _ := st.Get(ctx, key); raw != nil {
			t.Fatalf("%s must not be written, got %q", key, raw)
		}
	}
	for _, want := range []string{"matches: not written yet", "opponents: not written yet", "backend=memory matches=0 pending=0 opponents=1 total_points=0"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output lacks %q:\n%s", want, out.String())
		}
	}
}

func TestInspectPrintsScoreboard(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	_ = st.Put(ctx, tracker.KeyMatches, []byte(`[
		{"id":"2","opponentName":"Pele","userColor":"black","result":"PENDING","timestamp":2},
		{"id":"1","opponentName":"Pele","userColor":"white","result":"DRAW","timestamp":1}
	]`))
	_ = st.Put(ctx, tracker.KeyOpponents, []byte(`["Pele"]`))

	var out bytes.Buffer
	if err := inspect(ctx, st, "memory", &out); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"matches=2 pending=1 opponents=1 total_points=0.5", "0.5-0.5 (W0 D1 L0)"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output lacks %q:\n%s", want, out.String())
		}
	}
}
