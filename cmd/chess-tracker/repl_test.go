package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/park285/chess-match-tracker/internal/config"
	"github.com/park285/chess-match-tracker/internal/domain"
	"github.com/park285/chess-match-tracker/internal/store"
	"github.com/park285/chess-match-tracker/internal/trackerbuilder"
)

func newTestApp(t *testing.T, locale string) (*app, *bytes.Buffer) {
	t.Helper()
	cfg := &config.AppConfig{
		StoreBackend: store.BackendMemory,
		Locale:       locale,
		Timezone:     "Europe/Rome",
	}
	deps, err := trackerbuilder.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("trackerbuilder.New: %v", err)
	}
	t.Cleanup(func() { _ = deps.Close() })
	var out bytes.Buffer
	return newApp(deps, cfg, &out, nil), &out
}

func TestREPLSession(t *testing.T) {
	a, out := newTestApp(t, "it")
	script := strings.Join([]string{
		"new",
		"pick Pele",
		"open 1",
		"win",
		"add Anna",
		"pick Pele",
		"open 3",
		"score",
		"quit",
		"list",
	}, "\n")
	if err := a.run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("run: %v", err)
	}

	matches := a.ctrl.Matches()
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	if matches[0].OpponentName != "Pele" || matches[0].UserColor != domain.Black {
		t.Fatalf("second Pele match should be black: %+v", matches[0])
	}
	if matches[2].Result != domain.ResultWin {
		t.Fatalf("first match should be won: %+v", matches[2])
	}
	text := out.String()
	for _, want := range []string{"Nuova Partita", "Chiudi Partita", "Totale Punti (Io)", "Vinte 1", "La partita 3 non è in corso."} {
		if !strings.Contains(text, want) {
			t.Fatalf("output lacks %q:\n%s", want, text)
		}
	}
}

func TestHandleGuardsAndNotices(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "en")

	steps := []struct {
		line string
		want string
	}{
		{"jump", "Unknown command: jump."},
		{"draw", "No open match."},
		{"add Pele", "Pele is already registered."},
		{"add", "Usage: add <name>"},
		{"open 9", "Match not found: 9"},
		{"view settings", "Unknown screen: settings"},
		{"view resolve-match", "No open match."},
		{"export", "Usage: export pgn|png <file>"},
	}
	for _, s := range steps {
		out.Reset()
		quit, err := a.handle(ctx, s.line)
		if err != nil || quit {
			t.Fatalf("%q: quit=%v err=%v", s.line, quit, err)
		}
		if !strings.Contains(out.String(), s.want) {
			t.Fatalf("%q: output lacks %q:\n%s", s.line, s.want, out.String())
		}
	}
	if len(a.ctrl.Matches()) != 0 {
		t.Fatalf("guards must not create matches")
	}
}

func TestResultAliases(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t, "en")
	_, _ = a.handle(ctx, "pick Pele")
	_, _ = a.handle(ctx, "open 1")
	if _, err := a.handle(ctx, "1/2-1/2"); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := a.ctrl.Matches()[0].Result; got != domain.ResultDraw {
		t.Fatalf("expected draw via PGN token, got %s", got)
	}
}

func TestExportCommands(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, "en")
	_, _ = a.handle(ctx, "pick Pele")
	_, _ = a.handle(ctx, "open 1")
	_, _ = a.handle(ctx, "loss")

	dir := t.TempDir()
	pgnPath := filepath.Join(dir, "games.pgn")
	pngPath := filepath.Join(dir, "score.png")
	for _, line := range []string{"export pgn " + pgnPath, "export png " + pngPath} {
		if _, err := a.handle(ctx, line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}
	pgn, err := os.ReadFile(pgnPath)
	if err != nil {
		t.Fatalf("read pgn: %v", err)
	}
	if !strings.Contains(string(pgn), `[Result "0-1"]`) || !strings.Contains(string(pgn), `[White "Me"]`) {
		t.Fatalf("unexpected pgn:\n%s", pgn)
	}
	png, err := os.ReadFile(pngPath)
	if err != nil || !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("png not written: %v", err)
	}
	if !strings.Contains(out.String(), "Exported to "+pngPath) {
		t.Fatalf("missing export notice:\n%s", out.String())
	}
}

func TestQuitReleasesInputReader(t *testing.T) {
	a, _ := newTestApp(t, "en")
	before := runtime.NumGoroutine()
	if err := a.run(context.Background(), strings.NewReader("quit\nlist\nscore\n")); err != nil {
		t.Fatalf("run: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before {
		if time.Now().After(deadline) {
			t.Fatalf("input goroutine still running after quit: %d > %d", runtime.NumGoroutine(), before)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
