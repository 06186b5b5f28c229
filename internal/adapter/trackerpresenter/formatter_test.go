package trackerpresenter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/park285/chess-match-tracker/internal/domain"
	"github.com/park285/chess-match-tracker/internal/msgcat"
	"github.com/park285/chess-match-tracker/pkg/trackerdto"
)

func newFormatter(t *testing.T, locale string) *Formatter {
	t.Helper()
	cat, err := msgcat.New(locale, "")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	return NewFormatter(cat, "Europe/Rome", "")
}

// 14 Jul 2024 16:30 UTC is 18:30 in Rome.
var julyTS = time.Date(2024, 7, 14, 16, 30, 0, 0, time.UTC).UnixMilli()

func TestLabels(t *testing.T) {
	f := newFormatter(t, "it")
	for in, want := range map[string]string{"WIN": "Vittoria", "LOSS": "Sconfitta", "DRAW": "Patta", "PENDING": "In Corso"} {
		if got := f.ResultLabel(in); got != want {
			t.Fatalf("ResultLabel(%s) = %q, want %q", in, got, want)
		}
	}
	if f.ColorLabel("white") != "Bianco" || f.ColorLabel("black") != "Nero" {
		t.Fatalf("unexpected color labels")
	}
	if f.User() != "Io" {
		t.Fatalf("unexpected user label %q", f.User())
	}
	if named := NewFormatter(f.cat, "", "Giulia"); named.User() != "Giulia" {
		t.Fatalf("user name should replace the label")
	}
}

func TestDateIsLocalized(t *testing.T) {
	if got := newFormatter(t, "it").Date(julyTS); got != "14 lug 2024, 18:30" {
		t.Fatalf("it date: %q", got)
	}
	if got := newFormatter(t, "en").Date(julyTS); got != "14 Jul 2024, 18:30" {
		t.Fatalf("en date: %q", got)
	}
}

func TestListScreen(t *testing.T) {
	f := newFormatter(t, "it")
	empty := f.Screen(trackerdto.Screen{View: "list"})
	if !strings.Contains(empty, "Scacchi Tracker") || !strings.Contains(empty, "Nessuna partita registrata.") {
		t.Fatalf("unexpected empty list:\n%s", empty)
	}

	cards := ToDTOMatchCards([]domain.Match{
		{ID: "b", OpponentName: "Pele", UserColor: domain.Black, Result: domain.ResultPending, Timestamp: julyTS},
		{ID: "a", OpponentName: "Pele", UserColor: domain.White, Result: domain.ResultWin, Timestamp: julyTS - 1000},
	})
	out := f.Screen(trackerdto.Screen{View: "list", Matches: cards})
	for _, want := range []string{
		" 1. 14 lug 2024, 18:30  [● IN CORSO]",
		"Io (Nero)  VS  Pele (Bianco)",
		"open 1 per chiudere la partita",
		" 2. 14 lug 2024, 18:29  [VITTORIA]",
		"Io (Bianco)  VS  Pele (Nero)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("list screen lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "open 2") {
		t.Fatalf("finished matches get no resolve hint:\n%s", out)
	}
}

func TestResolveScreen(t *testing.T) {
	f := newFormatter(t, "it")
	card := ToDTOMatchCard(1, domain.Match{ID: "x", OpponentName: "Pele", UserColor: domain.White, Result: domain.ResultPending, Timestamp: julyTS})
	out := f.Screen(trackerdto.Screen{View: "resolve-match", Active: &card})
	for _, want := range []string{"Indietro", "Chiudi Partita", "Colori in Gioco", "Io: Bianco", "Pele: Nero", "Com'è finita?", "Vittoria (Io)", "+0.5 pt", "Vittoria Pele  0 pt"} {
		if !strings.Contains(out, want) {
			t.Fatalf("resolve screen lacks %q:\n%s", want, out)
		}
	}
	if missing := f.Screen(trackerdto.Screen{View: "resolve-match"}); !strings.Contains(missing, "Nessuna partita aperta.") {
		t.Fatalf("missing active match:\n%s", missing)
	}
}

func TestScoreboardScreen(t *testing.T) {
	f := newFormatter(t, "it")
	board := ToDTOScoreboard(2.5, []domain.OpponentStats{
		{Name: "Pele", Wins: 1, Draws: 1, GamesPlayed: 2, TotalPoints: 1.5, OpponentPoints: 0.5},
		{Name: "Anna", Wins: 1, GamesPlayed: 1, TotalPoints: 1},
	})
	out := f.Screen(trackerdto.Screen{View: "scoreboard", Scoreboard: board})
	for _, want := range []string{"Totale Punti (Io)", "  2.5", "Dettaglio vs Avversari", "Io 1.5 vs 0.5", "Vinte 1 · Patte 1 · Perse 0", "Io 1 vs 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("scoreboard lacks %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Pele") > strings.Index(out, "Anna") {
		t.Fatalf("lines must keep scoreboard order:\n%s", out)
	}
}

func TestChooserScreen(t *testing.T) {
	out := newFormatter(t, "en").Screen(trackerdto.Screen{View: "choose-opponent", Opponents: []string{"Pele", "Anna"}})
	for _, want := range []string{"New Match", "  • Pele", "  • Anna", "add <name>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("chooser lacks %q:\n%s", want, out)
		}
	}
}

func TestPresenterWritesScreenAndFiles(t *testing.T) {
	var buf bytes.Buffer
	var written map[string][]byte
	p := NewPresenter(&buf, newFormatter(t, "en"), func(path string, data []byte) error {
		written = map[string][]byte{path: data}
		return nil
	})
	notice := trackerdto.Notice{Key: "error.unknown_command", Data: map[string]any{"Command": "jump"}}
	if err := p.Screen(&notice, trackerdto.Screen{View: "list"}); err != nil {
		t.Fatalf("Screen: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Unknown command: jump.") || !strings.Contains(buf.String(), "No matches recorded.") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}

	buf.Reset()
	if err := p.File("out.pgn", []byte("[Event \"x\"]")); err != nil {
		t.Fatalf("File: %v", err)
	}
	if string(written["out.pgn"]) != "[Event \"x\"]" || !strings.Contains(buf.String(), "Exported to out.pgn") {
		t.Fatalf("file sink not used: %v %q", written, buf.String())
	}
	if err := p.File("empty.png", nil); err == nil {
		t.Fatalf("empty exports should fail")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "score.png")
	if err := WriteFileAtomic(path, []byte{1, 2, 3}); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || len(got) != 3 {
		t.Fatalf("read back: %v %v", got, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}
