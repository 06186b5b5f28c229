package msgcat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDefaultsToItalian(t *testing.T) {
	c, err := New("", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Locale() != "it" {
		t.Fatalf("expected it, got %s", c.Locale())
	}
	want := map[string]string{
		"result.win":     "Vittoria",
		"result.loss":    "Sconfitta",
		"result.draw":    "Patta",
		"result.pending": "In Corso",
		"color.white":    "Bianco",
		"color.black":    "Nero",
		"app.user":       "Io",
		"score.total":    "Totale Punti (Io)",
		"score.detail":   "Dettaglio vs Avversari",
	}
	for key, text := range want {
		if got := c.Text(key, nil); got != text {
			t.Fatalf("%s: got %q, want %q", key, got, text)
		}
	}
}

func TestEmbeddedLocalesHaveSameKeys(t *testing.T) {
	it, err := New("it", "")
	if err != nil {
		t.Fatalf("New it: %v", err)
	}
	for _, loc := range Locales() {
		raw, err := defaultFiles.ReadFile("messages." + loc + ".yaml")
		if err != nil {
			t.Fatalf("read %s: %v", loc, err)
		}
		flat, err := parseYAMLToFlat(raw)
		if err != nil {
			t.Fatalf("parse %s: %v", loc, err)
		}
		if len(flat) != len(it.data) {
			t.Fatalf("locale %s has %d keys, it has %d", loc, len(flat), len(it.data))
		}
		for k := range it.data {
			if _, ok := flat[k]; !ok {
				t.Fatalf("locale %s lacks %s", loc, k)
			}
		}
	}
}

func TestRenderTemplates(t *testing.T) {
	c, err := New("en", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Render("resolve.loss", map[string]any{"Opponent": "Pele"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "Pele wins") {
		t.Fatalf("unexpected render: %q", got)
	}
	if _, err := c.Render("resolve.loss", map[string]any{}); err == nil {
		t.Fatalf("missing data key should fail")
	}
	if _, err := c.Render("no.such.key", nil); err == nil {
		t.Fatalf("unknown key should fail")
	}
	if got := c.Text("no.such.key", nil); got != "no.such.key" {
		t.Fatalf("Text should fall back to the key, got %q", got)
	}
}

func TestUnsupportedLocale(t *testing.T) {
	if _, err := New("fr", ""); err == nil {
		t.Fatalf("expected error for fr")
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("app:\n  title: \"Le mie partite\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := New("it", dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Text("app.title", nil); got != "Le mie partite" {
		t.Fatalf("override not applied, got %q", got)
	}
	if got := c.Text("result.win", nil); got != "Vittoria" {
		t.Fatalf("non-overridden keys should keep defaults, got %q", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "b.yml"), []byte("app:\n  title: \"dup\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New("it", dir); err == nil {
		t.Fatalf("duplicate override keys should fail")
	}
}

func TestNonStringLeafRejected(t *testing.T) {
	if _, err := parseYAMLToFlat([]byte("app:\n  count: 3\n")); err == nil {
		t.Fatalf("numeric leaf should be rejected")
	}
}
