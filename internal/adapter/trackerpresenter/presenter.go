package trackerpresenter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/park285/chess-match-tracker/pkg/trackerdto"
)

// Presenter delivers formatted screens and exported files without coupling to the command layer.
type Presenter struct {
	out       io.Writer
	format    *Formatter
	writeFile func(path string, data []byte) error
}

func NewPresenter(out io.Writer, format *Formatter, writeFile func(path string, data []byte) error) *Presenter {
	if writeFile == nil {
		writeFile = WriteFileAtomic
	}
	return &Presenter{out: out, format: format, writeFile: writeFile}
}

func (p *Presenter) Formatter() *Formatter { return p.format }

// Screen prints an optional notice followed by the screen.
func (p *Presenter) Screen(notice *trackerdto.Notice, scr trackerdto.Screen) error {
	if p == nil || p.out == nil {
		return nil
	}
	var sb strings.Builder
	if notice != nil {
		if text := strings.TrimSpace(p.format.Notice(*notice)); text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
	}
	sb.WriteString(p.format.Screen(scr))
	sb.WriteString("\n")
	_, err := io.WriteString(p.out, sb.String())
	return err
}

// Prompt writes the input prompt without a trailing newline.
func (p *Presenter) Prompt() error {
	if p == nil || p.out == nil {
		return nil
	}
	_, err := io.WriteString(p.out, p.format.Prompt())
	return err
}

func (p *Presenter) Message(message string) error {
	if p == nil || p.out == nil {
		return nil
	}
	if strings.TrimSpace(message) == "" {
		return nil
	}
	_, err := fmt.Fprintln(p.out, message)
	return err
}

func (p *Presenter) Notice(n trackerdto.Notice) error {
	return p.Message(p.format.Notice(n))
}

// File writes exported bytes to path and reports it.
func (p *Presenter) File(path string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("nothing to write to %s", path)
	}
	if err := p.writeFile(path, data); err != nil {
		return err
	}
	return p.Notice(trackerdto.Notice{Key: "export.done", Data: map[string]any{"Path": path}})
}

// WriteFileAtomic writes through a temp file in the target directory and renames it into place.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
