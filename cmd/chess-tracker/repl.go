package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/park285/chess-match-tracker/internal/adapter/trackerpresenter"
	appcfg "github.com/park285/chess-match-tracker/internal/config"
	"github.com/park285/chess-match-tracker/internal/domain"
	"github.com/park285/chess-match-tracker/internal/export"
	"github.com/park285/chess-match-tracker/internal/render"
	"github.com/park285/chess-match-tracker/internal/tracker"
	"github.com/park285/chess-match-tracker/internal/trackerbuilder"
	"github.com/park285/chess-match-tracker/internal/view"
	"github.com/park285/chess-match-tracker/pkg/trackerdto"
	"go.uber.org/zap"
)

type app struct {
	ctrl      *tracker.Controller
	session   *view.Session
	presenter *trackerpresenter.Presenter
	chart     render.ScoreboardRenderer
	pgn       export.PGNOptions
	logger    *zap.Logger
}

func newApp(deps *trackerbuilder.Deps, cfg *appcfg.AppConfig, out io.Writer, logger *zap.Logger) *app {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &app{
		ctrl:      deps.Controller,
		session:   view.NewSession(deps.Controller),
		presenter: trackerpresenter.NewPresenter(out, deps.Formatter, nil),
		chart:     deps.Chart,
		pgn: export.PGNOptions{
			Event:    deps.Catalog.Text("app.title", nil),
			UserName: deps.Formatter.User(),
			Timezone: cfg.Timezone,
		},
		logger: logger,
	}
}

// run reads commands line by line until quit, EOF or ctx is done.
func (a *app) run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	if err := a.presenter.Screen(nil, a.session.Screen()); err != nil {
		return err
	}
	for {
		a.prompt()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			quit, err := a.handle(ctx, line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

func (a *app) prompt() { _ = a.presenter.Prompt() }

// handle executes one command line. It reports quit=true on quit/exit; the error is an output failure.
func (a *app) handle(ctx context.Context, line string) (bool, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false, a.show(nil)
	}
	cmd := strings.ToLower(parts[0])
	rest := strings.TrimSpace(strings.TrimSpace(line)[len(parts[0]):])

	a.logger.Debug("repl_command", zap.String("command", cmd))

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		return false, a.presenter.Message(a.presenter.Formatter().Help())
	case "list":
		_ = a.session.Navigate(view.List)
		return false, a.show(nil)
	case "new", "+":
		_ = a.session.Navigate(view.ChooseOpponent)
		return false, a.show(nil)
	case "score":
		_ = a.session.Navigate(view.Scoreboard)
		return false, a.show(nil)
	case "back":
		a.session.Back()
		return false, a.show(nil)
	case "pick":
		return false, a.show(a.pick(ctx, rest))
	case "add":
		return false, a.show(a.add(ctx, rest))
	case "open":
		return false, a.show(a.open(rest))
	case "view":
		return false, a.show(a.navigate(rest))
	case "export":
		return false, a.export(ctx, parts[1:])
	}

	if result, ok := domain.ParseResult(cmd); ok && result.Terminal() {
		return false, a.show(a.resolve(ctx, result))
	}
	return false, a.show(notice("error.unknown_command", "Command", parts[0]))
}

func (a *app) show(n *trackerdto.Notice) error {
	return a.presenter.Screen(n, a.session.Screen())
}

func (a *app) pick(ctx context.Context, name string) *trackerdto.Notice {
	if name == "" {
		return notice("error.usage", "Usage", "pick <name>")
	}
	_, err := a.session.SelectOpponent(ctx, name)
	return a.errorNotice(err)
}

func (a *app) add(ctx context.Context, name string) *trackerdto.Notice {
	if name == "" {
		return notice("error.usage", "Usage", "add <name>")
	}
	m, err := a.session.RegisterOpponent(ctx, name)
	if m == nil && err == nil {
		return notice("error.duplicate_opponent", "Name", name)
	}
	return a.errorNotice(err)
}

func (a *app) open(ref string) *trackerdto.Notice {
	if ref == "" {
		return notice("error.usage", "Usage", "open <n|id>")
	}
	m, ok := a.session.Lookup(ref)
	if !ok {
		return notice("error.unknown_match", "Ref", ref)
	}
	if !a.session.OpenMatch(m.ID) {
		return notice("error.not_pending", "Ref", ref)
	}
	return nil
}

func (a *app) navigate(token string) *trackerdto.Notice {
	t, err := view.ParseToken(token)
	if err != nil {
		return notice("error.unknown_view", "View", token)
	}
	return a.errorNotice(a.session.Navigate(t))
}

func (a *app) resolve(ctx context.Context, result domain.Result) *trackerdto.Notice {
	_, err := a.session.Resolve(ctx, result)
	return a.errorNotice(err)
}

func (a *app) export(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return a.presenter.Notice(*notice("error.usage", "Usage", "export pgn|png <file>"))
	}
	kind := strings.ToLower(args[0])
	path := strings.Join(args[1:], " ")

	var data []byte
	switch kind {
	case "pgn":
		var buf bytes.Buffer
		if err := export.WritePGN(&buf, a.ctrl.Matches(), a.pgn); err != nil {
			return err
		}
		data = buf.Bytes()
	case "png":
		img, err := a.chart.RenderPNG(ctx, a.ctrl.TotalUserPoints(), a.ctrl.Stats())
		if err != nil {
			a.logger.Error("export_render_error", zap.Error(err))
			return a.presenter.Notice(*notice("error.save_failed", "Error", err.Error()))
		}
		data = img
	default:
		return a.presenter.Notice(*notice("error.usage", "Usage", "export pgn|png <file>"))
	}
	if len(data) == 0 {
		// no matches yet: an empty PGN file is still a valid export
		data = []byte("\n")
	}

	if err := a.presenter.File(path, data); err != nil {
		a.logger.Warn("export_write_error", zap.String("path", path), zap.Error(err))
		return a.presenter.Notice(*notice("error.save_failed", "Error", err.Error()))
	}
	a.logger.Info("export_done", zap.String("kind", kind), zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

func (a *app) errorNotice(err error) *trackerdto.Notice {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tracker.ErrEmptyOpponent):
		return notice("error.empty_opponent", "", nil)
	case errors.Is(err, view.ErrNoActiveMatch):
		return notice("error.no_active_match", "", nil)
	case errors.Is(err, view.ErrUnknownView):
		return notice("error.unknown_view", "View", "?")
	default:
		return notice("error.save_failed", "Error", fmt.Sprint(err))
	}
}

func notice(key, field string, value any) *trackerdto.Notice {
	n := &trackerdto.Notice{Key: key}
	if field != "" {
		n.Data = map[string]any{field: value}
	}
	return n
}
