package trackerbuilder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/park285/chess-match-tracker/internal/adapter/trackerpresenter"
	"github.com/park285/chess-match-tracker/internal/config"
	"github.com/park285/chess-match-tracker/internal/msgcat"
	"github.com/park285/chess-match-tracker/internal/render"
	"github.com/park285/chess-match-tracker/internal/store"
	"github.com/park285/chess-match-tracker/internal/tracker"
	"go.uber.org/zap"
)

type Deps struct {
	Controller *tracker.Controller
	Store      store.Store
	Catalog    *msgcat.Catalog
	Formatter  *trackerpresenter.Formatter
	Chart      render.ScoreboardRenderer
}

func New(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// Catalog first so a bad locale fails before any connection is opened
	cat, err := msgcat.New(cfg.Locale, cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	st, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []tracker.Option{tracker.WithLogger(logger)}
	if len(cfg.SeedOpponents) > 0 {
		opts = append(opts, tracker.WithSeedOpponents(cfg.SeedOpponents))
	}
	ctrl, err := tracker.NewController(ctx, st, opts...)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("init tracker: %w", err)
	}

	formatter := trackerpresenter.NewFormatter(cat, cfg.Timezone, cfg.UserName)
	chart := render.NewScoreboardRenderer(render.Labels{
		Title: cat.Text("score.total", nil),
		User:  formatter.User(),
		Empty: cat.Text("score.empty", nil),
	})

	logger.Info("tracker_ready",
		zap.String("backend", cfg.StoreBackend),
		zap.String("locale", cat.Locale()),
		zap.Int("matches", len(ctrl.Matches())),
	)
	return &Deps{Controller: ctrl, Store: st, Catalog: cat, Formatter: formatter, Chart: chart}, nil
}

// OpenStore connects the backend named by cfg.StoreBackend.
func OpenStore(ctx context.Context, cfg *config.AppConfig) (store.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StoreBackend)) {
	case store.BackendMemory:
		return store.NewMemory(), nil
	case store.BackendRedis:
		s, err := store.NewRedis(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("init redis store: %w", err)
		}
		return s, nil
	case store.BackendPostgres:
		s, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
		return s, nil
	case store.BackendFile, "":
		s, err := store.NewFile(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("init file store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func (d *Deps) Close() error {
	if d == nil || d.Store == nil {
		return nil
	}
	if err := d.Store.Close(); err != nil && !errors.Is(err, store.ErrClosed) {
		return err
	}
	return nil
}
