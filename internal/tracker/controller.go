package tracker

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/park285/chess-match-tracker/internal/domain"
	"github.com/park285/chess-match-tracker/internal/obslog"
	"github.com/park285/chess-match-tracker/internal/store"
	"go.uber.org/zap"
)

var ErrEmptyOpponent = errf("opponent name is empty")

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }

// Controller owns the match collection and the opponent registry. State is loaded from
// the store on construction and written back after every mutation.
type Controller struct {
	mu        sync.RWMutex
	store     store.Store
	matches   []domain.Match // most recent first
	opponents []string

	now    func() time.Time
	newID  func() string
	seed   []string
	logger *zap.Logger
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// WithSeedOpponents sets the registry used when the store has no opponents record.
func WithSeedOpponents(names []string) Option {
	return func(c *Controller) {
		if len(normalizeNames(names)) > 0 {
			c.seed = append([]string(nil), names...)
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewController(ctx context.Context, s store.Store, opts ...Option) (*Controller, error) {
	c := &Controller{
		store:  s,
		now:    time.Now,
		newID:  uuid.NewString,
		seed:   DefaultSeedOpponents,
		logger: obslog.L(),
	}
	for _, opt := range opts {
		opt(c)
	}

	matches, err := loadMatches(ctx, s, c.logger)
	if err != nil {
		return nil, err
	}
	opponents, seeded, err := loadOpponents(ctx, s, c.seed, c.logger)
	if err != nil {
		return nil, err
	}
	c.matches = matches
	c.opponents = opponents
	added := c.registerMatchOpponentsLocked()
	if seeded || added > 0 {
		// write the repaired registry so the next start reads it back verbatim
		if err := c.persistOpponentsLocked(ctx); err != nil {
			c.logger.Debug("tracker_load_persist_skipped", zap.Bool("seeded", seeded), zap.Int("added", added))
		}
	}
	c.logger.Info("tracker_load", zap.Int("matches", len(c.matches)), zap.Int("opponents", len(c.opponents)))
	return c, nil
}

// CreatePendingMatch starts a new PENDING match against opponentName and puts it at the
// head of the collection. An unseen name is added to the registry.
func (c *Controller) CreatePendingMatch(ctx context.Context, opponentName string) (*domain.Match, error) {
	name := strings.TrimSpace(opponentName)
	if name == "" {
		return nil, ErrEmptyOpponent
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	registered := false
	if !containsName(c.opponents, name) {
		c.opponents = append(c.opponents, name)
		registered = true
	}
	m := c.createLocked(name)

	if registered {
		if err := c.persistOpponentsLocked(ctx); err != nil {
			return &m, err
		}
	}
	if err := c.persistMatchesLocked(ctx); err != nil {
		return &m, err
	}
	return &m, nil
}

// RegisterOpponent adds a new name to the registry and opens a match against it.
// A blank or already registered name is ignored: nil, nil.
func (c *Controller) RegisterOpponent(ctx context.Context, name string) (*domain.Match, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if containsName(c.opponents, name) {
		c.logger.Debug("opponent_register_skip", zap.String("opponent", name))
		return nil, nil
	}
	c.opponents = append(c.opponents, name)
	c.logger.Info("opponent_register", zap.String("opponent", name), zap.Int("registry_size", len(c.opponents)))
	perr := c.persistOpponentsLocked(ctx)

	m := c.createLocked(name)
	if err := c.persistMatchesLocked(ctx); err != nil {
		return &m, err
	}
	return &m, perr
}

// ResolveMatch sets the outcome of a pending match. It reports false without touching state
// when the match is unknown, already finished, or result is not terminal.
func (c *Controller) ResolveMatch(ctx context.Context, matchID string, result domain.Result) (bool, error) {
	if !result.Terminal() {
		return false, nil
	}
	id := strings.TrimSpace(matchID)

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexLocked(id)
	if idx < 0 || !c.matches[idx].Pending() {
		c.logger.Debug("match_resolve_skip", zap.String("match_id", id))
		return false, nil
	}
	c.matches[idx].Result = result
	m := c.matches[idx]
	c.logger.Info("match_resolve",
		zap.String("match_id", m.ID),
		zap.String("opponent", m.OpponentName),
		zap.String("user_color", string(m.UserColor)),
		zap.String("result", string(m.Result)),
	)
	return true, c.persistMatchesLocked(ctx)
}

// Matches returns a copy of the collection, most recent first.
func (c *Controller) Matches() []domain.Match {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Match(nil), c.matches...)
}

// Opponents returns a copy of the registry in insertion order.
func (c *Controller) Opponents() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.opponents...)
}

func (c *Controller) ActiveMatch(id string) (domain.Match, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := c.indexLocked(strings.TrimSpace(id))
	if idx < 0 {
		return domain.Match{}, false
	}
	return c.matches[idx], true
}

// Stats derives the scoreboard from current state.
func (c *Controller) Stats() []domain.OpponentStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ComputeStats(c.opponents, c.matches)
}

func (c *Controller) TotalUserPoints() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return TotalUserPoints(c.matches)
}

func (c *Controller) createLocked(name string) domain.Match {
	colors := AssignColors(name, c.matches)
	m := domain.Match{
		ID:           c.newID(),
		OpponentName: name,
		UserColor:    colors.User,
		Result:       domain.ResultPending,
		Timestamp:    c.now().UnixMilli(),
	}
	c.matches = append([]domain.Match{m}, c.matches...)
	c.logger.Info("match_create",
		zap.String("match_id", m.ID),
		zap.String("opponent", m.OpponentName),
		zap.String("user_color", string(m.UserColor)),
	)
	return m
}

func (c *Controller) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i := range c.matches {
		if c.matches[i].ID == id {
			return i
		}
	}
	return -1
}

// Persistence failures keep the in-memory state; the caller decides whether to surface them.
func (c *Controller) persistMatchesLocked(ctx context.Context) error {
	if err := saveJSON(ctx, c.store, KeyMatches, c.matches); err != nil {
		c.logger.Error("store_save_error", zap.String("key", KeyMatches), zap.Error(err))
		return err
	}
	return nil
}

func (c *Controller) persistOpponentsLocked(ctx context.Context) error {
	if err := saveJSON(ctx, c.store, KeyOpponents, c.opponents); err != nil {
		c.logger.Error("store_save_error", zap.String("key", KeyOpponents), zap.Error(err))
		return err
	}
	return nil
}

// registerMatchOpponentsLocked appends opponents referenced by stored matches but missing
// from the registry, oldest match first, so per-opponent totals cover every match.
func (c *Controller) registerMatchOpponentsLocked() int {
	added := 0
	for i := len(c.matches) - 1; i >= 0; i-- {
		name := strings.TrimSpace(c.matches[i].OpponentName)
		if name == "" || containsName(c.opponents, name) {
			continue
		}
		c.opponents = append(c.opponents, name)
		added++
	}
	if added > 0 {
		c.logger.Warn("tracker_registry_repair", zap.Int("added", added))
	}
	return added
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
