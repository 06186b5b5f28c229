package view

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/park285/chess-match-tracker/internal/adapter/trackerpresenter"
	"github.com/park285/chess-match-tracker/internal/domain"
	"github.com/park285/chess-match-tracker/pkg/trackerdto"
)

// Controller is the slice of tracker.Controller the session drives.
type Controller interface {
	CreatePendingMatch(ctx context.Context, opponentName string) (*domain.Match, error)
	RegisterOpponent(ctx context.Context, name string) (*domain.Match, error)
	ResolveMatch(ctx context.Context, matchID string, result domain.Result) (bool, error)
	Matches() []domain.Match
	Opponents() []string
	ActiveMatch(id string) (domain.Match, bool)
	Stats() []domain.OpponentStats
	TotalUserPoints() float64
}

// Session turns user intents into controller calls and view transitions.
type Session struct {
	mu   sync.Mutex
	ctrl Controller
	nav  *Navigator
}

func NewSession(ctrl Controller) *Session {
	return &Session{ctrl: ctrl, nav: NewNavigator()}
}

func (s *Session) Current() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Current()
}

func (s *Session) ActiveMatchID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.ActiveMatchID()
}

// RegisterOpponent adds a new opponent and opens a match against it. The view returns to
// the list only when a match was created; blank or duplicate names leave it unchanged.
func (s *Session) RegisterOpponent(ctx context.Context, name string) (*domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.ctrl.RegisterOpponent(ctx, name)
	if m != nil {
		s.nav.Back()
	}
	return m, err
}

// SelectOpponent opens a match against name and returns to the list.
func (s *Session) SelectOpponent(ctx context.Context, name string) (*domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.ctrl.CreatePendingMatch(ctx, name)
	if m != nil {
		s.nav.Back()
	}
	return m, err
}

// OpenMatch enters resolve-match for a pending match. Finished or unknown matches are ignored.
func (s *Session) OpenMatch(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.ctrl.ActiveMatch(id)
	if !ok || !m.Pending() {
		return false
	}
	s.nav.Open(m.ID)
	return true
}

// Resolve closes the active match with result and returns to the list.
func (s *Session) Resolve(ctx context.Context, result domain.Result) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nav.ActiveMatchID()
	if id == "" {
		return false, ErrNoActiveMatch
	}
	if !result.Terminal() {
		return false, nil
	}
	applied, err := s.ctrl.ResolveMatch(ctx, id, result)
	s.nav.Back()
	return applied, err
}

func (s *Session) Navigate(t Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Go(t)
}

func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Back()
}

// Lookup finds a match by its 1-based list position or by id.
func (s *Session) Lookup(ref string) (domain.Match, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Match{}, false
	}
	if n, err := strconv.Atoi(ref); err == nil {
		matches := s.ctrl.Matches()
		if n >= 1 && n <= len(matches) {
			return matches[n-1], true
		}
	}
	return s.ctrl.ActiveMatch(ref)
}

// Screen snapshots the current view for rendering.
func (s *Session) Screen() trackerdto.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()

	scr := trackerdto.Screen{
		View:        s.nav.Current().String(),
		TotalPoints: s.ctrl.TotalUserPoints(),
	}
	switch s.nav.Current() {
	case List:
		scr.Matches = trackerpresenter.ToDTOMatchCards(s.ctrl.Matches())
	case ChooseOpponent:
		scr.Opponents = s.ctrl.Opponents()
	case ResolveMatch:
		if m, ok := s.ctrl.ActiveMatch(s.nav.ActiveMatchID()); ok {
			card := trackerpresenter.ToDTOMatchCard(s.indexOf(m.ID), m)
			scr.Active = &card
		}
	case Scoreboard:
		scr.Scoreboard = trackerpresenter.ToDTOScoreboard(scr.TotalPoints, s.ctrl.Stats())
	}
	return scr
}

func (s *Session) indexOf(id string) int {
	for i, m := range s.ctrl.Matches() {
		if m.ID == id {
			return i + 1
		}
	}
	return 0
}
