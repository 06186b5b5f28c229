package view

import "strings"

type Token string

const (
	List           Token = "list"
	ChooseOpponent Token = "choose-opponent"
	ResolveMatch   Token = "resolve-match"
	Scoreboard     Token = "scoreboard"
)

var (
	ErrUnknownView   = errf("unknown view")
	ErrNoActiveMatch = errf("no active match")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }

var tokenAliases = map[string]Token{
	"list":                List,
	"home":                List,
	"choose-opponent":     ChooseOpponent,
	"add_select_opponent": ChooseOpponent,
	"new":                 ChooseOpponent,
	"resolve-match":       ResolveMatch,
	"resolve_match":       ResolveMatch,
	"scoreboard":          Scoreboard,
	"score":               Scoreboard,
}

// ParseToken maps a view name (case-insensitive, with a few aliases) to its token.
func ParseToken(s string) (Token, error) {
	if t, ok := tokenAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", ErrUnknownView
}

func (t Token) String() string { return string(t) }

// Navigator tracks the current view and the match being resolved. It is never persisted.
type Navigator struct {
	current  Token
	activeID string
}

func NewNavigator() *Navigator { return &Navigator{current: List} }

func (n *Navigator) Current() Token        { return n.current }
func (n *Navigator) ActiveMatchID() string { return n.activeID }

// Go switches view. resolve-match needs an active match; leaving it clears the active id.
func (n *Navigator) Go(t Token) error {
	switch t {
	case List, ChooseOpponent, Scoreboard:
		n.current = t
		n.activeID = ""
		return nil
	case ResolveMatch:
		if n.activeID == "" {
			return ErrNoActiveMatch
		}
		n.current = t
		return nil
	default:
		return ErrUnknownView
	}
}

// Open enters resolve-match for id.
func (n *Navigator) Open(id string) {
	n.activeID = id
	n.current = ResolveMatch
}

// Back returns to the list.
func (n *Navigator) Back() {
	n.current = List
	n.activeID = ""
}
