package domain

import (
	"strings"
	"time"
)

// Color identifies the side the user played.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Valid() bool { return c == White || c == Black }

// Opposite returns the other side. Unknown values map to White.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Result is the outcome of a match from the user's point of view.
type Result string

const (
	ResultWin     Result = "WIN"
	ResultLoss    Result = "LOSS"
	ResultDraw    Result = "DRAW"
	ResultPending Result = "PENDING"
)

func (r Result) Valid() bool { return r.Terminal() || r == ResultPending }

// Terminal reports whether r is a final outcome.
func (r Result) Terminal() bool {
	switch r {
	case ResultWin, ResultLoss, ResultDraw:
		return true
	default:
		return false
	}
}

// UserPoints is the score the user earns for r: 1 per win, 0.5 per draw.
func (r Result) UserPoints() float64 {
	switch r {
	case ResultWin:
		return 1
	case ResultDraw:
		return 0.5
	default:
		return 0
	}
}

// OpponentPoints mirrors UserPoints for the other side.
func (r Result) OpponentPoints() float64 {
	switch r {
	case ResultLoss:
		return 1
	case ResultDraw:
		return 0.5
	default:
		return 0
	}
}

// ParseResult accepts the stored tokens and a few short aliases used on the command line.
func ParseResult(s string) (Result, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win", "w", "1-0":
		return ResultWin, true
	case "loss", "lose", "l", "0-1":
		return ResultLoss, true
	case "draw", "d", "1/2", "1/2-1/2":
		return ResultDraw, true
	case "pending":
		return ResultPending, true
	default:
		return "", false
	}
}

// Match is one played or in-progress game. Field names match the stored record layout.
type Match struct {
	ID           string `json:"id"`
	OpponentName string `json:"opponentName"`
	UserColor    Color  `json:"userColor"`
	Result       Result `json:"result"`
	Timestamp    int64  `json:"timestamp"`
}

func (m Match) Pending() bool { return m.Result == ResultPending }

// Time converts the epoch-millisecond timestamp.
func (m Match) Time() time.Time { return time.UnixMilli(m.Timestamp) }

// OpponentColor is the side the opponent played.
func (m Match) OpponentColor() Color { return m.UserColor.Opposite() }

// Assignment is the pair of colors for a new match.
type Assignment struct {
	User     Color `json:"user"`
	Opponent Color `json:"opponent"`
}

// OpponentStats is derived from the match collection and never stored on its own.
type OpponentStats struct {
	Name           string  `json:"name"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Draws          int     `json:"draws"`
	GamesPlayed    int     `json:"gamesPlayed"`
	TotalPoints    float64 `json:"totalPoints"`
	OpponentPoints float64 `json:"opponentPoints"`
}
