package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	nchess "github.com/corentings/chess/v2"
	"github.com/park285/chess-match-tracker/internal/domain"
	"github.com/park285/chess-match-tracker/internal/util"
)

type PGNOptions struct {
	Event    string
	Site     string
	UserName string
	Timezone string
}

func (o PGNOptions) withDefaults() PGNOptions {
	if strings.TrimSpace(o.Event) == "" {
		o.Event = "Casual Game"
	}
	if strings.TrimSpace(o.Site) == "" {
		o.Site = "?"
	}
	if strings.TrimSpace(o.UserName) == "" {
		o.UserName = "Me"
	}
	return o
}

// Outcome maps a match result to the game outcome from white's point of view.
func Outcome(m domain.Match) nchess.Outcome {
	userWhite := m.UserColor != domain.Black
	switch m.Result {
	case domain.ResultWin:
		if userWhite {
			return nchess.WhiteWon
		}
		return nchess.BlackWon
	case domain.ResultLoss:
		if userWhite {
			return nchess.BlackWon
		}
		return nchess.WhiteWon
	case domain.ResultDraw:
		return nchess.Draw
	default:
		return nchess.NoOutcome
	}
}

// WritePGN writes one tag-only game per match, oldest first. matches is in collection order.
func WritePGN(w io.Writer, matches []domain.Match, opts PGNOptions) error {
	opts = opts.withDefaults()
	for i := len(matches) - 1; i >= 0; i-- {
		game := buildPGN(matches[i], opts)
		if i > 0 {
			game += "\n"
		}
		if _, err := io.WriteString(w, game); err != nil {
			return fmt.Errorf("write pgn: %w", err)
		}
	}
	return nil
}

func buildPGN(m domain.Match, opts PGNOptions) string {
	var b strings.Builder
	white, black := opts.UserName, m.OpponentName
	if m.UserColor == domain.Black {
		white, black = black, white
	}
	result := Outcome(m).String()
	played := m.Time()
	zone := util.LoadLocation(opts.Timezone)

	b.WriteString(fmt.Sprintf("[Event \"%s\"]\n", sanitizePGN(opts.Event)))
	b.WriteString(fmt.Sprintf("[Site \"%s\"]\n", sanitizePGN(opts.Site)))
	b.WriteString(fmt.Sprintf("[Date \"%s\"]\n", played.In(zone).Format("2006.01.02")))
	b.WriteString(fmt.Sprintf("[White \"%s\"]\n", sanitizePGN(white)))
	b.WriteString(fmt.Sprintf("[Black \"%s\"]\n", sanitizePGN(black)))
	b.WriteString(fmt.Sprintf("[Result \"%s\"]\n", result))
	b.WriteString(fmt.Sprintf("[UTCDate \"%s\"]\n", played.UTC().Format("2006.01.02")))
	b.WriteString(fmt.Sprintf("[UTCTime \"%s\"]\n", played.UTC().Format(time.TimeOnly)))
	b.WriteString(fmt.Sprintf("[GameId \"%s\"]\n\n", sanitizePGN(m.ID)))
	b.WriteString(result)
	b.WriteString("\n")
	return b.String()
}

func sanitizePGN(s string) string {
	s = strings.ReplaceAll(s, "\\", " ")
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.TrimSpace(s)
}
