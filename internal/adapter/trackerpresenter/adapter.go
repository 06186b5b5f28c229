package trackerpresenter

import (
	"github.com/park285/chess-match-tracker/internal/domain"
	"github.com/park285/chess-match-tracker/pkg/trackerdto"
)

func ToDTOMatchCard(index int, m domain.Match) trackerdto.MatchCard {
	return trackerdto.MatchCard{
		Index:         index,
		ID:            m.ID,
		OpponentName:  m.OpponentName,
		UserColor:     string(m.UserColor),
		OpponentColor: string(m.OpponentColor()),
		Result:        string(m.Result),
		Timestamp:     m.Timestamp,
		Pending:       m.Pending(),
	}
}

// ToDTOMatchCards numbers cards from 1 in collection order (most recent first).
func ToDTOMatchCards(matches []domain.Match) []trackerdto.MatchCard {
	cards := make([]trackerdto.MatchCard, 0, len(matches))
	for i, m := range matches {
		cards = append(cards, ToDTOMatchCard(i+1, m))
	}
	return cards
}

func ToDTOScoreboard(total float64, stats []domain.OpponentStats) *trackerdto.Scoreboard {
	lines := make([]trackerdto.ScoreLine, 0, len(stats))
	for _, s := range stats {
		lines = append(lines, trackerdto.ScoreLine{
			Name:           s.Name,
			Wins:           s.Wins,
			Draws:          s.Draws,
			Losses:         s.Losses,
			GamesPlayed:    s.GamesPlayed,
			TotalPoints:    s.TotalPoints,
			OpponentPoints: s.OpponentPoints,
		})
	}
	return &trackerdto.Scoreboard{TotalPoints: total, Lines: lines}
}
