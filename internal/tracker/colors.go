package tracker

import (
	"sort"

	"github.com/park285/chess-match-tracker/internal/domain"
)

// AssignColors picks the sides for a new match against opponentName.
// Colors alternate per opponent relative to the latest finished match; pending matches
// are ignored. With no finished history the user takes white.
//
// history is expected most-recent-first. Equal timestamps keep that order, so the most
// recently inserted match counts as latest.
func AssignColors(opponentName string, history []domain.Match) domain.Assignment {
	finished := make([]domain.Match, 0, len(history))
	for _, m := range history {
		if m.OpponentName == opponentName && m.Result.Terminal() {
			finished = append(finished, m)
		}
	}
	if len(finished) == 0 {
		return domain.Assignment{User: domain.White, Opponent: domain.Black}
	}

	sort.SliceStable(finished, func(i, j int) bool {
		return finished[i].Timestamp > finished[j].Timestamp
	})
	user := finished[0].UserColor.Opposite()
	return domain.Assignment{User: user, Opponent: user.Opposite()}
}
