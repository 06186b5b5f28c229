package tracker

import (
	"sort"

	"github.com/park285/chess-match-tracker/internal/domain"
)

// ComputeStats aggregates finished matches per registered opponent.
// Output is ordered by user points descending; ties keep registry order.
func ComputeStats(opponents []string, matches []domain.Match) []domain.OpponentStats {
	index := make(map[string]int, len(opponents))
	stats := make([]domain.OpponentStats, 0, len(opponents))
	for _, name := range opponents {
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = len(stats)
		stats = append(stats, domain.OpponentStats{Name: name})
	}

	for _, m := range matches {
		i, ok := index[m.OpponentName]
		if !ok || !m.Result.Terminal() {
			continue
		}
		s := &stats[i]
		switch m.Result {
		case domain.ResultWin:
			s.Wins++
		case domain.ResultLoss:
			s.Losses++
		case domain.ResultDraw:
			s.Draws++
		}
		s.GamesPlayed++
	}

	for i := range stats {
		s := &stats[i]
		s.TotalPoints = float64(s.Wins) + float64(s.Draws)*0.5
		s.OpponentPoints = float64(s.Losses) + float64(s.Draws)*0.5
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalPoints > stats[j].TotalPoints
	})
	return stats
}

// TotalUserPoints sums the user's score over every match, whoever the opponent.
func TotalUserPoints(matches []domain.Match) float64 {
	total := 0.0
	for _, m := range matches {
		total += m.Result.UserPoints()
	}
	return total
}
