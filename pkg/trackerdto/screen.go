package trackerdto

// Screen is a snapshot of one view, built by the view session and rendered by the presenter.
type Screen struct {
	View        string
	TotalPoints float64
	Matches     []MatchCard
	Opponents   []string
	Active      *MatchCard
	Scoreboard  *Scoreboard
}

type MatchCard struct {
	Index         int // 1-based position in the list
	ID            string
	OpponentName  string
	UserColor     string
	OpponentColor string
	Result        string
	Timestamp     int64
	Pending       bool
}

type Scoreboard struct {
	TotalPoints float64
	Lines       []ScoreLine
}

type ScoreLine struct {
	Name           string
	Wins           int
	Draws          int
	Losses         int
	GamesPlayed    int
	TotalPoints    float64
	OpponentPoints float64
}
