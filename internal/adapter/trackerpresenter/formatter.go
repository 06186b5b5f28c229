package trackerpresenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/park285/chess-match-tracker/internal/msgcat"
	"github.com/park285/chess-match-tracker/internal/util"
	"github.com/park285/chess-match-tracker/pkg/trackerdto"
)

const (
	rule         = "────────────────────────────────"
	nameColWidth = 14
)

// Formatter renders tracker DTOs into plain-text screens.
type Formatter struct {
	cat      *msgcat.Catalog
	zone     string
	userName string
}

// NewFormatter builds a formatter. An empty userName keeps the catalog's label for the user.
func NewFormatter(cat *msgcat.Catalog, zone, userName string) *Formatter {
	return &Formatter{cat: cat, zone: zone, userName: strings.TrimSpace(userName)}
}

func (f *Formatter) text(key string) string { return f.cat.Text(key, nil) }

func (f *Formatter) render(key string, data map[string]any) string {
	return f.cat.Text(key, data)
}

func (f *Formatter) User() string {
	if f.userName != "" {
		return f.userName
	}
	return f.text("app.user")
}

func (f *Formatter) ResultLabel(result string) string {
	switch result {
	case "WIN":
		return f.text("result.win")
	case "LOSS":
		return f.text("result.loss")
	case "DRAW":
		return f.text("result.draw")
	default:
		return f.text("result.pending")
	}
}

func (f *Formatter) ColorLabel(color string) string {
	if color == "black" {
		return f.text("color.black")
	}
	return f.text("color.white")
}

// Date prints a millisecond timestamp as "14 lug 2024, 18:30" in the configured zone.
func (f *Formatter) Date(ts int64) string {
	t := time.UnixMilli(ts).In(util.LoadLocation(f.zone))
	month := t.Format("Jan")
	if months := strings.Fields(f.text("date.months")); len(months) == 12 {
		month = months[t.Month()-1]
	}
	return fmt.Sprintf("%02d %s %d, %s", t.Day(), month, t.Year(), util.FormatLocal(t, f.zone, "15:04"))
}

func (f *Formatter) Help() string { return f.text("help.text") }

func (f *Formatter) Prompt() string { return f.text("app.prompt") }

func (f *Formatter) Notice(n trackerdto.Notice) string {
	if strings.TrimSpace(n.Key) == "" {
		return ""
	}
	return f.render(n.Key, n.Data)
}

// Screen renders a full view: header line, then the body for scr.View.
func (f *Formatter) Screen(scr trackerdto.Screen) string {
	var sb strings.Builder
	f.header(&sb, scr.View)
	sb.WriteString(rule)
	sb.WriteString("\n")
	switch scr.View {
	case "choose-opponent":
		f.chooser(&sb, scr.Opponents)
	case "resolve-match":
		f.resolver(&sb, scr.Active)
	case "scoreboard":
		f.scoreboard(&sb, scr.Scoreboard)
	default:
		f.list(&sb, scr.Matches)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (f *Formatter) header(sb *strings.Builder, view string) {
	if view == "list" || view == "" {
		sb.WriteString(fmt.Sprintf("♞ %s    [score] %s\n", f.text("app.title"), f.text("app.scoreboard")))
		return
	}
	sb.WriteString(fmt.Sprintf("← [back] %s\n", f.text("app.back")))
}

func (f *Formatter) list(sb *strings.Builder, cards []trackerdto.MatchCard) {
	if len(cards) == 0 {
		sb.WriteString(f.text("list.empty"))
		sb.WriteString("\n")
		return
	}
	for i, c := range cards {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(f.Card(c))
		sb.WriteString("\n")
	}
}

// Card renders one match: date and result badge, then both players with their colors.
func (f *Formatter) Card(c trackerdto.MatchCard) string {
	var sb strings.Builder
	badge := strings.ToUpper(f.ResultLabel(c.Result))
	if c.Pending {
		badge = "● " + badge
	}
	sb.WriteString(fmt.Sprintf("%2d. %s  [%s]\n", c.Index, f.Date(c.Timestamp), badge))
	sb.WriteString(fmt.Sprintf("    %s (%s)  %s  %s (%s)",
		f.User(), f.ColorLabel(c.UserColor), f.text("app.vs"), c.OpponentName, f.ColorLabel(c.OpponentColor)))
	if c.Pending {
		sb.WriteString("\n    » ")
		sb.WriteString(f.render("list.resolve_hint", map[string]any{"Index": c.Index}))
	}
	return sb.String()
}

func (f *Formatter) chooser(sb *strings.Builder, opponents []string) {
	sb.WriteString(f.text("select.title"))
	sb.WriteString("\n")
	sb.WriteString(f.text("select.hint"))
	sb.WriteString("\n\n")
	for _, name := range opponents {
		sb.WriteString("  • ")
		sb.WriteString(name)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(f.text("select.pick_hint"))
	sb.WriteString("\n")
	sb.WriteString(f.text("select.new_opponent"))
	sb.WriteString("\n")
}

func (f *Formatter) resolver(sb *strings.Builder, active *trackerdto.MatchCard) {
	if active == nil {
		sb.WriteString(f.text("error.no_active_match"))
		sb.WriteString("\n")
		return
	}
	sb.WriteString(f.text("resolve.title"))
	sb.WriteString("\n")
	sb.WriteString(active.OpponentName)
	sb.WriteString("\n\n")
	sb.WriteString(f.text("resolve.colors"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s: %s   %s   %s: %s\n\n",
		f.User(), f.ColorLabel(active.UserColor), f.text("app.vs"), active.OpponentName, f.ColorLabel(active.OpponentColor)))
	sb.WriteString(f.text("resolve.question"))
	sb.WriteString("\n")
	sb.WriteString("  " + f.text("resolve.win") + "\n")
	sb.WriteString("  " + f.text("resolve.draw") + "\n")
	sb.WriteString("  " + f.render("resolve.loss", map[string]any{"Opponent": active.OpponentName}) + "\n")
}

func (f *Formatter) scoreboard(sb *strings.Builder, board *trackerdto.Scoreboard) {
	if board == nil {
		board = &trackerdto.Scoreboard{}
	}
	sb.WriteString(f.text("score.total"))
	sb.WriteString("\n  ")
	sb.WriteString(util.FormatPoints(board.TotalPoints))
	sb.WriteString("\n\n")
	sb.WriteString(f.text("score.detail"))
	sb.WriteString("\n")
	if len(board.Lines) == 0 {
		sb.WriteString(f.text("score.empty"))
		sb.WriteString("\n")
		return
	}
	for _, l := range board.Lines {
		sb.WriteString(f.ScoreLine(l))
		sb.WriteString("\n")
	}
}

// ScoreLine renders "Pele  Io 1.5 vs 0.5" followed by the win/draw/loss counts.
func (f *Formatter) ScoreLine(l trackerdto.ScoreLine) string {
	return fmt.Sprintf("  %s %s %s %s %s\n  %s %s %d · %s %d · %s %d",
		util.PadRight(l.Name, nameColWidth),
		f.User(), util.FormatPoints(l.TotalPoints), strings.ToLower(f.text("app.vs")), util.FormatPoints(l.OpponentPoints),
		util.PadRight("", nameColWidth),
		f.text("score.wins"), l.Wins, f.text("score.draws"), l.Draws, f.text("score.losses"), l.Losses)
}
