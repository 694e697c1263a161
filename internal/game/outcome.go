// internal/game/outcome.go
package game

import (
	"fmt"

	"github.com/jason-s-yu/memoria/internal/models"
)

// ModePolicy describes how a mode is played and scored.
type ModePolicy struct {
	Mode         models.Mode
	Labels       [2]string
	Timed        bool // ranked by elapsed time
	Scored       bool // matches score for the acting player
	Alternating  bool // a mismatch passes the turn
	HasOpponent  bool // seat two is played by the server
	OpponentName string
}

// PolicyFor returns the rules of play for mode.
func PolicyFor(mode models.Mode) ModePolicy {
	switch mode {
	case models.ModeHotseat:
		return ModePolicy{Mode: mode, Labels: [2]string{"P1", "P2"}, Scored: true, Alternating: true}
	case models.ModeCPU:
		return ModePolicy{Mode: mode, Labels: [2]string{"You", "CPU"}, Scored: true, Alternating: true, HasOpponent: true, OpponentName: "CPU"}
	case models.ModeRemoteAI:
		return ModePolicy{Mode: mode, Labels: [2]string{"You", "AI"}, Scored: true, Alternating: true, HasOpponent: true, OpponentName: "AI"}
	default:
		return ModePolicy{Mode: models.ModeTimedSolo, Timed: true}
	}
}

// RankTier is one of five memory ranks, best first.
type RankTier string

const (
	TierElephant RankTier = "elephant"
	TierDolphin  RankTier = "dolphin"
	TierTurtle   RankTier = "turtle"
	TierMouse    RankTier = "mouse"
	TierGoldfish RankTier = "goldfish"
)

// Rank is the end-of-game label shown with the summary.
type Rank struct {
	Tier  RankTier `json:"tier"`
	Emoji string   `json:"emoji"`
	Title string   `json:"title"`
	Note  string   `json:"note"`
}

func (r Rank) String() string {
	return fmt.Sprintf("%s %s: %s", r.Emoji, r.Title, r.Note)
}

var memoryRanks = map[RankTier]Rank{
	TierElephant: {Tier: TierElephant, Emoji: "🐘", Title: "Elephant memory", Note: "You remember everything, even what you'd rather forget."},
	TierDolphin:  {Tier: TierDolphin, Emoji: "🐬", Title: "Dolphin memory", Note: "You swim through the cards like they're your ocean."},
	TierTurtle:   {Tier: TierTurtle, Emoji: "🐢", Title: "Turtle memory", Note: "Slow and steady, but you get there."},
	TierMouse:    {Tier: TierMouse, Emoji: "🐭", Title: "Mouse memory", Note: "Your memories peek out, then hide again."},
	TierGoldfish: {Tier: TierGoldfish, Emoji: "🐠", Title: "Goldfish memory", Note: "Every card is a brand new surprise... again!"},
}

// Ascending cut-points in seconds.
var timeThresholds = map[models.Difficulty][3]int{
	models.DifficultyEasy:   {35, 55, 80},
	models.DifficultyMedium: {70, 110, 150},
	models.DifficultyHard:   {110, 170, 230},
}

// Descending cut-points of player-one score over total pairs.
var scoreThresholds = map[models.Difficulty][3]float64{
	models.DifficultyEasy:   {0.8, 0.6, 0.4},
	models.DifficultyMedium: {0.75, 0.55, 0.4},
	models.DifficultyHard:   {0.7, 0.5, 0.35},
}

// goldfishGraceSec is how far past the last time threshold a solo run may go before it ranks worst.
const goldfishGraceSec = 60

// goldfishRatio is the score ratio at or below which a scored game ranks worst.
const goldfishRatio = 0.2

// RankByTime ranks a timed game by elapsed seconds.
func RankByTime(d models.Difficulty, seconds int) Rank {
	t, ok := timeThresholds[d]
	if !ok {
		t = timeThresholds[models.DifficultyMedium]
	}
	var tier RankTier
	switch {
	case seconds <= t[0]:
		tier = TierElephant
	case seconds <= t[1]:
		tier = TierDolphin
	case seconds <= t[2]:
		tier = TierTurtle
	case seconds >= t[2]+goldfishGraceSec:
		tier = TierGoldfish
	default:
		tier = TierMouse
	}
	return memoryRanks[tier]
}

// RankByScore ranks a scored game by player one's share of the pairs.
func RankByScore(d models.Difficulty, score, totalPairs int) Rank {
	t, ok := scoreThresholds[d]
	if !ok {
		t = scoreThresholds[models.DifficultyMedium]
	}
	ratio := 0.0
	if totalPairs > 0 {
		ratio = float64(score) / float64(totalPairs)
	}
	var tier RankTier
	switch {
	case ratio >= t[0]:
		tier = TierElephant
	case ratio >= t[1]:
		tier = TierDolphin
	case ratio >= t[2]:
		tier = TierTurtle
	case ratio <= goldfishRatio:
		tier = TierGoldfish
	default:
		tier = TierMouse
	}
	return memoryRanks[tier]
}

// Summary is the game-over report.
type Summary struct {
	Mode           models.Mode       `json:"mode"`
	Difficulty     models.Difficulty `json:"difficulty"`
	Title          string            `json:"title"`
	Message        string            `json:"message"`
	Winner         int               `json:"winner"` // 0 on a tie
	Scores         models.Scores     `json:"scores"`
	ElapsedSeconds int               `json:"elapsedSeconds"`
	Rank           Rank              `json:"rank"`
}

// Summarize builds the game-over report. It is a pure function of its inputs.
func Summarize(policy ModePolicy, d models.Difficulty, scores [2]int, totalPairs, elapsedSeconds int) Summary {
	s := Summary{
		Mode:           policy.Mode,
		Difficulty:     d,
		Scores:         models.Scores{Player: scores[0], Opponent: scores[1]},
		ElapsedSeconds: elapsedSeconds,
	}

	if policy.Timed {
		s.Winner = models.PlayerOne
		s.Title = "You win!"
		s.Message = "Time: " + FormatClock(elapsedSeconds)
		s.Rank = RankByTime(d, elapsedSeconds)
		return s
	}

	switch {
	case scores[0] > scores[1]:
		s.Winner = models.PlayerOne
	case scores[1] > scores[0]:
		s.Winner = models.PlayerTwo
	}

	switch {
	case s.Winner == 0:
		s.Title = "Tie!"
	case policy.HasOpponent && s.Winner == models.PlayerOne:
		s.Title = "You win!"
	case policy.HasOpponent:
		s.Title = fmt.Sprintf("The %s wins!", policy.OpponentName)
	default:
		s.Title = fmt.Sprintf("Player %d wins!", s.Winner)
	}
	s.Message = fmt.Sprintf("%s: %d - %s: %d", policy.Labels[0], scores[0], policy.Labels[1], scores[1])
	s.Rank = RankByScore(d, scores[0], totalPairs)
	return s
}
