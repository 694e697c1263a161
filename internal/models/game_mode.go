package models

// Mode selects how turns are taken and how the game is ranked.
type Mode int

const (
	ModeTimedSolo Mode = iota + 1
	ModeHotseat
	ModeCPU
	ModeRemoteAI
)

func (m Mode) String() string {
	switch m {
	case ModeTimedSolo:
		return "timed_solo"
	case ModeHotseat:
		return "hotseat"
	case ModeCPU:
		return "cpu"
	case ModeRemoteAI:
		return "remote_ai"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the four supported modes.
func (m Mode) Valid() bool {
	return m >= ModeTimedSolo && m <= ModeRemoteAI
}

// Difficulty is derived from the deck size.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyForCount maps 12 cards to easy, 18 to medium and anything else to hard.
func DifficultyForCount(cardCount int) Difficulty {
	switch cardCount {
	case 12:
		return DifficultyEasy
	case 18:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// Seats. Player two is the opponent in CPU and remote modes.
const (
	PlayerOne = 1
	PlayerTwo = 2
)
