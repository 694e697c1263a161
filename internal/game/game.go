// internal/game/game.go
package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/memoria/internal/cache"
	"github.com/jason-s-yu/memoria/internal/models"
	"github.com/sirupsen/logrus"
)

// OnGameEndFunc is invoked once when the last pair is matched.
type OnGameEndFunc func(gameID uuid.UUID, summary Summary)

// GameEventType is an enum-like type for broadcasting game changes to the presentation layer.
type GameEventType string

const (
	EventGameStart        GameEventType = "game_start"         // New session with a fresh, fully hidden board
	EventCardStatus       GameEventType = "card_status"        // A card became hidden, flipped or matched
	EventScoreChanged     GameEventType = "score_changed"      // A seat's score changed
	EventTurnChanged      GameEventType = "turn_changed"       // The turn passed to another seat
	EventTimerTick        GameEventType = "timer_tick"         // Once per second while a timed game runs
	EventGameEnd          GameEventType = "game_end"           // Board cleared, carries the summary
	EventSound            GameEventType = "sound"              // Fire-and-forget sound effect trigger
	EventPrivateSyncState GameEventType = "private_sync_state" // Full state sync on connect/reconnect
)

// GameEvent is the single envelope pushed to clients.
type GameEvent struct {
	Type    GameEventType `json:"type"`
	Index   *int          `json:"index,omitempty"`
	Status  string        `json:"status,omitempty"`
	Icon    string        `json:"icon,omitempty"` // only set for flipped or matched cards
	Player  int           `json:"player,omitempty"`
	Score   *int          `json:"score,omitempty"`
	Elapsed *int          `json:"elapsed,omitempty"`
	Sound   string        `json:"sound,omitempty"`
	Summary *Summary      `json:"summary,omitempty"`
	State   *SyncState    `json:"state,omitempty"`
}

// Client action types accepted by HandlePlayerAction.
const (
	ActionFlip    = "action_flip"
	ActionRestart = "action_restart"
	ActionPause   = "action_pause"
	ActionResume  = "action_resume"
	ActionStop    = "action_stop"
)

// TurnState is the resolver's position in the flip cycle.
type TurnState int

const (
	StateIdle       TurnState = iota // no unresolved flips
	StateOneFlipped                  // one card face up, waiting for the second
	StateResolving                   // two cards face up, being compared
	StateAnimating                   // mismatch shown, waiting to flip back
)

func (s TurnState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOneFlipped:
		return "one_flipped"
	case StateResolving:
		return "resolving"
	case StateAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// Actor identifies who asked for a flip.
type Actor int

const (
	ActorHuman Actor = iota
	ActorOpponent
)

// MoveSuggester is an optional remote source of opponent moves.
type MoveSuggester interface {
	SuggestMove(ctx context.Context, snap models.Snapshot) (int, int, error)
}

// MemoryGame holds the entire state of one table. Each Start opens a new session on it;
// callbacks scheduled by an older session are discarded.
type MemoryGame struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID // the client allowed to play at this table
	SessionID uuid.UUID

	Mode       models.Mode
	Policy     ModePolicy
	Rules      Rules
	CardCount  int
	Difficulty models.Difficulty

	Board  *Board
	Memory *Memory
	Timer  Timer

	CurrentPlayer int
	Scores        [2]int
	Started       bool
	GameOver      bool
	Summary       *Summary

	Player *models.Player // connected client, nil until one attaches

	Mu sync.Mutex

	// Scheduler, Rand, Oracle and Log may be replaced before Start.
	Scheduler Scheduler
	Rand      *rand.Rand
	Oracle    MoveSuggester
	Log       logrus.FieldLogger

	// BroadcastFn delivers events to the presentation layer. If nil, nothing is sent.
	BroadcastFn func(ev GameEvent)

	// PlaySoundFn triggers a sound effect. If nil, sounds are broadcast as EventSound.
	PlaySoundFn func(name string)

	// OnGameEnd is invoked at game end to report results.
	OnGameEnd OnGameEndFunc

	// OnStop is invoked after Stop abandons the table. Runs with the lock held.
	OnStop func(gameID uuid.UUID)

	state            TurnState
	flipped          []int // unresolved face-up positions, at most two
	opponentInFlight bool
	pausedByClient   bool
	idleSince        time.Time // when the table was last left without a client; zero while attached

	generation int
	tickSeq    int
	taskSeq    int
	pending    map[int]Stopper

	actionIndex int
	feed        *cache.Publisher
}

// NewMemoryGame builds an idle table for mode. Call Start to deal.
func NewMemoryGame(mode models.Mode) *MemoryGame {
	id, _ := uuid.NewRandom()
	g := &MemoryGame{
		ID:            id,
		Mode:          mode,
		Policy:        PolicyFor(mode),
		Rules:         DefaultRules(),
		Board:         NewBoard(),
		Memory:        NewMemory(),
		CurrentPlayer: models.PlayerOne,
		Scheduler:     RealScheduler(),
		Rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
		Log:           logrus.StandardLogger(),
		pending:       make(map[int]Stopper),
	}
	g.Board.onChange = g.handleCardChange
	return g
}

func (g *MemoryGame) logger() logrus.FieldLogger {
	return g.Log.WithFields(logrus.Fields{"game": g.ID, "session": g.SessionID})
}

// Start deals a new shuffled deck of cardCount cards and opens a new session.
// A ConfigError leaves the current session untouched.
func (g *MemoryGame) Start(cardCount int) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	deck, err := NewDeck(cardCount, g.Rand)
	if err != nil {
		return err
	}
	g.startSession(deck)
	return nil
}

// StartWithDeck opens a new session with a fixed deck, for scripted replays.
func (g *MemoryGame) StartWithDeck(deck []string) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if err := ValidateDeck(deck); err != nil {
		return err
	}
	own := make([]string, len(deck))
	copy(own, deck)
	g.startSession(own)
	return nil
}

// Restart deals again with the current deck size and mode (12 cards if none was played yet).
func (g *MemoryGame) Restart() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	count := g.CardCount
	if count == 0 {
		count = 12
	}
	deck, err := NewDeck(count, g.Rand)
	if err != nil {
		return err
	}
	g.startSession(deck)
	return nil
}

// Stop abandons the current session, as when returning to the menu.
func (g *MemoryGame) Stop() {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	g.stop()
}

// StopIfIdle stops the table if no client has been attached since before cutoff.
func (g *MemoryGame) StopIfIdle(cutoff time.Time) bool {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if g.idleSince.IsZero() || g.idleSince.After(cutoff) {
		return false
	}
	g.stop()
	return true
}

// StopIfFinished stops a table whose game has ended and whose client has left.
func (g *MemoryGame) StopIfFinished() bool {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if g.idleSince.IsZero() || !g.GameOver {
		return false
	}
	g.stop()
	return true
}

// stop assumes lock is held.
func (g *MemoryGame) stop() {
	g.discardSession()
	g.Timer.Reset()
	g.Started = false
	g.logAction("game_stop", nil)
	if g.feed != nil {
		g.feed.Close()
		g.feed = nil
	}
	if g.OnStop != nil {
		g.OnStop(g.ID)
	}
}

// discardSession invalidates every callback of the current session. Assumes lock is held.
func (g *MemoryGame) discardSession() {
	g.generation++
	for seq, t := range g.pending {
		t.Stop()
		delete(g.pending, seq)
	}
	g.flipped = nil
	g.state = StateIdle
	g.opponentInFlight = false
	g.pausedByClient = false
}

// startSession assumes lock is held and deck is valid.
func (g *MemoryGame) startSession(deck []string) {
	g.discardSession()

	sid, _ := uuid.NewRandom()
	g.SessionID = sid
	g.CardCount = len(deck)
	g.Difficulty = models.DifficultyForCount(len(deck))
	g.Board.Reset(deck)
	g.Memory.Reset()
	g.Scores = [2]int{}
	g.CurrentPlayer = models.PlayerOne
	g.Started = true
	g.GameOver = false
	g.Summary = nil
	g.actionIndex = 0

	g.logger().WithFields(logrus.Fields{
		"mode":       g.Mode.String(),
		"cards":      g.CardCount,
		"difficulty": g.Difficulty,
	}).Info("game started")
	g.logAction("game_start", map[string]interface{}{"cards": g.CardCount, "mode": g.Mode.String()})

	state := g.syncStateLocked()
	g.fireEvent(GameEvent{Type: EventGameStart, State: &state})

	attached := g.Player != nil && g.Player.Connected
	if !attached && g.idleSince.IsZero() {
		g.idleSince = g.Scheduler.Now()
	}

	if g.Policy.Timed {
		now := g.Scheduler.Now()
		g.Timer.Start(now)
		g.tickSeq++
		if !attached {
			// the clock waits for the first client
			g.Timer.Pause(now)
			g.pausedByClient = true
			g.fireTimerTick()
			return
		}
		g.fireTimerTick()
		g.scheduleTick()
		return
	}
	g.Timer.Reset()
	g.fireScore(models.PlayerOne)
	g.fireScore(models.PlayerTwo)
	g.fireEvent(GameEvent{Type: EventTurnChanged, Player: g.CurrentPlayer})
}

// after schedules fn under the game lock. fn is dropped if the session changed meanwhile.
// Assumes lock is held.
func (g *MemoryGame) after(d time.Duration, fn func()) {
	gen := g.generation
	g.taskSeq++
	seq := g.taskSeq
	g.pending[seq] = g.Scheduler.AfterFunc(d, func() {
		g.Mu.Lock()
		defer g.Mu.Unlock()
		delete(g.pending, seq)
		if g.generation != gen {
			g.logger().WithField("stale_generation", gen).Debug("discarding stale callback")
			return
		}
		fn()
	})
}

// Flip turns the card at index face up on behalf of the human seat(s).
// It reports whether the flip was accepted; rejected flips are silently ignored.
func (g *MemoryGame) Flip(index int) bool {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.flip(index, ActorHuman)
}

// flip assumes lock is held.
func (g *MemoryGame) flip(index int, actor Actor) bool {
	if !g.acceptsFlip(index, actor) {
		g.logger().WithFields(logrus.Fields{"index": index, "actor": actor, "state": g.state.String()}).Debug("flip rejected")
		return false
	}

	g.Board.SetStatus(index, models.StatusFlipped)
	g.playSound("flip")
	g.flipped = append(g.flipped, index)
	g.logAction("card_flip", map[string]interface{}{"index": index, "player": g.CurrentPlayer, "opponent": actor == ActorOpponent})

	if len(g.flipped) == 1 {
		g.state = StateOneFlipped
		return true
	}
	g.state = StateResolving
	g.resolvePair()
	return true
}

// acceptsFlip assumes lock is held.
func (g *MemoryGame) acceptsFlip(index int, actor Actor) bool {
	if !g.Started || g.GameOver {
		return false
	}
	if g.state != StateIdle && g.state != StateOneFlipped {
		return false
	}
	if g.Policy.Timed && !g.Timer.Running() {
		return false // paused
	}
	if g.Policy.HasOpponent && g.CurrentPlayer == models.PlayerTwo {
		// the opponent's whole turn, including the gap between its flips, belongs to it
		if actor != ActorOpponent || !g.opponentInFlight {
			return false
		}
	} else if actor == ActorOpponent {
		return false
	}
	// also rejects re-flipping the card already waiting in the unresolved slot
	return isEligible(g.Board, index)
}

// resolvePair compares the two unresolved cards. Assumes lock is held.
func (g *MemoryGame) resolvePair() {
	a, b := g.flipped[0], g.flipped[1]
	iconA, _ := g.Board.IconOf(a)
	iconB, _ := g.Board.IconOf(b)

	if iconA != iconB {
		g.state = StateAnimating
		g.logAction("pair_mismatch", map[string]interface{}{"cards": []int{a, b}, "player": g.CurrentPlayer})
		g.after(g.Rules.MismatchDelay(), func() { g.finishMismatch(a, b) })
		return
	}

	g.Board.SetStatus(a, models.StatusMatched)
	g.Board.SetStatus(b, models.StatusMatched)
	g.playSound("match")
	g.Memory.Forget(iconA)
	g.flipped = nil
	g.state = StateIdle

	if g.Policy.Scored {
		g.Scores[g.CurrentPlayer-1]++
		g.fireScore(g.CurrentPlayer)
	}
	g.logAction("pair_match", map[string]interface{}{"cards": []int{a, b}, "icon": iconA, "player": g.CurrentPlayer})

	if g.Board.MatchedPairs() == g.Board.TotalPairs() {
		g.endGame()
		return
	}
	if g.Policy.HasOpponent && g.CurrentPlayer == models.PlayerTwo {
		g.after(g.Rules.OpponentTurnDelay(), g.takeOpponentTurn)
	}
}

// finishMismatch hides both cards and passes the turn. Assumes lock is held.
func (g *MemoryGame) finishMismatch(a, b int) {
	g.Board.SetStatus(a, models.StatusHidden)
	g.Board.SetStatus(b, models.StatusHidden)
	g.flipped = nil
	g.state = StateIdle

	if !g.Policy.Alternating {
		return
	}
	if g.CurrentPlayer == models.PlayerOne {
		g.CurrentPlayer = models.PlayerTwo
	} else {
		g.CurrentPlayer = models.PlayerOne
	}
	g.fireEvent(GameEvent{Type: EventTurnChanged, Player: g.CurrentPlayer})
	g.logAction("turn_change", map[string]interface{}{"player": g.CurrentPlayer})

	if g.Policy.HasOpponent && g.CurrentPlayer == models.PlayerTwo {
		g.after(g.Rules.OpponentTurnDelay(), g.takeOpponentTurn)
	}
}

// takeOpponentTurn picks two cards and plays them with human-like pacing. Assumes lock is held.
func (g *MemoryGame) takeOpponentTurn() {
	if g.GameOver || !g.Started || g.CurrentPlayer != models.PlayerTwo || g.opponentInFlight {
		return
	}
	g.opponentInFlight = true

	if g.Mode == models.ModeRemoteAI && g.Oracle != nil {
		g.askOracle()
		return
	}

	k := KnowledgeChance(g.Difficulty)
	if g.Rules.ForceSmartOpponent || g.Mode == models.ModeRemoteAI {
		k = ForcedSmart
	}
	first, second, ok := PickPair(g.Board, g.Memory, k, g.Rand)
	if !ok {
		g.logger().Warn("opponent found no cards to flip, abandoning turn")
		g.opponentInFlight = false
		return
	}
	g.playOpponentPair(first, second)
}

// askOracle queries the remote service without holding the lock and falls back to
// forced-smart play on any failure. Assumes lock is held on entry.
func (g *MemoryGame) askOracle() {
	snap := g.snapshotLocked()
	gen := g.generation
	oracle := g.Oracle
	timeout := g.Rules.OracleTimeout()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		first, second, err := oracle.SuggestMove(ctx, snap)

		g.Mu.Lock()
		defer g.Mu.Unlock()
		if g.generation != gen {
			g.logger().Debug("discarding remote move for a superseded session")
			return
		}
		if err == nil && (first == second || !isEligible(g.Board, first) || !isEligible(g.Board, second)) {
			err = errIneligibleSuggestion
		}
		if err != nil {
			g.logger().WithError(err).Warn("remote move unavailable, using local strategy")
			var ok bool
			first, second, ok = PickPair(g.Board, g.Memory, ForcedSmart, g.Rand)
			if !ok {
				g.opponentInFlight = false
				return
			}
		}
		g.playOpponentPair(first, second)
	}()
}

// playOpponentPair schedules the opponent's two flips. Assumes lock is held.
func (g *MemoryGame) playOpponentPair(first, second int) {
	g.logAction("opponent_choice", map[string]interface{}{"cards": []int{first, second}})
	g.after(g.Rules.OpponentFirstFlipDelay(), func() {
		g.flip(first, ActorOpponent)
		g.after(g.Rules.OpponentSecondFlipDelay(), func() {
			g.flip(second, ActorOpponent)
			g.opponentInFlight = false
		})
	})
}

// endGame finalizes the session. Assumes lock is held.
func (g *MemoryGame) endGame() {
	if g.GameOver {
		return
	}
	g.GameOver = true
	g.state = StateIdle

	elapsed := 0
	if g.Policy.Timed {
		now := g.Scheduler.Now()
		g.Timer.Pause(now)
		g.tickSeq++
		elapsed = g.Timer.ElapsedSeconds(now)
	}

	summary := Summarize(g.Policy, g.Difficulty, g.Scores, g.Board.TotalPairs(), elapsed)
	g.Summary = &summary

	g.logAction(string(EventGameEnd), map[string]interface{}{
		"winner":  summary.Winner,
		"scores":  []int{g.Scores[0], g.Scores[1]},
		"elapsed": elapsed,
		"rank":    string(summary.Rank.Tier),
	})
	g.fireEvent(GameEvent{Type: EventGameEnd, Summary: &summary})

	if g.OnGameEnd != nil {
		g.OnGameEnd(g.ID, summary)
	}
	g.logger().WithFields(logrus.Fields{"winner": summary.Winner, "rank": summary.Rank.Tier}).Info("game ended")
}

// Pause stops the clock of a timed game, e.g. while the client navigates away.
func (g *MemoryGame) Pause() bool {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.pause()
}

// pause assumes lock is held.
func (g *MemoryGame) pause() bool {
	if !g.Policy.Timed || !g.Started || g.GameOver {
		return false
	}
	if !g.Timer.Pause(g.Scheduler.Now()) {
		return false
	}
	g.tickSeq++
	g.logAction("timer_pause", nil)
	return true
}

// Resume restarts the clock of a paused timed game.
func (g *MemoryGame) Resume() bool {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.resume()
}

// resume assumes lock is held.
func (g *MemoryGame) resume() bool {
	if !g.Policy.Timed || !g.Started || g.GameOver {
		return false
	}
	if !g.Timer.Resume(g.Scheduler.Now()) {
		return false
	}
	g.tickSeq++
	g.fireTimerTick()
	g.scheduleTick()
	g.logAction("timer_resume", nil)
	return true
}

// scheduleTick keeps a once-per-second tick chain alive while the timer runs. Assumes lock is held.
func (g *MemoryGame) scheduleTick() {
	seq := g.tickSeq
	g.after(time.Second, func() {
		if seq != g.tickSeq || !g.Timer.Running() || g.GameOver {
			return
		}
		g.fireTimerTick()
		g.scheduleTick()
	})
}

// HandleReconnect attaches a client, routing events to send, and resumes a game paused on disconnect.
// Any previously attached client stops receiving events.
func (g *MemoryGame) HandleReconnect(p *models.Player, send func(ev GameEvent)) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Player != nil && g.Player != p {
		g.Player.Connected = false
	}
	p.Connected = true
	g.Player = p
	g.BroadcastFn = send
	g.idleSince = time.Time{}
	g.logAction("player_connect", map[string]interface{}{"player": p.ID})

	if g.pausedByClient {
		g.pausedByClient = false
		g.resume()
	}
	state := g.syncStateLocked()
	g.fireEvent(GameEvent{Type: EventPrivateSyncState, State: &state})
}

// HandleDisconnect detaches p if it is still the attached client. A running timed game
// is paused until a client returns. Event delivery stops until the next HandleReconnect.
func (g *MemoryGame) HandleDisconnect(p *models.Player) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Player == nil || g.Player != p {
		return
	}
	p.Connected = false
	p.Conn = nil
	g.BroadcastFn = nil
	g.idleSince = g.Scheduler.Now()
	g.logAction("player_disconnect", map[string]interface{}{"player": p.ID})
	if g.pause() {
		g.pausedByClient = true
	}
}

// IdleSince reports when the table lost its client. ok is false while a client is attached.
func (g *MemoryGame) IdleSince() (since time.Time, ok bool) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.idleSince, !g.idleSince.IsZero()
}

// Finished reports whether the current session has ended.
func (g *MemoryGame) Finished() bool {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.GameOver
}

// Locked reports whether input is currently refused: a pair is being resolved or the opponent is playing.
func (g *MemoryGame) Locked() bool {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.lockedLocked()
}

func (g *MemoryGame) lockedLocked() bool {
	return g.state == StateResolving || g.state == StateAnimating || g.opponentInFlight
}

// State returns the resolver state.
func (g *MemoryGame) State() TurnState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.state
}

// UnresolvedFlips returns the face-up cards awaiting comparison.
func (g *MemoryGame) UnresolvedFlips() []int {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	out := make([]int, len(g.flipped))
	copy(out, g.flipped)
	return out
}

// handleCardChange forwards status changes to the presentation layer and the opponent's memory.
// Runs inside Board.SetStatus, so the lock is held.
func (g *MemoryGame) handleCardChange(card models.Card, prev models.CardStatus) {
	if card.Status == models.StatusFlipped && prev != models.StatusMatched {
		g.Memory.Observe(card.Icon, card.Index)
	}
	idx := card.Index
	ev := GameEvent{Type: EventCardStatus, Index: &idx, Status: card.Status.String()}
	if card.Status != models.StatusHidden {
		ev.Icon = card.Icon
	}
	g.fireEvent(ev)
}

// playSound assumes lock is held.
func (g *MemoryGame) playSound(name string) {
	if g.PlaySoundFn != nil {
		g.PlaySoundFn(name)
		return
	}
	g.fireEvent(GameEvent{Type: EventSound, Sound: name})
}

// fireScore assumes lock is held.
func (g *MemoryGame) fireScore(player int) {
	score := g.Scores[player-1]
	g.fireEvent(GameEvent{Type: EventScoreChanged, Player: player, Score: &score})
}

// fireTimerTick assumes lock is held.
func (g *MemoryGame) fireTimerTick() {
	elapsed := g.Timer.ElapsedSeconds(g.Scheduler.Now())
	g.fireEvent(GameEvent{Type: EventTimerTick, Elapsed: &elapsed})
}

// fireEvent assumes lock is held.
func (g *MemoryGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

// feedBuffer is how many records may wait for Redis before new ones are dropped.
const feedBuffer = 256

// logAction publishes the action on the game's live feed. Assumes lock is held.
func (g *MemoryGame) logAction(actionType string, payload map[string]interface{}) {
	g.actionIndex++
	if payload == nil {
		payload = make(map[string]interface{})
	}
	record := cache.GameEventRecord{
		GameID:     g.ID,
		SessionID:  g.SessionID,
		EventIndex: g.actionIndex,
		EventType:  actionType,
		Payload:    payload,
		Timestamp:  time.Now().UnixMilli(),
	}
	if cache.Rdb == nil {
		return
	}
	if g.feed == nil {
		if !g.Started {
			return // stopped tables have no feed
		}
		log := g.Log
		g.feed = cache.NewPublisher(feedBuffer, func(rec cache.GameEventRecord, err error) {
			log.WithError(err).WithFields(logrus.Fields{"game": rec.GameID, "event": rec.EventIndex}).Warn("failed to publish game event")
		})
	}
	if !g.feed.Enqueue(record) {
		g.logger().WithField("event", record.EventIndex).Warn("event feed backed up, dropping event")
	}
}

// HandlePlayerAction routes a client request to the matching operation.
// It reports whether the request changed anything; unknown actions return an error.
func (g *MemoryGame) HandlePlayerAction(action models.GameAction) (bool, error) {
	switch action.ActionType {
	case ActionFlip:
		return g.Flip(action.Index), nil
	case ActionRestart:
		if err := g.Restart(); err != nil {
			return false, err
		}
		return true, nil
	case ActionPause:
		return g.Pause(), nil
	case ActionResume:
		return g.Resume(), nil
	case ActionStop:
		g.Stop()
		return true, nil
	default:
		return false, fmt.Errorf("unknown action type: %s", action.ActionType)
	}
}
