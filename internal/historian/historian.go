// internal/historian/historian.go is an asynchronous archiver that reads game events from the
// Redis feed and persists them in batches.
package historian

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/memoria/internal/cache"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Sink is where archived events end up.
type Sink interface {
	WriteEvents(ctx context.Context, records []cache.GameEventRecord) error
	MarkAbandoned(ctx context.Context, gameID uuid.UUID) error
}

// Options tune batching and abandonment.
type Options struct {
	BatchSize  int
	FlushDelay time.Duration
	Inactivity time.Duration // a game silent this long is marked abandoned
	SweepEvery time.Duration
}

// DefaultOptions flushes every 20 events or 500ms and abandons games after 10 minutes.
func DefaultOptions() Options {
	return Options{
		BatchSize:  20,
		FlushDelay: 500 * time.Millisecond,
		Inactivity: 10 * time.Minute,
		SweepEvery: time.Minute,
	}
}

// Service batches event records and tracks per-game activity.
type Service struct {
	sink Sink
	log  logrus.FieldLogger
	opts Options

	lastActivity sync.Map // map[uuid.UUID]time.Time

	batchMu sync.Mutex
	batch   []cache.GameEventRecord
}

func NewService(sink Sink, log logrus.FieldLogger, opts Options) *Service {
	def := DefaultOptions()
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1
	}
	if opts.FlushDelay <= 0 {
		opts.FlushDelay = def.FlushDelay
	}
	if opts.SweepEvery <= 0 {
		opts.SweepEvery = def.SweepEvery
	}
	return &Service{
		sink:  sink,
		log:   log,
		opts:  opts,
		batch: make([]cache.GameEventRecord, 0, opts.BatchSize),
	}
}

// Record queues rec and flushes once the batch is full.
func (s *Service) Record(ctx context.Context, rec cache.GameEventRecord, now time.Time) {
	switch rec.EventType {
	case "game_end", "game_stop":
		s.lastActivity.Delete(rec.GameID)
	default:
		s.lastActivity.Store(rec.GameID, now)
	}

	s.batchMu.Lock()
	s.batch = append(s.batch, rec)
	full := len(s.batch) >= s.opts.BatchSize
	s.batchMu.Unlock()

	if full {
		s.Flush(ctx)
	}
}

// Flush writes the pending batch in one call. On failure the records are kept for the next flush.
func (s *Service) Flush(ctx context.Context) error {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	if len(s.batch) == 0 {
		return nil
	}
	pending := make([]cache.GameEventRecord, len(s.batch))
	copy(pending, s.batch)

	if err := s.sink.WriteEvents(ctx, pending); err != nil {
		s.log.WithError(err).WithField("events", len(pending)).Error("failed to archive events")
		return err
	}
	s.batch = s.batch[:0]
	s.log.Debugf("Archived %d events.", len(pending))
	return nil
}

// Pending reports how many records await a flush.
func (s *Service) Pending() int {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	return len(s.batch)
}

// SweepInactive marks every game idle for longer than Inactivity as abandoned and stops tracking it.
func (s *Service) SweepInactive(ctx context.Context, now time.Time) []uuid.UUID {
	var abandoned []uuid.UUID
	s.lastActivity.Range(func(key, val interface{}) bool {
		gameID, ok1 := key.(uuid.UUID)
		last, ok2 := val.(time.Time)
		if !ok1 || !ok2 || now.Sub(last) <= s.opts.Inactivity {
			return true
		}
		if err := s.sink.MarkAbandoned(ctx, gameID); err != nil {
			s.log.WithError(err).WithField("game", gameID).Warn("failed to mark game abandoned")
			return true
		}
		s.lastActivity.Delete(gameID)
		abandoned = append(abandoned, gameID)
		s.log.WithField("game", gameID).Info("marked game abandoned due to inactivity")
		return true
	})
	return abandoned
}

// Run consumes msgs until ctx is done or the channel closes, then flushes what is left.
func (s *Service) Run(ctx context.Context, msgs <-chan *redis.Message) {
	flush := time.NewTicker(s.opts.FlushDelay)
	defer flush.Stop()
	sweep := time.NewTicker(s.opts.SweepEvery)
	defer sweep.Stop()

	defer func() {
		// ctx may already be cancelled
		final, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Flush(final)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-flush.C:
			s.Flush(ctx)
		case now := <-sweep.C:
			s.SweepInactive(ctx, now)
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			rec, err := cache.DecodeGameEvent(msg.Payload)
			if err != nil {
				s.log.WithError(err).WithField("channel", msg.Channel).Warn("skipping undecodable event")
				continue
			}
			s.Record(ctx, rec, time.Now())
		}
	}
}
