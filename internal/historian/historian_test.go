// internal/historian/historian_test.go
package historian

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/memoria/internal/cache"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	mu        sync.Mutex
	written   [][]cache.GameEventRecord
	abandoned []uuid.UUID
	fail      bool
}

func (f *fakeSink) WriteEvents(_ context.Context, recs []cache.GameEventRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("db down")
	}
	f.written = append(f.written, recs)
	return nil
}

func (f *fakeSink) MarkAbandoned(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.abandoned = append(f.abandoned, id)
	return nil
}

func (f *fakeSink) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.written {
		n += len(b)
	}
	return n
}

func newService(sink Sink, batch int) *Service {
	logger, _ := test.NewNullLogger()
	opts := DefaultOptions()
	opts.BatchSize = batch
	return NewService(sink, logger, opts)
}

func record(gameID uuid.UUID, idx int, typ string) cache.GameEventRecord {
	return cache.GameEventRecord{GameID: gameID, EventIndex: idx, EventType: typ, Payload: map[string]interface{}{}}
}

func TestRecordFlushesFullBatch(t *testing.T) {
	sink := &fakeSink{}
	s := newService(sink, 3)
	ctx := context.Background()
	id := uuid.New()
	now := time.Now()

	s.Record(ctx, record(id, 1, "card_flip"), now)
	s.Record(ctx, record(id, 2, "card_flip"), now)
	assert.Empty(t, sink.written)
	assert.Equal(t, 2, s.Pending())

	s.Record(ctx, record(id, 3, "pair_match"), now)
	require.Len(t, sink.written, 1)
	assert.Len(t, sink.written[0], 3)
	assert.Zero(t, s.Pending())
}

func TestFailedFlushKeepsRecords(t *testing.T) {
	sink := &fakeSink{fail: true}
	s := newService(sink, 10)
	ctx := context.Background()

	s.Record(ctx, record(uuid.New(), 1, "card_flip"), time.Now())
	assert.Error(t, s.Flush(ctx))
	assert.Equal(t, 1, s.Pending())

	sink.fail = false
	require.NoError(t, s.Flush(ctx))
	assert.Zero(t, s.Pending())
	assert.Equal(t, 1, sink.total())
}

func TestSweepInactive(t *testing.T) {
	sink := &fakeSink{}
	s := newService(sink, 100)
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	idle, busy, finished := uuid.New(), uuid.New(), uuid.New()
	s.Record(ctx, record(idle, 1, "game_start"), start)
	s.Record(ctx, record(finished, 1, "game_start"), start)
	s.Record(ctx, record(finished, 2, "game_end"), start)
	s.Record(ctx, record(busy, 1, "game_start"), start.Add(9*time.Minute))

	got := s.SweepInactive(ctx, start.Add(11*time.Minute))
	assert.Equal(t, []uuid.UUID{idle}, got)
	assert.Equal(t, []uuid.UUID{idle}, sink.abandoned)

	assert.Empty(t, s.SweepInactive(ctx, start.Add(12*time.Minute)), "idle game is only marked once")
}

func TestRunDrainsFeed(t *testing.T) {
	sink := &fakeSink{}
	s := newService(sink, 100)

	msgs := make(chan *redis.Message, 4)
	id := uuid.New()
	for i := 1; i <= 2; i++ {
		data, err := json.Marshal(record(id, i, "card_flip"))
		require.NoError(t, err)
		msgs <- &redis.Message{Channel: cache.ChannelFor(id), Payload: string(data)}
	}
	msgs <- &redis.Message{Channel: cache.ChannelFor(id), Payload: "{broken"}
	close(msgs)

	done := make(chan struct{})
	go func() {
		s.Run(context.Background(), msgs)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the feed closed")
	}
	assert.Equal(t, 2, sink.total())
}
