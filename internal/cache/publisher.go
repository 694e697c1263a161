package cache

import (
	"context"
	"sync"
	"time"
)

// publishTimeout bounds each Redis publish made by a Publisher.
const publishTimeout = 2 * time.Second

// Publisher delivers one game's records on a single goroutine, so subscribers see them in
// EventIndex order. Enqueue never blocks; records that do not fit the buffer are dropped.
type Publisher struct {
	mu     sync.Mutex
	closed bool
	queue  chan GameEventRecord
	done   chan struct{}

	publish func(ctx context.Context, rec GameEventRecord) error
	onError func(rec GameEventRecord, err error)
}

// NewPublisher starts a publisher backed by PublishGameEvent. onError may be nil.
func NewPublisher(buffer int, onError func(rec GameEventRecord, err error)) *Publisher {
	return newPublisher(buffer, PublishGameEvent, onError)
}

func newPublisher(buffer int, publish func(context.Context, GameEventRecord) error, onError func(GameEventRecord, error)) *Publisher {
	if buffer < 1 {
		buffer = 1
	}
	p := &Publisher{
		queue:   make(chan GameEventRecord, buffer),
		done:    make(chan struct{}),
		publish: publish,
		onError: onError,
	}
	go p.run()
	return p
}

func (p *Publisher) run() {
	defer close(p.done)
	for rec := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := p.publish(ctx, rec)
		cancel()
		if err != nil && p.onError != nil {
			p.onError(rec, err)
		}
	}
}

// Enqueue hands rec to the publishing goroutine. It reports false if the publisher is closed
// or its buffer is full.
func (p *Publisher) Enqueue(rec GameEventRecord) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	select {
	case p.queue <- rec:
		return true
	default:
		return false
	}
}

// Close stops accepting records. Queued records are still published.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.queue)
}

// Wait blocks until every queued record has been published after Close.
func (p *Publisher) Wait() {
	<-p.done
}
