package events

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	TypeStarted               = "started"
	TypeProgress              = "progress"
	TypeFinished              = "finished"
	TypeNotification          = "notification"
	TypeState                 = "state"
	TypeBranches              = "branches"
	TypeRepositoryOpened      = "repository.opened"
	TypeRepositoryInitialized = "repository.initialized"
)

// Event is one message of the public event stream. Data never carries credentials.
type Event struct {
	ID        uint64    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Hub fans events out to subscribers. Publish never blocks: a subscriber whose buffer is full
// misses the event.
type Hub struct {
	config Config
	logger *zap.Logger

	mu          sync.RWMutex
	subscribers map[uint64]chan Event
	nextSub     uint64
	closed      bool

	seq     atomic.Uint64
	dropped atomic.Uint64
}

func NewHub(config Config, logger *zap.Logger) *Hub {
	if config.SubscriberBuffer <= 0 {
		config.SubscriberBuffer = DefaultConfig().SubscriberBuffer
	}

	return &Hub{
		config:      config,
		logger:      logger,
		subscribers: make(map[uint64]chan Event),
	}
}

// Subscribe returns a channel receiving every event published from now on and a function
// releasing it. The channel is closed on release or when the hub closes.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.config.SubscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	h.nextSub++
	id := h.nextSub
	h.subscribers[id] = ch

	h.logger.Debug("subscriber added", zap.Uint64("subscriber", id), zap.Int("total", len(h.subscribers)))

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.unsubscribe(id) })
	}
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Publish stamps and delivers an event of the given type.
func (h *Hub) Publish(eventType string, data any) {
	e := Event{
		ID:        h.seq.Add(1),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for id, ch := range h.subscribers {
		select {
		case ch <- e:
		default:
			h.dropped.Add(1)
			h.logger.Debug("event dropped for slow subscriber",
				zap.Uint64("subscriber", id),
				zap.String("type", eventType))
		}
	}
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers)
}

// Dropped returns how many deliveries were skipped because of full buffers.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Close releases every subscriber. Later publishes are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for id, ch := range h.subscribers {
		delete(h.subscribers, id)
		close(ch)
	}
}
