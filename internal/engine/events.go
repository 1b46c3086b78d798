package engine

import (
	"sync"

	"github.com/TemirB/order-print-agent/internal/domain"

	"go.uber.org/zap"
)

type EventKind string

const (
	EventStatusUpdate        EventKind = "statusUpdate"
	EventPendingOrdersLoaded EventKind = "pendingOrdersLoaded"
	EventNewOrdersFound      EventKind = "newOrdersFound"
	EventDispatching         EventKind = "dispatching"
	EventDispatched          EventKind = "dispatched"
	EventAutoDispatchToggled EventKind = "autoDispatchToggled"
)

// Event is the single wire shape for all six notifications; only the fields
// relevant to Kind are populated.
type Event struct {
	Kind    EventKind          `json:"kind"`
	State   domain.EngineState `json:"state,omitempty"`
	Message string             `json:"message,omitempty"`
	Orders  []domain.Order     `json:"orders,omitempty"`
	Order   *domain.Order      `json:"order,omitempty"`
	Success bool               `json:"success"`
	Enabled bool               `json:"enabled"`
}

// Bus fans events out to any number of subscribers. Publish never blocks:
// a subscriber whose buffer is full loses the event, and with no
// subscribers events are simply dropped.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	logger *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		subs:   make(map[int]chan Event),
		logger: logger,
	}
}

// Subscribe registers a new observer channel. The returned func detaches it
// and closes the channel; calling it twice is safe.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.logger.Debug("event dropped, subscriber buffer full",
				zap.String("kind", string(ev.Kind)),
			)
		}
	}
}
