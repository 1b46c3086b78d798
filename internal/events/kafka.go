package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/TemirB/order-print-agent/internal/engine"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// writer is the slice of *kafka.Writer the sink needs.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Sink forwards engine events to a Kafka topic so other systems (dashboards,
// audit) can follow what the agent is doing. It is a plain bus subscriber:
// if it cannot keep up, events are dropped at the bus, never buffered here.
type Sink struct {
	writer writer
	events <-chan engine.Event
	unsub  func()
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewSink(brokers []string, topic string, bus *engine.Bus, logger *zap.Logger) *Sink {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}
	return newSink(w, bus, logger)
}

func newSink(w writer, bus *engine.Bus, logger *zap.Logger) *Sink {
	ch, unsub := bus.Subscribe(256)
	return &Sink{
		writer: w,
		events: ch,
		unsub:  unsub,
		logger: logger,
	}
}

// Run pumps events until the context is cancelled or the subscription is
// closed. Write errors are logged and the event is lost; the sink is an
// observer, not part of the dispatch path.
func (s *Sink) Run(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-s.events:
				if !ok {
					return
				}
				s.publish(ctx, ev)
			}
		}
	}()
}

func (s *Sink) publish(ctx context.Context, ev engine.Event) {
	value, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("event marshal failed", zap.Error(err))
		return
	}
	msg := kafka.Message{
		Key:   []byte(ev.Kind),
		Value: value,
		Time:  time.Now(),
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		s.logger.Warn("event publish failed",
			zap.String("kind", string(ev.Kind)),
			zap.Error(err),
		)
	}
}

// Close detaches from the bus, drains the pump and closes the writer.
func (s *Sink) Close() error {
	s.unsub()
	s.wg.Wait()
	return s.writer.Close()
}
