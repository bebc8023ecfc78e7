package events

import (
	"context"
	"encoding/json"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	ScenarioMessageKind = "migstack.scenarios.events.scenario"
	defaultTopic        = "migstack.scenarios.events"
)

// Writer is the interface to be implemented by the underlying writer.
type Writer interface {
	Write(ctx context.Context, topic string, e cloudevents.Event) error
	Close(ctx context.Context) error
}

// EventProducer wraps a Writer with an unbounded queue so emitting an event
// never blocks the computation that produced it.
type EventProducer struct {
	queue    *queue
	notifyCh chan struct{}
	doneCh   chan struct{}
	writer   Writer
	topic    string
}

type ProducerOption func(*EventProducer)

func WithOutputTopic(topic string) ProducerOption {
	return func(e *EventProducer) {
		e.topic = topic
	}
}

func NewEventProducer(w Writer, opts ...ProducerOption) *EventProducer {
	ep := &EventProducer{
		queue:    newQueue(),
		notifyCh: make(chan struct{}, 1),
		doneCh:   make(chan struct{}),
		writer:   w,
		topic:    defaultTopic,
	}

	for _, o := range opts {
		o(ep)
	}

	go ep.run()
	return ep
}

// WriteScenarioEvent enqueues a scenario lifecycle event.
func (ep *EventProducer) WriteScenarioEvent(event ScenarioEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ep.queue.PushBack(&message{Kind: ScenarioMessageKind, Data: data})
	select {
	case ep.notifyCh <- struct{}{}:
	default:
	}
	return nil
}

func (ep *EventProducer) Close() error {
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(closeCtx)
	g.Go(func() error {
		close(ep.doneCh)
		return ep.writer.Close(ctx)
	})
	if err := g.Wait(); err != nil {
		zap.S().Named("event_producer").Errorf("event producer closed with error: %s", err)
		return err
	}

	zap.S().Named("event_producer").Info("event producer closed")
	return nil
}

func (ep *EventProducer) run() {
	for {
		if ep.queue.Size() == 0 {
			select {
			case <-ep.notifyCh:
			case <-ep.doneCh:
				return
			}
		}

		msg := ep.queue.Pop()
		if msg == nil {
			continue
		}

		e := cloudevents.NewEvent()
		e.SetID(uuid.NewString())
		e.SetSource("migstack.scenario-planner")
		e.SetType(msg.Kind)
		_ = e.SetData(*cloudevents.StringOfApplicationJSON(), msg.Data)

		if err := ep.writer.Write(context.TODO(), ep.topic, e); err != nil {
			zap.S().Named("event_producer").Errorw("failed to send message", "error", err, "event", e)
		}
	}
}
