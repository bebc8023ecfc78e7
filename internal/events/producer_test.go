package events

import (
	"context"
	"sync"
	"testing"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

type recordingWriter struct {
	lock   sync.Mutex
	events []cloudevents.Event
	topics []string
}

func (w *recordingWriter) Write(_ context.Context, topic string, e cloudevents.Event) error {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.events = append(w.events, e)
	w.topics = append(w.topics, topic)
	return nil
}

func (w *recordingWriter) Close(_ context.Context) error { return nil }

func (w *recordingWriter) count() int {
	w.lock.Lock()
	defer w.lock.Unlock()
	return len(w.events)
}

var _ = Describe("queue", func() {
	It("pops in push order", func() {
		q := newQueue()
		q.PushBack(&message{Kind: ScenarioMessageKind, Data: []byte("msg1")})
		q.PushBack(&message{Kind: ScenarioMessageKind, Data: []byte("msg2")})
		Expect(q.Size()).To(Equal(2))

		Expect(q.Pop().Data).To(Equal([]byte("msg1")))
		Expect(q.Pop().Data).To(Equal([]byte("msg2")))
		Expect(q.Pop()).To(BeNil())
		Expect(q.Size()).To(Equal(0))
	})
})

var _ = Describe("event producer", func() {
	It("delivers scenario events to the writer", func() {
		writer := &recordingWriter{}
		producer := NewEventProducer(writer, WithOutputTopic("test.topic"))

		err := producer.WriteScenarioEvent(ScenarioEvent{
			ScenarioID: "abc",
			Action:     ScenarioCreated,
			Strategy:   api.StrategyKindRehost,
			VMCount:    3,
		})
		Expect(err).To(BeNil())

		Eventually(writer.count, 2*time.Second).Should(Equal(1))

		writer.lock.Lock()
		defer writer.lock.Unlock()
		Expect(writer.topics[0]).To(Equal("test.topic"))
		Expect(writer.events[0].Type()).To(Equal(ScenarioMessageKind))
	})

	It("drains queued events in order", func() {
		writer := &recordingWriter{}
		producer := NewEventProducer(writer)

		for i := 0; i < 5; i++ {
			Expect(producer.WriteScenarioEvent(ScenarioEvent{ScenarioID: "s", Action: ScenarioRecalculated})).To(BeNil())
		}

		Eventually(writer.count, 2*time.Second).Should(Equal(5))
	})
})
