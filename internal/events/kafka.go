package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/orgball2608/board-api/pkg/errors"
	"github.com/orgball2608/board-api/pkg/logger"
	kgo "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kgo.Message) error
	Close() error
}

type Kafka struct {
	w      messageWriter
	logger logger.Logger
}

var _ Publisher = (*Kafka)(nil)

func NewKafka(brokers []string, topic string, log logger.Logger) *Kafka {
	w := &kgo.Writer{
		Addr:         kgo.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kgo.Hash{},
		RequiredAcks: kgo.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return newKafka(w, log)
}

func newKafka(w messageWriter, log logger.Logger) *Kafka {
	return &Kafka{w: w, logger: log.WithComponent("EventPublisher")}
}

func (k *Kafka) Publish(ctx context.Context, event Event) error {
	b, err := json.Marshal(event)
	if err != nil {
		return errors.Serialization(err, "failed to encode event")
	}

	err = k.w.WriteMessages(ctx, kgo.Message{
		Key:   []byte(event.Key()),
		Value: b,
		Time:  event.Timestamp,
		Headers: []kgo.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return errors.Transport(err, "failed to publish "+event.Type)
	}

	k.logger.Debug("Event published", "type", event.Type, "id", event.ID)
	return nil
}

func (k *Kafka) Close() error {
	return k.w.Close()
}
