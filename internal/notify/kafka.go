package notify

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publisher is the part of kafkaclient.KafkaProducer the Kafka sink uses.
type Publisher interface {
	Publish(key, value []byte) error
}

// KafkaNotifier publishes notices as JSON, keyed by kind.
type KafkaNotifier struct {
	pub Publisher
}

func NewKafkaNotifier(pub Publisher) *KafkaNotifier {
	return &KafkaNotifier{pub: pub}
}

func (k *KafkaNotifier) Notify(_ context.Context, n Notice) error {
	value, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notice %s: %w", n.ID, err)
	}
	if err := k.pub.Publish([]byte(n.Kind), value); err != nil {
		return fmt.Errorf("publish notice %s: %w", n.ID, err)
	}
	return nil
}
