package kafkaclient

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrStopped is returned by Publish once Stop has been called or the
// publishing loop has exited.
var ErrStopped = errors.New("kafka producer stopped")

// KafkaWriter defines the interface for a Kafka message writer.
// This allows for easy mocking in unit tests.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer publishes messages from a background loop so callers never
// wait on the broker.
type KafkaProducer struct {
	writer KafkaWriter
	log    *zap.Logger
	// a channel to signal a graceful shutdown.
	doneChan chan struct{}
	stopOnce sync.Once
	// a wait group to ensure the loop has exited before the writer is closed.
	wg sync.WaitGroup
	// queued messages waiting for the publishing loop.
	messageChan chan kafka.Message
	// mu guards closed; Publish holds it shared while queueing so nothing
	// lands in messageChan after the final drain.
	mu     sync.RWMutex
	closed bool
}

// NewKafkaProducer creates a producer for topic on the given brokers.
func NewKafkaProducer(topic string, brokers []string, log *zap.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return newProducer(writer, log, 64)
}

func newProducer(writer KafkaWriter, log *zap.Logger, buffer int) *KafkaProducer {
	return &KafkaProducer{
		writer:      writer,
		log:         log,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message, buffer),
	}
}

// Publish queues a message. It fails fast when the queue is full or the
// producer is stopped instead of blocking the caller.
func (kp *KafkaProducer) Publish(key, value []byte) error {
	kp.mu.RLock()
	defer kp.mu.RUnlock()
	if kp.closed {
		return ErrStopped
	}
	select {
	case kp.messageChan <- kafka.Message{Key: key, Value: value}:
		return nil
	default:
		return errors.New("kafka producer queue is full")
	}
}

// StartPublishing begins the publishing loop in a separate goroutine.
func (kp *KafkaProducer) StartPublishing(ctx context.Context) {
	kp.wg.Add(1)
	go func() {
		defer kp.wg.Done()
		kp.log.Debug("starting kafka producer loop")

		for {
			select {
			case <-ctx.Done():
				kp.log.Debug("context canceled, draining producer queue")
				kp.markClosed()
				kp.drain()
				return
			case <-kp.doneChan:
				kp.log.Debug("shutdown signal received, draining producer queue")
				kp.drain()
				return
			case msg := <-kp.messageChan:
				kp.write(context.Background(), msg)
			}
		}
	}()
}

func (kp *KafkaProducer) markClosed() {
	kp.mu.Lock()
	kp.closed = true
	kp.mu.Unlock()
}

func (kp *KafkaProducer) drain() {
	for {
		select {
		case msg := <-kp.messageChan:
			kp.write(context.Background(), msg)
		default:
			return
		}
	}
}

func (kp *KafkaProducer) write(ctx context.Context, msg kafka.Message) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := kp.writer.WriteMessages(ctx, msg); err != nil {
		kp.log.Warn("failed to publish message", zap.ByteString("key", msg.Key), zap.Error(err))
		return
	}
	kp.log.Debug("message published", zap.ByteString("key", msg.Key))
}

// Stop flushes queued messages and closes the writer.
func (kp *KafkaProducer) Stop() {
	kp.stopOnce.Do(func() {
		kp.log.Debug("attempting to stop kafka producer")
		kp.markClosed()
		close(kp.doneChan)
		kp.wg.Wait()
		// Covers a loop that exited on ctx, or was never started.
		kp.drain()
		if err := kp.writer.Close(); err != nil {
			kp.log.Warn("failed to close kafka writer", zap.Error(err))
		}
		kp.log.Info("kafka producer stopped gracefully")
	})
}
