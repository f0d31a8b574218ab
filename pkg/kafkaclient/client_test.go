package kafkaclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mockWriter simulates the kafka-go Writer for unit testing.
type mockWriter struct {
	mu       sync.Mutex
	written  []kafka.Message
	failures int
	isClosed bool
}

func (mw *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	if mw.isClosed {
		return errors.New("kafka: writer closed")
	}
	if mw.failures > 0 {
		mw.failures--
		return errors.New("broker unavailable")
	}
	mw.written = append(mw.written, msgs...)
	return nil
}

func (mw *mockWriter) Close() error {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.isClosed = true
	return nil
}

func (mw *mockWriter) values() []string {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	out := make([]string, 0, len(mw.written))
	for _, m := range mw.written {
		out = append(out, string(m.Value))
	}
	return out
}

// TestKafkaProducer_PublishesInOrder tests the full publish flow using a mock writer.
func TestKafkaProducer_PublishesInOrder(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	writer := &mockWriter{}
	producer := newProducer(writer, zap.NewNop(), 10)
	producer.StartPublishing(ctx)

	const expectedMessages = 3
	for i := 0; i < expectedMessages; i++ {
		require.NoError(t, producer.Publish([]byte("k"), []byte(fmt.Sprintf("mock-message-%d", i))))
	}

	producer.Stop()

	assert.Equal(t, []string{"mock-message-0", "mock-message-1", "mock-message-2"}, writer.values())
	assert.True(t, writer.isClosed)
}

// TestKafkaProducer_WriteFailureIsNotFatal verifies that a failing write is
// logged and the loop keeps publishing.
func TestKafkaProducer_WriteFailureIsNotFatal(t *testing.T) {
	writer := &mockWriter{failures: 1}
	producer := newProducer(writer, zap.NewNop(), 10)
	producer.StartPublishing(context.Background())

	require.NoError(t, producer.Publish(nil, []byte("lost")))
	require.NoError(t, producer.Publish(nil, []byte("kept")))
	producer.Stop()

	assert.Equal(t, []string{"kept"}, writer.values())
}

func TestKafkaProducer_PublishAfterStop(t *testing.T) {
	producer := newProducer(&mockWriter{}, zap.NewNop(), 1)
	producer.StartPublishing(context.Background())
	producer.Stop()
	producer.Stop()

	assert.ErrorIs(t, producer.Publish(nil, []byte("late")), ErrStopped)
}

func TestKafkaProducer_FullQueueFailsFast(t *testing.T) {
	writer := &mockWriter{}
	producer := newProducer(writer, zap.NewNop(), 1)

	require.NoError(t, producer.Publish(nil, []byte("first")))
	assert.Error(t, producer.Publish(nil, []byte("second")))

	// Stop without a running loop must not hang and still flushes the queue.
	producer.Stop()
	assert.Equal(t, []string{"first"}, writer.values())
}

func TestKafkaProducer_CanceledContextStopsPublishing(t *testing.T) {
	writer := &mockWriter{}
	producer := newProducer(writer, zap.NewNop(), 10)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, producer.Publish(nil, []byte("before-start")))
	producer.StartPublishing(ctx)
	cancel()

	assert.Eventually(t, func() bool {
		return errors.Is(producer.Publish(nil, []byte("after-cancel")), ErrStopped)
	}, time.Second, 5*time.Millisecond)

	producer.Stop()
	assert.Equal(t, []string{"before-start"}, writer.values())
}

func TestKafkaProducer_AcceptedMessagesSurviveConcurrentStop(t *testing.T) {
	writer := &mockWriter{}
	producer := newProducer(writer, zap.NewNop(), 1000)
	producer.StartPublishing(context.Background())

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				err := producer.Publish(nil, []byte(fmt.Sprintf("%d-%d", g, i)))
				if err == nil {
					mu.Lock()
					accepted++
					mu.Unlock()
					continue
				}
				assert.ErrorIs(t, err, ErrStopped)
			}
		}(g)
	}

	producer.Stop()
	wg.Wait()

	assert.Len(t, writer.values(), accepted)
}
