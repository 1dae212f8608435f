package rabbitmq_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/givehub/givehub.go/lib/service"
	"github.com/givehub/givehub.go/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type publishedMessage struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeAMQPClient struct {
	mu sync.Mutex

	declaredExchange string
	declaredKind     string
	declaredDurable  bool

	published []publishedMessage
}

func (f *fakeAMQPClient) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// the publisher reuses its encode buffer, copy the body before returning
	msg.Body = append([]byte{}, msg.Body...)
	f.published = append(f.published, publishedMessage{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeAMQPClient) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declaredExchange = name
	f.declaredKind = kind
	f.declaredDurable = durable
	return nil
}

func (f *fakeAMQPClient) Close() error { return nil }

func (f *fakeAMQPClient) publishedMessages() []publishedMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]publishedMessage{}, f.published...)
}

func TestStartPublishLedgerEvents(t *testing.T) {
	amqpClient := &fakeAMQPClient{}

	client, err := rabbitmq.NewClient(amqpClient, rabbitmq.WithLedgerExchange("test_ledger"))
	assert.NoError(t, err)

	events := make(chan service.LedgerEvent, 2)
	events <- service.LedgerEvent{Type: "donation.settled", UserID: 1, TransactionID: 10, Amount: 500}
	events <- service.LedgerEvent{Type: "withdraw.settled", UserID: 2, TransactionID: 11, Amount: 250}

	unsubscribed := false
	subscribeFunc := func() (chan service.LedgerEvent, func(), error) {
		return events, func() { unsubscribed = true }, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- client.StartPublishLedgerEvents(ctx, subscribeFunc)
	}()

	assert.Eventually(t, func() bool {
		return len(amqpClient.publishedMessages()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.True(t, unsubscribed)

	assert.Equal(t, "test_ledger", amqpClient.declaredExchange)
	assert.Equal(t, "topic", amqpClient.declaredKind)
	assert.True(t, amqpClient.declaredDurable)

	published := amqpClient.publishedMessages()
	assert.Equal(t, "test_ledger", published[0].exchange)
	assert.Equal(t, "ledger.donation.settled", published[0].key)
	assert.Equal(t, "ledger.withdraw.settled", published[1].key)

	var event service.LedgerEvent
	assert.NoError(t, json.Unmarshal(published[0].msg.Body, &event))
	assert.Equal(t, int64(10), event.TransactionID)
	assert.Equal(t, int64(500), event.Amount)
	assert.Equal(t, "application/json", published[0].msg.ContentType)
}
