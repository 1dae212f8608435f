package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/givehub/givehub.go/lib/service"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool reuses encode buffers between published events. With a single
// publisher goroutine there is only ever one buffer in here.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const contentTypeJSON = "application/json"

// SubscribeToLedgerEventsFunc hands the publisher the stream of committed
// ledger events plus a way to detach from it.
type SubscribeToLedgerEventsFunc = func() (events chan service.LedgerEvent, unsubscribe func(), err error)

type Client interface {
	StartPublishLedgerEvents(context.Context, SubscribeToLedgerEventsFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqp AMQPClient

	logger *lecho.Logger

	ledgerExchange string
}

type ClientOption = func(client *DefaultClient)

func WithLedgerExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.ledgerExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqp: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		ledgerExchange: "givehub_ledger",
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqp.Close() }

// StartPublishLedgerEvents forwards every committed ledger event to the
// ledger exchange until the context is cancelled. Routing keys look like
// ledger.donation.settled, so consumers can bind to the slice of the
// stream they care about.
func (client *DefaultClient) StartPublishLedgerEvents(ctx context.Context, eventsSubscribeFunc SubscribeToLedgerEventsFunc) error {
	err := client.amqp.ExchangeDeclare(
		client.ledgerExchange,
		// topic exchange, so consumers can bind per event type
		"topic",
		// durable, survives broker restarts
		true,
		false,
		// non-internal, accepts direct publishing
		false,
		// wait for the server to confirm the declare
		false,
		nil,
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting rabbitmq publisher")

	events, unsubscribe, err := eventsSubscribeFunc()
	if err != nil {
		return err
	}
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case event := <-events:
			err = client.publishToLedgerExchange(ctx, event)
			if err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) publishToLedgerExchange(ctx context.Context, event service.LedgerEvent) error {
	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	err := json.NewEncoder(payload).Encode(event)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("ledger.%s", event.Type)

	err = client.amqp.PublishWithContext(ctx,
		client.ledgerExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		captureErr(client.logger, err)
		return err
	}

	client.logger.Debugf("Successfully published ledger event %s for transaction %d", event.Type, event.TransactionID)

	return nil
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
