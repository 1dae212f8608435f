package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPubsubDeliversToTopicSubscribers(t *testing.T) {
	ps := NewPubsub()

	ch := make(chan LedgerEvent, 1)
	subID, err := ps.Subscribe(42, ch)
	assert.NoError(t, err)
	assert.NotEmpty(t, subID)

	ps.Publish(42, LedgerEvent{Type: "donation.settled", UserID: 42, Amount: 100})

	event := <-ch
	assert.Equal(t, "donation.settled", event.Type)
	assert.Equal(t, int64(100), event.Amount)

	// other topics stay silent
	ps.Publish(7, LedgerEvent{Type: "transfer.settled", UserID: 7})
	assert.Empty(t, ch)
}

func TestPubsubPublishWithoutSubscribersIsNoop(t *testing.T) {
	ps := NewPubsub()
	ps.Publish(1, LedgerEvent{Type: "withdraw.settled", UserID: 1})
}

func TestPubsubUnsubscribeClosesChannel(t *testing.T) {
	ps := NewPubsub()

	ch := make(chan LedgerEvent, 1)
	subID, err := ps.Subscribe(5, ch)
	assert.NoError(t, err)

	ps.Unsubscribe(subID, 5)

	_, open := <-ch
	assert.False(t, open)

	// events published after the unsubscribe go nowhere
	ps.Publish(5, LedgerEvent{Type: "deposit.settled", UserID: 5})

	// double unsubscribe is safe
	ps.Unsubscribe(subID, 5)
}

func TestSubscribeLedgerEventsReceivesAllUsers(t *testing.T) {
	svc := newTestService(t)

	events, unsubscribe, err := svc.SubscribeLedgerEvents()
	assert.NoError(t, err)
	defer unsubscribe()

	received := make(chan LedgerEvent, 2)
	go func() {
		for event := range events {
			received <- event
		}
	}()

	svc.publishEvent(LedgerEvent{Type: "donation.settled", UserID: 1, Amount: 10})
	svc.publishEvent(LedgerEvent{Type: "transfer.settled", UserID: 2, Amount: 20})

	first := <-received
	second := <-received
	assert.Equal(t, int64(1), first.UserID)
	assert.Equal(t, int64(2), second.UserID)
	assert.False(t, second.CreatedAt.IsZero())

	select {
	case event := <-received:
		t.Fatalf("unexpected extra event %v", event)
	case <-time.After(50 * time.Millisecond):
	}
}
