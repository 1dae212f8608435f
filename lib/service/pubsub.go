package service

import (
	"sync"
	"time"
)

// LedgerEvent describes one settled money movement, published after its
// database transaction has committed.
type LedgerEvent struct {
	Type          string    `json:"type"` // donation.settled, distribution.completed, transfer.settled, deposit.settled, withdraw.settled
	UserID        int64     `json:"user_id"`
	CampaignID    int64     `json:"campaign_id,omitempty"`
	TransactionID int64     `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

type Pubsub struct {
	mu   sync.RWMutex
	subs map[int64]map[string]chan LedgerEvent
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[int64]map[string]chan LedgerEvent)
	return ps
}

func (ps *Pubsub) Subscribe(topic int64, ch chan LedgerEvent) (subID string, err error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[string]chan LedgerEvent)
	}
	randomID, err := randBytesFromStr(16, alphaNumBytes)
	if err != nil {
		return "", err
	}
	subID = string(randomID)
	ps.subs[topic][subID] = ch
	return subID, nil
}

func (ps *Pubsub) Unsubscribe(id string, topic int64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		return
	}
	if ps.subs[topic][id] == nil {
		return
	}
	close(ps.subs[topic][id])
	delete(ps.subs[topic], id)
}

func (ps *Pubsub) Publish(topic int64, msg LedgerEvent) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if ps.subs[topic] == nil {
		return
	}

	for _, ch := range ps.subs[topic] {
		ch <- msg
	}
}

// publishEvent fans a committed ledger event out to in-process
// subscribers. Topic 0 is the firehose the RabbitMQ bridge listens on.
func (svc *LedgerService) publishEvent(event LedgerEvent) {
	event.CreatedAt = time.Now()
	svc.LedgerPubSub.Publish(event.UserID, event)
	svc.LedgerPubSub.Publish(firehoseTopic, event)
}

const firehoseTopic int64 = 0

// SubscribeLedgerEvents subscribes to every ledger event regardless of
// user. The returned unsubscribe func closes the channel.
func (svc *LedgerService) SubscribeLedgerEvents() (chan LedgerEvent, func(), error) {
	ch := make(chan LedgerEvent)
	subID, err := svc.LedgerPubSub.Subscribe(firehoseTopic, ch)
	if err != nil {
		return nil, nil, err
	}
	return ch, func() { svc.LedgerPubSub.Unsubscribe(subID, firehoseTopic) }, nil
}
