package service

import (
	"crypto/rand"
	"math/big"
	"sync"

	"github.com/labstack/gommon/random"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/ziflex/lecho/v3"
)

const alphaNumBytes = random.Alphanumeric

// LedgerService is the accounting core of the donation platform: the
// double-entry ledger plus the flows that produce ledger effects
// (donations, transfers, deposits, withdrawals, fund distribution).
type LedgerService struct {
	Config          *Config
	DB              *bun.DB
	Logger          *lecho.Logger
	DepositVerifier DepositVerifier
	LedgerPubSub    *Pubsub

	// serializes distribution runs per campaign
	distributionMu sync.Mutex
	distributing   map[int64]*sync.Mutex
}

func New(config *Config, db *bun.DB, logger *lecho.Logger) *LedgerService {
	return &LedgerService{
		Config:       config,
		DB:           db,
		Logger:       logger,
		LedgerPubSub: NewPubsub(),
		distributing: make(map[int64]*sync.Mutex),
	}
}

// campaignLock returns the mutex that serializes distribution runs for one
// campaign. Cross-process serialization is handled by the row locks taken
// inside the run itself.
func (svc *LedgerService) campaignLock(campaignID int64) *sync.Mutex {
	svc.distributionMu.Lock()
	defer svc.distributionMu.Unlock()
	mu, ok := svc.distributing[campaignID]
	if !ok {
		mu = &sync.Mutex{}
		svc.distributing[campaignID] = mu
	}
	return mu
}

// lockForUpdate adds a row lock to a query that reads rows the surrounding
// transaction will mutate. SQLite (used by the test harness) serializes
// writers itself and rejects the clause, so it is only added on Postgres.
func (svc *LedgerService) lockForUpdate(q *bun.SelectQuery) *bun.SelectQuery {
	if svc.DB.Dialect().Name() == dialect.PG {
		return q.For("UPDATE")
	}
	return q
}

func randBytesFromStr(length int, from string) ([]byte, error) {
	b := make([]byte, length)
	fromLenBigInt := big.NewInt(int64(len(from)))
	for i := range b {
		r, err := rand.Int(rand.Reader, fromLenBigInt)
		if err != nil {
			return nil, err
		}
		b[i] = from[r.Int64()]
	}
	return b, nil
}
