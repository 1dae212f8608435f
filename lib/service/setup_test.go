package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/givehub/givehub.go/db/migrations"
	"github.com/givehub/givehub.go/lib/logging"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/migrate"
	_ "modernc.org/sqlite"
)

// newTestService spins up a LedgerService against an in-memory SQLite
// database with the real migrations applied, system accounts and fee
// percentages included.
func newTestService(t *testing.T) *LedgerService {
	t.Helper()

	dbName := strings.ReplaceAll(t.Name(), "/", "_")
	sqldb, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName))
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	require.NoError(t, migrator.Init(ctx))
	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	config := &Config{
		DepositExpiry:         1800,
		DepositCheckInterval:  60,
		JWTSecret:             []byte("test-secret"),
		JWTAccessTokenExpiry:  3600,
		JWTRefreshTokenExpiry: 7200,
	}
	return New(config, db, logging.Logger(""))
}

// helpers shared by the service tests

func createTestUser(t *testing.T, svc *LedgerService) int64 {
	t.Helper()
	user, err := svc.CreateUser(context.Background(), "", "")
	require.NoError(t, err)
	return user.ID
}

// fundUser credits a user's wallet directly with a posted transaction
// against the cash account.
func fundUser(t *testing.T, svc *LedgerService, userID, amount int64) {
	t.Helper()
	ctx := context.Background()
	userAccount, err := svc.FindAccountByUserID(ctx, userID)
	require.NoError(t, err)
	cashAccount, err := svc.GetSystemAccount(ctx, "cash")
	require.NoError(t, err)

	_, err = svc.CreateTransaction(ctx, TransactionSpec{
		Status:      "posted",
		Description: "test funding",
		Entries: []EntrySpec{
			{AccountID: cashAccount.ID, Type: "debit", Amount: amount},
			{AccountID: userAccount.ID, Type: "credit", Amount: amount},
		},
	}, nil)
	require.NoError(t, err)
}

func userBalance(t *testing.T, svc *LedgerService, userID int64) int64 {
	t.Helper()
	balance, err := svc.CurrentUserBalance(context.Background(), userID)
	require.NoError(t, err)
	return balance
}
