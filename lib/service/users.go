package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/givehub/givehub.go/common"
	"github.com/givehub/givehub.go/db/models"
	"github.com/givehub/givehub.go/lib/security"
	"github.com/uptrace/bun"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

// CreateUser provisions a user together with their wallet account. Exactly
// one wallet account exists per user, so the two inserts share one
// database transaction.
func (svc *LedgerService) CreateUser(ctx context.Context, login string, password string) (user *models.User, err error) {
	user = &models.User{}

	// generate user login/password if not provided
	user.Login = login
	if login == "" {
		randLoginBytes, err := randBytesFromStr(20, alphaNumBytes)
		if err != nil {
			return nil, err
		}
		user.Login = string(randLoginBytes)
	}

	if password == "" {
		randPasswordBytes, err := randBytesFromStr(20, alphaNumBytes)
		if err != nil {
			return nil, err
		}
		password = string(randPasswordBytes)
	} else {
		if svc.Config.MinPasswordEntropy > 0 {
			entropy := passwordvalidator.GetEntropy(password)
			if entropy < float64(svc.Config.MinPasswordEntropy) {
				return nil, fmt.Errorf("password entropy is too low (%f), required is %d", entropy, svc.Config.MinPasswordEntropy)
			}
		}
	}

	// we only store the hashed password but return the initial plain text password in the HTTP response
	user.Password = security.HashPassword(password)

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
			return err
		}
		_, err := svc.CreateAccount(ctx, AccountSpec{
			Name:          "wallet",
			Type:          common.AccountTypeAsset,
			NormalBalance: common.NormalBalanceCredit,
			UserID:        user.ID,
		}, tx)
		return err
	})
	//return actual password in the response, not the hashed one
	user.Password = password
	return user, err
}

func (svc *LedgerService) FindUser(ctx context.Context, userID int64) (*models.User, error) {
	user := &models.User{}
	err := svc.DB.NewSelect().Model(user).Where("id = ?", userID).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (svc *LedgerService) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	user := &models.User{}
	err := svc.DB.NewSelect().Model(user).Where("login = ?", login).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, login)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
