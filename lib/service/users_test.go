package service

import (
	"context"
	"testing"

	"github.com/givehub/givehub.go/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserProvisionsWallet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "", "")
	require.NoError(t, err)
	assert.NotEmpty(t, user.Login)
	assert.NotEmpty(t, user.Password)

	account, err := svc.FindAccountByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, common.AccountTypeAsset, account.Type)
	assert.Equal(t, int64(0), account.AvailableBalance)
}

func TestCreateUserStoresHashedPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "alice", "correct horse battery staple")
	require.NoError(t, err)
	// the returned password is the plaintext one
	assert.Equal(t, "correct horse battery staple", user.Password)

	stored, err := svc.FindUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, user.Password, stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(user.Password)))
}

func TestCreateUserRejectsWeakPassword(t *testing.T) {
	svc := newTestService(t)
	svc.Config.MinPasswordEntropy = 60

	_, err := svc.CreateUser(context.Background(), "bob", "aaa")
	assert.Error(t, err)
}

func TestGenerateToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "carol", "a long and winding password")
	require.NoError(t, err)

	accessToken, refreshToken, err := svc.GenerateToken(ctx, user.Login, "a long and winding password", "")
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	_, _, err = svc.GenerateToken(ctx, user.Login, "wrong password", "")
	assert.Error(t, err)

	// the refresh token mints a fresh pair
	newAccess, _, err := svc.GenerateToken(ctx, "", "", refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)

	// an access token is not accepted as refresh token
	_, _, err = svc.GenerateToken(ctx, "", "", accessToken)
	assert.Error(t, err)
}
