package service

import (
	"testing"
	"time"

	"ulearner_backend/internal/config"
	"ulearner_backend/internal/model"
	"ulearner_backend/internal/repository"
	"ulearner_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, env *testEnv) *AuthService {
	t.Helper()
	cfg := env.cfg
	cfg.JWT = config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}
	return NewAuthService(repository.NewUserRepository(env.db), cfg)
}

func TestRegisterHashesPassword(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	user := &model.User{
		Email:     "grace@ulearner.com",
		Password:  "hunter2",
		FirstName: "Grace",
		LastName:  "Hopper",
	}
	require.NoError(t, auth.Register(user))
	assert.NotEqual(t, "hunter2", user.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	user := &model.User{Email: "grace@ulearner.com", Password: "hunter2", FirstName: "Grace", LastName: "Hopper"}
	require.NoError(t, auth.Register(user))

	dup := &model.User{Email: "grace@ulearner.com", Password: "other", FirstName: "G", LastName: "H"}
	assert.ErrorIs(t, auth.Register(dup), util.ErrEmailRegistered)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	user := &model.User{Email: "grace@ulearner.com", Password: "hunter2", FirstName: "Grace", LastName: "Hopper"}
	require.NoError(t, auth.Register(user))

	token, err := auth.Login("grace@ulearner.com", "hunter2")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = auth.Login("grace@ulearner.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = auth.Login("nobody@ulearner.com", "hunter2")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
