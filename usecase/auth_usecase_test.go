package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"real-time-messenger/apperror"
	"real-time-messenger/dto/req"
)

func TestRegisterThenLogin(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	registered, err := s.auth.RegisterUser(ctx, &req.RegisterRequest{Username: "dave", Password: "secret1", DisplayName: "Dave"})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.ID)
	assert.Equal(t, "Dave", registered.Name)

	login, err := s.auth.LoginUser(ctx, &req.LoginRequest{Username: "dave", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, registered.ID, login.User.ID)
	assert.Equal(t, "dave", login.User.Username)
}

func TestRegisterDefaultsDisplayNameToUsername(t *testing.T) {
	s := newSuite(t)

	registered, err := s.auth.RegisterUser(context.Background(), &req.RegisterRequest{Username: "erin", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "erin", registered.Name)
}

func TestRegisterRejectsDuplicateAndInvalid(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	_, err := s.auth.RegisterUser(ctx, &req.RegisterRequest{Username: "frank", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.auth.RegisterUser(ctx, &req.RegisterRequest{Username: "frank", Password: "another1"})
	assert.ErrorIs(t, err, apperror.ErrUsernameTaken)

	_, err = s.auth.RegisterUser(ctx, &req.RegisterRequest{Username: "x", Password: "123"})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidArgument))
}

func TestLoginFailures(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	_, err := s.auth.RegisterUser(ctx, &req.RegisterRequest{Username: "grace", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.auth.LoginUser(ctx, &req.LoginRequest{Username: "grace", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = s.auth.LoginUser(ctx, &req.LoginRequest{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = s.auth.LoginUser(ctx, &req.LoginRequest{})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidArgument))
}
