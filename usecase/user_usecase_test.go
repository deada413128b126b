package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"real-time-messenger/apperror"
	"real-time-messenger/dto/req"
)

func TestGetAllUserExcludesRequester(t *testing.T) {
	s := newSuite(t)
	alice, _, _ := s.users3(t)

	users, err := s.users.GetAllUser(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username)
	assert.Equal(t, "carol", users[1].Username)

	_, err = s.users.GetUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)
}

func TestSearchUsers(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice, _, _ := s.users3(t)

	found, err := s.users.SearchUsers(ctx, alice.ID, "CAR")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "carol", found[0].Username)

	self, err := s.users.SearchUsers(ctx, alice.ID, "alice")
	require.NoError(t, err)
	assert.Empty(t, self)

	blank, err := s.users.SearchUsers(ctx, alice.ID, "  ")
	require.NoError(t, err)
	assert.Empty(t, blank)
}

func TestUpdateProfileAndAvatar(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice, _, _ := s.users3(t)

	updated, err := s.users.UpdateProfile(ctx, alice.ID, &req.EditProfileRequest{DisplayName: " Alice A. ", Bio: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", updated.Name)
	assert.Equal(t, "hi", updated.Bio)

	_, err = s.users.UpdateProfile(ctx, alice.ID, &req.EditProfileRequest{})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidArgument))

	withAvatar, err := s.users.UpdateAvatar(ctx, alice.ID, "/avatars/a.png")
	require.NoError(t, err)
	assert.Equal(t, "/avatars/a.png", withAvatar.Avatar)
}

func TestBlockLifecycle(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice, bob, _ := s.users3(t)

	require.NoError(t, s.users.BlockUser(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, s.users.BlockUser(ctx, alice.ID, bob.ID), apperror.ErrAlreadyBlocked)
	assert.ErrorIs(t, s.users.BlockUser(ctx, alice.ID, alice.ID), apperror.ErrSelfBlock)
	assert.ErrorIs(t, s.users.BlockUser(ctx, alice.ID, "ghost"), apperror.ErrUserNotFound)

	status, err := s.users.BlockStatus(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, status.IsBlocked)

	reverse, err := s.users.BlockStatus(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse.IsBlocked)

	blocked, err := s.users.GetBlockedUsers(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, bob.ID, blocked[0].ID)

	require.NoError(t, s.users.UnblockUser(ctx, alice.ID, bob.ID))
	status, err = s.users.BlockStatus(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, status.IsBlocked)
}
