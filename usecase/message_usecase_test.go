package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"real-time-messenger/apperror"
	"real-time-messenger/dto"
	"real-time-messenger/dto/req"
	"real-time-messenger/dto/res"
	"real-time-messenger/entity"
)

func TestPostMessageReturnsSenderFieldsAndEchoesClientID(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice, bob, _ := s.users3(t)

	direct, err := s.chats.CreateDirectChat(ctx, &req.DirectChatRequest{UserID: alice.ID, OtherUserID: bob.ID})
	require.NoError(t, err)

	msg, err := s.messages.PostMessage(ctx, &req.MessageRequest{
		ChatID:   direct.ChatId,
		SenderID: alice.ID,
		Content:  "hello",
		ClientID: "tmp-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", msg.SenderName)
	assert.Equal(t, "text", msg.MessageType)
	assert.Equal(t, "tmp-1", msg.ClientId)
	assert.NotEmpty(t, msg.CreatedAt)

	posted := s.notifier.last()
	assert.Equal(t, "MessagePosted", posted.name)
	assert.ElementsMatch(t, []string{alice.ID, bob.ID}, posted.recipients)

	var sender entity.ChatMember
	require.NoError(t, s.db.Where("chat_id = ? AND user_id = ?", direct.ChatId, alice.ID).First(&sender).Error)
	var stored entity.Message
	require.NoError(t, s.db.Where("id = ?", msg.MessageId).First(&stored).Error)
	assert.False(t, sender.LastReadAt.Before(stored.CreatedAt))
}

func TestPostMessageRejections(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice, bob, carol := s.users3(t)

	direct, err := s.chats.CreateDirectChat(ctx, &req.DirectChatRequest{UserID: alice.ID, OtherUserID: bob.ID})
	require.NoError(t, err)

	cases := map[string]struct {
		request *req.MessageRequest
		want    error
	}{
		"empty content": {&req.MessageRequest{ChatID: direct.ChatId, SenderID: alice.ID, Content: "   "}, apperror.ErrEmptyContent},
		"unknown type":  {&req.MessageRequest{ChatID: direct.ChatId, SenderID: alice.ID, Content: "x", MessageType: "sticker"}, apperror.ErrInvalidMessageType},
		"not a member":  {&req.MessageRequest{ChatID: direct.ChatId, SenderID: carol.ID, Content: "x"}, apperror.ErrNotChatMember},
		"missing chat":  {&req.MessageRequest{ChatID: "nope", SenderID: alice.ID, Content: "x"}, apperror.ErrChatNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.messages.PostMessage(ctx, tc.request)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, int64(0), s.countMessages(t, direct.ChatId))
}

func TestChannelPostByNonAdminIsDeniedWithoutRow(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice, bob, _ := s.users3(t)

	channel, err := s.chats.CreateChannel(ctx, &req.CreateChannelRequest{
		CreateGroupRequest: req.CreateGroupRequest{CreatorID: alice.ID, Name: "news", Members: []string{bob.ID}},
	})
	require.NoError(t, err)
	s.notifier.reset()

	_, err = s.messages.PostMessage(ctx, &req.MessageRequest{ChatID: channel.ChatId, SenderID: bob.ID, Content: "spam"})
	assert.True(t, apperror.HasCode(err, apperror.CodePermissionDenied))
	assert.Equal(t, int64(0), s.countMessages(t, channel.ChatId))
	assert.Empty(t, s.notifier.names())

	_, err = s.messages.PostMessage(ctx, &req.MessageRequest{ChatID: channel.ChatId, SenderID: alice.ID, Content: "news", MessageType: "image"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.countMessages(t, channel.ChatId))
}

func TestMarkReadThenListShowsReaderInReadBy(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice, bob, _ := s.users3(t)

	direct, err := s.chats.CreateDirectChat(ctx, &req.DirectChatRequest{UserID: alice.ID, OtherUserID: bob.ID})
	require.NoError(t, err)
	_, err = s.messages.PostMessage(ctx, &req.MessageRequest{ChatID: direct.ChatId, SenderID: alice.ID, Content: "ping"})
	require.NoError(t, err)

	require.NoError(t, s.chats.MarkRead(ctx, direct.ChatId, bob.ID))

	messages, err := s.messages.GetMessagesByChatID(ctx, direct.ChatId, alice.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.ElementsMatch(t, []string{alice.ID, bob.ID}, messages[0].ReadBy)
}

func TestReadByIsComputedBeforeFetchMovesWatermark(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice, bob, _ := s.users3(t)

	direct, err := s.chats.CreateDirectChat(ctx, &req.DirectChatRequest{UserID: alice.ID, OtherUserID: bob.ID})
	require.NoError(t, err)
	_, err = s.messages.PostMessage(ctx, &req.MessageRequest{ChatID: direct.ChatId, SenderID: alice.ID, Content: "first"})
	require.NoError(t, err)
	_, err = s.messages.PostMessage(ctx, &req.MessageRequest{ChatID: direct.ChatId, SenderID: alice.ID, Content: "second"})
	require.NoError(t, err)

	seenByBob, err := s.messages.GetMessagesByChatID(ctx, direct.ChatId, bob.ID)
	require.NoError(t, err)
	require.Len(t, seenByBob, 2)
	assert.Equal(t, "first", seenByBob[0].Content)
	assert.Equal(t, []string{alice.ID}, seenByBob[0].ReadBy)

	again, err := s.messages.GetMessagesByChatID(ctx, direct.ChatId, bob.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{alice.ID, bob.ID}, again[1].ReadBy)

	chats, err := s.chats.GetChatsByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(0), chats[0].UnreadCount)

	_, err = s.messages.GetMessagesByChatID(ctx, direct.ChatId, "stranger")
	assert.ErrorIs(t, err, apperror.ErrNotChatMember)
}

func TestDeleteForEveryoneInDirectChat(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice, bob, _ := s.users3(t)

	direct, err := s.chats.CreateDirectChat(ctx, &req.DirectChatRequest{UserID: alice.ID, OtherUserID: bob.ID})
	require.NoError(t, err)
	msg, err := s.messages.PostMessage(ctx, &req.MessageRequest{ChatID: direct.ChatId, SenderID: alice.ID, Content: "oops"})
	require.NoError(t, err)

	require.NoError(t, s.messages.DeleteMessage(ctx, bob.ID, &req.DeleteMessageRequest{MessageID: msg.MessageId}))
	assert.Equal(t, int64(1), s.countMessages(t, direct.ChatId))

	require.NoError(t, s.messages.DeleteMessage(ctx, bob.ID, &req.DeleteMessageRequest{MessageID: msg.MessageId, ForEveryone: true}))
	assert.Equal(t, int64(0), s.countMessages(t, direct.ChatId))
	assert.Equal(t, dto.MessageDeletedPayload{ChatID: direct.ChatId, MessageID: msg.MessageId}, s.notifier.last().payload)

	err = s.messages.DeleteMessage(ctx, bob.ID, &req.DeleteMessageRequest{MessageID: msg.MessageId, ForEveryone: true})
	assert.ErrorIs(t, err, apperror.ErrMessageNotFound)
}

func TestDeleteForEveryoneInGroup(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice, bob, carol := s.users3(t)

	group, err := s.chats.CreateGroup(ctx, &req.CreateGroupRequest{CreatorID: alice.ID, Name: "team", Members: []string{bob.ID, carol.ID}})
	require.NoError(t, err)
	post := func(sender string) res.MessageResponse {
		msg, err := s.messages.PostMessage(ctx, &req.MessageRequest{ChatID: group.ChatId, SenderID: sender, Content: "m"})
		require.NoError(t, err)
		return msg
	}

	byBob := post(bob.ID)
	err = s.messages.DeleteMessage(ctx, carol.ID, &req.DeleteMessageRequest{MessageID: byBob.MessageId, ForEveryone: true})
	assert.ErrorIs(t, err, apperror.ErrDeleteNotAllowed)

	require.NoError(t, s.messages.DeleteMessage(ctx, bob.ID, &req.DeleteMessageRequest{MessageID: byBob.MessageId, ForEveryone: true}))

	byCarol := post(carol.ID)
	require.NoError(t, s.messages.DeleteMessage(ctx, alice.ID, &req.DeleteMessageRequest{MessageID: byCarol.MessageId, ForEveryone: true}))
	assert.Equal(t, int64(0), s.countMessages(t, group.ChatId))
}

func TestReactionsAreIdempotent(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice, bob, carol := s.users3(t)

	direct, err := s.chats.CreateDirectChat(ctx, &req.DirectChatRequest{UserID: alice.ID, OtherUserID: bob.ID})
	require.NoError(t, err)
	msg, err := s.messages.PostMessage(ctx, &req.MessageRequest{ChatID: direct.ChatId, SenderID: alice.ID, Content: "nice"})
	require.NoError(t, err)
	s.notifier.reset()

	reaction := &req.ReactionRequest{MessageID: msg.MessageId, Emoji: "👍"}
	require.NoError(t, s.messages.AddReaction(ctx, bob.ID, reaction))
	require.NoError(t, s.messages.AddReaction(ctx, bob.ID, reaction))

	reactions, err := s.messages.GetReactions(ctx, msg.MessageId, alice.ID)
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, "bob", reactions[0].UserName)
	assert.Equal(t, []string{"ReactionAdded"}, s.notifier.names())

	require.NoError(t, s.messages.RemoveReaction(ctx, bob.ID, reaction))
	require.NoError(t, s.messages.RemoveReaction(ctx, bob.ID, reaction))
	assert.Equal(t, []string{"ReactionAdded", "ReactionRemoved"}, s.notifier.names())

	err = s.messages.AddReaction(ctx, carol.ID, reaction)
	assert.ErrorIs(t, err, apperror.ErrNotChatMember)

	err = s.messages.AddReaction(ctx, bob.ID, &req.ReactionRequest{MessageID: "missing", Emoji: "👍"})
	assert.ErrorIs(t, err, apperror.ErrMessageNotFound)
}

func TestDeletingMessageRemovesItsReactions(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	alice, bob, _ := s.users3(t)

	direct, err := s.chats.CreateDirectChat(ctx, &req.DirectChatRequest{UserID: alice.ID, OtherUserID: bob.ID})
	require.NoError(t, err)
	msg, err := s.messages.PostMessage(ctx, &req.MessageRequest{ChatID: direct.ChatId, SenderID: alice.ID, Content: "x"})
	require.NoError(t, err)
	require.NoError(t, s.messages.AddReaction(ctx, bob.ID, &req.ReactionRequest{MessageID: msg.MessageId, Emoji: "🔥"}))

	require.NoError(t, s.messages.DeleteMessage(ctx, alice.ID, &req.DeleteMessageRequest{MessageID: msg.MessageId, ForEveryone: true}))

	var reactions int64
	require.NoError(t, s.db.Model(&entity.Reaction{}).Where("message_id = ?", msg.MessageId).Count(&reactions).Error)
	assert.Equal(t, int64(0), reactions)
}
