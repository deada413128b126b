package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"real-time-messenger/entity"
	"real-time-messenger/enum"
	"real-time-messenger/repository"
	"real-time-messenger/testkit"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newChat(t *testing.T, db *gorm.DB, chatType enum.ChatType, joinedAt time.Time, userIDs ...string) entity.Chat {
	t.Helper()
	chat := entity.Chat{ChatType: chatType, Name: "c"}
	members := make([]entity.ChatMember, 0, len(userIDs))
	for _, id := range userIDs {
		members = append(members, entity.ChatMember{UserID: id, Role: enum.MemberRoleMember, JoinedAt: joinedAt, LastReadAt: joinedAt})
	}
	require.NoError(t, repository.NewChatRepository().CreateChatWithMembers(context.Background(), db, &chat, members))
	return chat
}

func newMessage(t *testing.T, db *gorm.DB, chatID, senderID, content string, at time.Time) entity.Message {
	t.Helper()
	message := entity.Message{ChatID: chatID, SenderID: senderID, Content: content, MessageType: enum.MessageTypeText}
	message.CreatedAt = at
	require.NoError(t, db.Create(&message).Error)
	return message
}

func TestCountUnreadUsesWatermark(t *testing.T) {
	db := testkit.NewDB(t)
	ctx := context.Background()
	users := testkit.CreateUsers(t, db, "alice", "bob")
	members := repository.NewMemberRepository()
	messages := repository.NewMessageRepository()

	first := newChat(t, db, enum.GROUP, base, users[0].ID, users[1].ID)
	second := newChat(t, db, enum.GROUP, base, users[0].ID, users[1].ID)
	newMessage(t, db, first.ID, users[0].ID, "a", base.Add(time.Minute))
	newMessage(t, db, first.ID, users[0].ID, "b", base.Add(2*time.Minute))
	newMessage(t, db, second.ID, users[0].ID, "c", base.Add(3*time.Minute))

	counts, err := messages.CountUnread(ctx, db, users[1].ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{first.ID: 2, second.ID: 1}, counts)

	require.NoError(t, members.TouchLastRead(ctx, db, first.ID, users[1].ID, base.Add(time.Minute)))
	counts, err = messages.CountUnread(ctx, db, users[1].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[first.ID])

	require.NoError(t, members.TouchLastRead(ctx, db, second.ID, users[1].ID, base.Add(3*time.Minute)))
	counts, err = messages.CountUnread(ctx, db, users[1].ID)
	require.NoError(t, err)
	_, ok := counts[second.ID]
	assert.False(t, ok)
}

func TestFindLastMessagesPicksNewestPerChat(t *testing.T) {
	db := testkit.NewDB(t)
	users := testkit.CreateUsers(t, db, "alice", "bob")
	messages := repository.NewMessageRepository()

	first := newChat(t, db, enum.GROUP, base, users[0].ID, users[1].ID)
	second := newChat(t, db, enum.GROUP, base, users[0].ID, users[1].ID)
	empty := newChat(t, db, enum.GROUP, base, users[0].ID)
	newMessage(t, db, first.ID, users[0].ID, "old", base.Add(time.Minute))
	newMessage(t, db, first.ID, users[1].ID, "new", base.Add(2*time.Minute))
	newMessage(t, db, second.ID, users[0].ID, "only", base.Add(time.Minute))

	last, err := messages.FindLastMessages(context.Background(), db, []string{first.ID, second.ID, empty.ID})
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "new", last[first.ID].Content)
	assert.Equal(t, "bob", last[first.ID].Sender.Name)
	assert.Equal(t, "only", last[second.ID].Content)

	none, err := messages.FindLastMessages(context.Background(), db, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAddMembersSkipsExistingRows(t *testing.T) {
	db := testkit.NewDB(t)
	ctx := context.Background()
	users := testkit.CreateUsers(t, db, "alice", "bob", "carol")
	members := repository.NewMemberRepository()

	chat := newChat(t, db, enum.GROUP, base, users[0].ID)
	added, err := members.AddMembers(ctx, db, chat.ID, []string{users[0].ID, users[1].ID}, enum.MemberRoleMember, base)
	require.NoError(t, err)
	assert.Equal(t, []string{users[1].ID}, added)

	added, err = members.AddMembers(ctx, db, chat.ID, []string{users[1].ID, users[2].ID}, enum.MemberRoleMember, base)
	require.NoError(t, err)
	assert.Equal(t, []string{users[2].ID}, added)

	ids, err := members.FindMemberIDs(ctx, db, chat.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{users[0].ID, users[1].ID, users[2].ID}, ids)

	missing, err := members.FindMember(ctx, db, chat.ID, "nobody", false)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateRoleReportsTouchedRow(t *testing.T) {
	db := testkit.NewDB(t)
	ctx := context.Background()
	users := testkit.CreateUsers(t, db, "alice")
	members := repository.NewMemberRepository()
	chat := newChat(t, db, enum.GROUP, base, users[0].ID)

	changed, err := members.UpdateRole(ctx, db, chat.ID, users[0].ID, enum.MemberRoleAdmin)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = members.UpdateRole(ctx, db, chat.ID, "nobody", enum.MemberRoleAdmin)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestDirectKeyIsUnique(t *testing.T) {
	db := testkit.NewDB(t)
	key := "a:b"

	require.NoError(t, db.Create(&entity.Chat{ChatType: enum.DIRECT, DirectKey: &key}).Error)
	err := db.Create(&entity.Chat{ChatType: enum.DIRECT, DirectKey: &key}).Error
	assert.True(t, repository.IsDuplicate(err))
}

func TestFindDirectChat(t *testing.T) {
	db := testkit.NewDB(t)
	ctx := context.Background()
	users := testkit.CreateUsers(t, db, "alice", "bob", "carol")
	chats := repository.NewChatRepository()

	newChat(t, db, enum.GROUP, base, users[0].ID, users[1].ID)
	none, err := chats.FindDirectChat(ctx, db, users[0].ID, users[1].ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	direct := newChat(t, db, enum.DIRECT, base, users[0].ID, users[1].ID)
	found, err := chats.FindDirectChat(ctx, db, users[1].ID, users[0].ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, direct.ID, found.ID)

	other, err := chats.FindDirectChat(ctx, db, users[0].ID, users[2].ID)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestDirectoryPresence(t *testing.T) {
	db := testkit.NewDB(t)
	ctx := context.Background()
	users := testkit.CreateUsers(t, db, "alice", "bob")
	dir := repository.NewDirectory(db, repository.NewMemberRepository(), repository.NewUserRepository())
	chat := newChat(t, db, enum.GROUP, base, users[0].ID, users[1].ID)

	ids, err := dir.ChatIDsForUser(ctx, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{chat.ID}, ids)

	require.NoError(t, dir.MarkOnline(ctx, users[0].ID))
	var user entity.User
	require.NoError(t, db.Where("id = ?", users[0].ID).First(&user).Error)
	assert.True(t, user.IsOnline)

	require.NoError(t, dir.MarkOffline(ctx, users[0].ID, base))
	require.NoError(t, db.Where("id = ?", users[0].ID).First(&user).Error)
	assert.False(t, user.IsOnline)
	require.NotNil(t, user.LastSeen)
	assert.True(t, base.Equal(*user.LastSeen))
}
