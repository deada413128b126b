package usecase

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"real-time-messenger/config/common"
	"real-time-messenger/config/logger"
	"real-time-messenger/dto"
	"real-time-messenger/dto/res"
	"real-time-messenger/entity"
	"real-time-messenger/repository"
	"real-time-messenger/security"
	"real-time-messenger/testkit"
)

type recorded struct {
	name       string
	payload    any
	recipients []string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recorded
}

func (n *recordingNotifier) add(name string, payload any, recipients []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recorded{name: name, payload: payload, recipients: recipients})
}

func (n *recordingNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	names := make([]string, 0, len(n.events))
	for _, e := range n.events {
		names = append(names, e.name)
	}
	return names
}

func (n *recordingNotifier) last() recorded {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.events[len(n.events)-1]
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = nil
}

func (n *recordingNotifier) MessagePosted(_ context.Context, msg res.MessageResponse, memberIDs []string) {
	n.add("MessagePosted", msg, memberIDs)
}
func (n *recordingNotifier) ChatCreated(_ context.Context, chat res.ChatResponse, memberIDs []string) {
	n.add("ChatCreated", chat, memberIDs)
}
func (n *recordingNotifier) MembersAdded(_ context.Context, chatID string, added []string) {
	n.add("MembersAdded", chatID, added)
}
func (n *recordingNotifier) ChatUpdated(_ context.Context, chatID string) {
	n.add("ChatUpdated", chatID, nil)
}
func (n *recordingNotifier) SettingsUpdated(_ context.Context, settings res.ChatSettingsResponse) {
	n.add("SettingsUpdated", settings, nil)
}
func (n *recordingNotifier) RoleUpdated(_ context.Context, payload dto.MemberRolePayload) {
	n.add("RoleUpdated", payload, nil)
}
func (n *recordingNotifier) MessageDeleted(_ context.Context, payload dto.MessageDeletedPayload) {
	n.add("MessageDeleted", payload, nil)
}
func (n *recordingNotifier) ReactionAdded(_ context.Context, payload dto.ReactionPayload) {
	n.add("ReactionAdded", payload, nil)
}
func (n *recordingNotifier) ReactionRemoved(_ context.Context, payload dto.ReactionPayload) {
	n.add("ReactionRemoved", payload, nil)
}
func (n *recordingNotifier) ReadReceipt(_ context.Context, payload dto.ReadReceiptPayload) {
	n.add("ReadReceipt", payload, nil)
}

type suite struct {
	db       *gorm.DB
	notifier *recordingNotifier
	auth     AuthUsecase
	users    UserUsecase
	chats    *ChatUsecaseImpl
	messages *MessageUsecaseImpl
}

func newSuite(t *testing.T) *suite {
	t.Helper()
	db := testkit.NewDB(t)
	notifier := &recordingNotifier{}
	validate := validator.New()
	log := logrus.New()
	log.SetOutput(io.Discard)

	v := viper.New()
	v.Set("JWT_SECRET", "test-secret")
	jwt := security.NewJWT(common.NewConfig(v))

	authRepository := repository.NewAuthRepository()
	userRepository := repository.NewUserRepository()
	blockRepository := repository.NewBlockRepository()
	chatRepository := repository.NewChatRepository()
	memberRepository := repository.NewMemberRepository()
	messageRepository := repository.NewMessageRepository()
	reactionRepository := repository.NewReactionRepository()

	return &suite{
		db:       db,
		notifier: notifier,
		auth:     NewAuthUsecase(authRepository, validate, db, log, jwt),
		users:    NewUserUsecase(userRepository, blockRepository, validate, db, logger.NewNopLogger()),
		chats:    NewChatUsecase(chatRepository, memberRepository, messageRepository, userRepository, validate, log, db, notifier),
		messages: NewMessageUsecase(messageRepository, memberRepository, reactionRepository, chatRepository, userRepository, validate, log, db, notifier),
	}
}

func (s *suite) users3(t *testing.T) (entity.User, entity.User, entity.User) {
	t.Helper()
	u := testkit.CreateUsers(t, s.db, "alice", "bob", "carol")
	return u[0], u[1], u[2]
}

func (s *suite) countMessages(t *testing.T, chatID string) int64 {
	t.Helper()
	var count int64
	if err := s.db.Model(&entity.Message{}).Where("chat_id = ?", chatID).Count(&count).Error; err != nil {
		t.Fatalf("count messages: %v", err)
	}
	return count
}
