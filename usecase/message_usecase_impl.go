package usecase

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"real-time-messenger/apperror"
	"real-time-messenger/dto"
	"real-time-messenger/dto/req"
	"real-time-messenger/dto/res"
	"real-time-messenger/entity"
	"real-time-messenger/enum"
	"real-time-messenger/repository"
)

type MessageUsecaseImpl struct {
	*repository.MessageRepository
	*repository.MemberRepository
	*repository.ReactionRepository
	*validator.Validate
	*logrus.Logger
	*gorm.DB
	Notifier Notifier
	store    store
}

func NewMessageUsecase(messageRepository *repository.MessageRepository, memberRepository *repository.MemberRepository, reactionRepository *repository.ReactionRepository, chatRepository *repository.ChatRepository, userRepository *repository.UserRepository, validate *validator.Validate, logger *logrus.Logger, DB *gorm.DB, notifier Notifier) *MessageUsecaseImpl {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &MessageUsecaseImpl{
		MessageRepository:  messageRepository,
		MemberRepository:   memberRepository,
		ReactionRepository: reactionRepository,
		Validate:           validate,
		Logger:             logger,
		DB:                 DB,
		Notifier:           notifier,
		store: store{
			chats:    chatRepository,
			members:  memberRepository,
			messages: messageRepository,
			users:    userRepository,
		},
	}
}

// PostMessage stores a message after re-reading the sender's membership under lock, so a
// role change racing the post is honoured. The sender's watermark moves to the new message.
func (uc *MessageUsecaseImpl) PostMessage(ctx context.Context, request *req.MessageRequest) (res.MessageResponse, error) {
	if strings.TrimSpace(request.Content) == "" {
		return res.MessageResponse{}, apperror.ErrEmptyContent
	}
	if request.MessageType == "" {
		request.MessageType = string(enum.MessageTypeText)
	}
	if !enum.MessageType(request.MessageType).Valid() {
		return res.MessageResponse{}, apperror.ErrInvalidMessageType
	}
	if err := uc.Validate.Struct(request); err != nil {
		return res.MessageResponse{}, validationError(err)
	}

	trx := uc.DB.WithContext(ctx).Begin()
	defer trx.Rollback()

	chat, err := uc.store.loadChat(ctx, trx, request.ChatID, true)
	if err != nil {
		return res.MessageResponse{}, err
	}
	sender, err := uc.store.requireMember(ctx, trx, chat.ID, request.SenderID, true)
	if err != nil {
		return res.MessageResponse{}, err
	}
	if chat.AdminOnlyPosting() && !sender.IsAdmin() {
		uc.Logger.Warnf("User %s may not post in chat %s", request.SenderID, chat.ID)
		return res.MessageResponse{}, apperror.ErrAdminOnlyPosting
	}

	message := &entity.Message{
		ChatID:      chat.ID,
		SenderID:    request.SenderID,
		Content:     request.Content,
		MessageType: enum.MessageType(request.MessageType),
	}
	if err := uc.MessageRepository.Save(ctx, trx, message); err != nil {
		uc.Logger.WithError(err).Errorf("Failed to save message: %v", err)
		return res.MessageResponse{}, apperror.Internal(err)
	}
	if err := uc.store.chats.UpdateColumns(ctx, trx, chat.ID, map[string]interface{}{"last_message_at": message.CreatedAt}); err != nil {
		return res.MessageResponse{}, apperror.Internal(err)
	}
	if err := uc.MemberRepository.TouchLastRead(ctx, trx, chat.ID, request.SenderID, message.CreatedAt); err != nil {
		return res.MessageResponse{}, apperror.Internal(err)
	}
	stored, err := uc.MessageRepository.FindByIDWithSender(ctx, trx, message.ID)
	if err != nil {
		return res.MessageResponse{}, apperror.Internal(err)
	}
	memberIDs, err := uc.MemberRepository.FindMemberIDs(ctx, trx, chat.ID)
	if err != nil {
		return res.MessageResponse{}, apperror.Internal(err)
	}
	if err := trx.Commit().Error; err != nil {
		uc.Logger.WithError(err).Errorf("Failed to commit message: %v", err)
		return res.MessageResponse{}, apperror.Internal(err)
	}

	response := toMessageResponse(*stored, nil)
	response.ClientId = request.ClientID
	uc.Logger.Infof("Message %s posted to chat %s", response.MessageId, response.ChatId)
	uc.Notifier.MessagePosted(ctx, response, memberIDs)
	return response, nil
}

// GetMessagesByChatID returns the chat history, oldest first, with the read-by set of each
// message as it stood before this call; then the requester's watermark moves to now.
func (uc *MessageUsecaseImpl) GetMessagesByChatID(ctx context.Context, chatID, userID string) ([]res.MessageResponse, error) {
	if _, err := uc.store.requireMember(ctx, uc.DB, chatID, userID, false); err != nil {
		return nil, err
	}

	messages, err := uc.MessageRepository.FindMessagesByChatID(ctx, uc.DB, chatID)
	if err != nil {
		uc.Logger.WithError(err).Error("Failed to get messages")
		return nil, apperror.Internal(err)
	}
	members, err := uc.MemberRepository.FindMembersWithUsers(ctx, uc.DB, chatID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	responses := make([]res.MessageResponse, 0, len(messages))
	for _, message := range messages {
		readBy := make([]string, 0, len(members))
		for _, member := range members {
			if !member.LastReadAt.Before(message.CreatedAt) {
				readBy = append(readBy, member.UserID)
			}
		}
		responses = append(responses, toMessageResponse(message, readBy))
	}

	if err := uc.MemberRepository.TouchLastRead(ctx, uc.DB, chatID, userID, repository.Now(uc.DB)); err != nil {
		uc.Logger.WithError(err).Error("Failed to advance read watermark")
		return nil, apperror.Internal(err)
	}
	return responses, nil
}

// DeleteMessage removes a message for everyone when allowed. Without forEveryone the hide
// is client-local and nothing is stored.
func (uc *MessageUsecaseImpl) DeleteMessage(ctx context.Context, userID string, request *req.DeleteMessageRequest) error {
	if _, err := uc.store.loadMessage(ctx, uc.DB, request.MessageID); err != nil {
		return err
	}
	if !request.ForEveryone {
		return nil
	}

	trx := uc.DB.WithContext(ctx).Begin()
	defer trx.Rollback()

	message, err := uc.store.loadMessage(ctx, trx, request.MessageID)
	if err != nil {
		return err
	}
	chat, err := uc.store.loadChat(ctx, trx, message.ChatID, false)
	if err != nil {
		return err
	}
	member, err := uc.MemberRepository.FindMember(ctx, trx, chat.ID, userID, true)
	if err != nil {
		return apperror.Internal(err)
	}

	allowed := (chat.ChatType == enum.DIRECT && member != nil) ||
		message.SenderID == userID ||
		member.IsAdmin()
	if !allowed {
		return apperror.ErrDeleteNotAllowed
	}

	if err := uc.MessageRepository.DeleteWithReactions(ctx, trx, message.ID); err != nil {
		uc.Logger.WithError(err).Errorf("Failed to delete message: %v", err)
		return apperror.Internal(err)
	}
	if err := trx.Commit().Error; err != nil {
		return apperror.Internal(err)
	}

	uc.Notifier.MessageDeleted(ctx, dto.MessageDeletedPayload{ChatID: chat.ID, MessageID: message.ID})
	return nil
}

func (uc *MessageUsecaseImpl) AddReaction(ctx context.Context, userID string, request *req.ReactionRequest) error {
	message, err := uc.reactionTarget(ctx, userID, request)
	if err != nil {
		return err
	}
	added, err := uc.ReactionRepository.AddIfAbsent(ctx, uc.DB, &entity.Reaction{
		MessageID: message.ID,
		UserID:    userID,
		Emoji:     request.Emoji,
	})
	if err != nil {
		uc.Logger.WithError(err).Errorf("Failed to add reaction: %v", err)
		return apperror.Internal(err)
	}
	if added {
		uc.Notifier.ReactionAdded(ctx, dto.ReactionPayload{ChatID: message.ChatID, MessageID: message.ID, UserID: userID, Emoji: request.Emoji})
	}
	return nil
}

func (uc *MessageUsecaseImpl) RemoveReaction(ctx context.Context, userID string, request *req.ReactionRequest) error {
	message, err := uc.reactionTarget(ctx, userID, request)
	if err != nil {
		return err
	}
	removed, err := uc.ReactionRepository.Remove(ctx, uc.DB, message.ID, userID, request.Emoji)
	if err != nil {
		uc.Logger.WithError(err).Errorf("Failed to remove reaction: %v", err)
		return apperror.Internal(err)
	}
	if removed {
		uc.Notifier.ReactionRemoved(ctx, dto.ReactionPayload{ChatID: message.ChatID, MessageID: message.ID, UserID: userID, Emoji: request.Emoji})
	}
	return nil
}

func (uc *MessageUsecaseImpl) GetReactions(ctx context.Context, messageID, userID string) ([]res.ReactionResponse, error) {
	message, err := uc.store.loadMessage(ctx, uc.DB, messageID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.store.requireMember(ctx, uc.DB, message.ChatID, userID, false); err != nil {
		return nil, err
	}
	reactions, err := uc.ReactionRepository.FindByMessageID(ctx, uc.DB, messageID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	responses := make([]res.ReactionResponse, 0, len(reactions))
	for _, reaction := range reactions {
		responses = append(responses, toReactionResponse(reaction))
	}
	return responses, nil
}

func (uc *MessageUsecaseImpl) reactionTarget(ctx context.Context, userID string, request *req.ReactionRequest) (*entity.Message, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return nil, validationError(err)
	}
	message, err := uc.store.loadMessage(ctx, uc.DB, request.MessageID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.store.requireMember(ctx, uc.DB, message.ChatID, userID, false); err != nil {
		return nil, err
	}
	return message, nil
}
