package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

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

type ChatUsecaseImpl struct {
	*repository.ChatRepository
	*repository.MemberRepository
	*repository.MessageRepository
	*validator.Validate
	*logrus.Logger
	*gorm.DB
	Notifier Notifier
	store    store
}

func NewChatUsecase(chatRepository *repository.ChatRepository, memberRepository *repository.MemberRepository, messageRepository *repository.MessageRepository, userRepository *repository.UserRepository, validate *validator.Validate, logger *logrus.Logger, DB *gorm.DB, notifier Notifier) *ChatUsecaseImpl {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ChatUsecaseImpl{
		ChatRepository:    chatRepository,
		MemberRepository:  memberRepository,
		MessageRepository: messageRepository,
		Validate:          validate,
		Logger:            logger,
		DB:                DB,
		Notifier:          notifier,
		store: store{
			chats:    chatRepository,
			members:  memberRepository,
			messages: messageRepository,
			users:    userRepository,
		},
	}
}

// directKey identifies the unordered user pair of a direct chat.
func directKey(userAID, userBID string) string {
	if userAID > userBID {
		userAID, userBID = userBID, userAID
	}
	return userAID + ":" + userBID
}

func (uc *ChatUsecaseImpl) CreateDirectChat(ctx context.Context, request *req.DirectChatRequest) (res.ChatResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.ChatResponse{}, validationError(err)
	}
	userID, otherID := request.UserID, request.OtherUserID
	if userID == otherID {
		return res.ChatResponse{}, apperror.ErrSelfDirectChat
	}
	if err := uc.store.requireUsers(ctx, uc.DB, []string{otherID}); err != nil {
		return res.ChatResponse{}, err
	}

	existingChat, err := uc.ChatRepository.FindDirectChat(ctx, uc.DB, userID, otherID)
	if err != nil {
		uc.Logger.WithError(err).Errorf("Failed to look up direct chat: %v", err)
		return res.ChatResponse{}, apperror.Internal(err)
	}
	if existingChat != nil {
		return uc.chatView(ctx, uc.DB, userID, *existingChat)
	}

	now := repository.Now(uc.DB)
	key := directKey(userID, otherID)
	newChat := &entity.Chat{
		ChatType:  enum.DIRECT,
		CreatorID: userID,
		DirectKey: &key,
	}
	members := []entity.ChatMember{
		{UserID: userID, Role: enum.MemberRoleMember, JoinedAt: now, LastReadAt: now},
		{UserID: otherID, Role: enum.MemberRoleMember, JoinedAt: now, LastReadAt: now},
	}

	if err := uc.ChatRepository.CreateChatWithMembers(ctx, uc.DB, newChat, members); err != nil {
		if repository.IsDuplicate(err) {
			// lost a race with the same pair; the winner's chat is the answer
			existingChat, lookupErr := uc.ChatRepository.FindDirectChat(ctx, uc.DB, userID, otherID)
			if lookupErr == nil && existingChat != nil {
				return uc.chatView(ctx, uc.DB, userID, *existingChat)
			}
		}
		uc.Logger.WithError(err).Errorf("Failed to create direct chat: %v", err)
		return res.ChatResponse{}, apperror.Internal(err)
	}

	view, err := uc.chatView(ctx, uc.DB, userID, *newChat)
	if err != nil {
		return res.ChatResponse{}, err
	}
	uc.Logger.Infof("New direct chat created: %s", newChat.ID)
	uc.Notifier.ChatCreated(ctx, view, []string{userID, otherID})
	return view, nil
}

func (uc *ChatUsecaseImpl) CreateGroup(ctx context.Context, request *req.CreateGroupRequest) (res.ChatResponse, error) {
	return uc.createMultiMemberChat(ctx, enum.GROUP, request, "")
}

func (uc *ChatUsecaseImpl) CreateChannel(ctx context.Context, request *req.CreateChannelRequest) (res.ChatResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.ChatResponse{}, validationError(err)
	}
	return uc.createMultiMemberChat(ctx, enum.CHANNEL, &request.CreateGroupRequest, strings.TrimSpace(request.ChannelID))
}

func (uc *ChatUsecaseImpl) createMultiMemberChat(ctx context.Context, kind enum.ChatType, request *req.CreateGroupRequest, channelID string) (res.ChatResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.ChatResponse{}, validationError(err)
	}
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return res.ChatResponse{}, apperror.ErrNameRequired
	}

	memberIDs := uniqueIDs([]string{request.CreatorID}, request.Members)
	if err := uc.store.requireUsers(ctx, uc.DB, memberIDs); err != nil {
		return res.ChatResponse{}, err
	}

	newChat := &entity.Chat{
		ChatType:    kind,
		Name:        name,
		Description: strings.TrimSpace(request.Description),
		Avatar:      request.Avatar,
		CreatorID:   request.CreatorID,
	}
	if kind == enum.CHANNEL {
		newChat.PostsRestricted = true
		newChat.CommentsEnabled = true
		if channelID != "" {
			taken, err := uc.ChatRepository.FindByChannelID(ctx, uc.DB, channelID)
			if err != nil {
				uc.Logger.WithError(err).Errorf("Failed to check channel id: %v", err)
				return res.ChatResponse{}, apperror.Internal(err)
			}
			if taken != nil {
				return res.ChatResponse{}, apperror.ErrChannelIDTaken
			}
			newChat.ChannelID = &channelID
		}
	}

	now := repository.Now(uc.DB)
	members := make([]entity.ChatMember, 0, len(memberIDs))
	for _, id := range memberIDs {
		role := enum.MemberRoleMember
		if id == request.CreatorID {
			role = enum.MemberRoleAdmin
		}
		members = append(members, entity.ChatMember{UserID: id, Role: role, JoinedAt: now, LastReadAt: now})
	}

	if err := uc.ChatRepository.CreateChatWithMembers(ctx, uc.DB, newChat, members); err != nil {
		if kind == enum.CHANNEL && repository.IsDuplicate(err) {
			return res.ChatResponse{}, apperror.ErrChannelIDTaken
		}
		uc.Logger.WithError(err).Errorf("Failed to create %s: %v", kind, err)
		return res.ChatResponse{}, apperror.Internal(err)
	}

	view, err := uc.chatView(ctx, uc.DB, request.CreatorID, *newChat)
	if err != nil {
		return res.ChatResponse{}, err
	}
	uc.Logger.Infof("New %s created: %s (%d members)", kind, newChat.ID, len(memberIDs))
	uc.Notifier.ChatCreated(ctx, view, memberIDs)
	return view, nil
}

func (uc *ChatUsecaseImpl) AddMembers(ctx context.Context, chatID, actorID string, request *req.AddMembersRequest) (res.AddMembersResponse, error) {
	userIDs := uniqueIDs(request.Members)
	if len(userIDs) == 0 {
		return res.AddMembersResponse{}, apperror.ErrNoMembers
	}

	trx := uc.DB.WithContext(ctx).Begin()
	defer trx.Rollback()

	chat, err := uc.store.loadChat(ctx, trx, chatID, true)
	if err != nil {
		return res.AddMembersResponse{}, err
	}
	if chat.ChatType == enum.DIRECT {
		return res.AddMembersResponse{}, apperror.ErrDirectChatMembers
	}
	if _, err := uc.store.requireAdmin(ctx, trx, chatID, actorID); err != nil {
		return res.AddMembersResponse{}, err
	}
	if err := uc.store.requireUsers(ctx, trx, userIDs); err != nil {
		return res.AddMembersResponse{}, err
	}

	added, err := uc.MemberRepository.AddMembers(ctx, trx, chatID, userIDs, enum.MemberRoleMember, repository.Now(trx))
	if err != nil {
		uc.Logger.WithError(err).Errorf("Failed to add members to %s: %v", chatID, err)
		return res.AddMembersResponse{}, apperror.Internal(err)
	}
	if err := trx.Commit().Error; err != nil {
		uc.Logger.WithError(err).Errorf("Failed to commit members: %v", err)
		return res.AddMembersResponse{}, apperror.Internal(err)
	}

	if len(added) > 0 {
		uc.Logger.Infof("Added %d members to chat %s", len(added), chatID)
		uc.Notifier.MembersAdded(ctx, chatID, added)
	}
	return res.AddMembersResponse{ChatId: chatID, Added: added}, nil
}

// SetRole changes the role of an existing member; a missing membership is left alone.
func (uc *ChatUsecaseImpl) SetRole(ctx context.Context, chatID, actorID, userID string, request *req.SetRoleRequest) error {
	role := enum.MemberRole(request.Role)
	if !role.Valid() {
		return apperror.ErrInvalidRole
	}

	trx := uc.DB.WithContext(ctx).Begin()
	defer trx.Rollback()

	if _, err := uc.store.loadChat(ctx, trx, chatID, false); err != nil {
		return err
	}
	if _, err := uc.store.requireAdmin(ctx, trx, chatID, actorID); err != nil {
		return err
	}
	updated, err := uc.MemberRepository.UpdateRole(ctx, trx, chatID, userID, role)
	if err != nil {
		uc.Logger.WithError(err).Errorf("Failed to update role: %v", err)
		return apperror.Internal(err)
	}
	if err := trx.Commit().Error; err != nil {
		return apperror.Internal(err)
	}

	if updated {
		uc.Notifier.RoleUpdated(ctx, dto.MemberRolePayload{ChatID: chatID, UserID: userID, Role: string(role)})
	}
	return nil
}

// UpdateSettings re-checks the admin role inside the write transaction. Channels stay
// restricted whatever is asked.
func (uc *ChatUsecaseImpl) UpdateSettings(ctx context.Context, chatID, actorID string, request *req.ChatSettingsRequest) (res.ChatSettingsResponse, error) {
	if request.PostsRestricted == nil && request.CommentsEnabled == nil {
		return res.ChatSettingsResponse{}, apperror.ErrNoSettings
	}

	trx := uc.DB.WithContext(ctx).Begin()
	defer trx.Rollback()

	chat, err := uc.store.loadChat(ctx, trx, chatID, true)
	if err != nil {
		return res.ChatSettingsResponse{}, err
	}
	if _, err := uc.store.requireAdmin(ctx, trx, chatID, actorID); err != nil {
		return res.ChatSettingsResponse{}, err
	}

	columns := map[string]interface{}{}
	if request.PostsRestricted != nil {
		chat.PostsRestricted = *request.PostsRestricted || chat.ChatType == enum.CHANNEL
		columns["posts_restricted"] = chat.PostsRestricted
	}
	if request.CommentsEnabled != nil {
		chat.CommentsEnabled = *request.CommentsEnabled
		columns["comments_enabled"] = chat.CommentsEnabled
	}
	if err := uc.ChatRepository.UpdateColumns(ctx, trx, chatID, columns); err != nil {
		uc.Logger.WithError(err).Errorf("Failed to update settings: %v", err)
		return res.ChatSettingsResponse{}, apperror.Internal(err)
	}
	if err := trx.Commit().Error; err != nil {
		return res.ChatSettingsResponse{}, apperror.Internal(err)
	}

	settings := res.ChatSettingsResponse{
		ChatId:          chatID,
		PostsRestricted: chat.PostsRestricted,
		CommentsEnabled: chat.CommentsEnabled,
	}
	uc.Notifier.SettingsUpdated(ctx, settings)
	return settings, nil
}

func (uc *ChatUsecaseImpl) EditChat(ctx context.Context, chatID, actorID string, request *req.EditChatRequest) (res.ChatResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.ChatResponse{}, validationError(err)
	}
	columns := map[string]interface{}{}
	if request.Name != nil {
		name := strings.TrimSpace(*request.Name)
		if name == "" {
			return res.ChatResponse{}, apperror.ErrNameRequired
		}
		columns["name"] = name
	}
	if request.Description != nil {
		columns["description"] = strings.TrimSpace(*request.Description)
	}
	if request.Avatar != nil {
		columns["avatar"] = *request.Avatar
	}
	if len(columns) == 0 {
		return res.ChatResponse{}, apperror.ErrNoChanges
	}

	trx := uc.DB.WithContext(ctx).Begin()
	defer trx.Rollback()

	chat, err := uc.store.loadChat(ctx, trx, chatID, true)
	if err != nil {
		return res.ChatResponse{}, err
	}
	if chat.ChatType == enum.DIRECT {
		return res.ChatResponse{}, apperror.ErrDirectChatEdit
	}
	if _, err := uc.store.requireAdmin(ctx, trx, chatID, actorID); err != nil {
		return res.ChatResponse{}, err
	}
	if err := uc.ChatRepository.UpdateColumns(ctx, trx, chatID, columns); err != nil {
		uc.Logger.WithError(err).Errorf("Failed to edit chat: %v", err)
		return res.ChatResponse{}, apperror.Internal(err)
	}
	if err := trx.Commit().Error; err != nil {
		return res.ChatResponse{}, apperror.Internal(err)
	}

	uc.Notifier.ChatUpdated(ctx, chatID)
	return uc.GetChat(ctx, chatID, actorID)
}

func (uc *ChatUsecaseImpl) GetChat(ctx context.Context, chatID, userID string) (res.ChatResponse, error) {
	chat, err := uc.store.loadChat(ctx, uc.DB, chatID, false)
	if err != nil {
		return res.ChatResponse{}, err
	}
	if _, err := uc.store.requireMember(ctx, uc.DB, chatID, userID, false); err != nil {
		return res.ChatResponse{}, err
	}
	return uc.chatView(ctx, uc.DB, userID, *chat)
}

func (uc *ChatUsecaseImpl) ListMembers(ctx context.Context, chatID, userID string) ([]res.MemberResponse, error) {
	if _, err := uc.store.loadChat(ctx, uc.DB, chatID, false); err != nil {
		return nil, err
	}
	if _, err := uc.store.requireMember(ctx, uc.DB, chatID, userID, false); err != nil {
		return nil, err
	}
	members, err := uc.MemberRepository.FindMembersWithUsers(ctx, uc.DB, chatID)
	if err != nil {
		uc.Logger.WithError(err).Error("Failed to list members")
		return nil, apperror.Internal(err)
	}
	responses := make([]res.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, toMemberResponse(member))
	}
	return responses, nil
}

// GetChatsByUser lists the user's chats, most recently active first.
func (uc *ChatUsecaseImpl) GetChatsByUser(ctx context.Context, userID string) ([]res.ChatResponse, error) {
	chats, err := uc.ChatRepository.FindAllByUserID(ctx, uc.DB, userID)
	if err != nil {
		uc.Logger.WithError(err).Error("Failed to get chats by user ID")
		return nil, apperror.Internal(err)
	}
	return uc.chatViews(ctx, uc.DB, userID, chats)
}

// MarkRead moves the member's watermark to now and announces the receipt to the room.
func (uc *ChatUsecaseImpl) MarkRead(ctx context.Context, chatID, userID string) error {
	if _, err := uc.store.requireMember(ctx, uc.DB, chatID, userID, false); err != nil {
		return err
	}
	now := repository.Now(uc.DB)
	if err := uc.MemberRepository.TouchLastRead(ctx, uc.DB, chatID, userID, now); err != nil {
		uc.Logger.WithError(err).Errorf("Failed to mark chat %s read: %v", chatID, err)
		return apperror.Internal(err)
	}
	uc.Notifier.ReadReceipt(ctx, dto.ReadReceiptPayload{ChatID: chatID, UserID: userID, Timestamp: res.FormatTime(now)})
	return nil
}

func (uc *ChatUsecaseImpl) chatView(ctx context.Context, db *gorm.DB, userID string, chat entity.Chat) (res.ChatResponse, error) {
	views, err := uc.chatViews(ctx, db, userID, []entity.Chat{chat})
	if err != nil {
		return res.ChatResponse{}, err
	}
	return views[0], nil
}

// chatViews enriches chats for one member: display name and avatar (the other member for
// direct chats), last message preview, role and unread count.
func (uc *ChatUsecaseImpl) chatViews(ctx context.Context, db *gorm.DB, userID string, chats []entity.Chat) ([]res.ChatResponse, error) {
	views := make([]res.ChatResponse, 0, len(chats))
	if len(chats) == 0 {
		return views, nil
	}

	chatIDs := make([]string, 0, len(chats))
	directIDs := make([]string, 0)
	for _, chat := range chats {
		chatIDs = append(chatIDs, chat.ID)
		if chat.ChatType == enum.DIRECT {
			directIDs = append(directIDs, chat.ID)
		}
	}

	memberships, err := uc.MemberRepository.FindMembershipsByUserID(ctx, db, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	roles := make(map[string]enum.MemberRole, len(memberships))
	for _, m := range memberships {
		roles[m.ChatID] = m.Role
	}

	counterparts, err := uc.MemberRepository.FindCounterparts(ctx, db, directIDs, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	others := make(map[string]entity.User, len(counterparts))
	for _, m := range counterparts {
		others[m.ChatID] = m.User
	}

	lastMessages, err := uc.MessageRepository.FindLastMessages(ctx, db, chatIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	unread, err := uc.MessageRepository.CountUnread(ctx, db, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	activity := make(map[string]time.Time, len(chats))
	for _, chat := range chats {
		view := res.ChatResponse{
			ChatId:          chat.ID,
			Type:            string(chat.ChatType),
			Name:            chat.Name,
			Description:     chat.Description,
			Avatar:          chat.Avatar,
			CreatedBy:       chat.CreatorID,
			Role:            string(roles[chat.ID]),
			PostsRestricted: chat.PostsRestricted,
			CommentsEnabled: chat.CommentsEnabled,
			UnreadCount:     uint(unread[chat.ID]),
			CreatedAt:       res.FormatTime(chat.CreatedAt),
		}
		if chat.ChannelID != nil {
			view.ChannelId = *chat.ChannelID
		}
		if other, ok := others[chat.ID]; ok {
			otherUser := toUserResponse(other)
			view.Name = other.Name
			view.Avatar = other.Avatar
			view.OtherUser = &otherUser
		}

		activity[chat.ID] = chat.CreatedAt
		if last, ok := lastMessages[chat.ID]; ok {
			view.LastMessage = last.Content
			view.LastMessageType = string(last.MessageType)
			view.LastMessageSender = last.Sender.Name
			view.LastMessageTime = res.FormatTime(last.CreatedAt)
			activity[chat.ID] = last.CreatedAt
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		return activity[views[i].ChatId].After(activity[views[j].ChatId])
	})
	return views, nil
}
