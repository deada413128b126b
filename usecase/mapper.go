package usecase

import (
	"real-time-messenger/dto/res"
	"real-time-messenger/entity"
)

func toUserResponse(user entity.User) res.UserResponse {
	response := res.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		IsOnline:  user.IsOnline,
		CreatedAt: res.FormatTime(user.CreatedAt),
	}
	if user.LastSeen != nil {
		response.LastSeen = res.FormatTime(*user.LastSeen)
	}
	return response
}

func toUserResponses(users []entity.User) []res.UserResponse {
	responses := make([]res.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses
}

func toMessageResponse(message entity.Message, readBy []string) res.MessageResponse {
	return res.MessageResponse{
		MessageId:    message.ID,
		ChatId:       message.ChatID,
		Content:      message.Content,
		MessageType:  string(message.MessageType),
		SenderId:     message.SenderID,
		SenderName:   message.Sender.Name,
		SenderAvatar: message.Sender.Avatar,
		CreatedAt:    res.FormatTime(message.CreatedAt),
		ReadBy:       readBy,
	}
}

func toMemberResponse(member entity.ChatMember) res.MemberResponse {
	return res.MemberResponse{
		UserID:     member.UserID,
		Username:   member.User.Username,
		Name:       member.User.Name,
		Avatar:     member.User.Avatar,
		Role:       string(member.Role),
		IsOnline:   member.User.IsOnline,
		JoinedAt:   res.FormatTime(member.JoinedAt),
		LastReadAt: res.FormatTime(member.LastReadAt),
	}
}

func toReactionResponse(reaction entity.Reaction) res.ReactionResponse {
	return res.ReactionResponse{
		ID:        reaction.ID,
		MessageId: reaction.MessageID,
		UserId:    reaction.UserID,
		UserName:  reaction.User.Name,
		Avatar:    reaction.User.Avatar,
		Emoji:     reaction.Emoji,
		CreatedAt: res.FormatTime(reaction.CreatedAt),
	}
}

// uniqueIDs drops blanks and duplicates, keeping first-seen order.
func uniqueIDs(ids ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, group := range ids {
		for _, id := range group {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
