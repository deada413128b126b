package req

type DirectChatRequest struct {
	UserID      string `json:"-"`
	OtherUserID string `json:"otherUserId" validate:"required"`
}

type CreateGroupRequest struct {
	CreatorID   string   `json:"-"`
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=1000"`
	Avatar      string   `json:"avatar"`
	Members     []string `json:"members" validate:"dive,required"`
}

type CreateChannelRequest struct {
	CreateGroupRequest
	ChannelID string `json:"channelId" validate:"omitempty,min=3,max=64"`
}

type AddMembersRequest struct {
	Members []string `json:"members" validate:"required,min=1,dive,required"`
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=member admin"`
}

// ChatSettingsRequest carries optional flags; nil means unchanged.
type ChatSettingsRequest struct {
	PostsRestricted *bool `json:"postsRestricted"`
	CommentsEnabled *bool `json:"commentsEnabled"`
}

type EditChatRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Avatar      *string `json:"avatar"`
}
