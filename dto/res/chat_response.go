package res

// ChatResponse is one row of a user's chat list, also the payload of new_group/new_channel.
type ChatResponse struct {
	ChatId            string        `json:"chatId"`
	Type              string        `json:"type"`
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	Avatar            string        `json:"avatar,omitempty"`
	ChannelId         string        `json:"channelId,omitempty"`
	CreatedBy         string        `json:"createdBy"`
	Role              string        `json:"role"`
	PostsRestricted   bool          `json:"postsRestricted"`
	CommentsEnabled   bool          `json:"commentsEnabled"`
	LastMessage       string        `json:"lastMessage,omitempty"`
	LastMessageType   string        `json:"lastMessageType,omitempty"`
	LastMessageSender string        `json:"lastMessageSender,omitempty"`
	LastMessageTime   string        `json:"lastMessageTime,omitempty"`
	UnreadCount       uint          `json:"unreadCount"`
	OtherUser         *UserResponse `json:"otherUser,omitempty"`
	CreatedAt         string        `json:"createdAt"`
}

type MemberResponse struct {
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	Role       string `json:"role"`
	IsOnline   bool   `json:"isOnline"`
	JoinedAt   string `json:"joinedAt"`
	LastReadAt string `json:"lastReadAt"`
}

type ChatSettingsResponse struct {
	ChatId          string `json:"chatId"`
	PostsRestricted bool   `json:"postsRestricted"`
	CommentsEnabled bool   `json:"commentsEnabled"`
}

type AddMembersResponse struct {
	ChatId string   `json:"chatId"`
	Added  []string `json:"added"`
}
