package res

type MessageResponse struct {
	MessageId    string   `json:"messageId"`
	ChatId       string   `json:"chatId"`
	Content      string   `json:"content"`
	MessageType  string   `json:"messageType"`
	SenderId     string   `json:"senderId"`
	SenderName   string   `json:"senderName"`
	SenderAvatar string   `json:"senderAvatar,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	ReadBy       []string `json:"readBy,omitempty"`
	ClientId     string   `json:"clientId,omitempty"`
}

type MessagesHistoryResponse struct {
	ChatId   string            `json:"chatId"`
	Messages []MessageResponse `json:"messages"`
}

type ReactionResponse struct {
	ID        string `json:"id"`
	MessageId string `json:"messageId"`
	UserId    string `json:"userId"`
	UserName  string `json:"userName"`
	Avatar    string `json:"avatar,omitempty"`
	Emoji     string `json:"emoji"`
	CreatedAt string `json:"createdAt"`
}

type MediaResponse struct {
	URL          string `json:"url"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	MessageType  string `json:"messageType"`
}
