package req

type MessageRequest struct {
	ChatID      string `json:"chatId" validate:"required"`
	SenderID    string `json:"-"`
	Content     string `json:"content" validate:"required,max=10000"`
	MessageType string `json:"messageType" validate:"omitempty,oneof=text image video audio file"`
	// ClientID is the sender's idempotency token, echoed back on the durable message.
	ClientID string `json:"clientId" validate:"max=64"`
}

type DeleteMessageRequest struct {
	MessageID   string `json:"messageId"`
	ForEveryone bool   `json:"forEveryone"`
}

type ReactionRequest struct {
	MessageID string `json:"messageId"`
	Emoji     string `json:"emoji" validate:"required,max=32"`
}
