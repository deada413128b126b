package apperror

var (
	ErrSelfDirectChat     = InvalidArg("cannot create a direct chat with yourself")
	ErrEmptyContent       = InvalidArg("message content is required")
	ErrInvalidMessageType = InvalidArg("unknown message type")
	ErrNoSettings         = InvalidArg("no settings provided")
	ErrNoChanges          = InvalidArg("no updates provided")
	ErrDirectChatMembers  = InvalidArg("direct chats cannot gain members")
	ErrNoMembers          = InvalidArg("no members to add")
	ErrInvalidRole        = InvalidArg("role must be member or admin")
	ErrNameRequired       = InvalidArg("name is required")
	ErrDirectChatEdit     = InvalidArg("direct chats cannot be edited")
	ErrSelfBlock          = InvalidArg("cannot block yourself")
	ErrUserNotFound       = NotFound("user not found")
	ErrChatNotFound       = NotFound("chat not found")
	ErrMessageNotFound    = NotFound("message not found")
	ErrNotChatMember      = Forbidden("not a member of this chat")
	ErrAdminOnlyPosting   = Forbidden("only admins can post in this chat")
	ErrAdminRequired      = Forbidden("only admins can change this chat")
	ErrDeleteNotAllowed   = Forbidden("not allowed to delete this message for everyone")
	ErrChannelIDTaken     = Conflict("channel id already in use")
	ErrUsernameTaken      = Conflict("username already exists")
	ErrAlreadyBlocked     = Conflict("user is already blocked")
	ErrInvalidCredentials = Unauthorized("invalid credentials")
	ErrInvalidToken       = Unauthorized("invalid token")
	ErrRateLimited        = New(CodeRateLimited, "too many events, slow down")
	ErrUnknownEvent       = InvalidArg("unknown event")
	ErrMalformedFrame     = InvalidArg("malformed frame")
)
