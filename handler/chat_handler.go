package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"real-time-messenger/dto/req"
	"real-time-messenger/dto/res"
	"real-time-messenger/middleware"
	"real-time-messenger/usecase"
)

type ChatHandler struct {
	usecase.ChatUsecase
	MessageUsecase usecase.MessageUsecase
	*logrus.Logger
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, messageUsecase usecase.MessageUsecase, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		ChatUsecase:    chatUsecase,
		MessageUsecase: messageUsecase,
		Logger:         logger,
	}
}

// GetAllChat returns the caller's chats, most recent activity first, with unread counts.
func (handler *ChatHandler) GetAllChat(c *fiber.Ctx) error {
	chatResponses, err := handler.ChatUsecase.GetChatsByUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to get chats")
		return err
	}

	responses := res.CommonResponse[[]res.ChatResponse]{
		Message:    "Successfully to Get All Chats",
		StatusCode: fiber.StatusOK,
		Data:       chatResponses,
	}

	return c.Status(fiber.StatusOK).JSON(responses)
}

func (handler *ChatHandler) CreateDirectChat(c *fiber.Ctx) error {
	payload := new(req.DirectChatRequest)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	payload.UserID = middleware.UserID(c)

	chat, err := handler.ChatUsecase.CreateDirectChat(c.UserContext(), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to create direct chat: %v", err)
		return err
	}
	return respondCreated(c, "Successfully to Create Direct Chat", chat)
}

func (handler *ChatHandler) CreateGroup(c *fiber.Ctx) error {
	payload := new(req.CreateGroupRequest)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	payload.CreatorID = middleware.UserID(c)

	chat, err := handler.ChatUsecase.CreateGroup(c.UserContext(), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to create group: %v", err)
		return err
	}
	return respondCreated(c, "Successfully to Create Group", chat)
}

func (handler *ChatHandler) CreateChannel(c *fiber.Ctx) error {
	payload := new(req.CreateChannelRequest)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	payload.CreatorID = middleware.UserID(c)

	chat, err := handler.ChatUsecase.CreateChannel(c.UserContext(), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to create channel: %v", err)
		return err
	}
	return respondCreated(c, "Successfully to Create Channel", chat)
}

func (handler *ChatHandler) GetChat(c *fiber.Ctx) error {
	chat, err := handler.ChatUsecase.GetChat(c.UserContext(), c.Params("chatId"), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respondOK(c, "Successfully to Get Chat", chat)
}

func (handler *ChatHandler) EditChat(c *fiber.Ctx) error {
	payload := new(req.EditChatRequest)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	chat, err := handler.ChatUsecase.EditChat(c.UserContext(), c.Params("chatId"), middleware.UserID(c), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to edit chat: %v", err)
		return err
	}
	return respondOK(c, "Successfully to Edit Chat", chat)
}

func (handler *ChatHandler) GetMembers(c *fiber.Ctx) error {
	members, err := handler.ChatUsecase.ListMembers(c.UserContext(), c.Params("chatId"), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respondOK(c, "Successfully to Get Members", members)
}

func (handler *ChatHandler) AddMembers(c *fiber.Ctx) error {
	payload := new(req.AddMembersRequest)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	added, err := handler.ChatUsecase.AddMembers(c.UserContext(), c.Params("chatId"), middleware.UserID(c), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to add members: %v", err)
		return err
	}
	return respondOK(c, "Successfully to Add Members", added)
}

func (handler *ChatHandler) SetMemberRole(c *fiber.Ctx) error {
	payload := new(req.SetRoleRequest)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	chatID, userID := c.Params("chatId"), c.Params("userId")
	if err := handler.ChatUsecase.SetRole(c.UserContext(), chatID, middleware.UserID(c), userID, payload); err != nil {
		handler.Logger.WithError(err).Errorf("Failed to set role: %v", err)
		return err
	}
	return respondOK(c, "Successfully to Set Role", fiber.Map{"chatId": chatID, "userId": userID, "role": payload.Role})
}

func (handler *ChatHandler) UpdateSettings(c *fiber.Ctx) error {
	payload := new(req.ChatSettingsRequest)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	settings, err := handler.ChatUsecase.UpdateSettings(c.UserContext(), c.Params("chatId"), middleware.UserID(c), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to update settings: %v", err)
		return err
	}
	return respondOK(c, "Successfully to Update Settings", settings)
}

func (handler *ChatHandler) MarkRead(c *fiber.Ctx) error {
	chatID := c.Params("chatId")
	if err := handler.ChatUsecase.MarkRead(c.UserContext(), chatID, middleware.UserID(c)); err != nil {
		return err
	}
	return respondOK(c, "Successfully to Mark Read", fiber.Map{"chatId": chatID})
}

func (handler *ChatHandler) GetMessagesByID(c *fiber.Ctx) error {
	chatId := c.Params("chatId")

	messages, err := handler.MessageUsecase.GetMessagesByChatID(c.UserContext(), chatId, middleware.UserID(c))
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to get messages by chat ID")
		return err
	}

	return respondOK(c, "Successfully to Get Messages", res.MessagesHistoryResponse{
		ChatId:   chatId,
		Messages: messages,
	})
}

func (handler *ChatHandler) PostMessage(c *fiber.Ctx) error {
	payload := new(req.MessageRequest)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	payload.ChatID = c.Params("chatId")
	payload.SenderID = middleware.UserID(c)

	message, err := handler.MessageUsecase.PostMessage(c.UserContext(), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to post message: %v", err)
		return err
	}
	return respondCreated(c, "Successfully to Send Message", message)
}

func respondOK[T any](c *fiber.Ctx, message string, data T) error {
	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[T]{
		Message:    message,
		StatusCode: fiber.StatusOK,
		Data:       data,
	})
}

func respondCreated[T any](c *fiber.Ctx, message string, data T) error {
	return c.Status(fiber.StatusCreated).JSON(res.CommonResponse[T]{
		Message:    message,
		StatusCode: fiber.StatusCreated,
		Data:       data,
	})
}
