package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"real-time-messenger/dto/req"
	"real-time-messenger/middleware"
	"real-time-messenger/usecase"
)

type MessageHandler struct {
	usecase.MessageUsecase
	*logrus.Logger
}

func NewMessageHandler(messageUsecase usecase.MessageUsecase, logger *logrus.Logger) *MessageHandler {
	return &MessageHandler{MessageUsecase: messageUsecase, Logger: logger}
}

// DeleteMessage reads forEveryone from the body or, for bodiless DELETEs, the query string.
func (handler *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	payload := new(req.DeleteMessageRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(payload); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	} else {
		payload.ForEveryone = c.QueryBool("forEveryone")
	}
	payload.MessageID = c.Params("messageId")

	if err := handler.MessageUsecase.DeleteMessage(c.UserContext(), middleware.UserID(c), payload); err != nil {
		handler.Logger.WithError(err).Warnf("Failed to delete message: %v", err)
		return err
	}
	return respondOK(c, "Successfully to Delete Message", fiber.Map{"messageId": payload.MessageID, "forEveryone": payload.ForEveryone})
}

func (handler *MessageHandler) GetReactions(c *fiber.Ctx) error {
	reactions, err := handler.MessageUsecase.GetReactions(c.UserContext(), c.Params("messageId"), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respondOK(c, "Successfully to Get Reactions", reactions)
}

func (handler *MessageHandler) AddReaction(c *fiber.Ctx) error {
	payload, err := reactionPayload(c)
	if err != nil {
		return err
	}
	if err := handler.MessageUsecase.AddReaction(c.UserContext(), middleware.UserID(c), payload); err != nil {
		handler.Logger.WithError(err).Warnf("Failed to add reaction: %v", err)
		return err
	}
	return respondOK(c, "Successfully to Add Reaction", payload)
}

func (handler *MessageHandler) RemoveReaction(c *fiber.Ctx) error {
	payload, err := reactionPayload(c)
	if err != nil {
		return err
	}
	if err := handler.MessageUsecase.RemoveReaction(c.UserContext(), middleware.UserID(c), payload); err != nil {
		handler.Logger.WithError(err).Warnf("Failed to remove reaction: %v", err)
		return err
	}
	return respondOK(c, "Successfully to Remove Reaction", payload)
}

func reactionPayload(c *fiber.Ctx) (*req.ReactionRequest, error) {
	payload := new(req.ReactionRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(payload); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	} else {
		payload.Emoji = c.Query("emoji")
	}
	payload.MessageID = c.Params("messageId")
	return payload, nil
}
