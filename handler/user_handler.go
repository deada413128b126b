package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"real-time-messenger/apperror"
	"real-time-messenger/dto/req"
	"real-time-messenger/dto/res"
	"real-time-messenger/middleware"
	"real-time-messenger/usecase"
)

type UserHandler struct {
	usecase.UserUsecase
	*Uploader
	*logrus.Logger
}

func NewUserHandler(userUsecase usecase.UserUsecase, uploader *Uploader, logger *logrus.Logger) *UserHandler {
	return &UserHandler{UserUsecase: userUsecase, Uploader: uploader, Logger: logger}
}

func (handler *UserHandler) GetAllUsers(ctx *fiber.Ctx) error {
	userResponses, err := handler.UserUsecase.GetAllUser(ctx.UserContext(), middleware.UserID(ctx))
	if err != nil {
		handler.Logger.WithError(err).Errorln("Failed to get all users")
		return err
	}

	responses := res.CommonResponse[[]res.UserResponse]{
		Message:    "Successfully To Get All User",
		StatusCode: fiber.StatusOK,
		Data:       userResponses,
	}
	return ctx.Status(fiber.StatusOK).JSON(responses)
}

func (handler *UserHandler) SearchUsers(ctx *fiber.Ctx) error {
	userResponses, err := handler.UserUsecase.SearchUsers(ctx.UserContext(), middleware.UserID(ctx), ctx.Query("q"))
	if err != nil {
		handler.Logger.WithError(err).Errorln("Failed to search users")
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[[]res.UserResponse]{
		Message:    "Successfully To Search User",
		StatusCode: fiber.StatusOK,
		Data:       userResponses,
	})
}

func (handler *UserHandler) GetUserByID(ctx *fiber.Ctx) error {
	userResponse, err := handler.UserUsecase.GetUserByID(ctx.UserContext(), ctx.Params("userId"))
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[res.UserResponse]{
		Message:    "Successfully To Get User By ID",
		StatusCode: fiber.StatusOK,
		Data:       userResponse,
	})
}

func (handler *UserHandler) EditUser(ctx *fiber.Ctx) error {
	payload := new(req.EditProfileRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	userResponse, err := handler.UserUsecase.UpdateProfile(ctx.UserContext(), middleware.UserID(ctx), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to edit user: %v", err)
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[res.UserResponse]{
		Message:    "Successfully To Edit User",
		StatusCode: fiber.StatusOK,
		Data:       userResponse,
	})
}

// UploadAvatar accepts an image in the multipart "avatar" field.
func (handler *UserHandler) UploadAvatar(ctx *fiber.Ctx) error {
	stored, err := handler.Uploader.save(ctx, "avatar", AvatarsDir)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(stored.MimeType, "image/") {
		return apperror.InvalidArg("avatar must be an image")
	}

	userResponse, err := handler.UserUsecase.UpdateAvatar(ctx.UserContext(), middleware.UserID(ctx), stored.URL)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to update avatar: %v", err)
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[res.UserResponse]{
		Message:    "Successfully To Update Avatar",
		StatusCode: fiber.StatusOK,
		Data:       userResponse,
	})
}

func (handler *UserHandler) GetBlockedUsers(ctx *fiber.Ctx) error {
	userResponses, err := handler.UserUsecase.GetBlockedUsers(ctx.UserContext(), middleware.UserID(ctx))
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[[]res.UserResponse]{
		Message:    "Successfully To Get Blocked Users",
		StatusCode: fiber.StatusOK,
		Data:       userResponses,
	})
}

func (handler *UserHandler) BlockUser(ctx *fiber.Ctx) error {
	if err := handler.UserUsecase.BlockUser(ctx.UserContext(), middleware.UserID(ctx), ctx.Params("userId")); err != nil {
		handler.Logger.WithError(err).Warnf("Failed to block user: %v", err)
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[res.BlockStatusResponse]{
		Message:    "Successfully To Block User",
		StatusCode: fiber.StatusOK,
		Data:       res.BlockStatusResponse{IsBlocked: true},
	})
}

func (handler *UserHandler) UnblockUser(ctx *fiber.Ctx) error {
	if err := handler.UserUsecase.UnblockUser(ctx.UserContext(), middleware.UserID(ctx), ctx.Params("userId")); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[res.BlockStatusResponse]{
		Message:    "Successfully To Unblock User",
		StatusCode: fiber.StatusOK,
		Data:       res.BlockStatusResponse{IsBlocked: false},
	})
}

func (handler *UserHandler) GetBlockStatus(ctx *fiber.Ctx) error {
	status, err := handler.UserUsecase.BlockStatus(ctx.UserContext(), middleware.UserID(ctx), ctx.Params("userId"))
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[res.BlockStatusResponse]{
		Message:    "Successfully To Get Block Status",
		StatusCode: fiber.StatusOK,
		Data:       status,
	})
}
