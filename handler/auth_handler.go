package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"real-time-messenger/dto/req"
	"real-time-messenger/dto/res"
	"real-time-messenger/middleware"
	"real-time-messenger/usecase"
)

// SessionCloser drops a user's live connection on logout.
type SessionCloser interface {
	Disconnect(userID string) bool
}

type AuthHandler struct {
	usecase.AuthUsecase
	usecase.UserUsecase
	Sessions SessionCloser
	*logrus.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUsecase, userUsecase usecase.UserUsecase, sessions SessionCloser, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{AuthUsecase: authUseCase, UserUsecase: userUsecase, Sessions: sessions, Logger: logger}
}

func (handler *AuthHandler) RegisterUser(ctx *fiber.Ctx) error {
	// parse request
	payload := new(req.RegisterRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	// get from useCase
	registerResponse, err := handler.AuthUsecase.RegisterUser(ctx.UserContext(), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to register new user: %v", err)
		return err
	}
	// response
	response := res.CommonResponse[res.RegisterResponse]{
		Message:    "Successfully to register new user",
		StatusCode: fiber.StatusCreated,
		Data:       registerResponse,
	}
	handler.Logger.Infof("Success register user with id: %s", registerResponse.ID)
	return ctx.Status(fiber.StatusCreated).JSON(response)
}

func (handler *AuthHandler) LoginUser(ctx *fiber.Ctx) error {
	// parse request
	payload := new(req.LoginRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	// get from useCase
	loginResponse, err := handler.AuthUsecase.LoginUser(ctx.UserContext(), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to login: %v", err)
		return err
	}
	// response
	response := res.CommonResponse[res.LoginResponse]{
		Message:    "Successfully to login",
		StatusCode: fiber.StatusOK,
		Data:       loginResponse,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

func (handler *AuthHandler) Me(ctx *fiber.Ctx) error {
	userResponse, err := handler.UserUsecase.GetUserByID(ctx.UserContext(), middleware.UserID(ctx))
	if err != nil {
		handler.Logger.WithError(err).Errorln("Failed to get user by token")
		return err
	}

	response := res.CommonResponse[res.UserResponse]{
		Message:    "Successfully To Get User By ID",
		StatusCode: fiber.StatusOK,
		Data:       userResponse,
	}
	return ctx.Status(fiber.StatusOK).JSON(response)
}

// Logout closes the caller's live connection; tokens are stateless and expire on their own.
func (handler *AuthHandler) Logout(ctx *fiber.Ctx) error {
	userID := middleware.UserID(ctx)
	closed := handler.Sessions.Disconnect(userID)
	handler.Logger.Infof("User %s logged out (live connection closed: %t)", userID, closed)

	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[any]{
		Message:    "Successfully to logout",
		StatusCode: fiber.StatusOK,
	})
}
