package config

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"real-time-messenger/apperror"
	"real-time-messenger/config/common"
	"real-time-messenger/dto/res"
)

func NewFiber(cfg *common.Config, log *logrus.Logger) *fiber.App {
	appName := cfg.GetAppConfig()
	_, maxUpload := cfg.GetUploadConfig()
	return fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
		AppName:       appName,
		BodyLimit:     int(maxUpload) + 1<<20,
		ErrorHandler:  NewErrorHandler(log),
	})
}

// NewErrorHandler renders every error returned by a handler as res.ErrorResponse.
func NewErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(res.ErrorResponse{
				Status:     statusText(fiberErr.Code),
				StatusCode: fiberErr.Code,
				Error:      fiberErr.Message,
			})
		}

		status := apperror.HTTPStatus(err)
		if status == fiber.StatusInternalServerError {
			log.WithError(err).Errorf("Unhandled error on %s %s", ctx.Method(), ctx.Path())
		}
		return ctx.Status(status).JSON(res.ErrorResponse{
			Status:     statusText(status),
			StatusCode: status,
			Code:       string(apperror.CodeOf(err)),
			Error:      apperror.PublicMessage(err),
		})
	}
}

func statusText(code int) string {
	return fiber.NewError(code).Message
}
