package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"real-time-messenger/dto/res"
	"real-time-messenger/enum"
)

type MediaHandler struct {
	*Uploader
	*logrus.Logger
}

func NewMediaHandler(uploader *Uploader, logger *logrus.Logger) *MediaHandler {
	return &MediaHandler{Uploader: uploader, Logger: logger}
}

// Upload stores the multipart "file" field. The client then posts a message whose content
// is the returned URL and whose type is the returned messageType.
func (handler *MediaHandler) Upload(ctx *fiber.Ctx) error {
	stored, err := handler.Uploader.save(ctx, "file", MediaDir)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to upload media: %v", err)
		return err
	}

	handler.Logger.Infof("Media stored at %s (%s)", stored.URL, stored.MimeType)
	return ctx.Status(fiber.StatusCreated).JSON(res.CommonResponse[res.MediaResponse]{
		Message:    "Successfully to upload media",
		StatusCode: fiber.StatusCreated,
		Data: res.MediaResponse{
			URL:          stored.URL,
			OriginalName: stored.OriginalName,
			MimeType:     stored.MimeType,
			MessageType:  string(enum.MessageTypeForMime(stored.MimeType)),
		},
	})
}
