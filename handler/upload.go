package handler

import (
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"real-time-messenger/apperror"
)

const (
	MediaDir   = "media"
	AvatarsDir = "avatars"
)

// Uploader stores multipart files under Dir/<sub>/ with random names and reports the
// public URL they are served from.
type Uploader struct {
	Dir      string
	MaxBytes int64
}

type storedFile struct {
	URL          string
	OriginalName string
	MimeType     string
}

func NewUploader(dir string, maxBytes int64) *Uploader {
	return &Uploader{Dir: dir, MaxBytes: maxBytes}
}

func (u *Uploader) save(ctx *fiber.Ctx, field, sub string) (storedFile, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return storedFile{}, apperror.InvalidArg(field + " is required")
	}
	if u.MaxBytes > 0 && header.Size > u.MaxBytes {
		return storedFile{}, apperror.InvalidArg("file is too large")
	}

	file, err := header.Open()
	if err != nil {
		return storedFile{}, apperror.Internal(err)
	}
	detected, err := mimetype.DetectReader(file)
	_ = file.Close()
	if err != nil {
		return storedFile{}, apperror.Internal(err)
	}

	dir := filepath.Join(u.Dir, sub)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return storedFile{}, apperror.Internal(err)
	}
	name := uuid.NewString() + detected.Extension()
	if err := ctx.SaveFile(header, filepath.Join(dir, name)); err != nil {
		return storedFile{}, apperror.Internal(err)
	}

	return storedFile{
		URL:          "/" + sub + "/" + name,
		OriginalName: header.Filename,
		MimeType:     detected.String(),
	}, nil
}
