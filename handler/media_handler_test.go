package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"real-time-messenger/apperror"
	"real-time-messenger/dto/res"
	"real-time-messenger/handler"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newMediaApp(t *testing.T, maxBytes int64) (*fiber.App, string) {
	t.Helper()
	dir := t.TempDir()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(apperror.HTTPStatus(err)).SendString(apperror.PublicMessage(err))
		},
	})
	app.Post("/media", handler.NewMediaHandler(handler.NewUploader(dir, maxBytes), logger).Upload)
	return app, dir
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadDetectsTypeAndStoresFile(t *testing.T) {
	app, dir := newMediaApp(t, 1<<20)
	body, contentType := multipartBody(t, "file", "cat.bin", pngHeader)

	req := httptest.NewRequest(fiber.MethodPost, "/media", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out res.CommonResponse[res.MediaResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "cat.bin", out.Data.OriginalName)
	assert.Equal(t, "image/png", out.Data.MimeType)
	assert.Equal(t, "image", out.Data.MessageType)
	require.True(t, strings.HasPrefix(out.Data.URL, "/"+handler.MediaDir+"/"))
	assert.True(t, strings.HasSuffix(out.Data.URL, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, handler.MediaDir, filepath.Base(out.Data.URL)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
}

func TestUploadRejections(t *testing.T) {
	app, _ := newMediaApp(t, 8)

	cases := map[string]struct {
		field   string
		content []byte
	}{
		"missing file field": {field: "other", content: pngHeader[:4]},
		"file too large":     {field: "file", content: pngHeader},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			body, contentType := multipartBody(t, tc.field, "x.png", tc.content)
			req := httptest.NewRequest(fiber.MethodPost, "/media", body)
			req.Header.Set(fiber.HeaderContentType, contentType)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}
