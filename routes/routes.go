package routes

import (
	"path/filepath"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"real-time-messenger/handler"
	"real-time-messenger/middleware"
)

type ConfigRoute struct {
	*fiber.App
	*middleware.Middleware
	*handler.AuthHandler
	*handler.UserHandler
	*handler.ChatHandler
	*handler.MessageHandler
	*handler.MediaHandler
	*handler.WebSocketHandler
	Metrics   prometheus.Gatherer
	UploadDir string
}

func (rc *ConfigRoute) GetRoute() {
	rc.GetOpsRoute()
	rc.GetStaticRoute()
	rc.GetPublicRoute()
	rc.GetProtectedRoute()
	rc.GetWebSocketRoute()
}

func (rc *ConfigRoute) GetOpsRoute() {
	rc.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	rc.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(rc.Metrics, promhttp.HandlerOpts{})))
}

func (rc *ConfigRoute) GetStaticRoute() {
	rc.App.Static("/"+handler.MediaDir, filepath.Join(rc.UploadDir, handler.MediaDir))
	rc.App.Static("/"+handler.AvatarsDir, filepath.Join(rc.UploadDir, handler.AvatarsDir))
}

func (rc *ConfigRoute) GetPublicRoute() {
	app := rc.App.Group("/api/v1")
	app.Post("/auth/register", rc.AuthHandler.RegisterUser)
	app.Post("/auth/login", rc.AuthHandler.LoginUser)
}

func (rc *ConfigRoute) GetProtectedRoute() {
	app := rc.App.Group("/api/v1", rc.Middleware.JWTProtected, rc.Middleware.ExtractUserID)

	app.Get("/auth/me", rc.AuthHandler.Me)
	app.Post("/auth/logout", rc.AuthHandler.Logout)

	app.Get("/users", rc.UserHandler.GetAllUsers)
	app.Get("/users/search", rc.UserHandler.SearchUsers)
	app.Get("/users/blocked", rc.UserHandler.GetBlockedUsers)
	app.Put("/users/me", rc.UserHandler.EditUser)
	app.Post("/users/me/avatar", rc.UserHandler.UploadAvatar)
	app.Get("/users/:userId", rc.UserHandler.GetUserByID)
	app.Post("/users/:userId/block", rc.UserHandler.BlockUser)
	app.Delete("/users/:userId/block", rc.UserHandler.UnblockUser)
	app.Get("/users/:userId/block-status", rc.UserHandler.GetBlockStatus)

	app.Get("/chats", rc.ChatHandler.GetAllChat)
	app.Post("/chats/direct", rc.ChatHandler.CreateDirectChat)
	app.Post("/chats/groups", rc.ChatHandler.CreateGroup)
	app.Post("/chats/channels", rc.ChatHandler.CreateChannel)
	app.Get("/chats/:chatId", rc.ChatHandler.GetChat)
	app.Put("/chats/:chatId", rc.ChatHandler.EditChat)
	app.Get("/chats/:chatId/members", rc.ChatHandler.GetMembers)
	app.Post("/chats/:chatId/members", rc.ChatHandler.AddMembers)
	app.Put("/chats/:chatId/members/:userId/role", rc.ChatHandler.SetMemberRole)
	app.Put("/chats/:chatId/settings", rc.ChatHandler.UpdateSettings)
	app.Post("/chats/:chatId/read", rc.ChatHandler.MarkRead)
	app.Get("/chats/:chatId/messages", rc.ChatHandler.GetMessagesByID)
	app.Post("/chats/:chatId/messages", rc.ChatHandler.PostMessage)

	app.Delete("/messages/:messageId", rc.MessageHandler.DeleteMessage)
	app.Get("/messages/:messageId/reactions", rc.MessageHandler.GetReactions)
	app.Post("/messages/:messageId/reactions", rc.MessageHandler.AddReaction)
	app.Delete("/messages/:messageId/reactions", rc.MessageHandler.RemoveReaction)

	app.Post("/media", rc.MediaHandler.Upload)
}

func (rc *ConfigRoute) GetWebSocketRoute() {
	rc.App.Get("/ws", rc.Middleware.WebSocketAuth, websocket.New(rc.WebSocketHandler.HandleWebSocket))
}
