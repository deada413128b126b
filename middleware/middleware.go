package middleware

import (
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"real-time-messenger/apperror"
	"real-time-messenger/config/common"
	"real-time-messenger/dto/res"
	"real-time-messenger/security"
)

const (
	jwtContextKey = "jwt"
	UserIDKey     = "user_id"
)

type Middleware struct {
	*common.Config
	*security.JWT
	Log *logrus.Logger

	protected fiber.Handler
}

func NewMiddleware(config *common.Config, jwtService *security.JWT, logger *logrus.Logger) *Middleware {
	middleware := &Middleware{Config: config, JWT: jwtService, Log: logger}
	middleware.protected = jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS512, Key: config.GetJwtConfig()},
		ContextKey: jwtContextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Log.WithError(err).Warn("Failed to validate JWT")
			return unauthorized(c, "Token is not valid")
		},
	})
	return middleware
}

// JWTProtected rejects requests without a valid bearer token, then stores the caller's id.
func (middleware *Middleware) JWTProtected(c *fiber.Ctx) error {
	return middleware.protected(c)
}

func (middleware *Middleware) ExtractUserID(c *fiber.Ctx) error {
	token, ok := c.Locals(jwtContextKey).(*jwt.Token)
	if !ok {
		return unauthorized(c, "Missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return unauthorized(c, "Failed to extract user ID from token")
	}
	userID, err := security.UserIDFromClaims(claims)
	if err != nil {
		middleware.Log.WithError(err).Error("Failed to extract user ID from token")
		return unauthorized(c, "Failed to extract user ID from token")
	}

	middleware.Log.Trace("User ID From Middleware: ", userID)
	c.Locals(UserIDKey, userID)
	return c.Next()
}

// WebSocketAuth accepts only upgrade requests carrying a valid token in the query string
// (or an Authorization header) and resolves the user before the upgrade.
func (middleware *Middleware) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	}
	if token == "" {
		return unauthorized(c, "Missing token")
	}

	userID, err := middleware.JWT.GetUserIdFromToken(token)
	if err != nil {
		middleware.Log.WithError(err).Warn("Rejected websocket connection")
		return unauthorized(c, "Token is not valid")
	}
	c.Locals(UserIDKey, userID)
	return c.Next()
}

// UserID returns the id stored by ExtractUserID or WebSocketAuth.
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDKey).(string)
	return userID
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(res.ErrorResponse{
		Status:     fiber.ErrUnauthorized.Message,
		StatusCode: fiber.StatusUnauthorized,
		Code:       string(apperror.CodeUnauthenticated),
		Error:      message,
	})
}
