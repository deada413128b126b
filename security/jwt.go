package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"real-time-messenger/apperror"
	"real-time-messenger/config/common"
	"real-time-messenger/entity"
)

const issuer = "real-time-messenger"

type JWT struct {
	config *common.Config
	now    func() time.Time
}

func NewJWT(config *common.Config) *JWT {
	return &JWT{config: config, now: time.Now}
}

func (j *JWT) GenerateToken(user *entity.User) (string, error) {
	secretKey := j.config.GetJwtConfig()
	now := j.now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"aud":      issuer,
		"iss":      issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(j.config.GetJwtTTL()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(secretKey)
}

func (j *JWT) VerifyJwtToken(token string) (jwt.MapClaims, error) {
	secretKey := j.config.GetJwtConfig()

	tokenParse, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(issuer), jwt.WithTimeFunc(j.now))

	if err != nil {
		return nil, apperror.Wrap(apperror.CodeUnauthenticated, "invalid token", err)
	}

	if claims, ok := tokenParse.Claims.(jwt.MapClaims); ok && tokenParse.Valid {
		return claims, nil
	}

	return nil, apperror.ErrInvalidToken
}

func (j *JWT) GetUserIdFromToken(token string) (string, error) {
	claims, err := j.VerifyJwtToken(token)
	if err != nil {
		return "", err
	}
	return UserIDFromClaims(claims)
}

// UserIDFromClaims reads the subject written by GenerateToken.
func UserIDFromClaims(claims jwt.MapClaims) (string, error) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", apperror.ErrInvalidToken
	}
	return userID, nil
}
