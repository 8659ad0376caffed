package utils

import (
	"time"

	"chat-service/config"
	"chat-service/model"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the validity window of a session token.
const SessionTTL = 30 * 24 * time.Hour

// TokenMetadata struct to describe metadata in JWT.
type TokenMetadata struct {
	Id       uint
	Username string
	Name     string
	Phone    string
	Otp      bool
	Exp      int64
}

// GenerateToken issues the session token for a user. otpPending marks a
// token issued after the password step of a 2FA login; the OTP gate keeps
// it away from everything but /2fa/validate.
func GenerateToken(user *model.User, otpPending bool) (string, error) {
	claims := jwt.MapClaims{}

	claims["id"] = user.ID
	claims["username"] = user.Username
	claims["name"] = user.Name
	claims["phone"] = user.Phone
	claims["otp"] = otpPending
	claims["exp"] = time.Now().Add(SessionTTL).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(config.MustConfig("JWT_SECRET_KEY")))
}

// CheckAndExtractTokenMetadata verifies a raw token and returns its
// claims. Any failure means "no session".
func CheckAndExtractTokenMetadata(token string) (*TokenMetadata, error) {
	t, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(config.MustConfig("JWT_SECRET_KEY")), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return MetadataFromClaims(claims), nil
}

// MetadataFromClaims converts already verified claims (e.g. from the JWT
// middleware) into TokenMetadata.
func MetadataFromClaims(claims jwt.MapClaims) *TokenMetadata {
	meta := &TokenMetadata{}
	if id, ok := claims["id"].(float64); ok {
		meta.Id = uint(id)
	}
	if username, ok := claims["username"].(string); ok {
		meta.Username = username
	}
	if name, ok := claims["name"].(string); ok {
		meta.Name = name
	}
	if phone, ok := claims["phone"].(string); ok {
		meta.Phone = phone
	}
	if otp, ok := claims["otp"].(bool); ok {
		meta.Otp = otp
	}
	if exp, ok := claims["exp"].(float64); ok {
		meta.Exp = int64(exp)
	}
	return meta
}
