package utils

import (
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/pkg/constvars"
	"hms-portal-service/internal/pkg/exceptions"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionClaimSubject = "sub"
	sessionClaimHandle  = "sid"
	sessionClaimEmail   = "email"
	sessionClaimName    = "name"
	sessionClaimExpiry  = "exp"
)

func HashAPIKey(apiKey string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckAPIKeyHash(apiKey, hash string) bool {
	if apiKey == "" || hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKey))
	return err == nil
}

// GenerateSessionJWT mints a local-provider session credential. A fresh session
// handle is created when the principal has none.
func GenerateSessionJWT(principal models.Principal, secret string, expTimeInHour int) (string, error) {
	sessionHandle := principal.SessionHandle
	if sessionHandle == "" {
		sessionHandle = uuid.NewString()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		sessionClaimSubject: principal.UserID,
		sessionClaimHandle:  sessionHandle,
		sessionClaimEmail:   principal.Email,
		sessionClaimName:    principal.DisplayName,
		sessionClaimExpiry:  time.Now().Add(time.Duration(expTimeInHour) * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", exceptions.ErrTokenGenerate(err)
	}
	return tokenString, nil
}

// ParseSessionJWT verifies a local-provider credential. Tokens without an exp claim are rejected.
func ParseSessionJWT(tokenString, secret string) (*models.Principal, error) {
	if secret == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, exceptions.WrapWithoutError(constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthSigningMethod)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}

	userID, _ := claims[sessionClaimSubject].(string)
	sessionHandle, _ := claims[sessionClaimHandle].(string)
	if userID == "" || sessionHandle == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	email, _ := claims[sessionClaimEmail].(string)
	name, _ := claims[sessionClaimName].(string)

	return &models.Principal{
		UserID:        userID,
		SessionHandle: sessionHandle,
		Email:         email,
		DisplayName:   name,
	}, nil
}
