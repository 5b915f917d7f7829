package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	XUserNameHeader = "X-User-Name"
	XUserRoleHeader = "X-User-Role"
)

// JWTKey signs and verifies tokens. Set once at startup from config.
var JWTKey = []byte("car-rental-secret")

type Profile struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Claims struct {
	Profile Profile `json:"profile"`
	jwt.RegisteredClaims
}

func NewToken(username, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		Profile: Profile{Username: username, Role: role},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTKey)
}

type ctxKey struct{}

type authInfo struct {
	username string
	role     string
}

func SetAuthContext(ctx context.Context, username, role string) context.Context {
	return context.WithValue(ctx, ctxKey{}, authInfo{username: username, role: role})
}

func GetUserName(ctx context.Context) (string, error) {
	info, ok := ctx.Value(ctxKey{}).(authInfo)
	if !ok {
		return "", errors.New("no auth context")
	}
	return info.username, nil
}

func GetRole(ctx context.Context) (string, error) {
	info, ok := ctx.Value(ctxKey{}).(authInfo)
	if !ok {
		return "", errors.New("no auth context")
	}
	return info.role, nil
}
