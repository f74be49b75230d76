package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

// Claims identify the caller. Subject is the user ID; for franchise members it is
// also their member ID.
type Claims struct {
	Role     string `json:"role"`
	Location string `json:"location,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for actor. The system role cannot be issued.
func IssueToken(secret []byte, actor kernel.Actor, ttl time.Duration) (string, error) {
	if actor.Role == kernel.RoleSystem {
		return "", errors.New("system actors do not authenticate over HTTP")
	}
	now := time.Now()
	claims := Claims{
		Role:     actor.Role.String(),
		Location: actor.Location,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies tokenStr and returns the actor it names.
func ParseToken(secret []byte, tokenStr string) (kernel.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return kernel.Actor{}, err
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, err
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Actor{}, err
	}
	if role == kernel.RoleSystem {
		return kernel.Actor{}, errors.New("system role is not accepted in tokens")
	}
	return kernel.NewActor(id, role, claims.Location)
}

// Authenticate requires a valid bearer token. Websocket clients that cannot set
// headers may pass it as the token query parameter.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := c.QueryParam("token")
			if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
				tokenStr = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			}
			if tokenStr == "" {
				return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: "missing token"})
			}

			actor, err := ParseToken(secret, tokenStr)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: "invalid token"})
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// actorFrom returns the authenticated caller. Routes behind Authenticate always
// have one.
func actorFrom(c echo.Context) kernel.Actor {
	actor, _ := c.Get(actorKey).(kernel.Actor)
	return actor
}
