package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/pryv/campaign-manager/internal/model"
)

const (
	UserKey     = "user"
	UsernameKey = "username"
)

func generateToken(app *App, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(app.config.TokenMaxAge())),
	})

	return token.SignedString(app.config.TokenKey())
}

func checkToken(app *App, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return app.config.TokenKey(), nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	return claims.Subject, nil
}

// AuthRequired checks that the bearer token belongs to the user resolved from
// the path. The response does not say which part of the check failed.
func AuthRequired(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CtxUser(ctx)
		if user == nil {
			return clientError(ctx, "Invalid authorization.")
		}

		token := strings.TrimPrefix(ctx.Get(fiber.HeaderAuthorization), "Bearer ")
		if token == "" {
			return clientError(ctx, "Invalid authorization.")
		}

		username, err := checkToken(app, token)
		if err != nil || username == "" || username != user.Username {
			return clientError(ctx, "Invalid authorization.")
		}

		ctx.Locals(UsernameKey, username)

		return ctx.Next()
	}
}

func Username(ctx *fiber.Ctx) string {
	u := ctx.Locals(UsernameKey)

	if u == nil {
		return ""
	}

	return u.(string)
}

func CtxUser(ctx *fiber.Ctx) *model.User {
	u := ctx.Locals(UserKey)

	if u == nil {
		return nil
	}

	return u.(*model.User)
}
