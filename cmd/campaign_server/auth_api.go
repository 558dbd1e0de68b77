package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pryv/campaign-manager/internal/validate"
)

// same message for unknown user and wrong password, so usernames cannot be
// probed through this endpoint
const invalidCredentials = "Invalid credentials."

func addAuthApi(app *App, f fiber.Router) {
	f.Post("/auth", getAuthHandler(app))
}

type authDTO struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

func getAuthHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		raw, err := parseBody(ctx)
		if err != nil {
			return clientError(ctx, err.Error())
		}

		if err := validate.Auth(raw); err != nil {
			return clientError(ctx, err.Error())
		}

		var dto authDTO
		if err := decodeMapToStruct(raw, &dto); err != nil {
			return clientError(ctx, err.Error())
		}

		user := app.dbm.UserQuery().Username(dto.Username).One()

		if user == nil || !user.CheckPassword(dto.Password) {
			return clientError(ctx, invalidCredentials)
		}

		token, err := generateToken(app, user.Username)
		if err != nil {
			return storeError(ctx, err)
		}

		res := user.DTO()
		res.Token = token

		return ctx.JSON(fiber.Map{"user": res})
	}
}
