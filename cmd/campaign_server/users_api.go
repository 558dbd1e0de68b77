package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pryv/campaign-manager/internal/model"
	"github.com/pryv/campaign-manager/internal/validate"
)

func addUsersApi(app *App, f fiber.Router) {
	f.Post("/users", getUserPostHandler(app))
	f.Get("/users/:username", UserFromPath(app), AuthRequired(app), getUserGetHandler())
	f.Put("/users/:username", UserFromPath(app), AuthRequired(app), getUserLinkHandler(app))
}

// UserFromPath resolves the :username path param and stores the user in the
// request context. Runs before the auth check, like the rest of the chain
// expects.
func UserFromPath(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := app.dbm.UserQuery().Username(ctx.Params("username")).One()

		if user == nil {
			return clientError(ctx, "User does not exist.")
		}

		ctx.Locals(UserKey, user)

		return ctx.Next()
	}
}

type userPostDTO struct {
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	PryvUsername string `mapstructure:"pryvUsername"`
	PryvToken    string `mapstructure:"pryvToken"`
}

type userLinkDTO struct {
	PryvUsername string `mapstructure:"pryvUsername"`
	PryvToken    string `mapstructure:"pryvToken"`
}

func getUserPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		raw, err := parseBody(ctx)
		if err != nil {
			return clientError(ctx, err.Error())
		}

		if err := validate.User(raw); err != nil {
			return clientError(ctx, err.Error())
		}

		var dto userPostDTO
		if err := decodeMapToStruct(raw, &dto); err != nil {
			return clientError(ctx, err.Error())
		}

		user := &model.User{
			Username:     dto.Username,
			PryvUsername: dto.PryvUsername,
			PryvToken:    dto.PryvToken,
		}

		if dto.Password != "" {
			if err := user.SetPassword(dto.Password); err != nil {
				return storeError(ctx, err)
			}
		}

		created, err := app.dbm.CreateUser(user)
		if err != nil {
			return storeError(ctx, err)
		}

		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"user": created.DTO()})
	}
}

func getUserGetHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"user": CtxUser(ctx).DTO()})
	}
}

func getUserLinkHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CtxUser(ctx)

		raw, err := parseBody(ctx)
		if err != nil {
			return clientError(ctx, err.Error())
		}

		if err := validate.Link(raw); err != nil {
			return clientError(ctx, err.Error())
		}

		var dto userLinkDTO
		if err := decodeMapToStruct(raw, &dto); err != nil {
			return clientError(ctx, err.Error())
		}

		linked, err := app.dbm.UpdateUserLink(user.Username, dto.PryvUsername, dto.PryvToken)
		if err != nil {
			return storeError(ctx, err)
		}

		return ctx.JSON(fiber.Map{"user": linked.DTO()})
	}
}
