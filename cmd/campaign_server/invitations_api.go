package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pryv/campaign-manager/internal/model"
	"github.com/pryv/campaign-manager/internal/validate"
)

func addInvitationsApi(app *App, f fiber.Router) {
	f.Post("/:username/invitations", UserFromPath(app), AuthRequired(app), getInvitationPostHandler(app))
	f.Get("/:username/invitations", UserFromPath(app), AuthRequired(app), getInvitationsHandler(app))
	f.Put("/:username/invitations", UserFromPath(app), AuthRequired(app), getInvitationPutHandler(app))
}

type invitationPostDTO struct {
	Campaign struct {
		ID string `mapstructure:"id"`
	} `mapstructure:"campaign"`
	Requester struct {
		Username string `mapstructure:"username"`
	} `mapstructure:"requester"`
	Requestee struct {
		Username     string `mapstructure:"username"`
		PryvUsername string `mapstructure:"pryvUsername"`
	} `mapstructure:"requestee"`
}

type invitationPutDTO struct {
	ID     string `mapstructure:"id"`
	Status string `mapstructure:"status"`
}

func getInvitationPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		raw, err := parseBody(ctx)
		if err != nil {
			return clientError(ctx, err.Error())
		}

		if err := validate.Invitation(raw); err != nil {
			return clientError(ctx, err.Error())
		}

		var dto invitationPostDTO
		if err := decodeMapToStruct(raw, &dto); err != nil {
			return clientError(ctx, err.Error())
		}

		requester := app.dbm.UserQuery().Username(dto.Requester.Username).One()
		if requester == nil {
			return clientError(ctx, "Requester does not exist.")
		}

		var requestee *model.User
		if dto.Requestee.Username != "" {
			requestee = app.dbm.UserQuery().Username(dto.Requestee.Username).One()
		} else {
			requestee = app.dbm.UserQuery().PryvUsername(dto.Requestee.PryvUsername).One()
		}

		if requestee == nil {
			return clientError(ctx, "Requestee does not exist.")
		}

		invitation, err := app.dbm.CreateInvitation(dto.Campaign.ID, requester.ID, requestee.ID)
		if err != nil {
			return storeError(ctx, err)
		}

		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"invitation": invitation.DTO()})
	}
}

func getInvitationsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CtxUser(ctx)

		data := app.dbm.InvitationQuery().User(user.ID).Full().Get()
		result := make([]*model.InvitationDTO, len(data))

		for i, inv := range data {
			result[i] = inv.DTO()
		}

		return ctx.JSON(fiber.Map{"invitations": result})
	}
}

func getInvitationPutHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		raw, err := parseBody(ctx)
		if err != nil {
			return clientError(ctx, err.Error())
		}

		if err := validate.InvitationUpdate(raw); err != nil {
			return clientError(ctx, err.Error())
		}

		var dto invitationPutDTO
		if err := decodeMapToStruct(raw, &dto); err != nil {
			return clientError(ctx, err.Error())
		}

		invitation, err := app.dbm.UpdateInvitationStatus(dto.ID, dto.Status)
		if err != nil {
			return storeError(ctx, err)
		}

		return ctx.JSON(fiber.Map{"invitation": invitation.DTO()})
	}
}
