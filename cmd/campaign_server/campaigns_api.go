package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pryv/campaign-manager/internal/model"
	"github.com/pryv/campaign-manager/internal/validate"
)

func addCampaignsApi(app *App, f fiber.Router) {
	f.Post("/:username/campaigns", UserFromPath(app), AuthRequired(app), getCampaignPostHandler(app))
	f.Get("/:username/campaigns", UserFromPath(app), AuthRequired(app), getCampaignsHandler(app))
	f.Get("/:username/campaigns/:campaignId", UserFromPath(app), AuthRequired(app), getCampaignGetHandler(app))
}

type campaignPostDTO struct {
	Title       string              `mapstructure:"title"`
	PryvAppID   string              `mapstructure:"pryvAppId"`
	Description string              `mapstructure:"description"`
	Permissions []*model.Permission `mapstructure:"permissions"`
}

func getCampaignPostHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CtxUser(ctx)

		raw, err := parseBody(ctx)
		if err != nil {
			return clientError(ctx, err.Error())
		}

		if err := validate.Campaign(raw); err != nil {
			return clientError(ctx, err.Error())
		}

		var dto campaignPostDTO
		if err := decodeMapToStruct(raw, &dto); err != nil {
			return clientError(ctx, err.Error())
		}

		campaign, err := app.dbm.CreateCampaign(user, &model.Campaign{
			Title:       dto.Title,
			PryvAppID:   dto.PryvAppID,
			Description: dto.Description,
			Permissions: dto.Permissions,
		})
		if err != nil {
			return storeError(ctx, err)
		}

		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"campaign": campaign.DTO()})
	}
}

func getCampaignsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := CtxUser(ctx)

		data := app.dbm.CampaignQuery().User(user.ID).Get()
		result := make([]*model.CampaignDTO, len(data))

		for i, c := range data {
			result[i] = c.DTO()
		}

		return ctx.JSON(fiber.Map{"campaigns": result})
	}
}

func getCampaignGetHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		campaign := app.dbm.CampaignQuery().Id(ctx.Params("campaignId")).One()

		if campaign == nil {
			return clientError(ctx, "Campaign does not exist.")
		}

		return ctx.JSON(fiber.Map{"campaign": campaign.DTO()})
	}
}
