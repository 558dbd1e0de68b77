package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/mitchellh/mapstructure"

	"github.com/pryv/campaign-manager/internal/database"
)

func clientError(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// storeError maps the store taxonomy to a 400; anything else is a request-fatal
// internal error.
func storeError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, database.ErrNotFound) ||
		errors.Is(err, database.ErrDuplicate) ||
		errors.Is(err, database.ErrConflict) {
		return clientError(ctx, err.Error())
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func parseBody(ctx *fiber.Ctx) (map[string]any, error) {
	m := make(map[string]any)

	if err := json.Unmarshal(ctx.Body(), &m); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	return m, nil
}

func decodeMapToStruct[T any](m map[string]any, t *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "mapstructure",
		Result:  t,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(m); err != nil {
		return fmt.Errorf("failed to decode map to struct: %w", err)
	}

	return nil
}
