package handlers

import (
	"errors"

	"bazaar/internal/models"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps domain error kinds onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrEmptyCart), errors.Is(err, models.ErrInsufficientInventory):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
