package server

import (
	"errors"

	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/readmodel"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID reads a route parameter that must hold an entity id. On failure it
// writes a 400 INVALID_ID response and returns errResponseWritten.
// The returned id is a copy and stays valid after the handler returns.
func parseID(c *fiber.Ctx, param string) (string, error) {
	id := utils.CopyString(c.Params(param))
	if !models.ValidID(id) {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewInvalidIDError(param, id))
		return "", errResponseWritten
	}
	return id, nil
}

// pageRequest reads the page and limit query parameters.
func pageRequest(c *fiber.Ctx) readmodel.PageRequest {
	return readmodel.ParsePageParams(c.Query("page"), c.Query("limit"))
}

// parseBody decodes the JSON body into dst. On failure it writes a 400
// response and returns errResponseWritten.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// respond writes err with the status its code maps to. Errors without an
// AppError code are logged and reported as INTERNAL_ERROR without details.
func respond(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		err = models.NewInternalError(err)
	}
	if models.StatusFor(err) >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request error",
			"path", c.Path(),
			"error", err.Error(),
		)
	}
	return models.RespondWithAppError(c, err)
}

// viewer returns the authenticated user id, or "" for anonymous callers.
func viewer(c *fiber.Ctx) string {
	return middleware.UserID(c)
}
