package handlers

import (
	"vidshare/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// Guards are the authentication middlewares routes are mounted behind.
type Guards struct {
	Required fiber.Handler
	Optional fiber.Handler
}

// pageFromQuery reads pageNum and pageSize, falling back to the defaults.
func pageFromQuery(c *fiber.Ctx) repositories.Page {
	return repositories.NewPage(
		c.QueryInt("pageNum", 1),
		c.QueryInt("pageSize", repositories.DefaultPageSize),
	)
}
