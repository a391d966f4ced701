package handlers

import (
	"vidshare/internal/middleware"
	"vidshare/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ChannelHandler handles HTTP requests for channels and subscriptions.
type ChannelHandler struct {
	service *services.ChannelService
}

// NewChannelHandler creates a new ChannelHandler.
func NewChannelHandler(service *services.ChannelService) *ChannelHandler {
	return &ChannelHandler{
		service: service,
	}
}

// RegisterRoutes registers the channel routes.
func (h *ChannelHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	users := router.Group("/users")
	users.Get("/:userId", guards.Optional, h.HandleGetChannel)
	users.Post("/:userId/subscribe", guards.Required, h.HandleSubscribe)
	users.Delete("/:userId/subscribe", guards.Required, h.HandleUnsubscribe)
	users.Get("/:userId/subscriptions", h.HandleListSubscriptions)
}

// HandleGetChannel returns a user's public channel.
func (h *ChannelHandler) HandleGetChannel(c *fiber.Ctx) error {
	channel, err := h.service.GetChannel(c.UserContext(), middleware.CallerID(c), c.Params("userId"))
	if err != nil {
		return respondError(c, err, "Could not retrieve channel")
	}
	return c.JSON(fiber.Map{"user": channel})
}

// HandleSubscribe subscribes the caller to a channel.
func (h *ChannelHandler) HandleSubscribe(c *fiber.Ctx) error {
	channel, err := h.service.Subscribe(c.UserContext(), middleware.CallerID(c), c.Params("userId"))
	if err != nil {
		return respondError(c, err, "Subscription failed")
	}
	return c.JSON(fiber.Map{"user": channel})
}

// HandleUnsubscribe removes the caller's subscription to a channel.
func (h *ChannelHandler) HandleUnsubscribe(c *fiber.Ctx) error {
	channel, err := h.service.Unsubscribe(c.UserContext(), middleware.CallerID(c), c.Params("userId"))
	if err != nil {
		return respondError(c, err, "Unsubscription failed")
	}
	return c.JSON(fiber.Map{"user": channel})
}

// HandleListSubscriptions lists the channels a user is subscribed to.
func (h *ChannelHandler) HandleListSubscriptions(c *fiber.Ctx) error {
	channels, err := h.service.ListSubscriptions(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, err, "Could not retrieve subscriptions")
	}
	return c.JSON(fiber.Map{"subscriptions": channels})
}
