package handlers

import (
	"vidshare/internal/middleware"
	"vidshare/internal/models"
	"vidshare/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// EngagementHandler handles HTTP requests for comments and reactions.
type EngagementHandler struct {
	service  *services.EngagementService
	validate *validator.Validate
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(service *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the comment and reaction routes.
func (h *EngagementHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	videos := router.Group("/videos/:videoId")
	videos.Post("/comments", guards.Required, h.HandleCreateComment)
	videos.Get("/comments", h.HandleListComments)
	videos.Delete("/comments/:commentId", guards.Required, h.HandleDeleteComment)
	videos.Post("/like", guards.Required, h.reaction(models.ReactionLike))
	videos.Post("/dislike", guards.Required, h.reaction(models.ReactionDislike))
}

// CreateCommentRequest represents the request body for a new comment.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// HandleCreateComment adds a comment by the caller.
func (h *EngagementHandler) HandleCreateComment(c *fiber.Ctx) error {
	var req CreateCommentRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	comment, err := h.service.CreateComment(c.UserContext(), middleware.CallerID(c), c.Params("videoId"), req.Content)
	if err != nil {
		return respondError(c, err, "Could not create comment")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

// HandleListComments returns one page of a video's comments.
func (h *EngagementHandler) HandleListComments(c *fiber.Ctx) error {
	page, err := h.service.ListComments(c.UserContext(), c.Params("videoId"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve comments")
	}
	return c.JSON(page)
}

// HandleDeleteComment removes a comment written by the caller.
func (h *EngagementHandler) HandleDeleteComment(c *fiber.Ctx) error {
	err := h.service.DeleteComment(c.UserContext(), middleware.CallerID(c), c.Params("videoId"), c.Params("commentId"))
	if err != nil {
		return respondError(c, err, "Could not delete comment")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// reaction toggles the caller's like or dislike on a video.
func (h *EngagementHandler) reaction(desired models.Reaction) fiber.Handler {
	return func(c *fiber.Ctx) error {
		video, err := h.service.SetReaction(c.UserContext(), middleware.CallerID(c), c.Params("videoId"), desired)
		if err != nil {
			return respondError(c, err, "Could not update reaction")
		}
		return c.JSON(fiber.Map{"video": video})
	}
}
