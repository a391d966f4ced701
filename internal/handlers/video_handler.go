package handlers

import (
	"vidshare/internal/middleware"
	"vidshare/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// VideoHandler handles HTTP requests for videos.
type VideoHandler struct {
	service  *services.VideoService
	validate *validator.Validate
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(service *services.VideoService) *VideoHandler {
	return &VideoHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the video routes.
func (h *VideoHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	videos := router.Group("/videos")
	videos.Post("/", guards.Required, h.HandleCreateVideo)
	videos.Get("/", h.HandleListVideos)
	videos.Get("/:videoId", guards.Optional, h.HandleGetVideo)
	videos.Patch("/:videoId", guards.Required, h.HandleUpdateVideo)
	videos.Delete("/:videoId", guards.Required, h.HandleDeleteVideo)

	router.Get("/users/:userId/videos", h.HandleListUserVideos)
	router.Get("/user/videos/feed", guards.Required, h.HandleFeed)
	router.Get("/user/videos/liked", guards.Required, h.HandleLikedVideos)
}

// CreateVideoRequest represents the request body for publishing a video.
type CreateVideoRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	VodVideoID  string `json:"vodVideoId" validate:"required,max=255"`
	Cover       string `json:"cover" validate:"max=500"`
}

// UpdateVideoRequest represents a partial video edit.
type UpdateVideoRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	VodVideoID  *string `json:"vodVideoId" validate:"omitempty,max=255"`
	Cover       *string `json:"cover" validate:"omitempty,max=500"`
}

// HandleCreateVideo publishes a video owned by the caller.
func (h *VideoHandler) HandleCreateVideo(c *fiber.Ctx) error {
	var req CreateVideoRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	video, err := h.service.CreateVideo(c.UserContext(), middleware.CallerID(c), services.VideoInput{
		Title:       req.Title,
		Description: req.Description,
		VodVideoID:  req.VodVideoID,
		Cover:       req.Cover,
	})
	if err != nil {
		return respondError(c, err, "Could not create video")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"video": video})
}

// HandleGetVideo returns one video with the caller's relation to it.
func (h *VideoHandler) HandleGetVideo(c *fiber.Ctx) error {
	video, err := h.service.GetVideo(c.UserContext(), middleware.CallerID(c), c.Params("videoId"))
	if err != nil {
		return respondError(c, err, "Could not retrieve video")
	}
	return c.JSON(fiber.Map{"video": video})
}

// HandleListVideos returns one page of all videos.
func (h *VideoHandler) HandleListVideos(c *fiber.Ctx) error {
	page, err := h.service.ListVideos(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve videos")
	}
	return c.JSON(page)
}

// HandleListUserVideos returns one page of a user's videos.
func (h *VideoHandler) HandleListUserVideos(c *fiber.Ctx) error {
	page, err := h.service.ListUserVideos(c.UserContext(), c.Params("userId"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve videos")
	}
	return c.JSON(page)
}

// HandleFeed returns one page of videos from the caller's subscriptions.
func (h *VideoHandler) HandleFeed(c *fiber.Ctx) error {
	page, err := h.service.Feed(c.UserContext(), middleware.CallerID(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve feed")
	}
	return c.JSON(page)
}

// HandleLikedVideos returns one page of the videos the caller liked.
func (h *VideoHandler) HandleLikedVideos(c *fiber.Ctx) error {
	page, err := h.service.LikedVideos(c.UserContext(), middleware.CallerID(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve liked videos")
	}
	return c.JSON(page)
}

// HandleUpdateVideo edits a video owned by the caller.
func (h *VideoHandler) HandleUpdateVideo(c *fiber.Ctx) error {
	var req UpdateVideoRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	video, err := h.service.UpdateVideo(c.UserContext(), middleware.CallerID(c), c.Params("videoId"), services.VideoPatch{
		Title:       req.Title,
		Description: req.Description,
		VodVideoID:  req.VodVideoID,
		Cover:       req.Cover,
	})
	if err != nil {
		return respondError(c, err, "Could not update video")
	}
	return c.JSON(fiber.Map{"video": video})
}

// HandleDeleteVideo removes a video owned by the caller.
func (h *VideoHandler) HandleDeleteVideo(c *fiber.Ctx) error {
	if err := h.service.DeleteVideo(c.UserContext(), middleware.CallerID(c), c.Params("videoId")); err != nil {
		return respondError(c, err, "Could not delete video")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
