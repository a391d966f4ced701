package handlers

import (
	"vidshare/internal/middleware"
	"vidshare/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UploadHandler hands out presigned upload URLs.
type UploadHandler struct {
	service  *services.UploadService
	validate *validator.Validate
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the upload routes.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	vod := router.Group("/vod", guards.Required)
	vod.Get("/CreateUploadVideo", h.HandleCreateUpload)
	vod.Get("/RefreshUploadVideo", h.HandleRefreshUpload)
}

// CreateUploadQuery holds the query parameters of CreateUploadVideo.
type CreateUploadQuery struct {
	Title    string `query:"title" validate:"required"`
	FileName string `query:"fileName" validate:"required"`
}

// RefreshUploadQuery holds the query parameters of RefreshUploadVideo.
type RefreshUploadQuery struct {
	VideoID string `query:"videoId" validate:"required"`
}

// HandleCreateUpload reserves an object and returns where to upload it.
func (h *UploadHandler) HandleCreateUpload(c *fiber.Ctx) error {
	var q CreateUploadQuery
	if ok, err := h.parseQuery(c, &q); !ok {
		return err
	}

	ticket, err := h.service.CreateUpload(c.UserContext(), middleware.CallerID(c), q.Title, q.FileName)
	if err != nil {
		return respondError(c, err, "Could not create upload")
	}
	return c.JSON(ticket)
}

// HandleRefreshUpload re-signs the upload URL of an existing object.
func (h *UploadHandler) HandleRefreshUpload(c *fiber.Ctx) error {
	var q RefreshUploadQuery
	if ok, err := h.parseQuery(c, &q); !ok {
		return err
	}

	ticket, err := h.service.RefreshUpload(c.UserContext(), middleware.CallerID(c), q.VideoID)
	if err != nil {
		return respondError(c, err, "Could not refresh upload")
	}
	return c.JSON(ticket)
}

func (h *UploadHandler) parseQuery(c *fiber.Ctx, q interface{}) (bool, error) {
	if err := c.QueryParser(q); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid query",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(q); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}
