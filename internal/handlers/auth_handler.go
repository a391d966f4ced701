package handlers

import (
	"vidshare/internal/middleware"
	"vidshare/internal/models"
	"vidshare/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests for accounts and authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the account routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, guards Guards) {
	router.Post("/users", h.HandleRegister)
	router.Post("/users/login", h.HandleLogin)
	router.Get("/user", guards.Required, h.HandleCurrentUser)
	router.Patch("/user", guards.Required, h.HandleUpdateProfile)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest represents a partial profile edit.
type UpdateProfileRequest struct {
	Username           *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email              *string `json:"email" validate:"omitempty,email"`
	Password           *string `json:"password" validate:"omitempty,min=6"`
	Avatar             *string `json:"avatar" validate:"omitempty,max=500"`
	Cover              *string `json:"cover" validate:"omitempty,max=500"`
	ChannelDescription *string `json:"channelDescription"`
}

// UserResponse is the account payload returned to its owner.
type UserResponse struct {
	ID                 string `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	Avatar             string `json:"avatar"`
	Cover              string `json:"cover"`
	ChannelDescription string `json:"channelDescription"`
	SubscribersCount   int64  `json:"subscribersCount"`
	Token              string `json:"token,omitempty"`
}

func newUserResponse(u *models.User, token string) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		Avatar:             u.Avatar,
		Cover:              u.Cover,
		ChannelDescription: u.ChannelDescription,
		SubscribersCount:   u.SubscribersCount,
		Token:              token,
	}
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	user, token, err := h.authService.RegisterUser(c.UserContext(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err, "Registration failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": newUserResponse(user, token),
	})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	user, token, err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		logrus.WithField("email", req.Email).Debug("login failed")
		return respondError(c, err, "Authentication failed")
	}

	return c.JSON(fiber.Map{
		"user": newUserResponse(user, token),
	})
}

// HandleCurrentUser returns the authenticated user.
func (h *AuthHandler) HandleCurrentUser(c *fiber.Ctx) error {
	user, err := h.authService.CurrentUser(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve user")
	}
	return c.JSON(fiber.Map{
		"user": newUserResponse(user, ""),
	})
}

// HandleUpdateProfile applies a partial edit to the authenticated user.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	user, err := h.authService.UpdateProfile(c.UserContext(), middleware.CallerID(c), services.ProfilePatch{
		Username:           req.Username,
		Email:              req.Email,
		Password:           req.Password,
		Avatar:             req.Avatar,
		Cover:              req.Cover,
		ChannelDescription: req.ChannelDescription,
	})
	if err != nil {
		return respondError(c, err, "Could not update user")
	}
	return c.JSON(fiber.Map{
		"user": newUserResponse(user, ""),
	})
}
