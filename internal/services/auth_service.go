package services

import (
	"context"
	"time"

	"vidshare/internal/models"
	"vidshare/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// ProfilePatch carries a profile edit. Nil fields are left unchanged.
type ProfilePatch struct {
	Username           *string
	Email              *string
	Password           *string
	Avatar             *string
	Cover              *string
	ChannelDescription *string
}

// AuthService handles business logic for accounts and authentication.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration // Duration for which a JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// RegisterUser creates an account and returns it with a fresh token.
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	if err := s.ensureUsernameFree(ctx, input.Username); err != nil {
		return nil, "", err
	}
	if err := s.ensureEmailFree(ctx, input.Email); err != nil {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to hash password")
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", errors.Wrap(err, "failed to register user")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	logrus.WithField("user_id", user.ID).Info("user registered")
	return user, token, nil
}

// LoginUser authenticates by email and password and returns a JWT.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CurrentUser loads the authenticated user.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "user %s", userID)
	}
	return user, nil
}

// UpdateProfile applies patch to userID. Username and email stay unique.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*models.User, error) {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *patch.Email); err != nil {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.Username != nil && *patch.Username != user.Username {
		if err := s.ensureUsernameFree(ctx, *patch.Username); err != nil {
			return nil, err
		}
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		user.Password = string(hashed)
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	if patch.Cover != nil {
		user.Cover = *patch.Cover
	}
	if patch.ChannelDescription != nil {
		user.ChannelDescription = *patch.ChannelDescription
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate token")
	}
	return signed, nil
}

func (s *AuthService) ensureUsernameFree(ctx context.Context, username string) error {
	_, err := s.userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return errors.Wrapf(ErrConflict, "username '%s' already taken", username)
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *AuthService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return errors.Wrapf(ErrConflict, "email '%s' already registered", email)
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return err
	}
}
