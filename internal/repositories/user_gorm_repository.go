package repositories

import (
	"context"

	"vidshare/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "user with ID %s", id)
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, notFoundOr(err, "user with username %s", username)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, notFoundOr(err, "user with email %s", email)
	}
	return &user, nil
}

// Update saves the profile fields of an existing user. Counters are left
// untouched; they are owned by UpdateSubscribersCount.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"username":            user.Username,
		"email":               user.Email,
		"password":            user.Password,
		"avatar":              user.Avatar,
		"cover":               user.Cover,
		"channel_description": user.ChannelDescription,
	})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to update user")
	}
	return nil
}

// UpdateSubscribersCount overwrites the denormalized subscriber counter.
// RowsAffected is not checked: MySQL reports zero when the value is unchanged.
func (r *GORMUserRepository) UpdateSubscribersCount(ctx context.Context, id string, count int64) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("subscribers_count", count).Error
	if err != nil {
		return errors.Wrapf(err, "failed to update subscribers count of user %s", id)
	}
	return nil
}
