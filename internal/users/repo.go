package users

import (
	"context"

	"github.com/wejdenmesaoud/cashback/internal/repo"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"github.com/wejdenmesaoud/cashback/pkg/enums"
	"gorm.io/gorm"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new user with its role associations.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID loads a user with roles preloaded.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Preload("Roles").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername retrieves the user matching the provided username, roles preloaded.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Preload("Roles").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername reports whether a user already claimed the username.
func (r *Repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail reports whether a user already claimed the email.
func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists the mutable fields of an already-loaded user.
func (r *Repository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.DB(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindRoleByName loads the role row for the given name.
func (r *Repository) FindRoleByName(ctx context.Context, name enums.RoleName) (*models.Role, error) {
	var role models.Role
	if err := r.DB(ctx).Where("name = ?", string(name)).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// ListByRole returns users holding the named role, roles preloaded.
func (r *Repository) ListByRole(ctx context.Context, name enums.RoleName) ([]models.User, error) {
	var found []models.User
	err := r.DB(ctx).
		Preload("Roles").
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ?", string(name)).
		Find(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

// GrantRole appends the role association when it is missing.
func (r *Repository) GrantRole(ctx context.Context, user *models.User, role *models.Role) error {
	return r.DB(ctx).Model(user).Association("Roles").Append(role)
}

// RevokeRole removes the role association.
func (r *Repository) RevokeRole(ctx context.Context, user *models.User, role *models.Role) error {
	return r.DB(ctx).Model(user).Association("Roles").Delete(role)
}

// List returns all users with roles preloaded.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	var found []models.User
	if err := r.DB(ctx).Preload("Roles").Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}
