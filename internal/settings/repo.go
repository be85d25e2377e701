package settings

import (
	"context"

	"github.com/wejdenmesaoud/cashback/internal/repo"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes setting persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a settings repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns every setting row ordered by id.
func (r *Repository) List(ctx context.Context) ([]models.Setting, error) {
	var found []models.Setting
	if err := r.DB(ctx).Order("id").Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// Global returns the first setting row. Multiple rows can exist; the earliest
// one is treated as the global configuration.
func (r *Repository) Global(ctx context.Context) (*models.Setting, error) {
	var setting models.Setting
	if err := r.DB(ctx).Order("id").First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// FindByID loads a single setting.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Setting, error) {
	var setting models.Setting
	if err := r.DB(ctx).First(&setting, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// FindByUser lists settings belonging to the user.
func (r *Repository) FindByUser(ctx context.Context, userID int64) ([]models.Setting, error) {
	var found []models.Setting
	if err := r.DB(ctx).Where("user_id = ?", userID).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// Create inserts a new setting.
func (r *Repository) Create(ctx context.Context, setting *models.Setting) (*models.Setting, error) {
	if err := r.DB(ctx).Create(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}

// Save persists changes to an already-loaded setting.
func (r *Repository) Save(ctx context.Context, setting *models.Setting) (*models.Setting, error) {
	if err := r.DB(ctx).Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}

// Delete removes the setting row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Delete(&models.Setting{}, "id = ?", id).Error
}
