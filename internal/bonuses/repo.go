package bonuses

import (
	"context"

	"github.com/wejdenmesaoud/cashback/internal/repo"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes bonus persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a bonuses repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns every bonus.
func (r *Repository) List(ctx context.Context) ([]models.Bonus, error) {
	var found []models.Bonus
	if err := r.DB(ctx).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// FindByID loads a single bonus.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Bonus, error) {
	var bonus models.Bonus
	if err := r.DB(ctx).First(&bonus, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bonus, nil
}

// FindByEngineer lists bonuses paid to the engineer.
func (r *Repository) FindByEngineer(ctx context.Context, engineerID int64) ([]models.Bonus, error) {
	var found []models.Bonus
	if err := r.DB(ctx).Where("engineer_id = ?", engineerID).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// Create inserts a new bonus.
func (r *Repository) Create(ctx context.Context, bonus *models.Bonus) (*models.Bonus, error) {
	if err := r.DB(ctx).Create(bonus).Error; err != nil {
		return nil, err
	}
	return bonus, nil
}

// Delete removes the bonus row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Delete(&models.Bonus{}, "id = ?", id).Error
}
