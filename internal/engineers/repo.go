package engineers

import (
	"context"
	"strings"

	"github.com/wejdenmesaoud/cashback/internal/repo"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes engineer persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs an engineers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns every engineer.
func (r *Repository) List(ctx context.Context) ([]models.Engineer, error) {
	var found []models.Engineer
	if err := r.DB(ctx).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// FindByID loads a single engineer.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Engineer, error) {
	var engineer models.Engineer
	if err := r.DB(ctx).First(&engineer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &engineer, nil
}

// FindByFullName returns the first engineer with an exact name match. There is
// no unique constraint on full_name; concurrent imports can insert duplicates
// and this lookup will keep returning the earliest row.
func (r *Repository) FindByFullName(ctx context.Context, fullName string) (*models.Engineer, error) {
	var engineer models.Engineer
	err := r.DB(ctx).
		Where("full_name = ?", strings.TrimSpace(fullName)).
		Order("id").
		First(&engineer).Error
	if err != nil {
		return nil, err
	}
	return &engineer, nil
}

// FindByTeam lists engineers assigned to the team.
func (r *Repository) FindByTeam(ctx context.Context, teamID int64) ([]models.Engineer, error) {
	var found []models.Engineer
	if err := r.DB(ctx).Where("team_id = ?", teamID).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// FindByManager lists engineers reporting to the named manager.
func (r *Repository) FindByManager(ctx context.Context, manager string) ([]models.Engineer, error) {
	var found []models.Engineer
	if err := r.DB(ctx).Where("manager = ?", manager).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// Create inserts a new engineer.
func (r *Repository) Create(ctx context.Context, engineer *models.Engineer) (*models.Engineer, error) {
	if err := r.DB(ctx).Create(engineer).Error; err != nil {
		return nil, err
	}
	return engineer, nil
}

// Save persists changes to an already-loaded engineer.
func (r *Repository) Save(ctx context.Context, engineer *models.Engineer) (*models.Engineer, error) {
	if err := r.DB(ctx).Save(engineer).Error; err != nil {
		return nil, err
	}
	return engineer, nil
}

// AssignTeam points the engineer at the team.
func (r *Repository) AssignTeam(ctx context.Context, engineerID, teamID int64) error {
	return r.DB(ctx).
		Model(&models.Engineer{}).
		Where("id = ?", engineerID).
		UpdateColumn("team_id", teamID).Error
}

// Delete removes the engineer row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Delete(&models.Engineer{}, "id = ?", id).Error
}
