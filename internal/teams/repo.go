package teams

import (
	"context"

	"github.com/wejdenmesaoud/cashback/internal/repo"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes team persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a teams repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns every team.
func (r *Repository) List(ctx context.Context) ([]models.Team, error) {
	var found []models.Team
	if err := r.DB(ctx).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// FindByID loads a single team.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Team, error) {
	var team models.Team
	if err := r.DB(ctx).First(&team, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindByName returns the first team with the given name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Team, error) {
	var team models.Team
	if err := r.DB(ctx).Where("name = ?", name).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindByUser lists teams managed by the user.
func (r *Repository) FindByUser(ctx context.Context, userID int64) ([]models.Team, error) {
	var found []models.Team
	if err := r.DB(ctx).Where("user_id = ?", userID).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// Create inserts a new team.
func (r *Repository) Create(ctx context.Context, team *models.Team) (*models.Team, error) {
	if err := r.DB(ctx).Create(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

// Save persists changes to an already-loaded team.
func (r *Repository) Save(ctx context.Context, team *models.Team) (*models.Team, error) {
	if err := r.DB(ctx).Save(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

// AssignManager points the team at the managing user.
func (r *Repository) AssignManager(ctx context.Context, teamID, userID int64) error {
	return r.DB(ctx).
		Model(&models.Team{}).
		Where("id = ?", teamID).
		UpdateColumn("user_id", userID).Error
}

// Delete removes the team row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Delete(&models.Team{}, "id = ?", id).Error
}
