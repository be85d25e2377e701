package reports

import (
	"context"

	"github.com/wejdenmesaoud/cashback/internal/repo"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes report persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a reports repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns every report.
func (r *Repository) List(ctx context.Context) ([]models.Report, error) {
	var found []models.Report
	if err := r.DB(ctx).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// FindByID loads a single report.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Report, error) {
	var report models.Report
	if err := r.DB(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// FindByEngineerName lists reports generated for the named engineer.
func (r *Repository) FindByEngineerName(ctx context.Context, engineerName string) ([]models.Report, error) {
	var found []models.Report
	if err := r.DB(ctx).Where("engineer_name = ?", engineerName).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// FindByTotalGreaterThan lists reports whose total exceeds the threshold.
func (r *Repository) FindByTotalGreaterThan(ctx context.Context, total int) ([]models.Report, error) {
	var found []models.Report
	if err := r.DB(ctx).Where("total > ?", total).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// Create inserts a new report.
func (r *Repository) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	if err := r.DB(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

// Save persists changes to an already-loaded report.
func (r *Repository) Save(ctx context.Context, report *models.Report) (*models.Report, error) {
	if err := r.DB(ctx).Save(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

// Delete removes the report row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Delete(&models.Report{}, "id = ?", id).Error
}
