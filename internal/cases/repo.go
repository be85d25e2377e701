package cases

import (
	"context"
	"time"

	"github.com/wejdenmesaoud/cashback/internal/repo"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes case persistence operations, including the statistics
// aggregates used by the reporting endpoints.
type Repository struct {
	repo.Base
}

// NewRepository constructs a cases repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns every case.
func (r *Repository) List(ctx context.Context) ([]models.Case, error) {
	var found []models.Case
	if err := r.DB(ctx).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// FindByID loads a single case.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Case, error) {
	var record models.Case
	if err := r.DB(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByEngineer lists cases attributed to the engineer.
func (r *Repository) FindByEngineer(ctx context.Context, engineerID int64) ([]models.Case, error) {
	var found []models.Case
	if err := r.DB(ctx).Where("engineer_id = ?", engineerID).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// FindByReport lists cases linked to the report.
func (r *Repository) FindByReport(ctx context.Context, reportID int64) ([]models.Case, error) {
	var found []models.Case
	if err := r.DB(ctx).Where("report_id = ?", reportID).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// FindByDateRange lists cases whose date falls inside [start, end].
func (r *Repository) FindByDateRange(ctx context.Context, start, end time.Time) ([]models.Case, error) {
	var found []models.Case
	err := r.DB(ctx).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date").
		Find(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

// FindByTeam lists cases owned by engineers on the team.
func (r *Repository) FindByTeam(ctx context.Context, teamID int64) ([]models.Case, error) {
	var found []models.Case
	err := r.DB(ctx).
		Joins("JOIN engineers ON engineers.id = cases.engineer_id").
		Where("engineers.team_id = ?", teamID).
		Find(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

// CountByEngineerAndRange counts cases for the engineer inside the window.
func (r *Repository) CountByEngineerAndRange(ctx context.Context, engineerID int64, start, end time.Time) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Case{}).
		Where("engineer_id = ? AND date BETWEEN ? AND ?", engineerID, start, end).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AverageCESByEngineerAndRange averages ces_rating for the engineer inside the
// window. Returns nil when no rated cases exist.
func (r *Repository) AverageCESByEngineerAndRange(ctx context.Context, engineerID int64, start, end time.Time) (*float64, error) {
	var avg *float64
	err := r.DB(ctx).
		Model(&models.Case{}).
		Select("AVG(ces_rating)").
		Where("engineer_id = ? AND date BETWEEN ? AND ? AND ces_rating IS NOT NULL", engineerID, start, end).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}

// Create inserts a new case.
func (r *Repository) Create(ctx context.Context, record *models.Case) (*models.Case, error) {
	if err := r.DB(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// Save persists changes to an already-loaded case.
func (r *Repository) Save(ctx context.Context, record *models.Case) (*models.Case, error) {
	if err := r.DB(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// AssignEngineer points the case at the engineer.
func (r *Repository) AssignEngineer(ctx context.Context, caseID, engineerID int64) error {
	return r.DB(ctx).
		Model(&models.Case{}).
		Where("id = ?", caseID).
		UpdateColumn("engineer_id", engineerID).Error
}

// AssignReport points the case at the report.
func (r *Repository) AssignReport(ctx context.Context, caseID, reportID int64) error {
	return r.DB(ctx).
		Model(&models.Case{}).
		Where("id = ?", caseID).
		UpdateColumn("report_id", reportID).Error
}

// AssignReportToEngineerCases backlinks every case of the engineer to the report.
func (r *Repository) AssignReportToEngineerCases(ctx context.Context, engineerID, reportID int64) error {
	return r.DB(ctx).
		Model(&models.Case{}).
		Where("engineer_id = ?", engineerID).
		UpdateColumn("report_id", reportID).Error
}

// Delete removes the case row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Delete(&models.Case{}, "id = ?", id).Error
}
