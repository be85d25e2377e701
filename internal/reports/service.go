package reports

import (
	"context"
	"errors"
	"fmt"

	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	pkgerrors "github.com/wejdenmesaoud/cashback/pkg/errors"
	"gorm.io/gorm"
)

// Service generates per-engineer case reports.
type Service struct {
	reports   *Repository
	engineers engineerFinder
	cases     caseLinker
}

type engineerFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Engineer, error)
}

type caseLinker interface {
	FindByEngineer(ctx context.Context, engineerID int64) ([]models.Case, error)
	AssignReportToEngineerCases(ctx context.Context, engineerID, reportID int64) error
}

// NewService builds a report generation service.
func NewService(reports *Repository, engineers engineerFinder, cases caseLinker) (*Service, error) {
	if reports == nil {
		return nil, fmt.Errorf("reports repository is required")
	}
	if engineers == nil {
		return nil, fmt.Errorf("engineers repository is required")
	}
	if cases == nil {
		return nil, fmt.Errorf("cases repository is required")
	}
	return &Service{reports: reports, engineers: engineers, cases: cases}, nil
}

// GenerateForEngineer creates a report covering all of the engineer's current
// cases and backlinks each case to the new report.
func (s *Service) GenerateForEngineer(ctx context.Context, engineerID int64) (*models.Report, error) {
	engineer, err := s.engineers.FindByID(ctx, engineerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "engineer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "lookup engineer")
	}

	engineerCases, err := s.cases.FindByEngineer(ctx, engineerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "list engineer cases")
	}

	chat := "Cases report for engineer: " + engineer.FullName
	total := len(engineerCases)
	report := &models.Report{
		Chat:         &chat,
		Total:        &total,
		EngineerName: engineer.FullName,
	}
	if _, err := s.reports.Create(ctx, report); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "create report")
	}

	if err := s.cases.AssignReportToEngineerCases(ctx, engineerID, report.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "backlink cases")
	}
	return report, nil
}
