package cases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	pkgerrors "github.com/wejdenmesaoud/cashback/pkg/errors"
	"gorm.io/gorm"
)

// Statistics summarizes an engineer's resolved cases over a window.
type Statistics struct {
	EngineerID       int64     `json:"engineerId"`
	EngineerName     string    `json:"engineerName"`
	CaseCount        int64     `json:"caseCount"`
	AverageCESRating float64   `json:"averageCesRating"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
}

// Service wraps the statistics aggregation on top of the repositories.
type Service struct {
	cases     *Repository
	engineers engineerFinder
}

type engineerFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Engineer, error)
}

// NewService builds a case statistics service.
func NewService(cases *Repository, engineers engineerFinder) (*Service, error) {
	if cases == nil {
		return nil, fmt.Errorf("cases repository is required")
	}
	if engineers == nil {
		return nil, fmt.Errorf("engineers repository is required")
	}
	return &Service{cases: cases, engineers: engineers}, nil
}

// EngineerStatistics computes case count and average CES rating for the
// engineer over [start, end]. A missing rating average collapses to zero.
func (s *Service) EngineerStatistics(ctx context.Context, engineerID int64, start, end time.Time) (*Statistics, error) {
	engineer, err := s.engineers.FindByID(ctx, engineerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "engineer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "lookup engineer")
	}

	count, err := s.cases.CountByEngineerAndRange(ctx, engineerID, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "count cases")
	}
	avg, err := s.cases.AverageCESByEngineerAndRange(ctx, engineerID, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "average ces rating")
	}

	stats := &Statistics{
		EngineerID:   engineerID,
		EngineerName: engineer.FullName,
		CaseCount:    count,
		StartDate:    start,
		EndDate:      end,
	}
	if avg != nil {
		stats.AverageCESRating = *avg
	}
	return stats, nil
}
