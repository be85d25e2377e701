package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/wejdenmesaoud/cashback/api/responses"
	"github.com/wejdenmesaoud/cashback/api/validators"
	"github.com/wejdenmesaoud/cashback/internal/cases"
	"github.com/wejdenmesaoud/cashback/pkg/db"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	pkgerrors "github.com/wejdenmesaoud/cashback/pkg/errors"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
)

type caseStore interface {
	List(ctx context.Context) ([]models.Case, error)
	FindByID(ctx context.Context, id int64) (*models.Case, error)
	FindByEngineer(ctx context.Context, engineerID int64) ([]models.Case, error)
	FindByReport(ctx context.Context, reportID int64) ([]models.Case, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]models.Case, error)
	FindByTeam(ctx context.Context, teamID int64) ([]models.Case, error)
	Create(ctx context.Context, record *models.Case) (*models.Case, error)
	Save(ctx context.Context, record *models.Case) (*models.Case, error)
	Delete(ctx context.Context, id int64) error
}

type engineerFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Engineer, error)
}

type reportFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Report, error)
}

type caseStatistics interface {
	EngineerStatistics(ctx context.Context, engineerID int64, start, end time.Time) (*cases.Statistics, error)
}

type caseRequest struct {
	CaseDescription string     `json:"caseDescription" validate:"required,max=500"`
	Date            *time.Time `json:"date" validate:"required"`
	CESRating       *int       `json:"cesRating" validate:"omitempty,min=1,max=5"`
	SurveySource    *string    `json:"surveySource" validate:"omitempty,oneof=Case Chat"`
	SAPCaseID       *string    `json:"sapCaseId"`
	TopContractType *string    `json:"topContractType"`
	ChatSessionID   *string    `json:"chatSessionId"`
	SurveyFeedback  *string    `json:"surveyFeedback"`
	EngineerID      int64      `json:"engineerId" validate:"required,gt=0"`
	ReportID        *int64     `json:"reportId"`
}

func (req caseRequest) apply(record *models.Case) {
	record.CaseDescription = validators.SanitizeString(req.CaseDescription, 500)
	if req.Date != nil {
		record.Date = *req.Date
	}
	record.CESRating = req.CESRating
	record.SurveySource = req.SurveySource
	record.SAPCaseID = req.SAPCaseID
	record.TopContractType = req.TopContractType
	record.ChatSessionID = req.ChatSessionID
	record.SurveyFeedback = req.SurveyFeedback
	record.EngineerID = req.EngineerID
	record.ReportID = req.ReportID
}

// CaseList returns every case.
func CaseList(store caseStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// CaseGet returns one case by id.
func CaseGet(store caseStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		record, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "case not found"))
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// CasesByEngineer lists one engineer's cases; unknown engineer is 404.
func CasesByEngineer(store caseStore, engineers engineerFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engineerID, err := validators.ParsePathID(r, "engineerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if _, err := engineers.FindByID(r.Context(), engineerID); err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "engineer not found"))
			return
		}

		records, err := store.FindByEngineer(r.Context(), engineerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// CasesByReport lists the cases attached to a report; unknown report is 404.
func CasesByReport(store caseStore, reports reportFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID, err := validators.ParsePathID(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if _, err := reports.FindByID(r.Context(), reportID); err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "report not found"))
			return
		}

		records, err := store.FindByReport(r.Context(), reportID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// CasesByDateRange lists cases whose date falls in [start, end].
func CasesByDateRange(store caseStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := validators.ParseQueryTime(r, "start")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		end, err := validators.ParseQueryTime(r, "end")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		records, err := store.FindByDateRange(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// CasesByTeam lists the cases worked by a team's engineers.
func CasesByTeam(store caseStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := validators.ParsePathID(r, "teamId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		records, err := store.FindByTeam(r.Context(), teamID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// CaseStatistics aggregates case count and average CES rating for an
// engineer over a date range.
func CaseStatistics(svc caseStatistics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engineerID, err := validators.ParsePathID(r, "engineerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		start, err := validators.ParseQueryTime(r, "start")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		end, err := validators.ParseQueryTime(r, "end")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		stats, err := svc.EngineerStatistics(r.Context(), engineerID, start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// CaseCreate records a new case.
func CaseCreate(store caseStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload caseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		record := &models.Case{}
		payload.apply(record)

		created, err := store.Create(r.Context(), record)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// CaseUpdate replaces the mutable fields of an existing case.
func CaseUpdate(store caseStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		var payload caseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		record, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "case not found"))
			return
		}

		payload.apply(record)
		updated, err := store.Save(r.Context(), record)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// CaseAssignEngineer moves a case to another engineer.
func CaseAssignEngineer(store caseStore, engineers engineerFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		engineerID, err := validators.ParsePathID(r, "engineerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		record, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "case not found"))
			return
		}
		engineer, err := engineers.FindByID(r.Context(), engineerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "engineer not found"))
			return
		}

		record.EngineerID = engineer.ID
		record.Engineer = nil
		updated, err := store.Save(r.Context(), record)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// CaseAssignReport attaches a case to a report.
func CaseAssignReport(store caseStore, reports reportFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		reportID, err := validators.ParsePathID(r, "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		record, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "case not found"))
			return
		}
		report, err := reports.FindByID(r.Context(), reportID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "report not found"))
			return
		}

		record.ReportID = &report.ID
		record.Report = nil
		updated, err := store.Save(r.Context(), record)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// CaseDelete removes a case.
func CaseDelete(store caseStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if err := store.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// notFoundOr maps a record-miss to 404 and passes other errors through.
func notFoundOr(err error, message string) error {
	if db.IsNotFound(err) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, message)
	}
	return err
}
