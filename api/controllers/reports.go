package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wejdenmesaoud/cashback/api/responses"
	"github.com/wejdenmesaoud/cashback/api/validators"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
)

type reportStore interface {
	List(ctx context.Context) ([]models.Report, error)
	FindByID(ctx context.Context, id int64) (*models.Report, error)
	FindByEngineerName(ctx context.Context, engineerName string) ([]models.Report, error)
	FindByTotalGreaterThan(ctx context.Context, total int) ([]models.Report, error)
	Create(ctx context.Context, report *models.Report) (*models.Report, error)
	Save(ctx context.Context, report *models.Report) (*models.Report, error)
	Delete(ctx context.Context, id int64) error
}

type reportGenerator interface {
	GenerateForEngineer(ctx context.Context, engineerID int64) (*models.Report, error)
}

type reportRequest struct {
	Chat         *string `json:"chat"`
	Total        *int    `json:"total"`
	EngineerName string  `json:"engineerName" validate:"required,max=100"`
}

func (req reportRequest) apply(report *models.Report) {
	report.Chat = req.Chat
	report.Total = req.Total
	report.EngineerName = req.EngineerName
}

// ReportList returns every report.
func ReportList(store reportStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportsList, err := store.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, reportsList)
	}
}

// ReportGet returns one report by id.
func ReportGet(store reportStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		report, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "report not found"))
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// ReportsByEngineerName lists reports generated for an engineer name.
func ReportsByEngineerName(store reportStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engineerName := chi.URLParam(r, "engineerName")
		reportsList, err := store.FindByEngineerName(r.Context(), engineerName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, reportsList)
	}
}

// ReportsByTotalGreaterThan lists reports whose case total exceeds the bound.
func ReportsByTotalGreaterThan(store reportStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := validators.ParsePathID(r, "total")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		reportsList, err := store.FindByTotalGreaterThan(r.Context(), int(total))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, reportsList)
	}
}

// ReportCreate records a report directly.
func ReportCreate(store reportStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload reportRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		report := &models.Report{}
		payload.apply(report)

		created, err := store.Create(r.Context(), report)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ReportGenerate builds a report from an engineer's current cases and links
// those cases back to it.
func ReportGenerate(svc reportGenerator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engineerID, err := validators.ParsePathID(r, "engineerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		report, err := svc.GenerateForEngineer(r.Context(), engineerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, report)
	}
}

// ReportUpdate replaces a report's fields.
func ReportUpdate(store reportStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		var payload reportRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		report, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "report not found"))
			return
		}

		payload.apply(report)
		updated, err := store.Save(r.Context(), report)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// ReportDelete removes a report.
func ReportDelete(store reportStore, logg *logger.Logger) http.HandlerFunc {
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
