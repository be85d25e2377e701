package excelimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"github.com/wejdenmesaoud/cashback/pkg/enums"
	pkgerrors "github.com/wejdenmesaoud/cashback/pkg/errors"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
	"github.com/wejdenmesaoud/cashback/pkg/metrics"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// XLSXContentType is the only content type accepted for uploads.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DefaultManager backfills engineers created or repaired without a manager
// cell, keeping the non-blank manager constraint satisfied.
const DefaultManager = "Default Manager"

const timeHierarchyHeader = "Time Hierarchy (Day)"

// dateLayout matches spreadsheet values like "Jan 7, 2025".
const dateLayout = "Jan 2, 2006"

// Spreadsheet column layout, zero-based.
const (
	colEngineerFullName = iota
	colTimeHierarchy
	colSAPCaseID
	colCaseDescription
	colTopContractType
	colSurveySource
	colCESRating
	colCESDriverCorrectSolution
	colCESDriverTimelyUpdates
	colCESDriverTimelySolution
	colCESDriverProfessionalism
	colCESDriverExpertise
	colChatSessionID
	colSurveyFeedback
	colManagerName
)

// Result summarizes one processed file. TotalRows counts imported rows only;
// rejected rows appear in Errors with their sheet row number.
type Result struct {
	TotalRows int      `json:"totalRows"`
	Errors    []string `json:"errors"`
}

type engineerRepository interface {
	FindByFullName(ctx context.Context, fullName string) (*models.Engineer, error)
	Create(ctx context.Context, engineer *models.Engineer) (*models.Engineer, error)
	Save(ctx context.Context, engineer *models.Engineer) (*models.Engineer, error)
}

type caseRepository interface {
	Create(ctx context.Context, record *models.Case) (*models.Case, error)
}

// Service imports cases from uploaded XLSX workbooks. Each row validates,
// reconciles its engineer by full name, and persists independently: a bad row
// never rolls back its neighbors.
type Service struct {
	engineers     engineerRepository
	cases         caseRepository
	logg          *logger.Logger
	importMetrics *metrics.ImportMetrics
	now           func() time.Time
}

// ServiceParams bundles the dependencies required to build an import service.
type ServiceParams struct {
	EngineerRepo  engineerRepository
	CaseRepo      caseRepository
	Logger        *logger.Logger
	ImportMetrics *metrics.ImportMetrics
	Now           func() time.Time
}

// NewService constructs an import service with the provided dependencies.
func NewService(params ServiceParams) (*Service, error) {
	if params.EngineerRepo == nil {
		return nil, fmt.Errorf("engineer repository is required")
	}
	if params.CaseRepo == nil {
		return nil, fmt.Errorf("case repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		engineers:     params.EngineerRepo,
		cases:         params.CaseRepo,
		logg:          params.Logger,
		importMetrics: params.ImportMetrics,
		now:           now,
	}, nil
}

// IsSpreadsheet reports whether the upload carries the XLSX content type.
func (s *Service) IsSpreadsheet(contentType string) bool {
	return contentType == XLSXContentType
}

// ProcessFile reads the first sheet of the workbook, skips the header row, and
// imports every remaining row. Row failures are collected as
// "Error in row N: <reason>" strings; only a whole-file failure is an error.
func (s *Service) ProcessFile(ctx context.Context, r io.Reader) (*Result, error) {
	started := s.now()
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		s.importMetrics.IncFile("invalid")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidData, err, "Failed to process Excel file: "+err.Error())
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		s.importMetrics.IncFile("invalid")
		return nil, pkgerrors.New(pkgerrors.CodeInvalidData, "Failed to process Excel file: workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		s.importMetrics.IncFile("invalid")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidData, err, "Failed to process Excel file: "+err.Error())
	}

	result := &Result{Errors: []string{}}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if err := s.processRow(ctx, row); err != nil {
			rowNumber := i + 1
			result.Errors = append(result.Errors, fmt.Sprintf("Error in row %d: %s", rowNumber, rowErrorMessage(err)))
			if s.logg != nil {
				s.logg.Error(s.logg.WithField(ctx, "row", rowNumber), "failed to import spreadsheet row", err)
			}
			continue
		}
		result.TotalRows++
	}

	s.importMetrics.AddRows(result.TotalRows, len(result.Errors))
	s.importMetrics.ObserveDuration(s.now().Sub(started))
	if len(result.Errors) == 0 {
		s.importMetrics.IncFile("success")
	} else {
		s.importMetrics.IncFile("partial")
	}
	return result, nil
}

func (s *Service) processRow(ctx context.Context, row []string) error {
	engineerFullName := cellString(row, colEngineerFullName)
	timeHierarchy := cellString(row, colTimeHierarchy)
	sapCaseID := cellString(row, colSAPCaseID)
	caseDescription := cellString(row, colCaseDescription)
	topContractType := cellString(row, colTopContractType)
	surveySource := cellString(row, colSurveySource)
	cesRating := cellInt(row, colCESRating)
	chatSessionID := cellString(row, colChatSessionID)
	surveyFeedback := cellString(row, colSurveyFeedback)
	managerName := cellString(row, colManagerName)

	if engineerFullName == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidData, "Engineer name is required")
	}
	if caseDescription == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidData, "Case description is required")
	}
	if surveySource != "" && !enums.SurveySource(surveySource).IsValid() {
		return pkgerrors.New(pkgerrors.CodeInvalidData,
			fmt.Sprintf("Survey source must be 'Case' or 'Chat', but got '%s'", surveySource))
	}
	if cesRating != nil && (*cesRating < 1 || *cesRating > 5) {
		return pkgerrors.New(pkgerrors.CodeInvalidData,
			fmt.Sprintf("CES rating must be between 1 and 5, but got %d", *cesRating))
	}

	engineer, err := s.reconcileEngineer(ctx, engineerFullName, managerName)
	if err != nil {
		return err
	}

	record := &models.Case{
		CaseDescription:          caseDescription,
		Date:                     s.caseDate(timeHierarchy),
		CESRating:                cesRating,
		SurveySource:             optional(surveySource),
		SAPCaseID:                optional(sapCaseID),
		TopContractType:          optional(topContractType),
		CESDriverCorrectSolution: cellInt(row, colCESDriverCorrectSolution),
		CESDriverTimelyUpdates:   cellInt(row, colCESDriverTimelyUpdates),
		CESDriverTimelySolution:  cellInt(row, colCESDriverTimelySolution),
		CESDriverProfessionalism: cellInt(row, colCESDriverProfessionalism),
		CESDriverExpertise:       cellInt(row, colCESDriverExpertise),
		ChatSessionID:            optional(chatSessionID),
		SurveyFeedback:           optional(surveyFeedback),
		EngineerID:               engineer.ID,
	}
	if _, err := s.cases.Create(ctx, record); err != nil {
		return err
	}
	return nil
}

// reconcileEngineer finds the engineer by exact full name, creating it on a
// miss and backfilling a blank manager on a hit. Lookup and create are not
// atomic: two concurrent imports of a new name can both insert.
func (s *Service) reconcileEngineer(ctx context.Context, fullName, managerName string) (*models.Engineer, error) {
	engineer, err := s.engineers.FindByFullName(ctx, fullName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		created := &models.Engineer{
			FullName: fullName,
			Manager:  managerOrDefault(managerName),
		}
		return s.engineers.Create(ctx, created)
	}

	if strings.TrimSpace(engineer.Manager) == "" {
		engineer.Manager = managerOrDefault(managerName)
		return s.engineers.Save(ctx, engineer)
	}
	return engineer, nil
}

// caseDate parses the time hierarchy cell, stripping a trailing parenthetical
// like "Jan 7, 2025 (2025)". The header echo and unparseable values fall back
// to the current time; a bad date is never a row error.
func (s *Service) caseDate(timeHierarchy string) time.Time {
	if timeHierarchy == "" || timeHierarchy == timeHierarchyHeader {
		return s.now()
	}
	datePart := timeHierarchy
	if idx := strings.Index(timeHierarchy, "("); idx > 0 {
		datePart = strings.TrimSpace(timeHierarchy[:idx])
	}
	parsed, err := time.Parse(dateLayout, datePart)
	if err != nil {
		return s.now()
	}
	return parsed
}

func managerOrDefault(managerName string) string {
	if managerName != "" {
		return managerName
	}
	return DefaultManager
}

func cellString(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellInt(row []string, idx int) *int {
	raw := cellString(row, idx)
	if raw == "" {
		return nil
	}
	if value, err := strconv.Atoi(raw); err == nil {
		return &value
	}
	if value, err := strconv.ParseFloat(raw, 64); err == nil {
		truncated := int(value)
		return &truncated
	}
	return nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func rowErrorMessage(err error) string {
	if appErr := pkgerrors.As(err); appErr != nil {
		return appErr.Message()
	}
	return err.Error()
}
