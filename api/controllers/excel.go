package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/wejdenmesaoud/cashback/api/responses"
	"github.com/wejdenmesaoud/cashback/internal/excelimport"
	pkgerrors "github.com/wejdenmesaoud/cashback/pkg/errors"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
)

const (
	missingFileMessage   = "Please upload a file"
	wrongFileTypeMessage = "Please upload an Excel file (XLSX format)"
)

type spreadsheetImporter interface {
	IsSpreadsheet(contentType string) bool
	ProcessFile(ctx context.Context, r io.Reader) (*excelimport.Result, error)
}

// ExcelImportCases ingests an uploaded XLSX workbook of survey rows. Rows
// that fail validation are reported back without aborting the rest of the
// file.
func ExcelImportCases(svc spreadsheetImporter, maxUploadMB int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxUploadMB > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, int64(maxUploadMB)<<20)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeInvalidData, missingFileMessage))
			return
		}
		defer file.Close()

		if header.Size == 0 {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeInvalidData, missingFileMessage))
			return
		}
		if !svc.IsSpreadsheet(header.Header.Get("Content-Type")) {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeInvalidData, wrongFileTypeMessage))
			return
		}

		result, err := svc.ProcessFile(r.Context(), file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": importMessage(result)})
	}
}

func importMessage(result *excelimport.Result) string {
	if len(result.Errors) == 0 {
		return fmt.Sprintf("Successfully imported %d cases", result.TotalRows)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Imported %d cases with %d errors:", result.TotalRows, len(result.Errors))
	for _, rowErr := range result.Errors {
		sb.WriteString("\n- ")
		sb.WriteString(rowErr)
	}
	return sb.String()
}

// ExcelTemplate serves the import template so users can fill in the expected
// columns.
func ExcelTemplate(templatePath string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.Wrap(pkgerrors.CodeServerError, err, "load template"))
			return
		}

		filename := filepath.Base(templatePath)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
