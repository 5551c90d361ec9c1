package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mbakken/labstock-backend/api/responses"
	"github.com/mbakken/labstock-backend/api/validators"
	"github.com/mbakken/labstock-backend/internal/importer"
	"github.com/mbakken/labstock-backend/pkg/config"
	pkgerrors "github.com/mbakken/labstock-backend/pkg/errors"
	"github.com/mbakken/labstock-backend/pkg/logger"
)

// ImportDocument accepts a multipart spreadsheet upload and runs the import.
func ImportDocument(svc importer.Service, cfg config.ImportConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "import service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadBytes())
		if err := r.ParseMultipartForm(cfg.MaxUploadBytes()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "could not parse upload"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field required"))
			return
		}
		defer file.Close()

		report, err := svc.Import(r.Context(), importer.ImportInput{
			Filename: header.Filename,
			Reader:   file,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}

type templateQuery struct {
	Format string `json:"format" validate:"omitempty,oneof=csv xlsx"`
}

// ImportTemplate serves an empty import template in the requested format.
func ImportTemplate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := templateQuery{Format: validators.ParseQueryString(r, "format")}
		if err := validators.ValidateStruct(&query); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if query.Format == "" {
			query.Format = "csv"
		}

		var (
			payload     []byte
			contentType string
			err         error
		)
		switch query.Format {
		case "xlsx":
			payload, err = importer.TemplateXLSX()
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		default:
			payload, err = importer.TemplateCSV()
			contentType = "text/csv"
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rendering template"))
			return
		}

		filename := fmt.Sprintf("import-template-%s.%s", time.Now().Format("2006-01-02"), query.Format)
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
	}
}
