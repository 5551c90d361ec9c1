package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/mbakken/labstock-backend/internal/catalog"
	"github.com/mbakken/labstock-backend/pkg/config"
	pkgerrors "github.com/mbakken/labstock-backend/pkg/errors"
	"github.com/mbakken/labstock-backend/pkg/logger"
	"github.com/mbakken/labstock-backend/pkg/metrics"
)

// Service exposes the import boundary call.
type Service interface {
	Import(ctx context.Context, input ImportInput) (*Report, error)
}

// ImportInput is one uploaded tabular document.
type ImportInput struct {
	Filename string
	Reader   io.Reader
}

type service struct {
	repo    *catalog.Repository
	logg    *logger.Logger
	metrics *metrics.ImportMetrics
	cfg     config.ImportConfig
}

// NewService constructs the import coordinator.
func NewService(repo *catalog.Repository, logg *logger.Logger, m *metrics.ImportMetrics, cfg config.ImportConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg, metrics: m, cfg: cfg}, nil
}

// Import runs the pipeline over one document. Rows are processed strictly
// sequentially: a reference entity created by one row must be visible to the
// next, and sequential processing avoids duplicate-entity races without
// per-name locks. Each row commits independently; there is no batch-wide
// rollback.
func (s *service) Import(ctx context.Context, input ImportInput) (*Report, error) {
	start := time.Now()
	ctx = s.logg.WithImportID(ctx, uuid.NewString())

	format, err := DetectFormat(input.Filename)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported file format")
	}

	grid, err := ReadGrid(format, input.Reader)
	if err != nil {
		s.metrics.IncRun("failure")
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "could not read document")
	}

	headerIdx, headers, err := LocateHeader(grid, s.cfg.HeaderScanRows)
	if err != nil {
		s.metrics.IncRun("failure")
		return nil, pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "no header row found")
	}

	resolver := NewResolver(s.repo, s.logg)
	engine := NewUpsertEngine(s.repo)

	details := ReportDetails{Errors: []string{}}
	validRows := 0

	for i, row := range grid[headerIdx+1:] {
		// User-facing row numbers count from the top of the sheet, offset
		// by the header's actual position.
		rowNum := headerIdx + 2 + i
		if isBlankRow(row) {
			continue
		}

		rowCtx := s.logg.WithRow(ctx, rowNum)

		cand, warnings, err := buildCandidate(MapRow(headers, row))
		if err != nil {
			details.Errors = append(details.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			s.metrics.AddRows("failed", 1)
			continue
		}
		validRows++
		for _, warning := range warnings {
			details.Errors = append(details.Errors, fmt.Sprintf("Row %d: %s", rowNum, warning))
		}

		s.persistRow(rowCtx, resolver, engine, cand, rowNum, &details)
	}

	details.Errors = previewErrors(details.Errors, s.cfg.ReportPreviewRows)

	if validRows == 0 {
		s.metrics.IncRun("failure")
		s.metrics.ObserveDuration(string(format), time.Since(start))
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no valid item rows found in document").
			WithDetails(details.Errors)
	}

	s.metrics.IncRun("success")
	s.metrics.ObserveDuration(string(format), time.Since(start))
	s.metrics.AddRows("created", details.ItemsCreated)
	s.metrics.AddRows("updated", details.ItemsUpdated)

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"items_created":          details.ItemsCreated,
		"items_updated":          details.ItemsUpdated,
		"supplier_items_created": details.SupplierItemsCreated,
		"supplier_items_updated": details.SupplierItemsUpdated,
		"row_errors":             len(details.Errors),
	}), "import finished")

	return &Report{
		Success: true,
		Message: details.summary(),
		Details: details,
	}, nil
}

// persistRow resolves references and writes the row inside its own failure
// boundary: persistence errors are logged and recorded, never propagated.
func (s *service) persistRow(ctx context.Context, resolver *Resolver, engine *UpsertEngine, cand *candidate, rowNum int, details *ReportDetails) {
	refs, err := s.resolveBestEffort(ctx, resolver, cand)
	if err != nil {
		s.logg.Error(ctx, "resolving references", err)
		details.Errors = append(details.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		s.metrics.AddRows("failed", 1)
		return
	}

	item, created, err := engine.UpsertItem(ctx, cand, refs)
	if err != nil {
		s.logg.Error(ctx, "persisting item", err)
		details.Errors = append(details.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		s.metrics.AddRows("failed", 1)
		return
	}
	if created {
		details.ItemsCreated++
	} else {
		details.ItemsUpdated++
	}

	if cand.SupplierName == "" {
		return
	}

	// Supplier resolution is strict: pricing must never attach to a
	// supplier that does not exist. The item above stays persisted.
	supplierID, err := resolver.Resolve(ctx, RefSupplier, cand.SupplierName)
	if err != nil {
		if errors.Is(err, ErrNotResolved) {
			details.Errors = append(details.Errors, fmt.Sprintf("Row %d: unknown supplier %q", rowNum, cand.SupplierName))
		} else {
			s.logg.Error(ctx, "resolving supplier", err)
			details.Errors = append(details.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
		return
	}

	if !cand.hasCommercialData() {
		return
	}

	siCreated, err := engine.UpsertSupplierItem(ctx, item.ID, *supplierID, cand)
	if err != nil {
		s.logg.Error(ctx, "persisting supplier listing", err)
		details.Errors = append(details.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		return
	}
	if siCreated {
		details.SupplierItemsCreated++
	} else {
		details.SupplierItemsUpdated++
	}
}

// previewErrors caps the row-error list included in a report. A zero max
// disables the cap.
func previewErrors(errs []string, max int) []string {
	if max <= 0 || len(errs) <= max {
		return errs
	}
	capped := append([]string{}, errs[:max]...)
	return append(capped, fmt.Sprintf("... and %d more rows", len(errs)-max))
}

// resolveBestEffort attaches department/category/location ids. These kinds
// degrade to nil on failure; only unexpected lookup errors surface.
func (s *service) resolveBestEffort(ctx context.Context, resolver *Resolver, cand *candidate) (resolvedRefs, error) {
	var refs resolvedRefs
	var err error

	if refs.DepartmentID, err = resolver.Resolve(ctx, RefDepartment, cand.DepartmentName); err != nil {
		return refs, err
	}
	if refs.CategoryID, err = resolver.Resolve(ctx, RefCategory, cand.CategoryName); err != nil {
		return refs, err
	}
	if refs.LocationID, err = resolver.Resolve(ctx, RefLocation, cand.LocationName); err != nil {
		return refs, err
	}
	return refs, nil
}
