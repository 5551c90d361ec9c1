package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/mbakken/labstock-backend/internal/catalog"
	"github.com/mbakken/labstock-backend/pkg/config"
	"github.com/mbakken/labstock-backend/pkg/db/models"
	pkgerrors "github.com/mbakken/labstock-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *catalog.Repository) {
	t.Helper()
	repo := newTestRepo(t)
	svc, err := NewService(repo, newTestLogger(), nil, config.ImportConfig{HeaderScanRows: 10})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func seedSupplier(t *testing.T, repo *catalog.Repository, name string) {
	t.Helper()
	if _, err := repo.CreateSupplier(context.Background(), &models.Supplier{Name: name}); err != nil {
		t.Fatalf("seed supplier %q: %v", name, err)
	}
}

func importCSV(t *testing.T, svc Service, doc string) (*Report, error) {
	t.Helper()
	return svc.Import(context.Background(), ImportInput{
		Filename: "supplies.csv",
		Reader:   strings.NewReader(doc),
	})
}

func TestImportHappyPath(t *testing.T) {
	svc, repo := newTestService(t)
	seedSupplier(t, repo, "VWR")

	doc := strings.Join([]string{
		"Name;External ID;Manufacturer;Department;Category;Location;Supplier;Supplier part no.;Price;Supplier role;Verified",
		"Ethanol 96%;EXT-1;Merck;Microbiology;Solvents;Cold room;VWR;613-1234;1 234,50 kr;Reserve;18.06.25 ILK",
		"Nitrile gloves;EXT-2;;Microbiology;Consumable items;;VWR;450-9876;99,90;;",
	}, "\n")

	report, err := importCSV(t, svc, doc)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !report.Success {
		t.Fatalf("expected success, got %+v", report)
	}
	if report.Details.ItemsCreated != 2 || report.Details.ItemsUpdated != 0 {
		t.Fatalf("unexpected item counters: %+v", report.Details)
	}
	if report.Details.SupplierItemsCreated != 2 {
		t.Fatalf("expected 2 supplier listings, got %+v", report.Details)
	}
	if len(report.Details.Errors) != 0 {
		t.Fatalf("expected no row errors, got %v", report.Details.Errors)
	}

	ctx := context.Background()
	item, err := repo.FindItemByExternalID(ctx, "EXT-1")
	if err != nil || item == nil {
		t.Fatalf("imported item not found: %v", err)
	}
	if item.DepartmentID == nil || item.CategoryID == nil || item.LocationID == nil {
		t.Fatalf("expected reference entities attached, got %+v", item)
	}

	full, err := repo.FindItemByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("load item: %v", err)
	}
	if len(full.SupplierItems) != 1 {
		t.Fatalf("expected 1 supplier listing, got %d", len(full.SupplierItems))
	}
	si := full.SupplierItems[0]
	if si.NegotiatedPrice == nil || si.NegotiatedPrice.String() != "1234.5" {
		t.Fatalf("unexpected price: %v", si.NegotiatedPrice)
	}
	if si.Role != "secondary" {
		t.Fatalf("expected Reserve to map to secondary, got %s", si.Role)
	}
	if si.LastVerifiedBy == nil || *si.LastVerifiedBy != "ILK" {
		t.Fatalf("expected verifier initials, got %v", si.LastVerifiedBy)
	}
	if si.LastVerifiedAt == nil || si.LastVerifiedAt.Year() != 2025 {
		t.Fatalf("expected verified date in the 2000s, got %v", si.LastVerifiedAt)
	}

	// Both rows named the same department; sequential processing must reuse
	// the entity the first row created.
	depts, err := repo.ListDepartments(ctx)
	if err != nil {
		t.Fatalf("list departments: %v", err)
	}
	if len(depts) != 1 {
		t.Fatalf("expected one department, got %d", len(depts))
	}
}

func TestImportIsIdempotentWithExternalIDs(t *testing.T) {
	svc, repo := newTestService(t)
	seedSupplier(t, repo, "VWR")

	doc := strings.Join([]string{
		"Name;External ID;Supplier;Supplier part no.;Price",
		"Ethanol 96%;EXT-1;VWR;613-1234;100",
		"Acetone;EXT-2;VWR;613-5678;50",
	}, "\n")

	first, err := importCSV(t, svc, doc)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if first.Details.ItemsCreated != 2 || first.Details.ItemsUpdated != 0 {
		t.Fatalf("first run should create: %+v", first.Details)
	}

	second, err := importCSV(t, svc, doc)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if second.Details.ItemsCreated != 0 || second.Details.ItemsUpdated != 2 {
		t.Fatalf("second run should update, not create: %+v", second.Details)
	}
	if second.Details.SupplierItemsCreated != 0 || second.Details.SupplierItemsUpdated != 2 {
		t.Fatalf("supplier listings should update on rerun: %+v", second.Details)
	}
}

func TestImportIsolatesRowFailures(t *testing.T) {
	svc, repo := newTestService(t)
	seedSupplier(t, repo, "VWR")

	rows := []string{
		"Lab supply list;;",
		"Updated August 2026;;",
		"Name;Supplier part no.;Price",
	}
	for i := 0; i < 10; i++ {
		name := "Item number " + string(rune('A'+i))
		if i == 4 {
			name = "" // blank name, row-fatal
		}
		rows = append(rows, name+";PN-"+string(rune('A'+i))+";10")
	}

	report, err := importCSV(t, svc, strings.Join(rows, "\n"))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !report.Success {
		t.Fatal("partial failure must still report success")
	}
	if report.Details.ItemsCreated != 9 {
		t.Fatalf("expected 9 items, got %+v", report.Details)
	}
	if len(report.Details.Errors) != 1 {
		t.Fatalf("expected exactly one row error, got %v", report.Details.Errors)
	}
	// Header is sheet row 3, so the fifth data row is sheet row 8.
	if !strings.HasPrefix(report.Details.Errors[0], "Row 8:") {
		t.Fatalf("row number must be offset by header position, got %q", report.Details.Errors[0])
	}
}

func TestImportUnknownSupplierIsRowFatalButItemPersists(t *testing.T) {
	svc, repo := newTestService(t)

	doc := strings.Join([]string{
		"Name;Supplier;Supplier part no.;Price",
		"Ethanol 96%;Ghost Labs;613-1234;100",
	}, "\n")

	report, err := importCSV(t, svc, doc)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if report.Details.ItemsCreated != 1 {
		t.Fatalf("item should still be created: %+v", report.Details)
	}
	if report.Details.SupplierItemsCreated != 0 {
		t.Fatalf("no supplier listing may exist: %+v", report.Details)
	}
	if len(report.Details.Errors) != 1 || !strings.Contains(report.Details.Errors[0], "unknown supplier") {
		t.Fatalf("expected unknown-supplier row error, got %v", report.Details.Errors)
	}

	item, err := repo.FindItemByNameAndManufacturer(context.Background(), "Ethanol 96%", nil)
	if err != nil || item == nil {
		t.Fatalf("expected item persisted: %v", err)
	}
}

func TestImportZeroValidRowsIsRequestFatal(t *testing.T) {
	svc, _ := newTestService(t)

	doc := strings.Join([]string{
		"Name;Supplier part no.;Price",
		"Chemicals;;",
		"--- Section ---;;",
	}, "\n")

	_, err := importCSV(t, svc, doc)
	if err == nil {
		t.Fatal("expected request-fatal failure for zero valid rows")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state-conflict error, got %v", err)
	}
	details, ok := typed.Details().([]string)
	if !ok || len(details) != 2 {
		t.Fatalf("expected accumulated row reasons, got %v", typed.Details())
	}
}

func TestImportNoHeaderIsRequestFatal(t *testing.T) {
	svc, _ := newTestService(t)

	doc := "just;some;cells\nnothing;like;a header\n"
	_, err := importCSV(t, svc, doc)
	if err == nil {
		t.Fatal("expected no-header failure")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state-conflict error, got %v", err)
	}
}

func TestImportRejectsUnsupportedExtension(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Import(context.Background(), ImportInput{
		Filename: "supplies.pdf",
		Reader:   strings.NewReader("x"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestImportWarnsOnMissingCommercialData(t *testing.T) {
	svc, repo := newTestService(t)

	doc := strings.Join([]string{
		"Name;Manufacturer",
		"Ethanol 96%;Merck",
	}, "\n")

	report, err := importCSV(t, svc, doc)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if report.Details.ItemsCreated != 1 {
		t.Fatalf("warned row must still persist: %+v", report.Details)
	}
	if len(report.Details.Errors) != 1 || !strings.Contains(report.Details.Errors[0], "missing both") {
		t.Fatalf("expected warning message, got %v", report.Details.Errors)
	}

	item, err := repo.FindItemByNameAndManufacturer(context.Background(), "Ethanol 96%", strPtr("Merck"))
	if err != nil || item == nil {
		t.Fatalf("expected item persisted: %v", err)
	}
	if item.ItemCode == "" {
		t.Fatal("expected a generated item code")
	}
}

func TestImportCapsReportedRowErrors(t *testing.T) {
	repo := newTestRepo(t)
	svc, err := NewService(repo, newTestLogger(), nil, config.ImportConfig{HeaderScanRows: 10, ReportPreviewRows: 2})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	rows := []string{"Name;Supplier part no.;Price", "Ethanol 96%;PN-1;10"}
	for i := 0; i < 4; i++ {
		rows = append(rows, ";PN-bad;10")
	}

	report, err := importCSV(t, svc, strings.Join(rows, "\n"))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(report.Details.Errors) != 3 {
		t.Fatalf("expected capped error list, got %v", report.Details.Errors)
	}
	if !strings.Contains(report.Details.Errors[2], "2 more rows") {
		t.Fatalf("expected overflow marker, got %q", report.Details.Errors[2])
	}
}

func strPtr(s string) *string { return &s }
