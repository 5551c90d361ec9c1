package importer

import "fmt"

// ReportDetails holds the per-run counters and the accumulated row messages.
type ReportDetails struct {
	ItemsCreated         int      `json:"itemsCreated"`
	ItemsUpdated         int      `json:"itemsUpdated"`
	SupplierItemsCreated int      `json:"supplierItemsCreated"`
	SupplierItemsUpdated int      `json:"supplierItemsUpdated"`
	Errors               []string `json:"errors"`
}

// Report is the aggregate result of one import run. A run with row-level
// failures still reports success; the error list carries the details.
type Report struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Details ReportDetails `json:"details"`
}

func (d ReportDetails) summary() string {
	return fmt.Sprintf(
		"Import complete: %d items created, %d items updated, %d supplier listings created, %d supplier listings updated.",
		d.ItemsCreated, d.ItemsUpdated, d.SupplierItemsCreated, d.SupplierItemsUpdated,
	)
}
