package importer

import "strings"

// Canonical field names produced by the column mapping.
const (
	fieldName              = "name"
	fieldExternalID        = "external_id"
	fieldManufacturer      = "manufacturer"
	fieldNotes             = "notes"
	fieldHazardCodes       = "hazard_codes"
	fieldCertification     = "certification"
	fieldInternalReference = "internal_reference"
	fieldStandingOrder     = "standing_order"
	fieldDepartment        = "department"
	fieldCategory          = "category"
	fieldLocation          = "location"
	fieldSupplier          = "supplier"
	fieldPartNumber        = "part_number"
	fieldPrice             = "price"
	fieldDiscountPercent   = "discount_percent"
	fieldAgreement         = "agreement"
	fieldPackage           = "package"
	fieldQtyPerPackage     = "qty_per_package"
	fieldProductURL        = "product_url"
	fieldVerified          = "verified"
	fieldSupplierRole      = "supplier_role"
)

// ignoredMarker flags workflow-only columns that must never reach the catalog.
const ignoredMarker = "-"

// columnMapping binds known source header labels (lowercased) to canonical
// fields. Labels absent from this table are silently dropped.
var columnMapping = map[string]string{
	"name":               fieldName,
	"external id":        fieldExternalID,
	"manufacturer":       fieldManufacturer,
	"notes":              fieldNotes,
	"hazard codes":       fieldHazardCodes,
	"certification":      fieldCertification,
	"internal reference": fieldInternalReference,
	"standing order":     fieldStandingOrder,
	"department":         fieldDepartment,
	"category":           fieldCategory,
	"location":           fieldLocation,
	"supplier":           fieldSupplier,
	"supplier part no.":  fieldPartNumber,
	"price":              fieldPrice,
	"discount %":         fieldDiscountPercent,
	"agreement":          fieldAgreement,
	"package":            fieldPackage,
	"qty per package":    fieldQtyPerPackage,
	"product url":        fieldProductURL,
	"verified":           fieldVerified,
	"supplier role":      fieldSupplierRole,

	// Ad-hoc ordering workflow columns. Recognized so they are dropped on
	// purpose rather than by accident.
	"order qty": ignoredMarker,
	"priority":  ignoredMarker,
	"ordered":   ignoredMarker,
	"received":  ignoredMarker,
	"urgent":    ignoredMarker,
}

// Record is a data row keyed by canonical field names. Only fields the
// mapping table explicitly recognizes appear.
type Record map[string]string

// MapRow builds a record from a data row using the located header.
func MapRow(headers []string, row []string) Record {
	record := Record{}
	for i, header := range headers {
		if i >= len(row) {
			break
		}
		field, ok := columnMapping[strings.ToLower(strings.TrimSpace(header))]
		if !ok || field == ignoredMarker {
			continue
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}
		record[field] = value
	}
	return record
}

// TemplateHeaders returns the recognized source labels in template order,
// excluding workflow-only columns.
func TemplateHeaders() []string {
	return []string{
		"Name",
		"External ID",
		"Manufacturer",
		"Department",
		"Category",
		"Location",
		"Supplier",
		"Supplier part no.",
		"Price",
		"Discount %",
		"Agreement",
		"Package",
		"Qty per package",
		"Product URL",
		"Verified",
		"Supplier role",
		"Hazard codes",
		"Certification",
		"Internal reference",
		"Standing order",
		"Notes",
	}
}
