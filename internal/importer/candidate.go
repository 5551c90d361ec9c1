package importer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mbakken/labstock-backend/pkg/enums"
)

// candidate is a validated, normalized row ready for resolution and persistence.
type candidate struct {
	Name                 string
	ExternalID           *string
	Manufacturer         *string
	Notes                *string
	HazardCodes          *string
	Certification        *string
	InternalReference    *string
	StandingOrderDetails *string

	DepartmentName string
	CategoryName   string
	LocationName   string
	SupplierName   string

	PartNumber         *string
	Price              *decimal.Decimal
	DiscountPercent    *float64
	AgreementReference *string
	PackageDescription *string
	QuantityPerPackage *float64
	ProductURL         *string
	VerifiedAt         *time.Time
	VerifiedBy         *string
	Role               enums.SupplierRole
}

// buildCandidate validates a mapped record and normalizes its values.
// The error is row-fatal; warnings are non-blocking.
func buildCandidate(record Record) (*candidate, []string, error) {
	warnings, err := ValidateRow(record)
	if err != nil {
		return nil, nil, err
	}

	cand := &candidate{
		Name:                 record[fieldName],
		ExternalID:           optional(record, fieldExternalID),
		Manufacturer:         optional(record, fieldManufacturer),
		Notes:                optional(record, fieldNotes),
		HazardCodes:          optional(record, fieldHazardCodes),
		Certification:        optional(record, fieldCertification),
		InternalReference:    optional(record, fieldInternalReference),
		StandingOrderDetails: optional(record, fieldStandingOrder),
		DepartmentName:       record[fieldDepartment],
		CategoryName:         record[fieldCategory],
		LocationName:         record[fieldLocation],
		SupplierName:         record[fieldSupplier],
		PartNumber:           optional(record, fieldPartNumber),
		Price:                ParsePrice(record[fieldPrice]),
		DiscountPercent:      ParsePercent(record[fieldDiscountPercent]),
		AgreementReference:   optional(record, fieldAgreement),
		PackageDescription:   optional(record, fieldPackage),
		QuantityPerPackage:   ParseQuantity(record[fieldQtyPerPackage]),
		ProductURL:           optional(record, fieldProductURL),
		VerifiedAt:           ParseVerifiedDate(record[fieldVerified]),
		VerifiedBy:           ParseInitials(record[fieldVerified]),
		Role:                 ParseRole(record[fieldSupplierRole]),
	}
	return cand, warnings, nil
}

// hasCommercialData reports whether the row carries enough supplier data to
// justify a SupplierItem.
func (c *candidate) hasCommercialData() bool {
	return c.PartNumber != nil || c.Price != nil
}

func optional(record Record, field string) *string {
	if value, ok := record[field]; ok && value != "" {
		v := value
		return &v
	}
	return nil
}
