package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/mbakken/labstock-backend/pkg/db/models"
)

// ItemDTO is the read-surface shape for a catalog item.
type ItemDTO struct {
	ID                   uuid.UUID         `json:"id"`
	Name                 string            `json:"name"`
	ItemCode             string            `json:"item_code"`
	ExternalID           *string           `json:"external_id,omitempty"`
	Manufacturer         *string           `json:"manufacturer,omitempty"`
	Notes                *string           `json:"notes,omitempty"`
	HazardCodes          *string           `json:"hazard_codes,omitempty"`
	Certification        *string           `json:"certification,omitempty"`
	InternalReference    *string           `json:"internal_reference,omitempty"`
	StandingOrderDetails *string           `json:"standing_order_details,omitempty"`
	Department           *ReferenceDTO     `json:"department,omitempty"`
	Category             *ReferenceDTO     `json:"category,omitempty"`
	Location             *ReferenceDTO     `json:"location,omitempty"`
	SupplierItems        []SupplierItemDTO `json:"supplier_items"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// ReferenceDTO is the shared shape for departments, categories, and locations.
type ReferenceDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description *string   `json:"description,omitempty"`
}

// SupplierItemDTO is a supplier listing as exposed on the read surface.
type SupplierItemDTO struct {
	ID                 uuid.UUID  `json:"id"`
	SupplierID         uuid.UUID  `json:"supplier_id"`
	SupplierName       string     `json:"supplier_name,omitempty"`
	PartNumber         *string    `json:"part_number,omitempty"`
	NegotiatedPrice    *string    `json:"negotiated_price,omitempty"`
	DiscountPercent    *float64   `json:"discount_percent,omitempty"`
	AgreementReference *string    `json:"agreement_reference,omitempty"`
	PackageDescription *string    `json:"package_description,omitempty"`
	QuantityPerPackage *float64   `json:"quantity_per_package,omitempty"`
	ProductURL         *string    `json:"product_url,omitempty"`
	LastVerifiedAt     *time.Time `json:"last_verified_at,omitempty"`
	LastVerifiedBy     *string    `json:"last_verified_by,omitempty"`
	Role               string     `json:"role"`
}

// SupplierDTO is the read shape for a supplier.
type SupplierDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
}

// ItemListResult pairs a page of items with its total count.
type ItemListResult struct {
	Items  []ItemDTO `json:"items"`
	Total  int64     `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

func toItemDTO(item *models.Item) *ItemDTO {
	if item == nil {
		return nil
	}
	dto := &ItemDTO{
		ID:                   item.ID,
		Name:                 item.Name,
		ItemCode:             item.ItemCode,
		ExternalID:           item.ExternalID,
		Manufacturer:         item.Manufacturer,
		Notes:                item.Notes,
		HazardCodes:          item.HazardCodes,
		Certification:        item.Certification,
		InternalReference:    item.InternalReference,
		StandingOrderDetails: item.StandingOrderDetails,
		Department:           toReferenceDTOFromDept(item.Department),
		Category:             toReferenceDTOFromCat(item.Category),
		Location:             toReferenceDTOFromLoc(item.Location),
		SupplierItems:        make([]SupplierItemDTO, 0, len(item.SupplierItems)),
		CreatedAt:            item.CreatedAt,
		UpdatedAt:            item.UpdatedAt,
	}
	for i := range item.SupplierItems {
		dto.SupplierItems = append(dto.SupplierItems, toSupplierItemDTO(&item.SupplierItems[i]))
	}
	return dto
}

func toSupplierItemDTO(si *models.SupplierItem) SupplierItemDTO {
	dto := SupplierItemDTO{
		ID:                 si.ID,
		SupplierID:         si.SupplierID,
		PartNumber:         si.PartNumber,
		DiscountPercent:    si.DiscountPercent,
		AgreementReference: si.AgreementReference,
		PackageDescription: si.PackageDescription,
		QuantityPerPackage: si.QuantityPerPackage,
		ProductURL:         si.ProductURL,
		LastVerifiedAt:     si.LastVerifiedAt,
		LastVerifiedBy:     si.LastVerifiedBy,
		Role:               si.Role.String(),
	}
	if si.NegotiatedPrice != nil {
		price := si.NegotiatedPrice.StringFixed(2)
		dto.NegotiatedPrice = &price
	}
	if si.Supplier != nil {
		dto.SupplierName = si.Supplier.Name
	}
	return dto
}

func toReferenceDTOFromDept(d *models.Department) *ReferenceDTO {
	if d == nil {
		return nil
	}
	return &ReferenceDTO{ID: d.ID, Name: d.Name, Code: d.Code, Description: d.Description}
}

func toReferenceDTOFromCat(c *models.Category) *ReferenceDTO {
	if c == nil {
		return nil
	}
	return &ReferenceDTO{ID: c.ID, Name: c.Name, Code: c.Code, Description: c.Description}
}

func toReferenceDTOFromLoc(l *models.StorageLocation) *ReferenceDTO {
	if l == nil {
		return nil
	}
	return &ReferenceDTO{ID: l.ID, Name: l.Name, Code: l.Code, Description: l.Description}
}

func toSupplierDTO(s *models.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:           s.ID,
		Name:         s.Name,
		ContactEmail: s.ContactEmail,
		ContactPhone: s.ContactPhone,
	}
}
