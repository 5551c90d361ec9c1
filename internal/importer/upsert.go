package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mbakken/labstock-backend/internal/catalog"
	"github.com/mbakken/labstock-backend/pkg/db/models"
)

// UpsertEngine persists items and supplier listings using the fallback
// identity rules: externalId first, then (name, manufacturer) for items;
// the (itemId, supplierId) composite key for supplier listings.
type UpsertEngine struct {
	repo *catalog.Repository
}

// NewUpsertEngine builds an engine on top of the catalog repository.
func NewUpsertEngine(repo *catalog.Repository) *UpsertEngine {
	return &UpsertEngine{repo: repo}
}

// resolvedRefs carries the foreign keys the resolver attached to a row.
type resolvedRefs struct {
	DepartmentID *uuid.UUID
	CategoryID   *uuid.UUID
	LocationID   *uuid.UUID
}

// UpsertItem creates or updates the item for the candidate. The returned
// flag reports whether a new record was created.
func (e *UpsertEngine) UpsertItem(ctx context.Context, cand *candidate, refs resolvedRefs) (*models.Item, bool, error) {
	existing, err := e.findExisting(ctx, cand)
	if err != nil {
		return nil, false, fmt.Errorf("looking up item: %w", err)
	}

	if existing != nil {
		applyCandidate(existing, cand, refs)
		updated, err := e.repo.UpdateItem(ctx, existing)
		if err != nil {
			return nil, false, fmt.Errorf("updating item: %w", err)
		}
		return updated, false, nil
	}

	item := &models.Item{}
	applyCandidate(item, cand, refs)
	item.ItemCode, err = e.itemCode(ctx, cand)
	if err != nil {
		return nil, false, err
	}

	created, err := e.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, false, fmt.Errorf("creating item: %w", err)
	}
	return created, true, nil
}

func (e *UpsertEngine) findExisting(ctx context.Context, cand *candidate) (*models.Item, error) {
	if cand.ExternalID != nil {
		return e.repo.FindItemByExternalID(ctx, *cand.ExternalID)
	}
	return e.repo.FindItemByNameAndManufacturer(ctx, cand.Name, cand.Manufacturer)
}

// itemCode uses the external identifier when present; otherwise a generated
// code, retried until unused.
func (e *UpsertEngine) itemCode(ctx context.Context, cand *candidate) (string, error) {
	if cand.ExternalID != nil {
		return *cand.ExternalID, nil
	}
	for attempt := 0; attempt < codeRetryAttempts; attempt++ {
		code := GenerateItemCode(cand.Name, cand.Manufacturer)
		exists, err := e.repo.ItemCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("checking item code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique item code for %q", cand.Name)
}

func applyCandidate(item *models.Item, cand *candidate, refs resolvedRefs) {
	item.Name = cand.Name
	if cand.ExternalID != nil {
		item.ExternalID = cand.ExternalID
	}
	if cand.Manufacturer != nil {
		item.Manufacturer = cand.Manufacturer
	}
	if cand.Notes != nil {
		item.Notes = cand.Notes
	}
	if cand.HazardCodes != nil {
		item.HazardCodes = cand.HazardCodes
	}
	if cand.Certification != nil {
		item.Certification = cand.Certification
	}
	if cand.InternalReference != nil {
		item.InternalReference = cand.InternalReference
	}
	if cand.StandingOrderDetails != nil {
		item.StandingOrderDetails = cand.StandingOrderDetails
	}
	if refs.DepartmentID != nil {
		item.DepartmentID = refs.DepartmentID
	}
	if refs.CategoryID != nil {
		item.CategoryID = refs.CategoryID
	}
	if refs.LocationID != nil {
		item.LocationID = refs.LocationID
	}
}

// UpsertSupplierItem creates or updates the listing for the (item, supplier)
// pair. Callers ensure the candidate carries commercial data first.
func (e *UpsertEngine) UpsertSupplierItem(ctx context.Context, itemID, supplierID uuid.UUID, cand *candidate) (bool, error) {
	existing, err := e.repo.FindSupplierItem(ctx, itemID, supplierID)
	if err != nil {
		return false, fmt.Errorf("looking up supplier listing: %w", err)
	}

	if existing != nil {
		applySupplierCandidate(existing, cand)
		if _, err := e.repo.UpdateSupplierItem(ctx, existing); err != nil {
			return false, fmt.Errorf("updating supplier listing: %w", err)
		}
		return false, nil
	}

	si := &models.SupplierItem{ItemID: itemID, SupplierID: supplierID}
	applySupplierCandidate(si, cand)
	if _, err := e.repo.CreateSupplierItem(ctx, si); err != nil {
		return false, fmt.Errorf("creating supplier listing: %w", err)
	}
	return true, nil
}

func applySupplierCandidate(si *models.SupplierItem, cand *candidate) {
	if cand.PartNumber != nil {
		si.PartNumber = cand.PartNumber
	}
	if cand.Price != nil {
		si.NegotiatedPrice = cand.Price
	}
	if cand.DiscountPercent != nil {
		si.DiscountPercent = cand.DiscountPercent
	}
	if cand.AgreementReference != nil {
		si.AgreementReference = cand.AgreementReference
	}
	if cand.PackageDescription != nil {
		si.PackageDescription = cand.PackageDescription
	}
	if cand.QuantityPerPackage != nil {
		si.QuantityPerPackage = cand.QuantityPerPackage
	}
	if cand.ProductURL != nil {
		si.ProductURL = cand.ProductURL
	}
	if cand.VerifiedAt != nil {
		si.LastVerifiedAt = cand.VerifiedAt
	}
	if cand.VerifiedBy != nil {
		si.LastVerifiedBy = cand.VerifiedBy
	}
	si.Role = cand.Role
}
