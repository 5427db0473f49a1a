package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/ws"
	"go-inventory-ledger/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUExists       = errors.New("SKU already exists")
	// ErrProductInUse rejects deletes while transactions still reference
	// the product; the audit trail must keep resolving.
	ErrProductInUse = errors.New("product has recorded transactions and cannot be deleted")
)

type CatalogService interface {
	CreateProduct(req *model.Product, userID, userName string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, userID, userName string) error
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
	CreateVariant(productID uuid.UUID, req *model.Variant, userID, userName string) error
	UpdateVariant(id uuid.UUID, req *model.Variant, userID, userName string) (*model.Variant, error)
	DeleteVariant(id uuid.UUID, userID, userName string) error
}

type catalogService struct {
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
	activityRepo repository.ActivityRepository
	wsHub        *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, vRepo repository.VariantRepository, aRepo repository.ActivityRepository, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		variantRepo:  vRepo,
		activityRepo: aRepo,
		wsHub:        hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, userID, userName string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// Cek duplikasi SKU
	existing, _ := s.productRepo.FindByBaseSKU(req.BaseSKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID
	req.UpdatedByUserID = &userID
	for i := range req.Variants {
		req.Variants[i].CreatedBy = userID
		req.Variants[i].UpdatedBy = userID
	}

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.recordActivity(model.ActivityCreateProduct,
		fmt.Sprintf("Created product '%s' (%s) with %d variants", req.Name, req.BaseSKU, len(req.Variants)),
		&req.ID, userID)
	s.broadcastCatalog("product_created", req, userID, userName,
		fmt.Sprintf("%s created product '%s'", userName, req.Name))

	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.BaseSKU != existing.BaseSKU {
		dup, _ := s.productRepo.FindByBaseSKU(req.BaseSKU)
		if dup != nil && dup.ID != uuid.Nil {
			return nil, ErrSKUExists
		}
	}

	existing.Name = req.Name
	existing.BaseSKU = req.BaseSKU
	existing.Category = req.Category
	existing.Description = req.Description
	existing.UpdatedBy = userID
	existing.UpdatedByUserID = &userID

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.recordActivity(model.ActivityUpdateProduct,
		fmt.Sprintf("Updated product '%s' (%s)", existing.Name, existing.BaseSKU),
		&existing.ID, userID)
	s.broadcastCatalog("product_updated", existing, userID, userName,
		fmt.Sprintf("%s updated product '%s'", userName, existing.Name))

	return existing, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID, userID, userName string) error {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return ErrProductNotFound
	}

	inUse, err := s.productRepo.HasTransactions(id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrProductInUse
	}

	if err := s.productRepo.Delete(id, userID); err != nil {
		return err
	}

	s.recordActivity(model.ActivityDeleteProduct,
		fmt.Sprintf("Deleted product '%s' (%s)", existing.Name, existing.BaseSKU),
		&existing.ID, userID)
	s.broadcastCatalog("product_deleted", existing, userID, userName,
		fmt.Sprintf("%s deleted product '%s'", userName, existing.Name))

	return nil
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) CreateVariant(productID uuid.UUID, req *model.Variant, userID, userName string) error {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return ErrProductNotFound
	}

	req.ProductID = productID
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	existing, _ := s.variantRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.variantRepo.Create(req); err != nil {
		return err
	}

	s.recordActivity(model.ActivityUpdateProduct,
		fmt.Sprintf("Added variant %s to product '%s'", req.SKU, product.Name),
		&product.ID, userID)

	return nil
}

func (s *catalogService) UpdateVariant(id uuid.UUID, req *model.Variant, userID, userName string) (*model.Variant, error) {
	existing, err := s.variantRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.SKU != existing.SKU {
		dup, _ := s.variantRepo.FindBySKU(req.SKU)
		if dup != nil && dup.ID != uuid.Nil {
			return nil, ErrSKUExists
		}
	}

	existing.SKU = req.SKU
	existing.Color = req.Color
	existing.Size = req.Size
	existing.CostPrice = req.CostPrice
	existing.SellingPrice = req.SellingPrice
	existing.UpdatedBy = userID

	// Quantity is not touched here; stock changes go through the ledger.
	if err := s.variantRepo.Update(existing); err != nil {
		return nil, err
	}

	s.recordActivity(model.ActivityUpdateProduct,
		fmt.Sprintf("Updated variant %s", existing.SKU),
		&existing.ProductID, userID)

	return existing, nil
}

func (s *catalogService) DeleteVariant(id uuid.UUID, userID, userName string) error {
	existing, err := s.variantRepo.FindByID(id)
	if err != nil {
		return ErrProductNotFound
	}

	inUse, err := s.variantRepo.HasTransactions(id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrProductInUse
	}

	if err := s.variantRepo.Delete(id, userID); err != nil {
		return err
	}

	s.recordActivity(model.ActivityUpdateProduct,
		fmt.Sprintf("Removed variant %s", existing.SKU),
		&existing.ProductID, userID)

	return nil
}

func (s *catalogService) recordActivity(activityType model.ActivityType, details string, productID *uuid.UUID, userID string) {
	entry := &model.Activity{
		Type:      activityType,
		Details:   details,
		ProductID: productID,
	}
	if userID != "" {
		uid := userID
		entry.UserID = &uid
	}
	entry.CreatedBy = userID
	entry.UpdatedBy = userID

	// A failed audit write must not fail the already-committed CRUD call.
	if err := s.activityRepo.Create(entry); err != nil {
		log.Println("warning: failed to record activity:", err)
	}
}

func (s *catalogService) broadcastCatalog(action string, product *model.Product, userID, userName, message string) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "catalog_update",
			"action": action,
			"product": map[string]interface{}{
				"id":       product.ID,
				"base_sku": product.BaseSKU,
				"name":     product.Name,
				"category": product.Category,
			},
			"user": map[string]interface{}{
				"id":   userID,
				"name": userName,
			},
			"message": message,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
