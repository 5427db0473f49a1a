package service

import (
	"encoding/json"
	"fmt"

	"go-inventory-ledger/internal/ledger"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/ws"
	"go-inventory-ledger/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionService interface {
	Sell(req *SellRequest, userID, userName string) (*ledger.MovementResult, error)
	Refill(req *RefillRequest, userID, userName string) (*ledger.MovementResult, error)
	RecordPurchase(req *RefillRequest, userID, userName string) (*ledger.MovementResult, error)
	Adjust(req *AdjustRequest, userID, userName string) (*ledger.MovementResult, error)
	Record(req *MovementRequest, userID, userName string) (*ledger.MovementResult, error)
	GetAllTransactions() ([]model.Transaction, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
}

type SellRequest struct {
	VariantID    uuid.UUID          `json:"variant_id" validate:"uuid_required"`
	Quantity     int                `json:"quantity" validate:"required,gt=0"`
	Discount     decimal.Decimal    `json:"discount"`
	DiscountType model.DiscountType `json:"discount_type" validate:"omitempty,oneof=FLAT PERCENT"`
	Note         string             `json:"note"`
}

type RefillRequest struct {
	VariantID uuid.UUID `json:"variant_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Note      string    `json:"note"`
}

type AdjustRequest struct {
	VariantID   uuid.UUID `json:"variant_id" validate:"uuid_required"`
	NewQuantity int       `json:"new_quantity" validate:"gte=0"`
	Note        string    `json:"note"`
}

// MovementRequest is the generic payload of POST /transactions, dispatched by
// type. For ADJUSTMENT the quantity is the absolute target.
type MovementRequest struct {
	Type         model.MovementType `json:"type" validate:"required,oneof=SALE PURCHASE REFILL ADJUSTMENT"`
	VariantID    uuid.UUID          `json:"variant_id" validate:"uuid_required"`
	Quantity     int                `json:"quantity" validate:"gte=0"`
	Discount     decimal.Decimal    `json:"discount"`
	DiscountType model.DiscountType `json:"discount_type" validate:"omitempty,oneof=FLAT PERCENT"`
	Note         string             `json:"note"`
}

type transactionService struct {
	ledger          *ledger.Ledger
	transactionRepo repository.TransactionRepository
	wsHub           *ws.Hub
}

func NewTransactionService(l *ledger.Ledger, tRepo repository.TransactionRepository, hub *ws.Hub) TransactionService {
	return &transactionService{
		ledger:          l,
		transactionRepo: tRepo,
		wsHub:           hub,
	}
}

// validateRequest runs struct validation and folds the first failure into the
// ledger's InvalidMovement class so handlers map it to a 400.
func validateRequest(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ledger.ErrInvalidMovement, firstErr.FailedField, firstErr.Tag)
	}
	return nil
}

func checkDiscount(discount decimal.Decimal, discountType model.DiscountType) error {
	if discount.IsZero() {
		return nil
	}
	if discount.IsNegative() {
		return fmt.Errorf("%w: discount must not be negative", ledger.ErrInvalidMovement)
	}
	// Flat vs percentage is never inferred from magnitude; callers state it.
	if discountType != model.DiscountFlat && discountType != model.DiscountPercent {
		return fmt.Errorf("%w: discount_type is required when a discount is given", ledger.ErrInvalidMovement)
	}
	return nil
}

func (s *transactionService) Sell(req *SellRequest, userID, userName string) (*ledger.MovementResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := checkDiscount(req.Discount, req.DiscountType); err != nil {
		return nil, err
	}

	result, err := s.ledger.ApplyMovement(req.VariantID, -req.Quantity, ledger.MovementContext{
		Type:         model.MovementSale,
		Discount:     req.Discount,
		DiscountType: req.DiscountType,
		UserID:       userID,
		UserName:     userName,
		Note:         req.Note,
	})
	if err != nil {
		return nil, err
	}

	s.broadcastMovement(result, userID, userName)
	return result, nil
}

func (s *transactionService) Refill(req *RefillRequest, userID, userName string) (*ledger.MovementResult, error) {
	return s.applyInbound(req, model.MovementRefill, userID, userName)
}

func (s *transactionService) RecordPurchase(req *RefillRequest, userID, userName string) (*ledger.MovementResult, error) {
	return s.applyInbound(req, model.MovementPurchase, userID, userName)
}

func (s *transactionService) applyInbound(req *RefillRequest, movementType model.MovementType, userID, userName string) (*ledger.MovementResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.ledger.ApplyMovement(req.VariantID, req.Quantity, ledger.MovementContext{
		Type:     movementType,
		UserID:   userID,
		UserName: userName,
		Note:     req.Note,
	})
	if err != nil {
		return nil, err
	}

	s.broadcastMovement(result, userID, userName)
	return result, nil
}

func (s *transactionService) Adjust(req *AdjustRequest, userID, userName string) (*ledger.MovementResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.ledger.ApplyAdjustment(req.VariantID, req.NewQuantity, ledger.MovementContext{
		UserID:   userID,
		UserName: userName,
		Note:     req.Note,
	})
	if err != nil {
		return nil, err
	}

	s.broadcastMovement(result, userID, userName)
	return result, nil
}

func (s *transactionService) Record(req *MovementRequest, userID, userName string) (*ledger.MovementResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	switch req.Type {
	case model.MovementSale:
		return s.Sell(&SellRequest{
			VariantID:    req.VariantID,
			Quantity:     req.Quantity,
			Discount:     req.Discount,
			DiscountType: req.DiscountType,
			Note:         req.Note,
		}, userID, userName)
	case model.MovementRefill:
		return s.Refill(&RefillRequest{VariantID: req.VariantID, Quantity: req.Quantity, Note: req.Note}, userID, userName)
	case model.MovementPurchase:
		return s.RecordPurchase(&RefillRequest{VariantID: req.VariantID, Quantity: req.Quantity, Note: req.Note}, userID, userName)
	case model.MovementAdjustment:
		return s.Adjust(&AdjustRequest{VariantID: req.VariantID, NewQuantity: req.Quantity, Note: req.Note}, userID, userName)
	}
	return nil, fmt.Errorf("%w: unknown type %q", ledger.ErrInvalidMovement, req.Type)
}

func (s *transactionService) GetAllTransactions() ([]model.Transaction, error) {
	return s.transactionRepo.FindAll()
}

func (s *transactionService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	return s.transactionRepo.FindByID(id)
}

func (s *transactionService) broadcastMovement(result *ledger.MovementResult, userID, userName string) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "movement_applied",
			"movement": map[string]interface{}{
				"transaction_id": result.Transaction.ID,
				"movement_type":  result.Transaction.Type,
				"quantity":       result.Transaction.Quantity,
				"variant_id":     result.Variant.ID,
				"sku":            result.Variant.SKU,
				"new_quantity":   result.NewQuantity,
			},
			"user": map[string]interface{}{
				"id":   userID,
				"name": userName,
			},
			"message": result.Activity.Details,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
