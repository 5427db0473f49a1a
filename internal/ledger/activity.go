package ledger

import (
	"fmt"

	"go-inventory-ledger/internal/model"
)

// movementActivity maps each movement type to its activity feed type.
var movementActivity = map[model.MovementType]model.ActivityType{
	model.MovementSale:       model.ActivitySellProduct,
	model.MovementRefill:     model.ActivityRefillStock,
	model.MovementPurchase:   model.ActivityRecordPurchase,
	model.MovementAdjustment: model.ActivityAdjustStock,
}

// buildActivity produces the audit entry for a completed movement. It is a
// pure function of the movement context; the insert itself is covered by the
// ledger's unit of work.
func buildActivity(variant *model.Variant, tx *model.Transaction, delta, newQuantity int, mc MovementContext) *model.Activity {
	entry := &model.Activity{
		Type:    movementActivity[mc.Type],
		Details: movementDetails(variant, tx, delta, newQuantity, mc),
	}

	productID := variant.ProductID
	variantID := variant.ID
	entry.ProductID = &productID
	entry.VariantID = &variantID

	if mc.UserID != "" {
		userID := mc.UserID
		entry.UserID = &userID
	}
	entry.CreatedBy = mc.UserID
	entry.UpdatedBy = mc.UserID

	return entry
}

func movementDetails(variant *model.Variant, tx *model.Transaction, delta, newQuantity int, mc MovementContext) string {
	switch mc.Type {
	case model.MovementSale:
		return fmt.Sprintf("Sold %d × %s — profit %s", tx.Quantity, variant.SKU, tx.Profit.StringFixed(2))
	case model.MovementRefill:
		return fmt.Sprintf("Refilled %d × %s (now %d on hand)", tx.Quantity, variant.SKU, newQuantity)
	case model.MovementPurchase:
		return fmt.Sprintf("Purchased %d × %s (now %d on hand)", tx.Quantity, variant.SKU, newQuantity)
	case model.MovementAdjustment:
		return fmt.Sprintf("Adjusted %s from %d to %d", variant.SKU, newQuantity-delta, newQuantity)
	}
	return fmt.Sprintf("Stock movement on %s", variant.SKU)
}
