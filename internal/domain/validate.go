package domain

import (
	"strings"

	apperrors "orderdesk/internal/errors"
)

func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperrors.NewValidationError("customer name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	return nil
}

func (d Deliveryman) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return apperrors.NewValidationError("deliveryman name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	return nil
}

func (i Item) Validate() error {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(i.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name must not be empty"})
	}
	if i.Price.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must not be negative"})
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid item", details...)
	}
	return nil
}

func (d OrderDraft) Validate() error {
	var details []apperrors.ValidationDetail
	if d.CustomerID <= 0 {
		details = append(details, apperrors.ValidationDetail{Field: "customerId", Message: "customerId must be a positive integer"})
	}
	if d.DeliverymanID != nil && *d.DeliverymanID <= 0 {
		details = append(details, apperrors.ValidationDetail{Field: "deliverymanId", Message: "deliverymanId must be a positive integer when set"})
	}
	if d.TotalPrice.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "totalPrice", Message: "totalPrice must not be negative"})
	}
	if d.CreatedAt.IsZero() {
		details = append(details, apperrors.ValidationDetail{Field: "date", Message: "date is required"})
	}
	for _, id := range d.ItemIDs {
		if id <= 0 {
			details = append(details, apperrors.ValidationDetail{Field: "itemIds", Message: "each itemId must be a positive integer"})
			break
		}
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid order", details...)
	}
	return nil
}
