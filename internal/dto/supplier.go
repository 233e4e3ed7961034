package dto

import (
	"time"

	"github.com/DeveloperWK/product-inventory-api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSupplierRequest is the payload for creating a supplier.
type CreateSupplierRequest struct {
	Name         string `json:"name" binding:"required"`
	Contact      string `json:"contact" binding:"required"`
	PaymentTerms *int   `json:"paymentTerms" binding:"required,min=0"`
	Address      string `json:"address,omitempty"`
	Notes        string `json:"notes,omitempty"`
	IsActive     *bool  `json:"isActive,omitempty"`
}

// UpdateSupplierRequest patches supplier fields; only present fields apply.
type UpdateSupplierRequest struct {
	Name         *string `json:"name,omitempty"`
	Contact      *string `json:"contact,omitempty"`
	PaymentTerms *int    `json:"paymentTerms,omitempty" binding:"omitempty,min=0"`
	Address      *string `json:"address,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// CreateBusinessOrderRequest is the payload for a purchase-side bookkeeping order.
type CreateBusinessOrderRequest struct {
	Name                string          `json:"name" binding:"required"`
	SupplierID          string          `json:"supplier" binding:"required"`
	OrderDate           *time.Time      `json:"date,omitempty"`
	Due                 decimal.Decimal `json:"due"`
	Payment             decimal.Decimal `json:"payment" binding:"required"`
	Total               decimal.Decimal `json:"total" binding:"required,dpositive"`
	Discount            decimal.Decimal `json:"discount"`
	Quantity            int64           `json:"quantity" binding:"required,gt=0"`
	RelatedTransactions []string        `json:"relatedTransactions,omitempty"`
}

// UpdateBusinessOrderRequest patches business-order fields.
type UpdateBusinessOrderRequest struct {
	Name                *string          `json:"name,omitempty"`
	Due                 *decimal.Decimal `json:"due,omitempty"`
	Payment             *decimal.Decimal `json:"payment,omitempty"`
	Total               *decimal.Decimal `json:"total,omitempty" binding:"omitempty,dpositive"`
	Discount            *decimal.Decimal `json:"discount,omitempty"`
	Quantity            *int64           `json:"quantity,omitempty" binding:"omitempty,gt=0"`
	RelatedTransactions []string         `json:"relatedTransactions,omitempty"`
}

// ListBusinessOrdersParams carries business-order listing filters.
type ListBusinessOrdersParams struct {
	SupplierID string `form:"supplier"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

// SupplierResponse is the wire representation of a supplier.
type SupplierResponse struct {
	SupplierID   string `json:"supplierID"`
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	PaymentTerms int    `json:"paymentTerms"`
	Address      string `json:"address,omitempty"`
	Notes        string `json:"notes,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// ToSupplierResponse converts a domain.Supplier to its wire form.
func ToSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID:   s.SupplierID,
		Name:         s.Name,
		Contact:      s.Contact,
		PaymentTerms: s.PaymentTerms,
		Address:      s.Address,
		Notes:        s.Notes,
		IsActive:     s.IsActive,
	}
}

// BusinessOrderResponse is the wire representation of a business order.
type BusinessOrderResponse struct {
	BusinessOrderID     string          `json:"businessOrderID"`
	Name                string          `json:"name"`
	SupplierID          string          `json:"supplier"`
	SupplierName        string          `json:"supplierName,omitempty"`
	OrderDate           time.Time       `json:"date"`
	Due                 decimal.Decimal `json:"due"`
	Payment             decimal.Decimal `json:"payment"`
	Total               decimal.Decimal `json:"total"`
	Discount            decimal.Decimal `json:"discount"`
	Quantity            int64           `json:"quantity"`
	RelatedTransactions []string        `json:"relatedTransactions"`
}

// ToBusinessOrderResponse converts a domain.BusinessOrder, attaching the
// supplier name when resolved.
func ToBusinessOrderResponse(b *domain.BusinessOrder, supplierName string) BusinessOrderResponse {
	related := b.RelatedTransactions
	if related == nil {
		related = []string{}
	}
	return BusinessOrderResponse{
		BusinessOrderID:     b.BusinessOrderID,
		Name:                b.Name,
		SupplierID:          b.SupplierID,
		SupplierName:        supplierName,
		OrderDate:           b.OrderDate,
		Due:                 b.Due,
		Payment:             b.Payment,
		Total:               b.Total,
		Discount:            b.Discount,
		Quantity:            b.Quantity,
		RelatedTransactions: related,
	}
}
