package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// CourierRequest is the booking payload sent to the courier partner.
type CourierRequest struct {
	InvoiceID        string
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	CODAmount        decimal.Decimal
	Note             string
}

// CourierReceipt is the partner's acknowledgement of a booked consignment.
type CourierReceipt struct {
	ConsignmentID string
	TrackingCode  string
	Status        string
}

// CourierBooker books consignments with the external courier partner. A
// booking failure surfaces as ErrUpstream and must abort the enclosing
// order creation.
type CourierBooker interface {
	Book(ctx context.Context, req CourierRequest) (*CourierReceipt, error)
}
