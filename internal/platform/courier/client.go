// Package courier implements the HTTP client for the external courier
// partner. Bookings are a hard dependency of shipped order creation: a
// failed booking aborts the order.
package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
)

const defaultTimeout = 10 * time.Second

// Client books consignments against the partner's create_order endpoint,
// authenticated with static API headers.
type Client struct {
	baseURL    string
	apiKey     string
	secretKey  string
	httpClient *http.Client
}

// NewClient creates a courier client. baseURL is the partner endpoint prefix
// including a trailing slash.
func NewClient(baseURL, apiKey, secretKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

var _ portssvc.CourierBooker = (*Client)(nil)

// bookingPayload mirrors the partner's create_order body. cod_amount goes on
// the wire as a bare JSON number.
type bookingPayload struct {
	Invoice          string      `json:"invoice"`
	RecipientName    string      `json:"recipient_name"`
	RecipientPhone   string      `json:"recipient_phone"`
	RecipientAddress string      `json:"recipient_address"`
	CODAmount        json.Number `json:"cod_amount"`
	Note             string      `json:"note,omitempty"`
	DeliveryType     int         `json:"delivery_type"`
}

type bookingResponse struct {
	Consignment struct {
		ConsignmentID json.Number `json:"consignment_id"`
		TrackingCode  string      `json:"tracking_code"`
		Status        string      `json:"status"`
	} `json:"consignment"`
	Message string `json:"message"`
}

// Book submits a consignment booking. Any transport or partner-side failure
// surfaces as ErrUpstream so callers abort whatever the booking was for.
func (c *Client) Book(ctx context.Context, req portssvc.CourierRequest) (*portssvc.CourierReceipt, error) {
	payload := bookingPayload{
		Invoice:          req.InvoiceID,
		RecipientName:    req.RecipientName,
		RecipientPhone:   req.RecipientPhone,
		RecipientAddress: req.RecipientAddress,
		CODAmount:        json.Number(req.CODAmount.StringFixed(2)),
		Note:             req.Note,
		DeliveryType:     0, // home delivery
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode booking payload: %v", apperrors.ErrUpstream, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"create_order", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build booking request: %v", apperrors.ErrUpstream, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Api-Key", c.apiKey)
	httpReq.Header.Set("Secret-Key", c.secretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: courier request failed: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read courier response: %v", apperrors.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: courier returned status %d: %s", apperrors.ErrUpstream, resp.StatusCode, string(raw))
	}

	var parsed bookingResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed courier response: %v", apperrors.ErrUpstream, err)
	}
	if parsed.Consignment.ConsignmentID.String() == "" {
		return nil, fmt.Errorf("%w: courier response missing consignment id", apperrors.ErrUpstream)
	}

	return &portssvc.CourierReceipt{
		ConsignmentID: parsed.Consignment.ConsignmentID.String(),
		TrackingCode:  parsed.Consignment.TrackingCode,
		Status:        parsed.Consignment.Status,
	}, nil
}
