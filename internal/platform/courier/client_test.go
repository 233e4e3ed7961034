package courier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DeveloperWK/product-inventory-api/internal/apperrors"
	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"
	"github.com/DeveloperWK/product-inventory-api/internal/platform/courier"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingRequest() portssvc.CourierRequest {
	return portssvc.CourierRequest{
		InvoiceID:        "order-123",
		RecipientName:    "A Customer",
		RecipientPhone:   "01700000000",
		RecipientAddress: "House 1, Road 2, Dhaka",
		CODAmount:        decimal.NewFromFloat(1250.50),
		Note:             "fragile",
	}
}

func TestBook_SendsAuthHeadersAndPayload(t *testing.T) {
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/create_order", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-api-key", r.Header.Get("Api-Key"))
		assert.Equal(t, "test-secret-key", r.Header.Get("Secret-Key"))

		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		require.NoError(t, dec.Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"consignment":{"consignment_id":987654,"tracking_code":"TRK-987","status":"pending"},"message":"ok"}`))
	}))
	defer server.Close()

	client := courier.NewClient(server.URL+"/", "test-api-key", "test-secret-key")

	receipt, err := client.Book(context.Background(), bookingRequest())

	require.NoError(t, err)
	assert.Equal(t, "987654", receipt.ConsignmentID)
	assert.Equal(t, "TRK-987", receipt.TrackingCode)
	assert.Equal(t, "pending", receipt.Status)

	assert.Equal(t, "order-123", gotPayload["invoice"])
	assert.Equal(t, "A Customer", gotPayload["recipient_name"])
	assert.Equal(t, "01700000000", gotPayload["recipient_phone"])
	// the partner expects cod_amount as a bare number, not a quoted string
	assert.Equal(t, json.Number("1250.50"), gotPayload["cod_amount"])
	assert.Equal(t, "fragile", gotPayload["note"])
	assert.Equal(t, json.Number("0"), gotPayload["delivery_type"])
}

func TestBook_PartnerErrorIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer server.Close()

	client := courier.NewClient(server.URL+"/", "bad", "bad")

	_, err := client.Book(context.Background(), bookingRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestBook_MalformedResponseIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := courier.NewClient(server.URL+"/", "k", "s")

	_, err := client.Book(context.Background(), bookingRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestBook_MissingConsignmentIDIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"consignment":{},"message":"ok"}`))
	}))
	defer server.Close()

	client := courier.NewClient(server.URL+"/", "k", "s")

	_, err := client.Book(context.Background(), bookingRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestBook_ConnectionFailureIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := courier.NewClient(server.URL+"/", "k", "s")

	_, err := client.Book(context.Background(), bookingRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}
