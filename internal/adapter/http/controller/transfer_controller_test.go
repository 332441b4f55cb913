package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/gateway/ledger"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/gateway/recorder"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/http/controller"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/http/models"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/http/router"
	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/repository/memory"
	"github.com/malcolmmaima/Telepesa-sub000/internal/cache"
	"github.com/malcolmmaima/Telepesa-sub000/internal/commons"
	"github.com/malcolmmaima/Telepesa-sub000/internal/events"
	"github.com/malcolmmaima/Telepesa-sub000/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func newTestMux() *http.ServeMux {
	ledgerClient := ledger.NewMemoryClient()
	ledgerClient.AddAccount(ledger.Account{
		AccountNumber: "ACC001",
		AccountName:   "John Kamau",
		Balance:       decimal.RequireFromString("100000"),
	})
	ledgerClient.AddAccount(ledger.Account{
		AccountNumber: "ACC002",
		AccountName:   "Mary Wanjiku",
		Balance:       decimal.RequireFromString("5000"),
	})

	svc := services.NewTransferService(
		memory.NewTransferRepository(),
		ledgerClient,
		recorder.NewMemoryClient(),
		services.NewFeeService(),
		cache.NewMemoryStore(),
		events.NopPublisher{},
		time.Minute,
		"KES",
		false,
	)

	return router.New(controller.NewTransferController(svc), nil)
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func getPath(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decodeTransfer(t *testing.T, rr *httptest.ResponseRecorder) commons.Response[models.TransferResponse] {
	t.Helper()
	var response commons.Response[models.TransferResponse]
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return response
}

func TestCreateTransferEndpoint(t *testing.T) {
	mux := newTestMux()

	rr := postJSON(t, mux, "/accounts/ACC001/transfers", models.CreateTransferRequest{
		RecipientAccountID: "ACC002",
		Amount:             decimal.RequireFromString("2500"),
		TransferType:       "INTERNAL",
		RecipientName:      "Mary Wanjiku",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	response := decodeTransfer(t, rr)
	if !response.Success || response.Data == nil {
		t.Fatalf("expected success envelope, got %+v", response)
	}
	if response.Data.Status != "COMPLETED" {
		t.Fatalf("expected COMPLETED, got %s", response.Data.Status)
	}
	if response.Data.SenderAccountID != "ACC001" {
		t.Fatalf("expected sender from path, got %s", response.Data.SenderAccountID)
	}
}

func TestCreateTransferEndpointValidation(t *testing.T) {
	mux := newTestMux()

	rr := postJSON(t, mux, "/accounts/ACC001/transfers", models.CreateTransferRequest{
		Amount:       decimal.RequireFromString("100"),
		TransferType: "INTERNAL",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/accounts/ACC001/transfers", bytes.NewReader([]byte("{not json")))
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d for malformed body, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestCreateTransferEndpointInsufficientBalance(t *testing.T) {
	mux := newTestMux()

	rr := postJSON(t, mux, "/accounts/ACC002/transfers", models.CreateTransferRequest{
		RecipientAccountID: "ACC001",
		Amount:             decimal.RequireFromString("5000"),
		TransferType:       "MPESA",
		MpesaNumber:        "+254712000111",
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
}

func TestGetTransferEndpointNotFound(t *testing.T) {
	mux := newTestMux()

	rr := getPath(t, mux, "/transfers/tr-404404")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestGetTransferByReferenceEndpoint(t *testing.T) {
	mux := newTestMux()

	created := decodeTransfer(t, postJSON(t, mux, "/accounts/ACC001/transfers", models.CreateTransferRequest{
		RecipientAccountID: "ACC002",
		Amount:             decimal.RequireFromString("100"),
		TransferType:       "INTERNAL",
	}))

	rr := getPath(t, mux, "/transfers/reference/"+created.Data.TransferReference)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	fetched := decodeTransfer(t, rr)
	if fetched.Data.ID != created.Data.ID {
		t.Fatalf("expected transfer %s, got %s", created.Data.ID, fetched.Data.ID)
	}
}

func TestCancelCompletedTransferEndpointConflicts(t *testing.T) {
	mux := newTestMux()

	created := decodeTransfer(t, postJSON(t, mux, "/accounts/ACC001/transfers", models.CreateTransferRequest{
		RecipientAccountID: "ACC002",
		Amount:             decimal.RequireFromString("100"),
		TransferType:       "INTERNAL",
	}))

	rr := postJSON(t, mux, "/transfers/"+created.Data.ID+"/cancel", models.CancelTransferRequest{Reason: "too late"})
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rr.Code)
	}
}

func TestListByStatusEndpointRejectsUnknownStatus(t *testing.T) {
	mux := newTestMux()

	rr := getPath(t, mux, "/transfers/status/ARCHIVED")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestFeeEndpoint(t *testing.T) {
	mux := newTestMux()

	rr := getPath(t, mux, "/transfers/fees?amount=5000&type=MPESA")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var response commons.Response[models.FeeResponse]
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !response.Data.TransferFee.Equal(decimal.RequireFromString("15.00")) {
		t.Fatalf("expected fee 15.00, got %s", response.Data.TransferFee)
	}
	if !response.Data.TotalAmount.Equal(decimal.RequireFromString("5015.00")) {
		t.Fatalf("expected total 5015.00, got %s", response.Data.TotalAmount)
	}

	rr = getPath(t, mux, "/transfers/fees?amount=abc&type=MPESA")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d for bad amount, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestStatsEndpointRejectsBadSince(t *testing.T) {
	mux := newTestMux()

	rr := getPath(t, mux, "/accounts/ACC001/transfers/stats?since=yesterday")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestMux()

	rr := getPath(t, mux, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}
