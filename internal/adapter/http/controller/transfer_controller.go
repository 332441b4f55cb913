package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/malcolmmaima/Telepesa-sub000/internal/adapter/http/models"
	"github.com/malcolmmaima/Telepesa-sub000/internal/commons"
	"github.com/malcolmmaima/Telepesa-sub000/internal/domain"
	"github.com/malcolmmaima/Telepesa-sub000/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

type TransferController struct {
	service service_interfaces.TransferService
}

func NewTransferController(service service_interfaces.TransferService) *TransferController {
	return &TransferController{service: service}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(handler http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(handler)
		}
		return handler
	}

	mux.Handle("POST /accounts/{accountId}/transfers", wrap(c.createTransfer))
	mux.Handle("GET /accounts/{accountId}/transfers", wrap(c.listByAccount))
	mux.Handle("GET /accounts/{accountId}/transfers/sent", wrap(c.listSent))
	mux.Handle("GET /accounts/{accountId}/transfers/received", wrap(c.listReceived))
	mux.Handle("GET /accounts/{accountId}/transfers/stats", wrap(c.stats))
	mux.Handle("GET /transfers/{id}", wrap(c.getTransfer))
	mux.Handle("GET /transfers/reference/{reference}", wrap(c.getTransferByReference))
	mux.Handle("GET /transfers/status/{status}", wrap(c.listByStatus))
	mux.Handle("GET /transfers/fees", wrap(c.calculateFee))
	mux.Handle("POST /transfers/{id}/process", wrap(c.processTransfer))
	mux.Handle("POST /transfers/{id}/cancel", wrap(c.cancelTransfer))
	mux.Handle("POST /transfers/{id}/retry", wrap(c.retryTransfer))
}

func (c *TransferController) createTransfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	senderAccountID := r.PathValue("accountId")

	var req models.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateTransfer(r.Context(), senderAccountID, req)
	status := statusForError(err, response.Message)
	if err != nil {
		logError(r, err, nil)
	}
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func (c *TransferController) getTransfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetTransfer(r.Context(), r.PathValue("id"))
	status := statusForError(err, response.Message)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func (c *TransferController) getTransferByReference(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetTransferByReference(r.Context(), r.PathValue("reference"))
	status := statusForError(err, response.Message)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func (c *TransferController) listByAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	page, size := pageParams(r)
	response, err := c.service.GetTransfersByAccount(r.Context(), r.PathValue("accountId"), page, size)
	status := statusForError(err, response.Message)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func (c *TransferController) listSent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	page, size := pageParams(r)
	response, err := c.service.GetSentTransfers(r.Context(), r.PathValue("accountId"), page, size)
	status := statusForError(err, response.Message)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func (c *TransferController) listReceived(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	page, size := pageParams(r)
	response, err := c.service.GetReceivedTransfers(r.Context(), r.PathValue("accountId"), page, size)
	status := statusForError(err, response.Message)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func (c *TransferController) listByStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	status, ok := parseTransferStatus(r.PathValue("status"))
	if !ok {
		response := commons.ErrorResponse[models.TransferListResponse]("validation failed", "status is not supported")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	response, err := c.service.GetTransfersByStatus(r.Context(), status, limit)
	httpStatus := statusForError(err, response.Message)
	writeJSON(w, httpStatus, response)
	logResponse(r, httpStatus, response, start)
}

func (c *TransferController) processTransfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ProcessTransfer(r.Context(), r.PathValue("id"))
	status := statusForError(err, response.Message)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func (c *TransferController) cancelTransfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CancelTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		response := commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.CancelTransfer(r.Context(), r.PathValue("id"), req.Reason)
	status := statusForError(err, response.Message)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func (c *TransferController) retryTransfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.RetryTransfer(r.Context(), r.PathValue("id"))
	status := statusForError(err, response.Message)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func (c *TransferController) stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	since := time.Now().UTC().AddDate(0, -1, 0)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response := commons.ErrorResponse[models.TransferStatsResponse]("validation failed", "since must be RFC3339")
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, http.StatusBadRequest, response, start)
			return
		}
		since = parsed
	}

	response, err := c.service.GetTransferStats(r.Context(), r.PathValue("accountId"), since)
	status := statusForError(err, response.Message)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func (c *TransferController) calculateFee(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	amount, err := decimal.NewFromString(strings.TrimSpace(r.URL.Query().Get("amount")))
	if err != nil {
		response := commons.ErrorResponse[models.FeeResponse]("validation failed", "amount must be numeric")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	transferType, ok := domain.ParseTransferType(strings.TrimSpace(r.URL.Query().Get("type")))
	if !ok {
		response := commons.ErrorResponse[models.FeeResponse]("validation failed", "type is not supported")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, svcErr := c.service.CalculateTransferFee(r.Context(), amount, transferType)
	status := statusForError(svcErr, response.Message)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return page, size
}

func parseTransferStatus(value string) (domain.TransferStatus, bool) {
	switch domain.TransferStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case domain.TransferStatusPending:
		return domain.TransferStatusPending, true
	case domain.TransferStatusProcessing:
		return domain.TransferStatusProcessing, true
	case domain.TransferStatusCompleted:
		return domain.TransferStatusCompleted, true
	case domain.TransferStatusFailed:
		return domain.TransferStatusFailed, true
	case domain.TransferStatusCancelled:
		return domain.TransferStatusCancelled, true
	default:
		return "", false
	}
}

func statusForError(err error, message string) int {
	if err == nil {
		return http.StatusOK
	}
	if message == "validation failed" || message == "invalid request body" {
		return http.StatusBadRequest
	}

	var railErr *domain.RailError
	switch {
	case errors.Is(err, domain.ErrTransferNotFound), errors.Is(err, domain.ErrAccountUnavailable):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict
	case errors.As(err, &railErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
