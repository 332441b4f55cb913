package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/malcolmmaima/Telepesa-sub000/internal/logger"
)

// HTTPClient talks JSON over HTTP to the ledger service. Each call is
// bounded by the configured timeout; on expiry the caller treats the
// movement as failed. There is no cancellation of an issued call.
type HTTPClient struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) GetAccountByNumber(ctx context.Context, accountNumber string) (Account, error) {
	var account Account
	path := "/accounts/" + url.PathEscape(accountNumber)
	if err := c.do(ctx, http.MethodGet, path, nil, &account); err != nil {
		return Account{}, fmt.Errorf("get account %s: %w", accountNumber, err)
	}
	return account, nil
}

func (c *HTTPClient) DebitAccount(ctx context.Context, accountNumber string, req MovementRequest) (MovementResult, error) {
	var result MovementResult
	path := "/accounts/" + url.PathEscape(accountNumber) + "/debit"
	if err := c.do(ctx, http.MethodPost, path, req, &result); err != nil {
		return MovementResult{}, fmt.Errorf("debit account %s: %w", accountNumber, err)
	}
	return result, nil
}

func (c *HTTPClient) CreditAccount(ctx context.Context, accountNumber string, req MovementRequest) (MovementResult, error) {
	var result MovementResult
	path := "/accounts/" + url.PathEscape(accountNumber) + "/credit"
	if err := c.do(ctx, http.MethodPost, path, req, &result); err != nil {
		return MovementResult{}, fmt.Errorf("credit account %s: %w", accountNumber, err)
	}
	return result, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("ledger client call failed", err, logger.Fields{
			"method": method,
			"path":   path,
		})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ledger returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
