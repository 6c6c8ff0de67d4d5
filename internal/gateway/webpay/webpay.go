package webpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"smartrent_backend/internal/config"
	"smartrent_backend/pkg/apperrors"
)

const (
	integrationHost = "https://webpay3gint.transbank.cl"
	productionHost  = "https://webpay3g.transbank.cl"

	transactionsPath = "/rswebpaytransaction/api/webpay/v1.2/transactions"
)

// Gateway abstracts Webpay Plus so services and tests can swap in
// fakes.
type Gateway interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResponse, error)
	Commit(ctx context.Context, token string) (*CommitResponse, error)
}

type CreateRequest struct {
	BuyOrder  string  `json:"buy_order"`
	SessionID string  `json:"session_id"`
	Amount    float64 `json:"amount"`
	ReturnURL string  `json:"return_url"`
}

type CreateResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type CardDetail struct {
	CardNumber string `json:"card_number"`
}

type CommitResponse struct {
	VCI               string     `json:"vci"`
	Amount            float64    `json:"amount"`
	Status            string     `json:"status"`
	BuyOrder          string     `json:"buy_order"`
	SessionID         string     `json:"session_id"`
	CardDetail        CardDetail `json:"card_detail"`
	AccountingDate    string     `json:"accounting_date"`
	TransactionDate   string     `json:"transaction_date"`
	AuthorizationCode string     `json:"authorization_code"`
	PaymentTypeCode   string     `json:"payment_type_code"`
	ResponseCode      int        `json:"response_code"`
	InstallmentsNum   int        `json:"installments_number"`
}

// Approved reports whether the gateway authorized the transaction.
func (r *CommitResponse) Approved() bool {
	return r.ResponseCode == 0
}

type Client struct {
	httpClient   *http.Client
	host         string
	commerceCode string
	apiKey       string
}

func NewClient(cfg *config.Config) *Client {
	host := integrationHost
	if cfg.Webpay.Env == "production" {
		host = productionHost
	}
	return &Client{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		host:         host,
		commerceCode: cfg.Webpay.CommerceCode,
		apiKey:       cfg.Webpay.APIKey,
	}
}

func (c *Client) Create(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	var resp CreateResponse
	if err := c.do(ctx, http.MethodPost, transactionsPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Commit(ctx context.Context, token string) (*CommitResponse, error) {
	var resp CommitResponse
	path := fmt.Sprintf("%s/%s", transactionsPath, token)
	if err := c.do(ctx, http.MethodPut, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.host+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Tbk-Api-Key-Id", c.commerceCode)
	req.Header.Set("Tbk-Api-Key-Secret", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "webpay",
			"No se pudo contactar la pasarela de pago", http.StatusBadGateway)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.New(apperrors.CodeExternalServiceError, "webpay",
			fmt.Sprintf("La pasarela respondió %d", resp.StatusCode), http.StatusBadGateway).
			WithDetails(map[string]interface{}{"body": string(raw)})
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
