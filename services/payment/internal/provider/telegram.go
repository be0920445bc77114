// Package provider wraps the external payment provider (Telegram Bot API
// Stars payments). The rest of the service only sees the Client interface.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fanvault/pkg/config"
	"fanvault/pkg/logger"
)

// Client is the boundary contract with the payment provider: issue an
// invoice for an order, and answer its pre-checkout validation callback.
type Client interface {
	CreateInvoiceLink(ctx context.Context, req InvoiceRequest) (string, error)
	AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage string) error
}

type InvoiceRequest struct {
	Title       string
	Description string
	// Payload carries the order ID through the provider and back in the
	// confirmation webhook.
	Payload  string
	Currency string
	Amount   int
}

type telegramClient struct {
	httpClient *http.Client
	apiBase    string
	botToken   string
	logger     *logger.Logger
}

func NewTelegramClient(cfg *config.Config, log *logger.Logger) Client {
	return &telegramClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiBase:    cfg.TelegramAPIBase,
		botToken:   cfg.TelegramBotToken,
		logger:     log,
	}
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

func (c *telegramClient) CreateInvoiceLink(ctx context.Context, req InvoiceRequest) (string, error) {
	body := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"payload":     req.Payload,
		"currency":    req.Currency,
		"prices": []map[string]interface{}{
			{"label": req.Title, "amount": req.Amount},
		},
	}

	var result json.RawMessage
	if err := c.call(ctx, "createInvoiceLink", body, &result); err != nil {
		return "", err
	}

	var link string
	if err := json.Unmarshal(result, &link); err != nil {
		return "", fmt.Errorf("unexpected createInvoiceLink result: %w", err)
	}
	return link, nil
}

func (c *telegramClient) AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage string) error {
	body := map[string]interface{}{
		"pre_checkout_query_id": queryID,
		"ok":                    ok,
	}
	if !ok && errorMessage != "" {
		body["error_message"] = errorMessage
	}
	return c.call(ctx, "answerPreCheckoutQuery", body, nil)
}

func (c *telegramClient) call(ctx context.Context, method string, body map[string]interface{}, result *json.RawMessage) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiBase, c.botToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("%s rejected: %s", method, apiResp.Description)
	}
	if result != nil {
		*result = apiResp.Result
	}
	return nil
}
