package payment

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=./mocks/payment_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ComfortN/restaurent-cms/config"

	"github.com/rs/zerolog/log"
)

// Intent statuses reported by the payment provider.
const (
	IntentStatusRequiresPayment = "requires_payment_method"
	IntentStatusProcessing      = "processing"
	IntentStatusSucceeded       = "succeeded"
	IntentStatusCanceled        = "canceled"
)

// Intent is a provider-side payment intent for a reservation fee.
type Intent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	Metadata     map[string]string `json:"metadata"`
}

// CreateIntentRequest carries the fee amount in the currency's minor
// unit plus metadata linking the intent back to a reservation.
type CreateIntentRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

// Gateway talks to the external payment provider.
type Gateway interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*Intent, error)
	RetrieveIntent(ctx context.Context, intentID string) (*Intent, error)
}

type gatewayImpl struct {
	config     *config.Config
	httpClient *http.Client
}

func New(config *config.Config) Gateway {
	return &gatewayImpl{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.External.Payment.TimeoutSeconds) * time.Second,
		},
	}
}

func (g *gatewayImpl) CreateIntent(ctx context.Context, req CreateIntentRequest) (*Intent, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment intent request: %w", err)
	}

	url := g.config.External.Payment.BaseURL + "/v1/payment_intents"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment intent request: %w", err)
	}

	return g.do(httpReq)
}

func (g *gatewayImpl) RetrieveIntent(ctx context.Context, intentID string) (*Intent, error) {
	url := g.config.External.Payment.BaseURL + "/v1/payment_intents/" + intentID

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment intent request: %w", err)
	}

	return g.do(httpReq)
}

func (g *gatewayImpl) do(req *http.Request) (*Intent, error) {
	req.Header.Set("Authorization", "Bearer "+g.config.External.Payment.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", req.URL.String()).Msg("Payment provider request failed.")

		return nil, fmt.Errorf("payment provider request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().Int("status", resp.StatusCode).Str("url", req.URL.String()).Msg("Payment provider returned an error.")

		return nil, fmt.Errorf("payment provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var intent Intent
	err = json.Unmarshal(respBody, &intent)
	if err != nil {
		return nil, fmt.Errorf("failed to decode payment intent: %w", err)
	}

	return &intent, nil
}
