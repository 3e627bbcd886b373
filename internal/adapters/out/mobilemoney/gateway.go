// Package mobilemoney provides the HTTP client for the external mobile-money
// provider. The engine never initiates payments; it only looks up referenced
// transactions to verify they are confirmed before accepting a collection.
package mobilemoney

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

const requestTimeout = 5 * time.Second

// Gateway looks up transactions on the provider's REST API.
type Gateway struct {
	baseURL string
	client  *http.Client
}

// NewGateway creates a gateway client against the provider's base URL.
func NewGateway(baseURL string) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type transactionResponse struct {
	Reference string  `json:"reference"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}

// GetTransaction looks up a transaction by its gateway reference. A 404 from
// the provider maps to a not-found error; any other non-200 status is a
// plain error, since the caller cannot tell whether the payment happened.
func (g *Gateway) GetTransaction(ctx context.Context, reference string) (ports.MobileMoneyTransaction, error) {
	endpoint := g.baseURL + "/transactions/" + url.PathEscape(reference)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.MobileMoneyTransaction{}, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return ports.MobileMoneyTransaction{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.MobileMoneyTransaction{}, errs.NewObjectNotFoundError("transactionReference", reference)
	}
	if resp.StatusCode != http.StatusOK {
		return ports.MobileMoneyTransaction{}, fmt.Errorf(
			"mobile money gateway returned status %d for reference %s", resp.StatusCode, reference)
	}

	var body transactionResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.MobileMoneyTransaction{}, err
	}

	return ports.MobileMoneyTransaction{
		Reference: body.Reference,
		Amount:    body.Amount,
		Confirmed: body.Status == "confirmed",
	}, nil
}
