package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/realtyfin/realty_ledger_app/internal/apperrors"
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
	"github.com/realtyfin/realty_ledger_app/internal/middleware"
)

// Client is the read-only HTTP client for the catalog service, used to fetch
// contract values for commission derivation. Only the narrow ContractRef
// projection crosses this boundary.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ portssvc.CatalogSvcFacade = (*Client)(nil)

// GetContract fetches the contract reference by ID. A missing contract maps
// to apperrors.ErrNotFound; transport failures map to ErrServiceUnavailable.
func (c *Client) GetContract(ctx context.Context, contractID int64) (*domain.ContractRef, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: catalog service not configured", apperrors.ErrServiceUnavailable)
	}

	logger := middleware.GetLoggerFromCtx(ctx)

	url := fmt.Sprintf("%s/contracts/%d", c.baseURL, contractID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build catalog request: %v", apperrors.ErrServiceUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("catalog request failed", "contractID", contractID, "error", err)
		return nil, fmt.Errorf("%w: catalog request failed: %v", apperrors.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: contract %d", apperrors.ErrNotFound, contractID)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		logger.Warn("catalog returned non-success status", "contractID", contractID, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: catalog returned status %d", apperrors.ErrServiceUnavailable, resp.StatusCode)
	}

	var contract domain.ContractRef
	if err := json.NewDecoder(resp.Body).Decode(&contract); err != nil {
		return nil, fmt.Errorf("%w: failed to decode contract %d: %v", apperrors.ErrServiceUnavailable, contractID, err)
	}
	return &contract, nil
}
