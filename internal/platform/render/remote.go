package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/realtyfin/realty_ledger_app/internal/apperrors"
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
	"github.com/realtyfin/realty_ledger_app/internal/middleware"
)

// RemoteRenderClient calls the external document-generation service. Every
// transport failure, timeout or non-2xx response surfaces as
// apperrors.ErrServiceUnavailable so the reporting gateway can fall back to
// local rendering.
type RemoteRenderClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteRenderClient creates the client. An empty baseURL yields a client
// whose calls always report the service unavailable.
func NewRemoteRenderClient(baseURL string, timeout time.Duration) *RemoteRenderClient {
	return &RemoteRenderClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ portssvc.RemoteRenderSvc = (*RemoteRenderClient)(nil)

type renderRequest struct {
	Format string      `json:"format"`
	Filter interface{} `json:"filter"`
}

func (c *RemoteRenderClient) render(ctx context.Context, path string, format domain.DocumentFormat, filter interface{}) ([]byte, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: render service not configured", apperrors.ErrServiceUnavailable)
	}

	logger := middleware.GetLoggerFromCtx(ctx)

	body, err := json.Marshal(renderRequest{Format: string(format), Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode render request: %v", apperrors.ErrServiceUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build render request: %v", apperrors.ErrServiceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("remote render request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: render service request failed: %v", apperrors.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("remote render returned non-success status", "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: render service returned status %d", apperrors.ErrServiceUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read render response: %v", apperrors.ErrServiceUnavailable, err)
	}
	return data, nil
}

// RenderTransactionsExport asks the remote service for a transactions export.
func (c *RemoteRenderClient) RenderTransactionsExport(ctx context.Context, filter domain.TransactionFilter, format domain.DocumentFormat) ([]byte, error) {
	return c.render(ctx, "/render/transactions", format, filter)
}

// RenderCommissionsExport asks the remote service for a commissions export.
func (c *RemoteRenderClient) RenderCommissionsExport(ctx context.Context, filter domain.CommissionFilter, format domain.DocumentFormat) ([]byte, error) {
	return c.render(ctx, "/render/commissions", format, filter)
}
