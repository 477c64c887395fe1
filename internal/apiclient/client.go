// Package apiclient talks JSON over HTTP to the shop API.
package apiclient

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

	"github.com/google/uuid"
	"github.com/nikolayk812/fluxshop/internal/domain"
	"go.uber.org/zap"
)

const maxResponseBytes = 4 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

type call struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
	out    any
}

func (c *Client) do(ctx context.Context, in call) error {
	var body io.Reader
	if in.body != nil {
		data, err := json.Marshal(in.body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, in.method, target, body)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if in.token != "" {
		req.Header.Set("Authorization", "Bearer "+in.token)
	}

	logger := c.logger.With(
		zap.String("method", in.method),
		zap.String("path", in.path),
		zap.String("request_id", requestID),
	)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("request failed", zap.Error(err))
		return fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("io.ReadAll: %w", err)
	}

	logger.Debug("request done",
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.RemoteError{
			StatusCode: resp.StatusCode,
			Detail:     detailOf(payload),
		}
	}

	if in.out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, in.out); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	return nil
}

// detailOf extracts a string "detail" field. Structured details are ignored.
func detailOf(payload []byte) string {
	var body struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}

	detail, _ := body.Detail.(string)
	return detail
}
