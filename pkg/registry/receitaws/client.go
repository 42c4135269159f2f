// Package receitaws provides a registry.Client implementation backed by the
// ReceitaWS CNPJ API.
package receitaws

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sincromei/pkg/domain"
	"sincromei/pkg/registry"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// DefaultBaseURL is the public ReceitaWS endpoint.
const DefaultBaseURL = "https://www.receitaws.com.br"

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 4 << 20

// Options configures a Client.
type Options struct {
	// BaseURL is the scheme and host of the registry, e.g. DefaultBaseURL.
	BaseURL string
	// Token is sent as a bearer credential when non-empty.
	Token string
	// Meter records upstream call durations. A no-op meter is used when nil.
	Meter metric.Meter
}

// Client talks to the ReceitaWS REST API and fulfills the registry.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	duration   metric.Float64Histogram
}

// Ensure Client conforms to the registry.Client interface at compile time.
var _ registry.Client = (*Client)(nil)

// New constructs a Client that uses httpClient to reach the registry.
func New(httpClient *http.Client, opts Options) (*Client, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	meter := opts.Meter
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("receitaws")
	}
	duration, err := meter.Float64Histogram("receitaws.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of CNPJ lookups against ReceitaWS."))
	if err != nil {
		return nil, fmt.Errorf("could not create duration histogram: %w", err)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      opts.Token,
		duration:   duration,
	}, nil
}

// LookupURL returns the registry URL for cnpj.
func (c *Client) LookupURL(cnpj string) string {
	return c.baseURL + "/v1/cnpj/" + url.PathEscape(cnpj)
}

// Fetch retrieves the registry record for cnpj.
func (c *Client) Fetch(ctx context.Context, cnpj string) (domain.Record, error) {
	start := time.Now()
	rec, err := c.fetch(ctx, cnpj)

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	c.duration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("outcome", outcome)))

	return rec, err
}

func (c *Client) fetch(ctx context.Context, cnpj string) (domain.Record, error) {
	// https://developers.receitaws.com.br/#/operations/queryCNPJFree
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.LookupURL(cnpj), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("lookup failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	rec, err := domain.DecodeRecord(b)
	if err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	return rec, nil
}
