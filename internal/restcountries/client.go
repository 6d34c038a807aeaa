package restcountries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"countrylookup/internal/assert"
	"countrylookup/internal/components/telemetry"
	"countrylookup/internal/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://restcountries.com"

const (
	report_client_search_by_name = "client.search-by-name"
)

var tracer = otel.Tracer("countrylookup/restcountries")

// StatusError is returned when the service answers with a status outside of 2xx.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("restcountries: unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

type ClientOptions struct {
	BaseUrl string
	// Timeout bounds a single request, zero leaves the request bound only by its context.
	Timeout   time.Duration
	UserAgent string
	// Transport replaces the underlying http.RoundTripper when non-nil.
	Transport http.RoundTripper
	// DumpOutput receives every exchange as text when non-nil.
	DumpOutput restyutil.Output
}

type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) *Client {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("restcountries", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "countrylookup"
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetHeader("accept", "application/json")
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}
	if opts.Transport != nil {
		httpClient.SetTransport(opts.Transport)
	}

	telemetry.InstrumentResty(httpClient, tel, "countrylookup/restcountries/http")
	if opts.DumpOutput != nil {
		restyutil.DumpClient(httpClient, opts.DumpOutput)
	}

	return &Client{
		http: httpClient,
		tel:  tel,
	}
}

// SearchByName issues GET /v3.1/name/{name}. A 2xx response yields the decoded
// records in service order, which may be empty.
func (c *Client) SearchByName(ctx context.Context, name string) ([]Record, error) {
	ctx, span := tracer.Start(ctx, "client:SearchByName")
	defer span.End()
	span.SetAttributes(attribute.String("name", name))

	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("name", name).
		Get("/v3.1/name/{name}")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, fmt.Errorf("search by name: %w", err)
	}

	if !res.IsSuccess() {
		span.SetStatus(codes.Error, res.Status())
		return nil, &StatusError{Code: res.StatusCode()}
	}

	var records []Record
	err = json.Unmarshal(res.Body(), &records)
	if err != nil {
		c.tel.ReportBroken(
			report_client_search_by_name,
			fmt.Errorf("decode response: %w", err),
			name,
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode response")
		return nil, fmt.Errorf("decode response: %w", err)
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}
