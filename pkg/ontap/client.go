package ontap

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dukex/operion-ontap/pkg/otelhelper"
)

const (
	apiPrefix      = "/api"
	acceptHAL      = "application/hal+json"
	contentJSON    = "application/json"
	defaultTimeout = 60 * time.Second
)

var tracer = otel.Tracer("operion-ontap/ontap")

// Client issues REST calls against ONTAP targets. It holds no per-target
// state: credentials and endpoint come in with every call, and one call is
// exactly one network round trip. There is no retry layer; a failed attempt
// is a final failure.
type Client struct {
	// Timeout bounds a single round trip. Zero means the 60s default.
	Timeout time.Duration
}

func NewClient() *Client {
	return &Client{Timeout: defaultTimeout}
}

// Do sends one request and decodes the reply into a Response envelope. Every
// failure path - transport, TLS, non-2xx status - comes back as *APIError
// with a normalized message.
func (c *Client) Do(ctx context.Context, target Target, req Request) (*Response, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	ctx, span := otelhelper.StartSpan(ctx, tracer, "ontap.request",
		attribute.String(otelhelper.HostKey, target.Host),
		attribute.String(otelhelper.MethodKey, req.Method),
		attribute.String(otelhelper.PathKey, req.Path),
	)
	defer span.End()

	httpReq, err := c.buildRequest(ctx, target, req)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	httpResp, err := c.httpClient(target).Do(httpReq)
	if err != nil {
		apiErr := newAPIError(fault{err: err})
		otelhelper.SetError(span, apiErr)

		return nil, apiErr
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	span.SetAttributes(attribute.Int(otelhelper.StatusCodeKey, httpResp.StatusCode))

	payload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		apiErr := newAPIError(fault{statusCode: httpResp.StatusCode, err: err})
		otelhelper.SetError(span, apiErr)

		return nil, apiErr
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		var body map[string]any

		_ = json.Unmarshal(payload, &body)

		apiErr := newAPIError(fault{statusCode: httpResp.StatusCode, body: body})
		otelhelper.SetError(span, apiErr)

		return nil, apiErr
	}

	resp := &Response{Raw: map[string]any{}}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, resp); err != nil {
			apiErr := newAPIError(fault{statusCode: httpResp.StatusCode, err: err})
			otelhelper.SetError(span, apiErr)

			return nil, apiErr
		}
	}

	return resp, nil
}

// buildRequest assembles the http.Request: URL, body, auth and fixed headers.
func (c *Client) buildRequest(ctx context.Context, target Target, req Request) (*http.Request, error) {
	endpoint := target.baseURL()
	if req.Href != "" {
		// Pagination hrefs already carry the /api path and cursor query.
		endpoint += req.Href
	} else {
		endpoint += apiPrefix + req.Path

		if len(req.Query) > 0 {
			values := url.Values{}
			for key, value := range req.Query {
				values.Set(key, value)
			}

			endpoint += "?" + values.Encode()
		}
	}

	var body io.Reader

	sendBody := req.Body != nil && req.Method != http.MethodGet && req.Method != http.MethodDelete
	if sendBody {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, newAPIError(fault{err: err})
		}

		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return nil, newAPIError(fault{err: err})
	}

	httpReq.SetBasicAuth(target.Username, target.Password)
	httpReq.Header.Set("Accept", acceptHAL)

	if sendBody {
		httpReq.Header.Set("Content-Type", contentJSON)
	}

	return httpReq, nil
}

func (c *Client) httpClient(target Target) *http.Client {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	client := &http.Client{Timeout: timeout}

	if target.AllowInsecureTLS {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // caller opted in
		}
	}

	return client
}
