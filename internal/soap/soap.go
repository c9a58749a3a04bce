// Package soap implements the SOAP 1.1 RPC transport used by the Webpower
// API client. It covers only the rpc/encoded subset the provider speaks:
// named scalar parameters, arrays and flat structs, and SOAP faults.
package soap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// Param is one named argument of a remote call. Parameter order is
// significant for rpc/encoded services, so calls take an ordered Params
// slice rather than a map.
type Param struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type Params []Param

// Fault represents a failure at the transport layer: a SOAP fault returned
// by the server, an HTTP error status or a network failure.
type Fault struct {
	Code    string
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.Message)
}

// Client is a connection handle bound to a single endpoint. The endpoint URL
// doubles as the RPC namespace URI, matching the provider's non-WSDL mode.
// There is no reconnect logic; the handle lives as long as its owner.
type Client struct {
	endpoint string
	login    string
	password string
	trace    bool
	httpc    *http.Client

	lastRequest  string
	lastResponse string
}

type Option func(*Client)

// WithTrace retains the raw payload of the most recent request/response
// pair, readable through LastRequest and LastResponse.
func WithTrace(trace bool) Option {
	return func(c *Client) { c.trace = trace }
}

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

func NewClient(endpoint string, login string, password string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		login:    login,
		password: password,
		httpc:    &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Endpoint returns the URL the handle is bound to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call invokes the named remote operation and returns the decoded value of
// its result element. Any transport-level failure is returned as *Fault.
func (c *Client) Call(ctx context.Context, method string, params Params) (any, error) {
	payload, err := encodeEnvelope(c.endpoint, method, params)
	if err != nil {
		return nil, &Fault{Code: "Client", Message: err.Error()}
	}

	if c.trace {
		c.lastRequest = string(payload)
		c.lastResponse = ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &Fault{Code: "Client", Message: err.Error()}
	}

	req.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	req.Header.Set("SOAPAction", fmt.Sprintf("%q", c.endpoint+"#"+method))
	if c.login != "" {
		req.SetBasicAuth(c.login, c.password)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &Fault{Code: "HTTP", Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Fault{Code: "HTTP", Message: err.Error()}
	}

	if c.trace {
		c.lastResponse = string(body)
	}

	// Fault responses usually arrive with status 500, so the body is
	// inspected before the status code.
	if resp.StatusCode != http.StatusOK {
		if _, fault := decodeEnvelope(body); fault != nil && fault.Code != "Client" {
			return nil, fault
		}
		return nil, &Fault{
			Code:    "HTTP",
			Message: fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, c.endpoint),
		}
	}

	result, fault := decodeEnvelope(body)
	if fault != nil {
		return nil, fault
	}

	return result, nil
}

// LastRequest returns the raw payload of the most recent call, or "" when
// tracing is disabled.
func (c *Client) LastRequest() string {
	return c.lastRequest
}

// LastResponse returns the raw body of the most recent response, or "" when
// tracing is disabled.
func (c *Client) LastResponse() string {
	return c.lastResponse
}
