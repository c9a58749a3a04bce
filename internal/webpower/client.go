// Package webpower is a client for the Webpower email-marketing SOAP API.
// It forwards method calls to the remote service, translates transport
// faults into *Error and validates the handful of provider-specific
// response codes each operation may return.
package webpower

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"webpower-client/internal/metrics"
	"webpower-client/internal/soap"
)

// DefaultPath is the endpoint path of the provider's live SOAP server.
const DefaultPath = "/soap/server.live.php"

// Config carries the connection settings for one Webpower account. The
// login sent to the provider is "{customer}__{user}".
type Config struct {
	Domain   string
	Path     string
	Customer string
	User     string
	Password string
	Trace    bool
}

// normalize fills in defaults for any key left empty. Values are not
// validated further; a bad domain simply fails on the first call.
func normalize(cfg Config) Config {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	return cfg
}

// caller is the connection handle as the client sees it.
type caller interface {
	Call(ctx context.Context, method string, params soap.Params) (any, error)
}

type Client struct {
	cfg     Config
	logger  *slog.Logger
	httpc   *http.Client
	metrics *metrics.Metrics
	conn    caller
}

type Option func(*Client)

// WithLogger attaches a logger. Calls are logged at debug level and
// transport faults at error level; without a logger the client is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(cfg Config, opts ...Option) *Client {
	c := &Client{cfg: normalize(cfg)}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// handle returns the connection, creating it on first use. The handle is
// kept for the client's lifetime; a broken one is never replaced.
func (c *Client) handle() caller {
	if c.conn == nil {
		var opts []soap.Option
		opts = append(opts, soap.WithTrace(c.cfg.Trace))
		if c.httpc != nil {
			opts = append(opts, soap.WithHTTPClient(c.httpc))
		}

		endpoint := fmt.Sprintf("http://%s%s", c.cfg.Domain, c.cfg.Path)
		login := fmt.Sprintf("%s__%s", c.cfg.Customer, c.cfg.User)
		c.conn = soap.NewClient(endpoint, login, c.cfg.Password, opts...)
	}
	return c.conn
}

// call dispatches one remote operation and translates transport failures
// into *Error. The result is returned exactly as decoded; per-operation
// validation happens in the operation methods.
func (c *Client) call(ctx context.Context, method string, params soap.Params) (any, error) {
	if c.logger != nil {
		args, _ := json.Marshal(params)
		c.logger.Debug(fmt.Sprintf("calling %s with args %s", method, args))
	}

	result, err := c.handle().Call(ctx, method, params)
	if err != nil {
		c.metrics.ObserveCall(method, metrics.StatusFault)

		var fault *soap.Fault
		if errors.As(err, &fault) {
			if c.logger != nil {
				c.logger.Error(fmt.Sprintf("%s failed: %s, code: %s", method, fault.Message, fault.Code))
			}
			return nil, &Error{Message: fault.Message, Code: fault.Code}
		}

		if c.logger != nil {
			c.logger.Error(fmt.Sprintf("%s failed: %v", method, err))
		}
		return nil, &Error{Message: err.Error()}
	}

	c.metrics.ObserveCall(method, metrics.StatusOK)
	return result, nil
}
