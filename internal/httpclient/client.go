package httpclient

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/opsdesk/portal/internal/logger"
)

// ClientConfig tunes the retrying transport used for outbound API calls
type ClientConfig struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// DefaultClientConfig retries transient failures three times
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:      30 * time.Second,
		RetryMax:     3,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
	}
}

// DefaultClient retries connection errors, 429s and 5xx responses with
// exponential backoff
type DefaultClient struct {
	client *retryablehttp.Client
}

func NewDefaultClient(cfg ClientConfig, log *logger.Logger) *DefaultClient {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = cfg.RetryWaitMax
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = nil
	if log != nil {
		rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
			if attempt > 0 {
				log.Debugw("retrying http request",
					"method", req.Method,
					"host", req.URL.Host,
					"attempt", attempt,
				)
			}
		}
	}
	// hand the final response to the caller instead of a retry error, so
	// SDKs can decode the remote error body
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return &DefaultClient{client: rc}
}

// StandardClient exposes the retrying transport as a plain *http.Client for SDKs
func (c *DefaultClient) StandardClient() *http.Client {
	return c.client.StandardClient()
}
