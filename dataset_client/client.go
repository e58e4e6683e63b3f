package dataset_client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const DEFAULT_MAX_BODY_BYTES = 256 << 20

// APIClient fetches raw dataset documents over HTTP.
type APIClient struct {
	logger       *logrus.Logger
	bearerToken  string
	maxBodyBytes int64

	httpClient *http.Client
}

func (cli *APIClient) makePublicRequest(ctx context.Context, method, urlStr string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("error forming http request: %w", err)
	}

	reqHdr := req.Header
	reqHdr.Set("Accept", "application/json, application/geo+json")
	if cli.bearerToken != "" {
		reqHdr.Set("Authorization", "Bearer "+cli.bearerToken)
	}

	resp, err := cli.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error doing http request: %w", err)
	}

	return resp, nil
}

// Get returns the body of 'urlStr'. Anything but a 2xx status is an error.
func (cli *APIClient) Get(ctx context.Context, urlStr string) ([]byte, error) {
	resp, err := cli.makePublicRequest(ctx, http.MethodGet, urlStr)
	if err != nil {
		return nil, err
	}

	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf(
			"received non-2xx http status code from '%s': %s",
			urlStr,
			resp.Status,
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, cli.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("error reading response from '%s': %w", urlStr, err)
	}
	if int64(len(body)) > cli.maxBodyBytes {
		return nil, fmt.Errorf("response from '%s' is larger than %d bytes", urlStr, cli.maxBodyBytes)
	}

	cli.logger.Debugf("fetched %d byte(s) from '%s'", len(body), urlStr)

	return body, nil
}

func NewAPIClient(logger *logrus.Logger, bearerToken string, timeout time.Duration) *APIClient {
	return &APIClient{
		logger:       logger,
		bearerToken:  bearerToken,
		maxBodyBytes: DEFAULT_MAX_BODY_BYTES,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// ValidateURL checks that 'urlStr' is an absolute http(s) URL.
func ValidateURL(urlStr string) error {
	uri, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("'%s' looks malformed: %w", urlStr, err)
	}
	if uri.Scheme != "http" && uri.Scheme != "https" {
		return fmt.Errorf("'%s' must be an http or https url", urlStr)
	}
	if uri.Host == "" {
		return fmt.Errorf("'%s' is missing a host", urlStr)
	}
	return nil
}
