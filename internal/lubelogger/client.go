package lubelogger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client defines the Lubelogger API operations the sync needs.
type Client interface {
	// GetFillups returns all gas records stored for a vehicle.
	GetFillups(ctx context.Context, vehicleID int) ([]Fillup, error)

	// AddFillup creates a new gas record for a vehicle.
	AddFillup(ctx context.Context, vehicleID int, fillup Fillup) error

	// Ping verifies the API is reachable with the configured credentials.
	Ping(ctx context.Context) error
}

// HTTPClient implements Client against the Lubelogger REST API.
type HTTPClient struct {
	baseURL    string
	username   string
	password   string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a new Lubelogger API client using HTTP basic auth.
func NewClient(baseURL, username, password string) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("lubelogger URL cannot be empty")
	}

	if username == "" {
		return nil, fmt.Errorf("lubelogger username cannot be empty")
	}

	if password == "" {
		return nil, fmt.Errorf("lubelogger password cannot be empty")
	}

	return &HTTPClient{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		username:  username,
		password:  password,
		userAgent: "fuelio-lubelogger-sync/1.0",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
	}, nil
}

// createRequest creates an HTTP request with authentication and common headers.
func (c *HTTPClient) createRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(c.username, c.password)

	return req, nil
}

// doRequest executes an HTTP request and maps common error statuses.
func (c *HTTPClient) doRequest(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, fmt.Errorf("authentication failed: invalid credentials")
	}

	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	return resp, nil
}

// gasRecordsURL builds the gas records endpoint for a vehicle.
func (c *HTTPClient) gasRecordsURL(path string, vehicleID int) string {
	query := url.Values{"vehicleId": {strconv.Itoa(vehicleID)}}
	return fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
}

// GetFillups implements Client.GetFillups.
func (c *HTTPClient) GetFillups(ctx context.Context, vehicleID int) ([]Fillup, error) {
	endpoint := c.gasRecordsURL("/api/vehicle/gasrecords", vehicleID)

	req, err := c.createRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gas records request: %w", err)
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gas records for vehicle %d: %w", vehicleID, err)
	}
	defer resp.Body.Close()

	var fillups []Fillup
	if err := json.NewDecoder(resp.Body).Decode(&fillups); err != nil {
		return nil, fmt.Errorf("failed to decode gas records response: %w", err)
	}

	return fillups, nil
}

// AddFillup implements Client.AddFillup.
func (c *HTTPClient) AddFillup(ctx context.Context, vehicleID int, fillup Fillup) error {
	endpoint := c.gasRecordsURL("/api/vehicle/gasrecords/add", vehicleID)

	payload, err := json.Marshal(fillup)
	if err != nil {
		return fmt.Errorf("failed to encode fillup: %w", err)
	}

	req, err := c.createRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create add fillup request: %w", err)
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return fmt.Errorf("failed to add gas record for vehicle %d: %w", vehicleID, err)
	}
	defer resp.Body.Close()

	return nil
}

// Ping implements Client.Ping by listing the vehicles visible to the account.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := c.createRequest(ctx, http.MethodGet, c.baseURL+"/api/vehicles", nil)
	if err != nil {
		return fmt.Errorf("failed to create ping request: %w", err)
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return fmt.Errorf("failed to reach Lubelogger API: %w", err)
	}
	resp.Body.Close()

	return nil
}

// Close releases idle connections held by the client.
func (c *HTTPClient) Close() {
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
