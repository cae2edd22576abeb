// Package catalyst is a minimal REST client for the Cisco Catalyst
// Center (DNA Center) intent API: token auth, device inventory, and
// per-device VLAN tables.
package catalyst

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	authPath    = "/dna/system/api/v1/auth/token"
	devicesPath = "/dna/intent/api/v1/network-device"
)

// Options configures a Client.
type Options struct {
	// Host is the controller hostname or IP, without scheme.
	Host     string
	Username string
	Password string

	// Insecure disables TLS certificate verification (the DevNet
	// sandbox presents a self-signed certificate).
	Insecure bool

	// Timeout bounds each request.
	Timeout time.Duration
}

// Client talks to one Catalyst Center instance. Authenticate must be
// called before Devices or DeviceVLANs; the token lives for the run.
type Client struct {
	baseURL  string
	username string
	password string
	token    string
	http     *http.Client
}

// New creates a client for the given controller.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var transport http.RoundTripper
	if opts.Insecure {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		baseURL:  "https://" + strings.TrimSuffix(strings.TrimSpace(opts.Host), "/"),
		username: opts.Username,
		password: opts.Password,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// BaseURL returns the controller base URL, e.g. "https://sandboxdnac.cisco.com".
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Authenticate exchanges the configured credentials for a session token.
// Any failure (transport, non-2xx status, missing token field) is an
// AuthError; the caller treats it as fatal.
func (c *Client) Authenticate(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authPath, nil)
	if err != nil {
		return &AuthError{Host: c.baseURL, Reason: err.Error()}
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &AuthError{Host: c.baseURL, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return &AuthError{Host: c.baseURL, Reason: "status " + resp.Status}
	}

	var body struct {
		Token string `json:"Token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return &AuthError{Host: c.baseURL, Reason: "decoding response: " + err.Error()}
	}
	if body.Token == "" {
		return &AuthError{Host: c.baseURL, Reason: "Token not found in response"}
	}

	c.token = body.Token
	return nil
}

// Devices returns the full managed-device inventory. An absent response
// field yields an empty list; transport or status failures yield an
// EnumerationError (fatal — nothing can be checked without the list).
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	var body struct {
		Response []Device `json:"response"`
	}
	if err := c.get(ctx, devicesPath, &body); err != nil {
		return nil, &EnumerationError{Host: c.baseURL, Reason: err.Error()}
	}
	return body.Response, nil
}

// DeviceVLANs returns the VLAN table for one device. Failures yield a
// FetchError carrying the device ID; callers treat it as non-fatal and
// isolated to that device.
func (c *Client) DeviceVLANs(ctx context.Context, deviceID string) ([]VLAN, error) {
	var body struct {
		Response []VLAN `json:"response"`
	}
	path := devicesPath + "/" + url.PathEscape(deviceID) + "/vlan"
	if err := c.get(ctx, path, &body); err != nil {
		return nil, &FetchError{DeviceID: deviceID, Reason: err.Error()}
	}
	return body.Response, nil
}

// get issues an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Auth-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
