// Package testutil provides a fake Catalyst Center for tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

const (
	// Token is the session token the fake controller hands out.
	Token = "test-token-12345"

	authPath    = "/dna/system/api/v1/auth/token"
	devicesPath = "/dna/intent/api/v1/network-device"
)

// Controller is an in-memory Catalyst Center serving the three intent
// API endpoints over TLS with a self-signed certificate, the same trust
// posture as the DevNet sandbox.
type Controller struct {
	// Username and Password are the expected basic-auth credentials.
	Username string
	Password string

	// DevicesJSON is the raw body served for the device-list endpoint.
	DevicesJSON string

	// VLANJSON maps device ID to the raw body served for that device's
	// VLAN endpoint. Devices not present get a 404.
	VLANJSON map[string]string

	// DevicesStatus forces a non-200 status on the device-list endpoint.
	DevicesStatus int

	// VLANStatus forces a non-200 status for specific device IDs.
	VLANStatus map[string]int

	// AuthStatus forces a non-200 status on the auth endpoint.
	AuthStatus int

	// AuthBody overrides the auth response body (e.g. to omit Token).
	AuthBody string

	mu       sync.Mutex
	requests []string

	server *httptest.Server
}

// Start runs the fake controller and registers shutdown via t.Cleanup.
func Start(t *testing.T, c *Controller) *Controller {
	t.Helper()
	if c == nil {
		c = &Controller{}
	}
	if c.Username == "" {
		c.Username = "devnetuser"
	}
	if c.Password == "" {
		c.Password = "sandbox-password"
	}
	if c.DevicesJSON == "" {
		c.DevicesJSON = `{"response": []}`
	}
	c.server = httptest.NewTLSServer(http.HandlerFunc(c.handle))
	t.Cleanup(c.server.Close)
	return c
}

// Host returns the host:port the fake controller listens on.
func (c *Controller) Host() string {
	u, _ := url.Parse(c.server.URL)
	return u.Host
}

// Requests returns the request paths seen so far, in order.
func (c *Controller) Requests() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.requests...)
}

func (c *Controller) handle(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.requests = append(c.requests, r.URL.Path)
	c.mu.Unlock()

	switch {
	case r.URL.Path == authPath:
		c.handleAuth(w, r)
	case r.URL.Path == devicesPath:
		c.handleDevices(w, r)
	case strings.HasPrefix(r.URL.Path, devicesPath+"/") && strings.HasSuffix(r.URL.Path, "/vlan"):
		c.handleVLANs(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (c *Controller) handleAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if c.AuthStatus != 0 {
		w.WriteHeader(c.AuthStatus)
		return
	}
	user, pass, ok := r.BasicAuth()
	if !ok || user != c.Username || pass != c.Password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	body := c.AuthBody
	if body == "" {
		body = fmt.Sprintf(`{"Token": %q}`, Token)
	}
	fmt.Fprint(w, body)
}

func (c *Controller) handleDevices(w http.ResponseWriter, r *http.Request) {
	if !c.authorized(w, r) {
		return
	}
	if c.DevicesStatus != 0 {
		w.WriteHeader(c.DevicesStatus)
		return
	}
	fmt.Fprint(w, c.DevicesJSON)
}

func (c *Controller) handleVLANs(w http.ResponseWriter, r *http.Request) {
	if !c.authorized(w, r) {
		return
	}
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, devicesPath+"/"), "/vlan")
	if status, ok := c.VLANStatus[id]; ok {
		w.WriteHeader(status)
		return
	}
	body, ok := c.VLANJSON[id]
	if !ok {
		http.NotFound(w, r)
		return
	}
	fmt.Fprint(w, body)
}

func (c *Controller) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("X-Auth-Token") != Token {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}
