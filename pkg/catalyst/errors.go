package catalyst

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure kinds of the check pipeline.
// Authentication and enumeration failures are fatal to a run; a fetch
// failure is isolated to one device.
var (
	ErrAuth        = errors.New("authentication failed")
	ErrEnumeration = errors.New("device enumeration failed")
	ErrFetch       = errors.New("vlan fetch failed")
)

// AuthError reports a failed token exchange with the controller.
type AuthError struct {
	Host   string
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for %s: %s", e.Host, e.Reason)
}

func (e *AuthError) Unwrap() error {
	return ErrAuth
}

// EnumerationError reports a failed device-list request.
type EnumerationError struct {
	Host   string
	Reason string
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("failed to get network devices from %s: %s", e.Host, e.Reason)
}

func (e *EnumerationError) Unwrap() error {
	return ErrEnumeration
}

// FetchError reports a failed per-device VLAN request.
type FetchError struct {
	DeviceID string
	Reason   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to get VLANs for device %s: %s", e.DeviceID, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return ErrFetch
}
