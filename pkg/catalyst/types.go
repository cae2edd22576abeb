package catalyst

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Device is one managed network device as reported by the controller.
type Device struct {
	ID           string `json:"id"`
	Hostname     string `json:"hostname"`
	ManagementIP string `json:"managementIpAddress"`
	Type         string `json:"type"`
}

// Label returns the display label used throughout reports: "hostname (ip)".
// Missing fields fall back to "Unknown", matching controller conventions.
func (d Device) Label() string {
	name := d.Hostname
	if name == "" {
		name = "Unknown"
	}
	ip := d.ManagementIP
	if ip == "" {
		ip = "Unknown"
	}
	return fmt.Sprintf("%s (%s)", name, ip)
}

// VLAN is one VLAN table entry for a device.
//
// Number is kept raw: controllers have been seen returning vlanNumber as
// a JSON number or a quoted string. Callers coerce via NumberInt and
// decide how to handle entries that do not parse.
type VLAN struct {
	Number json.RawMessage `json:"vlanNumber"`
	Name   string          `json:"vlanName"`
}

// NumberInt coerces the raw vlanNumber into an integer.
func (v VLAN) NumberInt() (int, error) {
	s := strings.TrimSpace(string(v.Number))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return 0, fmt.Errorf("missing vlanNumber")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid vlanNumber %q", s)
	}
	return n, nil
}

// DisplayName returns the VLAN name, defaulting to "VLAN<id>" when the
// controller omits it.
func (v VLAN) DisplayName(id int) string {
	if v.Name != "" {
		return v.Name
	}
	return fmt.Sprintf("VLAN%d", id)
}
