// Package checker walks the device inventory and aggregates the VLANs
// found inside a configured ID range.
package checker

import (
	"context"
	"fmt"
	"sort"

	"github.com/bigevilbeard/cat-centre-vlan-checker/pkg/catalyst"
	"github.com/bigevilbeard/cat-centre-vlan-checker/pkg/util"
)

// DeviceSource is the slice of the controller API the checker needs.
// *catalyst.Client satisfies it.
type DeviceSource interface {
	Devices(ctx context.Context) ([]catalyst.Device, error)
	DeviceVLANs(ctx context.Context, deviceID string) ([]catalyst.VLAN, error)
}

// Range is an inclusive VLAN ID range.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ParseRange parses a range spec like "600-699" or "650".
func ParseRange(spec string) (Range, error) {
	start, end, err := util.ParseVLANRange(spec)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: end}, nil
}

// Contains reports whether id falls inside the range.
func (r Range) Contains(id int) bool {
	return id >= r.Start && id <= r.End
}

// Size returns the number of IDs in the range.
func (r Range) Size() int {
	return r.End - r.Start + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Finding is one VLAN found in range on a device.
type Finding struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DeviceFindings groups the in-range VLANs of one device under its
// display label ("hostname (ip)"). Devices with no findings are not
// recorded at all.
type DeviceFindings struct {
	Device string    `json:"device"`
	VLANs  []Finding `json:"vlans"`
}

// Result is the aggregate outcome of one run.
type Result struct {
	Range          Range            `json:"range"`
	DevicesChecked int              `json:"devices_checked"`
	Findings       []DeviceFindings `json:"findings,omitempty"`
}

// Empty reports whether no VLANs in range were found anywhere.
func (r *Result) Empty() bool {
	return len(r.Findings) == 0
}

// TotalVLANs returns the total number of in-range VLANs across devices.
func (r *Result) TotalVLANs() int {
	n := 0
	for _, df := range r.Findings {
		n += len(df.VLANs)
	}
	return n
}

// UsedIDs returns the sorted unique VLAN IDs found in range.
func (r *Result) UsedIDs() []int {
	seen := make(map[int]bool)
	for _, df := range r.Findings {
		for _, f := range df.VLANs {
			seen[f.ID] = true
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// AvailableIDs returns the sorted IDs of the range not found on any
// device: the complement of UsedIDs against the full range.
func (r *Result) AvailableIDs() []int {
	used := make(map[int]bool)
	for _, id := range r.UsedIDs() {
		used[id] = true
	}
	var free []int
	for id := r.Range.Start; id <= r.Range.End; id++ {
		if !used[id] {
			free = append(free, id)
		}
	}
	return free
}

// Checker runs the sequential device walk.
type Checker struct {
	source DeviceSource
}

// New creates a Checker reading from source.
func New(source DeviceSource) *Checker {
	return &Checker{source: source}
}

// Run enumerates all devices and collects their in-range VLANs.
//
// Device-list failure is fatal and returned. Per-device failures are
// warnings: a device with no ID is skipped, and a failed VLAN fetch is
// treated as a device with zero VLANs. Entries whose vlanNumber does
// not coerce to an integer are dropped with a warning. Devices are
// visited strictly in inventory order.
func (c *Checker) Run(ctx context.Context, rng Range) (*Result, error) {
	devices, err := c.source.Devices(ctx)
	if err != nil {
		return nil, err
	}
	util.Infof("Found %d network devices to check", len(devices))

	result := &Result{Range: rng}

	for _, dev := range devices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if dev.ID == "" {
			util.Warnf("Device %s has no ID, skipping", dev.Label())
			continue
		}

		util.Infof("Checking: %s - %s", dev.Label(), dev.Type)
		result.DevicesChecked++

		vlans, err := c.source.DeviceVLANs(ctx, dev.ID)
		if err != nil {
			// Treated the same as a device with no VLANs configured.
			util.Warnf("%v", err)
			continue
		}

		var found []Finding
		for _, v := range vlans {
			id, err := v.NumberInt()
			if err != nil {
				util.Warnf("Invalid VLAN number format in device %s", dev.Label())
				continue
			}
			if !rng.Contains(id) {
				continue
			}
			found = append(found, Finding{ID: id, Name: v.DisplayName(id)})
		}

		if len(found) > 0 {
			ids := make([]int, len(found))
			for i, f := range found {
				ids[i] = f.ID
			}
			util.Debugf("%s: VLANs in range: %s", dev.Label(), util.CompactRange(ids))
			result.Findings = append(result.Findings, DeviceFindings{
				Device: dev.Label(),
				VLANs:  found,
			})
		}
	}

	util.Infof("Completed checking %d devices", result.DevicesChecked)
	return result, nil
}
