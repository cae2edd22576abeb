package checker

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/bigevilbeard/cat-centre-vlan-checker/pkg/catalyst"
)

// fakeSource serves canned inventory data and records fetch order.
type fakeSource struct {
	devices    []catalyst.Device
	devicesErr error
	vlans      map[string][]catalyst.VLAN
	vlansErr   map[string]error
	fetched    []string
}

func (f *fakeSource) Devices(ctx context.Context) ([]catalyst.Device, error) {
	if f.devicesErr != nil {
		return nil, f.devicesErr
	}
	return f.devices, nil
}

func (f *fakeSource) DeviceVLANs(ctx context.Context, deviceID string) ([]catalyst.VLAN, error) {
	f.fetched = append(f.fetched, deviceID)
	if err := f.vlansErr[deviceID]; err != nil {
		return nil, err
	}
	return f.vlans[deviceID], nil
}

func vlan(number, name string) catalyst.VLAN {
	return catalyst.VLAN{Number: []byte(number), Name: name}
}

func device(id, hostname, ip string) catalyst.Device {
	return catalyst.Device{ID: id, Hostname: hostname, ManagementIP: ip, Type: "Cisco Catalyst 9300 Switch"}
}

func TestRun_FiltersToRange(t *testing.T) {
	src := &fakeSource{
		devices: []catalyst.Device{
			device("dev-a", "switch-a", "10.10.20.81"),
			device("dev-b", "switch-b", "10.10.20.82"),
		},
		vlans: map[string][]catalyst.VLAN{
			"dev-a": {vlan("650", "Voice"), vlan("599", "BelowRange"), vlan("700", "AboveRange")},
			"dev-b": {vlan("1", "default")},
		},
	}

	result, err := New(src).Run(context.Background(), Range{Start: 600, End: 699})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if result.DevicesChecked != 2 {
		t.Errorf("DevicesChecked = %d, want 2", result.DevicesChecked)
	}
	if len(result.Findings) != 1 {
		t.Fatalf("got %d devices with findings, want 1", len(result.Findings))
	}

	df := result.Findings[0]
	if df.Device != "switch-a (10.10.20.81)" {
		t.Errorf("device label = %q", df.Device)
	}
	want := []Finding{{ID: 650, Name: "Voice"}}
	if !reflect.DeepEqual(df.VLANs, want) {
		t.Errorf("findings = %v, want %v", df.VLANs, want)
	}

	if result.TotalVLANs() != 1 {
		t.Errorf("TotalVLANs() = %d, want 1", result.TotalVLANs())
	}
	if got := result.UsedIDs(); !reflect.DeepEqual(got, []int{650}) {
		t.Errorf("UsedIDs() = %v, want [650]", got)
	}
	if got := len(result.AvailableIDs()); got != 99 {
		t.Errorf("len(AvailableIDs()) = %d, want 99", got)
	}
}

func TestRun_RangeBoundariesInclusive(t *testing.T) {
	src := &fakeSource{
		devices: []catalyst.Device{device("dev-a", "switch-a", "10.10.20.81")},
		vlans: map[string][]catalyst.VLAN{
			"dev-a": {vlan("600", ""), vlan("699", "")},
		},
	}

	result, err := New(src).Run(context.Background(), Range{Start: 600, End: 699})
	if err != nil {
		t.Fatal(err)
	}
	if got := result.UsedIDs(); !reflect.DeepEqual(got, []int{600, 699}) {
		t.Errorf("UsedIDs() = %v, want [600 699]", got)
	}
	// Name defaulted when the controller omits vlanName.
	if result.Findings[0].VLANs[0].Name != "VLAN600" {
		t.Errorf("defaulted name = %q, want VLAN600", result.Findings[0].VLANs[0].Name)
	}
}

func TestRun_PartitionInvariant(t *testing.T) {
	src := &fakeSource{
		devices: []catalyst.Device{device("dev-a", "switch-a", "10.10.20.81")},
		vlans: map[string][]catalyst.VLAN{
			"dev-a": {vlan("610", ""), vlan("620", ""), vlan("620", "dup")},
		},
	}

	rng := Range{Start: 600, End: 699}
	result, err := New(src).Run(context.Background(), rng)
	if err != nil {
		t.Fatal(err)
	}

	used := result.UsedIDs()
	free := result.AvailableIDs()

	if len(used)+len(free) != rng.Size() {
		t.Errorf("used (%d) + available (%d) != range size (%d)", len(used), len(free), rng.Size())
	}

	seen := make(map[int]bool)
	for _, id := range used {
		seen[id] = true
	}
	for _, id := range free {
		if seen[id] {
			t.Errorf("ID %d in both used and available sets", id)
		}
		seen[id] = true
	}
	for id := rng.Start; id <= rng.End; id++ {
		if !seen[id] {
			t.Errorf("ID %d missing from both sets", id)
		}
	}
}

func TestRun_EmptyDeviceList(t *testing.T) {
	src := &fakeSource{}

	result, err := New(src).Run(context.Background(), Range{Start: 600, End: 699})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Empty() {
		t.Error("expected empty result")
	}
	if result.DevicesChecked != 0 {
		t.Errorf("DevicesChecked = %d, want 0", result.DevicesChecked)
	}
	if got := len(result.AvailableIDs()); got != 100 {
		t.Errorf("len(AvailableIDs()) = %d, want full range 100", got)
	}
}

func TestRun_DeviceWithoutIDSkipped(t *testing.T) {
	src := &fakeSource{
		devices: []catalyst.Device{
			{Hostname: "ghost", ManagementIP: "10.10.20.99"},
			device("dev-a", "switch-a", "10.10.20.81"),
		},
		vlans: map[string][]catalyst.VLAN{
			"dev-a": {vlan("650", "Voice")},
		},
	}

	result, err := New(src).Run(context.Background(), Range{Start: 600, End: 699})
	if err != nil {
		t.Fatal(err)
	}
	if result.DevicesChecked != 1 {
		t.Errorf("DevicesChecked = %d, want 1", result.DevicesChecked)
	}
	if !reflect.DeepEqual(src.fetched, []string{"dev-a"}) {
		t.Errorf("fetched = %v, want only dev-a", src.fetched)
	}
}

func TestRun_FetchFailureIsolated(t *testing.T) {
	src := &fakeSource{
		devices: []catalyst.Device{
			device("dev-a", "switch-a", "10.10.20.81"),
			device("dev-b", "switch-b", "10.10.20.82"),
		},
		vlans: map[string][]catalyst.VLAN{
			"dev-b": {vlan("650", "Voice")},
		},
		vlansErr: map[string]error{
			"dev-a": &catalyst.FetchError{DeviceID: "dev-a", Reason: "status 500"},
		},
	}

	result, err := New(src).Run(context.Background(), Range{Start: 600, End: 699})
	if err != nil {
		t.Fatalf("fetch failure must not abort the run: %v", err)
	}

	// Failed device counted as checked but absent from findings; the
	// run continued to the next device.
	if result.DevicesChecked != 2 {
		t.Errorf("DevicesChecked = %d, want 2", result.DevicesChecked)
	}
	if len(result.Findings) != 1 || result.Findings[0].Device != "switch-b (10.10.20.82)" {
		t.Errorf("findings = %+v, want only switch-b", result.Findings)
	}
	if !reflect.DeepEqual(src.fetched, []string{"dev-a", "dev-b"}) {
		t.Errorf("fetched = %v, want both devices in order", src.fetched)
	}
}

func TestRun_MalformedVLANNumberSkipsEntry(t *testing.T) {
	src := &fakeSource{
		devices: []catalyst.Device{device("dev-a", "switch-a", "10.10.20.81")},
		vlans: map[string][]catalyst.VLAN{
			"dev-a": {vlan(`"not-a-number"`, "Broken"), vlan("650", "Voice")},
		},
	}

	result, err := New(src).Run(context.Background(), Range{Start: 600, End: 699})
	if err != nil {
		t.Fatal(err)
	}
	want := []Finding{{ID: 650, Name: "Voice"}}
	if !reflect.DeepEqual(result.Findings[0].VLANs, want) {
		t.Errorf("findings = %v, want %v", result.Findings[0].VLANs, want)
	}
}

func TestRun_EnumerationFailureFatal(t *testing.T) {
	enumErr := &catalyst.EnumerationError{Host: "https://dnac", Reason: "status 503"}
	src := &fakeSource{devicesErr: enumErr}

	_, err := New(src).Run(context.Background(), Range{Start: 600, End: 699})
	if !errors.Is(err, catalyst.ErrEnumeration) {
		t.Errorf("error = %v, want ErrEnumeration kind", err)
	}
	if len(src.fetched) != 0 {
		t.Errorf("no device should have been queried, got %v", src.fetched)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	src := &fakeSource{
		devices: []catalyst.Device{device("dev-a", "switch-a", "10.10.20.81")},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(src).Run(ctx, Range{Start: 600, End: 699})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestParseRange(t *testing.T) {
	rng, err := ParseRange("600-699")
	if err != nil {
		t.Fatal(err)
	}
	if rng.Start != 600 || rng.End != 699 {
		t.Errorf("ParseRange = %+v", rng)
	}
	if rng.Size() != 100 {
		t.Errorf("Size() = %d, want 100", rng.Size())
	}
	if rng.String() != "600-699" {
		t.Errorf("String() = %q", rng.String())
	}
	if !rng.Contains(600) || !rng.Contains(699) || rng.Contains(599) || rng.Contains(700) {
		t.Error("Contains() boundaries wrong")
	}

	if _, err := ParseRange("699-600"); err == nil {
		t.Error("expected error for reversed range")
	}
}
