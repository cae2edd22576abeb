// Package report renders the outcome of a VLAN range check as console text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bigevilbeard/cat-centre-vlan-checker/pkg/checker"
	"github.com/bigevilbeard/cat-centre-vlan-checker/pkg/cli"
)

const (
	ruleWidth = 70

	// Available IDs are listed in full up to this many; beyond it only
	// the first previewAvailable are shown with an ellipsis.
	maxAvailableListed = 20
	previewAvailable   = 10
)

// Write renders the full check report to w. Pure formatting; no network
// access and no side effects beyond writing.
func Write(w io.Writer, result *checker.Result) {
	rng := result.Range

	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.Rule(ruleWidth))
	fmt.Fprintf(w, "VLAN RANGE CHECK RESULTS (%s)\n", rng)
	fmt.Fprintln(w, cli.Rule(ruleWidth))

	if result.Empty() {
		fmt.Fprintf(w, "\nNo VLANs in the range %s found on any monitored devices.\n", rng)
		fmt.Fprintln(w, cli.Green("All VLANs in this range are available for use!"))
		return
	}

	fmt.Fprintf(w, "\nFound VLANs in range %s on the following devices:\n\n", rng)

	for _, df := range result.Findings {
		fmt.Fprintln(w, cli.Bold(df.Device))
		for _, f := range df.VLANs {
			fmt.Fprintf(w, "   VLAN %d: %s\n", f.ID, f.Name)
		}
		fmt.Fprintf(w, "   Count: %d VLANs\n\n", len(df.VLANs))
	}

	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "   Devices with VLANs in range: %d\n", len(result.Findings))
	fmt.Fprintf(w, "   Total VLANs found in range: %d\n", result.TotalVLANs())
	fmt.Fprintf(w, "   Unique VLAN IDs in use: %s\n", joinIDs(result.UsedIDs()))

	free := result.AvailableIDs()
	if len(free) == 0 {
		return
	}
	fmt.Fprintf(w, "   Available VLANs in range: %d\n", len(free))
	if len(free) <= maxAvailableListed {
		fmt.Fprintf(w, "   Available VLAN IDs: %s\n", joinIDs(free))
	} else {
		fmt.Fprintf(w, "   First %d available: %s...\n", previewAvailable, joinIDs(free[:previewAvailable]))
	}
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
