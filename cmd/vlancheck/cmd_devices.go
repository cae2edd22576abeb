package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bigevilbeard/cat-centre-vlan-checker/pkg/cli"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the managed-device inventory",
	Long: `List all devices managed by the Catalyst Center, without checking
VLANs. Useful to verify connectivity and credentials.

Examples:
  vlancheck devices
  vlancheck devices --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.Authenticate(ctx); err != nil {
			return err
		}

		devices, err := client.Devices(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(devices)
		}

		if len(devices) == 0 {
			fmt.Println("No devices found")
			return nil
		}

		t := cli.NewTable(os.Stdout, "HOSTNAME", "MGMT IP", "TYPE", "ID")
		for _, d := range devices {
			t.Row(d.Hostname, d.ManagementIP, d.Type, d.ID)
		}
		t.Flush()

		return nil
	},
}
