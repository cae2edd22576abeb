// Vlancheck - Catalyst Centre VLAN Range Checker
//
// A batch CLI that authenticates against a Cisco Catalyst Center (DNA
// Center) REST API, walks the managed-device inventory, and reports
// which VLAN IDs in a configured range are in use versus available.
//
// Examples:
//
//	vlancheck                                  # sandbox defaults, range 600-699
//	vlancheck --range 100-199                  # different range
//	vlancheck --host dnac.example.net -u admin # another controller
//	vlancheck --json                           # machine-readable result
//	vlancheck devices                          # inventory only
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bigevilbeard/cat-centre-vlan-checker/pkg/catalyst"
	"github.com/bigevilbeard/cat-centre-vlan-checker/pkg/checker"
	"github.com/bigevilbeard/cat-centre-vlan-checker/pkg/cli"
	"github.com/bigevilbeard/cat-centre-vlan-checker/pkg/config"
	"github.com/bigevilbeard/cat-centre-vlan-checker/pkg/report"
	"github.com/bigevilbeard/cat-centre-vlan-checker/pkg/util"
	"github.com/bigevilbeard/cat-centre-vlan-checker/pkg/version"
)

var (
	// Flags
	configPath string
	hostFlag   string
	userFlag   string
	passFlag   string
	rangeFlag  string
	timeout    time.Duration
	insecure   bool
	jsonOutput bool
	verbose    bool

	// Effective configuration after file/env/flag overlay
	cfg *config.Config
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
		} else {
			fmt.Fprintln(os.Stderr, cli.Red("Error:")+" "+err.Error())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "vlancheck",
	Short:         "Catalyst Centre VLAN Range Checker",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Vlancheck queries a Cisco Catalyst Center and reports which VLAN IDs
in a configured range are in use across all managed devices, and which
remain available.

Configuration is read from ` + "`~/.vlancheck/config.yaml`" + ` (override with
--config), then CC_HOST / CC_USERNAME / CC_PASSWORD environment
variables, then flags. With no password configured, vlancheck prompts.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isVersionOrHelp(cmd) {
			return nil
		}

		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("info")
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		cfg.ApplyEnv()
		applyFlags(cmd, cfg)

		return cfg.Validate()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultPath(), "Config file path")
	pf.StringVar(&hostFlag, "host", "", "Catalyst Center hostname or IP")
	pf.StringVarP(&userFlag, "username", "u", "", "API username")
	pf.StringVarP(&passFlag, "password", "p", "", "API password (prefer CC_PASSWORD or the prompt)")
	pf.DurationVar(&timeout, "timeout", config.DefaultTimeout, "Per-request timeout")
	pf.BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
	pf.BoolVar(&jsonOutput, "json", false, "JSON output")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.Flags().StringVar(&rangeFlag, "range", "", `VLAN range to check, e.g. "600-699"`)

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(versionCmd)
}

// applyFlags overlays explicitly-set flags onto the config; unset flags
// leave file/env values alone.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Controller.Host = hostFlag
	}
	if flags.Changed("username") {
		cfg.Controller.Username = userFlag
	}
	if flags.Changed("password") {
		cfg.Controller.Password = passFlag
	}
	if flags.Changed("timeout") {
		cfg.Controller.Timeout = config.Duration(timeout)
	}
	if flags.Changed("insecure") {
		cfg.Controller.Insecure = insecure
	}
	if flags.Changed("range") {
		cfg.VLANRange = rangeFlag
	}
}

// newClient builds the API client, prompting for a password when none
// was configured.
func newClient() (*catalyst.Client, error) {
	if cfg.Controller.Password == "" {
		prompt := fmt.Sprintf("Password for %s@%s: ", cfg.Controller.Username, cfg.Controller.Host)
		pw, err := config.PromptPassword(prompt)
		if err != nil {
			return nil, err
		}
		cfg.Controller.Password = pw
	}

	return catalyst.New(catalyst.Options{
		Host:     cfg.Controller.Host,
		Username: cfg.Controller.Username,
		Password: cfg.Controller.Password,
		Insecure: cfg.Controller.Insecure,
		Timeout:  time.Duration(cfg.Controller.Timeout),
	}), nil
}

func runCheck(ctx context.Context) error {
	rng, err := checker.ParseRange(cfg.VLANRange)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if !jsonOutput {
		fmt.Println(cli.Bold("Catalyst Centre VLAN Range Checker"))
		fmt.Println(strings.Repeat("-", 50))
		fmt.Printf("Target: %s\n", client.BaseURL())
		fmt.Printf("Range: VLANs %s\n\n", rng)
	}

	if err := client.Authenticate(ctx); err != nil {
		return err
	}
	util.Infof("Successfully authenticated")

	result, err := checker.New(client).Run(ctx, rng)
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	report.Write(os.Stdout, result)
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("vlancheck " + version.Info())
	},
}

// isVersionOrHelp checks whether cmd (or any ancestor) is a help or
// version command, which run without configuration.
func isVersionOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version":
			return true
		}
	}
	return false
}
