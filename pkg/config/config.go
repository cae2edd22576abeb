// Package config manages vlancheck configuration: a YAML config file
// overlaid by environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// DefaultTimeout bounds each controller request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Duration wraps time.Duration so YAML values like "30s" parse naturally.
type Duration time.Duration

// UnmarshalYAML parses a duration string ("30s", "2m") or a bare number of seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw interface{}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case int:
		*d = Duration(time.Duration(v) * time.Second)
	case float64:
		*d = Duration(time.Duration(v * float64(time.Second)))
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %v", v, err)
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid timeout %v", raw)
	}
	return nil
}

// MarshalYAML renders the duration in Go's duration notation.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Controller holds the Catalyst Center connection settings.
type Controller struct {
	// Host is the controller hostname or IP, without scheme.
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	Password string `yaml:"password,omitempty"`

	// Insecure disables TLS certificate verification. The DevNet sandbox
	// presents a self-signed certificate, so this defaults to true.
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each HTTP request.
	Timeout Duration `yaml:"timeout"`
}

// Config is the full vlancheck configuration.
type Config struct {
	Controller Controller `yaml:"controller"`

	// VLANRange is the inclusive range to check, e.g. "600-699".
	VLANRange string `yaml:"vlan_range"`
}

// Default returns the sandbox-oriented defaults matching the DevNet
// always-on Catalyst Center.
func Default() *Config {
	return &Config{
		Controller: Controller{
			Host:     "sandboxdnac.cisco.com",
			Username: "devnetuser",
			Insecure: true,
			Timeout:  Duration(DefaultTimeout),
		},
		VLANRange: "600-699",
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vlancheck.yaml"
	}
	return filepath.Join(home, ".vlancheck", "config.yaml")
}

// Load reads the config file at path, overlaid onto defaults.
// A missing file is not an error; defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Controller.Timeout <= 0 {
		cfg.Controller.Timeout = Duration(DefaultTimeout)
	}
	return cfg, nil
}

// ApplyEnv overlays CC_HOST, CC_USERNAME and CC_PASSWORD onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CC_HOST"); v != "" {
		c.Controller.Host = v
	}
	if v := os.Getenv("CC_USERNAME"); v != "" {
		c.Controller.Username = v
	}
	if v := os.Getenv("CC_PASSWORD"); v != "" {
		c.Controller.Password = v
	}
}

// Validate checks that the config is complete enough to run a check.
func (c *Config) Validate() error {
	var problems []string
	if c.Controller.Host == "" {
		problems = append(problems, "controller host is required")
	}
	if c.Controller.Username == "" {
		problems = append(problems, "controller username is required")
	}
	if c.Controller.Timeout <= 0 {
		problems = append(problems, "timeout must be positive")
	}
	if c.VLANRange == "" {
		problems = append(problems, "vlan_range is required")
	}
	if len(problems) == 0 {
		return nil
	}
	if len(problems) == 1 {
		return fmt.Errorf("invalid configuration: %s", problems[0])
	}
	return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
}

// PromptPassword reads a password from the terminal without echo.
// Fails when stdin is not a terminal (e.g. in a pipeline).
func PromptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("password not configured and stdin is not a terminal (set CC_PASSWORD or use --password)")
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}
