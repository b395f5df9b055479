// Package config holds the credctl settings: defaults, an optional JSON file
// and flags, in that order of precedence.
package config

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/credbridge/internal/flagx"
	"github.com/dmitrijs2005/credbridge/internal/timex"
)

// Config holds runtime settings for credctl.
//
// Fields:
//   - ServerEndpointAddr: host:port of the credential server.
//   - AccessToken: caller JWT; prompted for when empty and a command needs it.
//   - Timeout: per-command deadline.
type Config struct {
	ServerEndpointAddr string
	AccessToken        string
	Timeout            time.Duration
}

type jsonConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	AccessToken        *string         `json:"access_token"`
	Timeout            *timex.Duration `json:"timeout"`
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Timeout = 10 * time.Second
}

// LoadConfig builds a Config from args (without the program name) and
// returns the positional arguments left after the flags.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, flagx.ConfigFileFlag()); err != nil {
		return nil, nil, err
	}

	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}

func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	if c.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *c.ServerEndpointAddr
	}
	if c.AccessToken != nil {
		cfg.AccessToken = *c.AccessToken
	}
	if c.Timeout != nil {
		cfg.Timeout = c.Timeout.Duration
	}
	return nil
}

// parseFlags supports:
//
//	-a string     server address
//	-t string     caller JWT
//	-timeout dur  per-command deadline
//	-c / -config  JSON config file (read by parseJson)
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("credctl", flag.ContinueOnError)

	var configPath string
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "server address")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "access token (JWT)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-command timeout")
	fs.StringVar(&configPath, "c", "", "path to JSON config file (short)")
	fs.StringVar(&configPath, "config", "", "path to JSON config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}
