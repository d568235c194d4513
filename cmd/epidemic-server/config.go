package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/Ashboy64/disease-spread/internal/app"
)

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Addr        string
	ConfigPath  string
	LogDir      string
	LogLevel    string
	TPS         int
	Seed        int64
	StartPaused bool
	Set         app.Settings
}

// configResolver resolves one option from a flag, then an environment
// variable, then a default.
type configResolver struct {
	flagName    string
	envVarName  string
	defaultVal  string
	description string
	setter      func(*ServerConfig, string) error
}

var resolvers = []configResolver{
	{
		flagName:    "addr",
		envVarName:  "EPIDEMIC_ADDR",
		defaultVal:  ":8080",
		description: "HTTP listen address",
		setter:      func(c *ServerConfig, v string) error { c.Addr = v; return nil },
	},
	{
		flagName:    "config",
		envVarName:  "EPIDEMIC_CONFIG",
		description: "optional YAML configuration to load at startup",
		setter:      func(c *ServerConfig, v string) error { c.ConfigPath = v; return nil },
	},
	{
		flagName:    "logdir",
		envVarName:  "EPIDEMIC_LOG_DIR",
		defaultVal:  "logs",
		description: "base directory for the run's count log",
		setter:      func(c *ServerConfig, v string) error { c.LogDir = v; return nil },
	},
	{
		flagName:    "log-level",
		envVarName:  "EPIDEMIC_LOG_LEVEL",
		defaultVal:  "info",
		description: "log level: debug, info, warn, error",
		setter:      func(c *ServerConfig, v string) error { c.LogLevel = v; return nil },
	},
	{
		flagName:    "tps",
		envVarName:  "EPIDEMIC_TPS",
		defaultVal:  "10",
		description: "ticks per second",
		setter: func(c *ServerConfig, v string) (err error) {
			c.TPS, err = strconv.Atoi(v)
			if err == nil && c.TPS <= 0 {
				err = fmt.Errorf("must be positive")
			}
			return err
		},
	},
	{
		flagName:    "seed",
		envVarName:  "EPIDEMIC_SEED",
		defaultVal:  "1337",
		description: "random seed for a fresh world",
		setter: func(c *ServerConfig, v string) (err error) {
			c.Seed, err = strconv.ParseInt(v, 10, 64)
			return err
		},
	},
	{
		flagName:    "paused",
		envVarName:  "EPIDEMIC_PAUSED",
		defaultVal:  "false",
		description: "start paused",
		setter: func(c *ServerConfig, v string) (err error) {
			c.StartPaused, err = strconv.ParseBool(v)
			return err
		},
	},
	{
		flagName:    "set",
		envVarName:  "EPIDEMIC_SET",
		description: "comma-separated key=value simulation parameters for a fresh world",
		setter: func(c *ServerConfig, v string) error {
			c.Set = app.Settings{}
			if v == "" {
				return nil
			}
			for _, pair := range strings.Split(v, ",") {
				if err := c.Set.Set(pair); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// loadServerConfig parses args and resolves every option. getenv is
// os.Getenv outside tests.
func loadServerConfig(fs *flag.FlagSet, args []string, getenv func(string) string) (ServerConfig, error) {
	flagVars := make(map[string]*string, len(resolvers))
	for _, r := range resolvers {
		flagVars[r.flagName] = fs.String(r.flagName, "", fmt.Sprintf("%s (env %s)", r.description, r.envVarName))
	}
	if err := fs.Parse(args); err != nil {
		return ServerConfig{}, err
	}

	var cfg ServerConfig
	for _, r := range resolvers {
		value := r.defaultVal
		if v := *flagVars[r.flagName]; v != "" {
			value = v
		} else if v := getenv(r.envVarName); v != "" {
			value = v
		}
		if err := r.setter(&cfg, value); err != nil {
			return ServerConfig{}, fmt.Errorf("%s=%q: %w", r.flagName, value, err)
		}
	}
	return cfg, nil
}
