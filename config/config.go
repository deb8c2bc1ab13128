package config

// coordinator.yaml loading. The file owns the backing-store DSN and the
// listen address; everything else has a default. A .env file, when present,
// is folded into the environment first and COORDINATOR_* variables override
// the file.

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "coordinator.yaml"

type Config struct {
	// PostgresURI is the backing-store connection string. Empty selects the
	// embedded sqlite store (dev and tests).
	PostgresURI      string `yaml:"postgres_uri"`
	RPCListenAddress string `yaml:"rpc_listen_address"`
	RPCListenPort    int    `yaml:"rpc_listen_port"`
	MaxOpenConns     int    `yaml:"max_open_conns"`
	// VerifyOnFetch re-checks each task's digest against its stored bytes on
	// fetch.
	VerifyOnFetch bool `yaml:"verify_on_fetch"`
	AllowCORS     bool `yaml:"allow_cors"`
}

func Default() Config {
	return Config{
		RPCListenAddress: "127.0.0.1",
		RPCListenPort:    7654,
		MaxOpenConns:     16,
	}
}

// Load reads and parses the file at path, applying defaults for omitted
// fields and environment overrides on top.
func Load(path string) (*Config, error) {
	godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	cfg.applyEnv()
	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to defaults when the
// default config file is simply absent.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && path == DefaultPath {
		log.Printf("Config file %q not found, using defaults", path)
		godotenv.Load()
		cfg := Default()
		cfg.applyEnv()
		return &cfg, nil
	}
	return Load(path)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("COORDINATOR_POSTGRES_URI"); v != "" {
		c.PostgresURI = v
	}
	if v := os.Getenv("COORDINATOR_LISTEN_ADDRESS"); v != "" {
		c.RPCListenAddress = v
	}
	if v := os.Getenv("COORDINATOR_LISTEN_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.RPCListenPort = port
		}
	}
}

// Listen joins address and port into the form gin expects.
func (c *Config) Listen() string {
	return net.JoinHostPort(c.RPCListenAddress, strconv.Itoa(c.RPCListenPort))
}
