package config

import (
	"os"
	"sync"
	"time"

	"github.com/Hnato/JBH-Blackjack-LAN/internal/util"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the blackjack server
type Config struct {
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Table struct {
		Seats              int  `yaml:"seats"`
		Decks              int  `yaml:"decks"`
		StartingMoney      int  `yaml:"startingMoney" envconfig:"starting_money"`
		MaxBet             int  `yaml:"maxBet" envconfig:"max_bet"`
		MaxMoney           int  `yaml:"maxMoney" envconfig:"max_money"`
		LoopbackPrivileged bool `yaml:"loopbackPrivileged" envconfig:"loopback_privileged"`
	} `yaml:"table"`
	JWT struct {
		// Secret signs identity tokens. A random secret is used if empty.
		Secret string        `yaml:"secret"`
		TTL    time.Duration `yaml:"ttl"`
	} `yaml:"jwt"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	} `yaml:"cors"`
}

var (
	config Config
	loaded bool
	mu     sync.Mutex
)

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	var cfg Config
	cfg.Log.Level = "info"
	cfg.Table.Seats = 5
	cfg.Table.Decks = 6
	cfg.Table.StartingMoney = 1000
	cfg.Table.MaxBet = 2000
	cfg.Table.MaxMoney = 1000000
	cfg.Table.LoopbackPrivileged = true
	cfg.JWT.TTL = time.Hour * 24
	cfg.CORS.AllowedOrigins = []string{"*"}

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	mu.Lock()
	defer mu.Unlock()

	if !loaded {
		if err := load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will (re)load the configuration
// The YAML file named by JBH_CONFIG_FILE (config.yaml by default) is read over the
// defaults if it exists, then JBH_* environment variables are applied.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	return load()
}

func load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("JBH_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("jbh", &cfg); err != nil {
		return err
	}

	config = cfg
	loaded = true
	return nil
}
